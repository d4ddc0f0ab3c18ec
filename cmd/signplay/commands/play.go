package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/unmute-ai/signplay/translate"
)

var playCmd = &cobra.Command{
	Use:   "play <text>",
	Short: "Translate text and play the resulting sign sequence",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	a, err := newApp()
	if err != nil {
		return err
	}

	vocab, err := a.vocab()
	if err != nil {
		return err
	}
	glosser, err := a.glosser(cmd.Context(), vocab)
	if err != nil {
		return err
	}

	gloss, err := glosser.TextToGloss(cmd.Context(), text)
	if err != nil {
		return err
	}
	printGloss(gloss.Gloss, gloss.Unmatched, gloss.Notes)
	if len(gloss.Gloss) == 0 {
		a.close()
		return fmt.Errorf("nothing to play: no tokens matched the vocabulary")
	}

	plan := translate.BuildPlan(vocab, gloss.Gloss, a.cfg.Landmarks.AssetBaseURL)
	a.engine.Start(plan)

	// A multi-item plan plays once; quit when it finishes. A single-sign
	// plan loops until the user closes the window or interrupts.
	go func() {
		for a.engine.PlaybackState().IsPlaying {
			time.Sleep(50 * time.Millisecond)
		}
		a.engine.Quit()
	}()

	a.run()
	return nil
}
