package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unmute-ai/signplay/config"
	"github.com/unmute-ai/signplay/sign"
	"github.com/unmute-ai/signplay/translate"
)

var glossCmd = &cobra.Command{
	Use:   "gloss <text>",
	Short: "Translate text and print the gloss and render plan",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGloss,
}

func init() {
	rootCmd.AddCommand(glossCmd)
}

func runGloss(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	vocab, err := translate.LoadVocab(cfg.Translate.VocabPath, cfg.Translate.AliasesPath)
	if err != nil {
		return err
	}
	glosser, err := translate.NewGlosser(cmd.Context(), vocab,
		translate.WithAPIKey(cfg.Translate.APIKey),
		translate.WithModel(cfg.Translate.Model),
	)
	if err != nil {
		return err
	}

	gloss, err := glosser.TextToGloss(cmd.Context(), text)
	if err != nil {
		return err
	}

	printGloss(gloss.Gloss, gloss.Unmatched, gloss.Notes)
	printPlan(translate.BuildPlan(vocab, gloss.Gloss, cfg.Landmarks.AssetBaseURL))
	return nil
}

// printGloss renders the translation result to the terminal.
func printGloss(gloss, unmatched []string, notes string) {
	fmt.Println(styleTitle.Render("Gloss"))
	if len(gloss) == 0 {
		fmt.Println("  " + styleDim.Render("(empty)"))
	} else {
		fmt.Println("  " + styleLabel.Render(strings.Join(gloss, " ")))
	}
	if len(unmatched) > 0 {
		fmt.Println("  " + styleWarn.Render("unmatched: "+strings.Join(unmatched, ", ")))
	}
	if notes != "" {
		fmt.Println("  " + styleDim.Render(notes))
	}
}

// printPlan renders the plan items, one per line.
func printPlan(plan sign.Plan) {
	fmt.Println(styleTitle.Render("Plan"))
	for i, item := range plan {
		kind := "text"
		detail := ""
		if item.IsSign() {
			kind = "sign"
			detail = styleDim.Render(item.SignName)
		}
		fmt.Printf("  %2d. %s %-14s %s\n", i+1, styleLabel.Render(kind), item.Token, detail)
	}
}
