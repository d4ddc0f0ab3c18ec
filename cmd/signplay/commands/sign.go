package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unmute-ai/signplay/common"
	"github.com/unmute-ai/signplay/sign"
)

var signCmd = &cobra.Command{
	Use:   "sign <name>",
	Short: "Loop a single sign by recording name",
	Args:  cobra.ExactArgs(1),
	RunE:  runSign,
}

func init() {
	rootCmd.AddCommand(signCmd)
}

func runSign(cmd *cobra.Command, args []string) error {
	name := args[0]

	a, err := newApp()
	if err != nil {
		return err
	}

	var vocabToken, gif string
	if vocab, err := a.vocab(); err == nil {
		vocabToken, _ = vocab.Token(name)
		if base := a.cfg.Landmarks.AssetBaseURL; base != "" {
			gif = fmt.Sprintf("%s/sgsl_dataset/%s/%s.gif", base, name, name)
		}
	}
	token := common.Coalesce(vocabToken, strings.ToUpper(name))

	// A one-item plan loops the sign until the window closes.
	a.engine.Start(sign.Plan{{
		Kind:     sign.KindSign,
		Token:    token,
		SignName: name,
		Assets:   sign.Assets{Gif: gif},
	}})
	a.run()
	return nil
}
