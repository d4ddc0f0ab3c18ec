package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unmute-ai/signplay/config"
	"github.com/unmute-ai/signplay/translate"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab [token]",
	Short: "Inspect the sign vocabulary",
	Long: `Without arguments, prints the vocabulary size. With a token,
resolves aliases and prints the matching sign recording name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVocab,
}

func init() {
	rootCmd.AddCommand(vocabCmd)
}

func runVocab(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	vocab, err := translate.LoadVocab(cfg.Translate.VocabPath, cfg.Translate.AliasesPath)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Printf("%s %d tokens\n", styleLabel.Render("vocabulary:"), vocab.Len())
		return nil
	}

	token := vocab.Resolve(args[0])
	name, ok := vocab.SignName(token)
	if !ok {
		return fmt.Errorf("token %q not in vocabulary", token)
	}
	fmt.Printf("%s %s %s %s\n", styleLabel.Render(token), styleDim.Render("->"), name, styleDim.Render("(sign recording)"))
	return nil
}
