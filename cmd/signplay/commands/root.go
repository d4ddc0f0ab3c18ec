package commands

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	headless   bool
	profile    bool
)

// Terminal styles shared by the output commands.
var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9f")).Padding(0, 1)
	styleLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9f"))
	styleDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f0883e"))
)

var rootCmd = &cobra.Command{
	Use:   "signplay",
	Short: "Sign language playback engine",
	Long: `signplay - Text-to-sign playback with a skeletal animation engine.

Translates text into sign-language gloss, fetches recorded motion-capture
landmarks for each sign, and animates a joint/bone skeleton on screen.

Examples:
  # Translate and play a sentence
  signplay play "i want apple"

  # Inspect the gloss and render plan without playing
  signplay gloss "i want apple"

  # Loop a single sign
  signplay sign hello_0

  # Run the engine fed by a live WebSocket landmark stream
  signplay live`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&headless, "headless", false, "run without a window or GPU")
	rootCmd.PersistentFlags().BoolVar(&profile, "profile", false, "log redraw frame rate and memory stats")
}
