package cli

import (
	"github.com/Lavi-Vu/toolTTS/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tooltts",
	Short: "Text-to-speech synthesis with synchronized SRT subtitles",
	Long: `ToolTTS converts text into spoken audio and writes a
time-synchronized .srt subtitle file next to it.

It supports multiple synthesis engines and a podcast mode that merges
several speaker turns into one audio track with a single subtitle file.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringP("output", "o", "", "Output audio path (the .srt lands beside it)")
}
