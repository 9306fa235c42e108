package cmd

import (
	"os"

	"github.com/chris-regnier/moodlog/internal/shell"
	"github.com/spf13/cobra"
)

var initShellCmd = &cobra.Command{
	Use:   "init <shell>",
	Short: "Output shell integration script",
	Long: `Output shell integration script for eval.

Generates shell-specific initialization code that sets up:
- Shell completions
- Prompt hook exporting MOODLOG_TODAY, MOODLOG_STREAK and MOODLOG_MOOD
- moodlog_prompt_info helper function

Supported shells: bash, zsh`,
	Example: `  # Add to ~/.bashrc
  eval "$(moodlog init bash)"

  # Add to ~/.zshrc
  eval "$(moodlog init zsh)"`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: shell.Shells,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := shell.WriteInit(os.Stdout, args[0]); err != nil {
			return usageError("%v", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initShellCmd)
}
