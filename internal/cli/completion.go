package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for vamsha.

Bash:
  $ source <(vamsha completion bash)

Zsh:
  $ vamsha completion zsh > "${fpath[1]}/_vamsha"

Fish:
  $ vamsha completion fish > ~/.config/fish/completions/vamsha.fish

PowerShell:
  PS> vamsha completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// completeLanguages offers language names for --lang flags.
func completeLanguages(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return languageNames(), cobra.ShellCompDirectiveNoFileComp
}
