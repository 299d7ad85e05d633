package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gradletree/pkg/pipeline"
)

// completionCommand creates the command that prints shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for gradletree.

Bash:
  $ source <(gradletree completion bash)
  $ gradletree completion bash > /etc/bash_completion.d/gradletree

Zsh (with compinit enabled):
  $ gradletree completion zsh > "${fpath[1]}/_gradletree"

Fish:
  $ gradletree completion fish > ~/.config/fish/completions/gradletree.fish

PowerShell:
  PS> gradletree completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
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

// completeFormats completes --format values.
func completeFormats(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return pipeline.ValidFormats, cobra.ShellCompDirectiveNoFileComp
}
