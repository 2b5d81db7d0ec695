package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgjson/pkg/packagejson"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for pkgjson.

Bash:
  $ source <(pkgjson completion bash)

Zsh:
  $ pkgjson completion zsh > "${fpath[1]}/_pkgjson"

Fish:
  $ pkgjson completion fish > ~/.config/fish/completions/pkgjson.fish

PowerShell:
  PS> pkgjson completion powershell | Out-String | Invoke-Expression
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

	return cmd
}

// completeKeys completes the first argument with the keys of the located
// document, falling back to the known field names.
func (c *CLI) completeKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if m, err := c.openDocument(); err == nil {
		return m.Descriptor().Keys(), cobra.ShellCompDirectiveNoFileComp
	}
	return packagejson.DeclaredKeys(), cobra.ShellCompDirectiveNoFileComp
}
