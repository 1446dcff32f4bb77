package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rulegate",
		Short: "Enforce project conventions before code lands",
		Long: "rulegate checks a project against its convention rulebook: directory structure, import aliasing, " +
			"per-file coverage, source hygiene and attempts to bypass the validation pipeline.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	for _, v := range validatorCommands {
		cmd.AddCommand(newValidatorCmd(v))
	}
	cmd.AddCommand(newAllCmd())
	cmd.AddCommand(newClassifyCmd())
	cmd.AddCommand(newInventoryCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return execute(newRootCmd())
}

// ExecuteValidator runs a single validator as if invoked as
// "rulegate <name> args...". It backs the standalone validator binaries.
func ExecuteValidator(name string, args []string) error {
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{name}, args...))
	return execute(cmd)
}

// execute turns a panic inside a command into an error so a broken check
// still exits non-zero instead of passing silently.
func execute(cmd *cobra.Command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()
	return cmd.Execute()
}
