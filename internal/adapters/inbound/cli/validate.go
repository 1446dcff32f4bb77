package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/openkraft/rulegate/internal/adapters/outbound/sarif"
	"github.com/openkraft/rulegate/internal/adapters/outbound/tui"
	"github.com/openkraft/rulegate/internal/application"
	"github.com/openkraft/rulegate/internal/domain"
)

type validatorCommand struct {
	name  string
	short string
	long  string
}

var validatorCommands = []validatorCommand{
	{
		name:  application.ValidatorStructure,
		short: "Check directory layout and naming against the convention table",
		long:  "Walk the source root and verify every directory role has the index, primary file, naming case and tests its convention rule requires.",
	},
	{
		name:  application.ValidatorImports,
		short: "Check that internal imports use the project alias",
		long:  "Classify every import target and report relative paths that leave the directory and internal imports that skip the alias.",
	},
	{
		name:  application.ValidatorCoverage,
		short: "Run the coverage command and enforce per-file thresholds",
		long:  "Run the configured coverage command, read the per-file report and require every source file to meet the threshold on all four metrics.",
	},
	{
		name:  application.ValidatorBypass,
		short: "Detect attempts to skip or disable the validation pipeline",
		long:  "Scan the pre-commit hook, validator scripts, command shortcuts, recent commit subjects and the environment for bypasses.",
	},
	{
		name:  application.ValidatorHygiene,
		short: "Check lint suppressions, console calls and file length",
		long:  "Report lint suppression comments, stray console calls, components in .ts files and files over the line limit.",
	},
	{
		name:  application.ValidatorToolchain,
		short: "Run the lint and type-check commands",
		long:  "Run the configured lint and type-check commands and fail when either exits non-zero.",
	},
}

// outputFlags are shared by every command that produces reports.
type outputFlags struct {
	path      string
	jsonOut   bool
	sarifFile string
}

func (f *outputFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "path", ".", "Project root")
	cmd.Flags().BoolVar(&f.jsonOut, "json", false, "Output the report as JSON")
	cmd.Flags().StringVar(&f.sarifFile, "sarif", "", "Also write a SARIF log to this file")
}

// projectPath prefers a positional argument over --path.
func (f *outputFlags) projectPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return f.path
}

func newValidatorCmd(v validatorCommand) *cobra.Command {
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   v.name + " [path]",
		Short: v.short,
		Long:  v.long,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flags.projectPath(args)
			svc := newServices(cmd, path)

			validator, err := svc.Suite.Get(v.name)
			if err != nil {
				return err
			}
			report, err := validator.Validate(cmd.Context(), path)
			if err != nil {
				return err
			}

			if err := writeOutput(cmd.OutOrStdout(), flags, report, []*domain.Report{report}); err != nil {
				return err
			}
			return report.FailedError()
		},
	}
	flags.bind(cmd)

	return cmd
}

func newAllCmd() *cobra.Command {
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   "all [path]",
		Short: "Run every validator",
		Long:  "Run every validator in order. A validator that cannot run does not stop the others.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flags.projectPath(args)
			svc := newServices(cmd, path)

			reports, runErr := svc.Suite.Run(cmd.Context(), path)
			if err := writeOutput(cmd.OutOrStdout(), flags, reports, reports); err != nil {
				return err
			}
			return suiteError(reports, runErr)
		},
	}
	flags.bind(cmd)

	return cmd
}

// writeOutput renders reports as JSON (v as given) or as the terminal view,
// then writes the optional SARIF log.
func writeOutput(w io.Writer, flags outputFlags, v any, reports []*domain.Report) error {
	if flags.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
	} else if len(reports) == 1 {
		fmt.Fprintln(w, tui.RenderReport(reports[0]))
	} else {
		fmt.Fprintln(w, tui.RenderSuite(reports))
	}

	if flags.sarifFile != "" {
		if err := writeSARIF(flags.sarifFile, reports); err != nil {
			return err
		}
	}
	return nil
}

func writeSARIF(file string, reports []*domain.Report) error {
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("creating sarif file: %w", err)
	}
	if err := sarif.Write(f, reports...); err != nil {
		f.Close()
		return fmt.Errorf("writing sarif: %w", err)
	}
	return f.Close()
}

// suiteError joins the validators that could not run with those that failed.
func suiteError(reports []*domain.Report, runErr error) error {
	errs := []error{runErr}
	for _, r := range reports {
		errs = append(errs, r.FailedError())
	}
	return errors.Join(errs...)
}
