package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/valderan/docker-simple-manager/internal/doctor"
	"github.com/valderan/docker-simple-manager/internal/errors"
	"github.com/valderan/docker-simple-manager/internal/paths"
)

var (
	doctorJSON bool
	doctorAll  bool
	doctorFix  bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorAll, "all", false, "show passed checks too")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "tighten file and directory permissions")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the settings document",
	Long: `Run diagnostic checks on the settings document and its directory.

Checks that the file is readable and private, that it parses and every value
satisfies its rule, whether a pre-migration backup exists and still matches
its hash, and whether a document is left in the legacy ~/.dsmanager location.
Nothing is loaded or migrated.

Exit codes:
  0 - No errors or warnings
  1 - Warnings present, no errors
  2 - Errors present`,
	Example: `  dsmanager doctor
  dsmanager doctor --fix
  dsmanager doctor --json

  See Also: dsmanager validate, dsmanager backup info`,
	Args: cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if doctorJSON && doctorAll {
			return errors.NewUserError(errors.New("flags --json and --all are mutually exclusive"), "")
		}
		return nil
	},
	RunE: runDoctor,
}

func newDoctorRunner() *doctor.Runner {
	reg := holder.Get(settingsPath())
	path := reg.Path()

	runner := doctor.NewRunner()
	runner.AddCheck(doctor.NewFileCheck(appFs, path))
	runner.AddCheck(doctor.NewDocumentCheck(reg, path))
	runner.AddCheck(doctor.NewBackupCheck(reg.Backups(), path))
	runner.AddCheck(doctor.NewLegacyLocationCheck(appFs, path, paths.LegacySettingsFile()))
	return runner
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	runner := newDoctorRunner()
	report := runner.Run()
	w := cmd.OutOrStdout()

	if doctorFix {
		fixes := runner.Fix()
		if !doctorJSON {
			writeFixes(cmd, fixes)
		}
		if len(fixes) > 0 {
			report = runner.Run()
		}
	}

	var err error
	switch {
	case doctorJSON:
		err = writeJSON(w, report)
	case !quiet:
		writeDoctorText(w, report, doctorAll)
	}
	if err != nil {
		return err
	}

	switch {
	case report.HasErrors():
		return errors.NewExitError(errors.Newf("doctor found %d error(s)", report.Summary.Errors), errors.ExitSystem)
	case report.HasWarnings():
		return errors.NewExitError(errors.Newf("doctor found %d warning(s)", report.Summary.Warnings), errors.ExitUser)
	default:
		return nil
	}
}

func writeFixes(cmd *cobra.Command, fixes []doctor.FixResult) {
	for _, f := range fixes {
		if f.Fixed {
			notef(cmd, "✓ fixed %s: %s\n", f.Path, f.Description)
		} else {
			notef(cmd, "✗ could not fix %s: %s\n", f.Path, f.Description)
		}
	}
}

func writeDoctorText(w io.Writer, report *doctor.Report, showAll bool) {
	shown := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !showAll && !problem && result.Status != doctor.SeverityInfo {
			continue
		}

		shown = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)
		if problems, ok := result.Details["problems"].([]string); ok {
			for _, p := range problems {
				fmt.Fprintf(w, "    %s\n", p)
			}
		}
		if issues, ok := result.Details["issues"].([]string); ok {
			for _, i := range issues {
				fmt.Fprintf(w, "    %s\n", i)
			}
		}
		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if shown {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}
