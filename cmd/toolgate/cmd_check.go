package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/tkoskela/toolgate/pkg/check"
	"github.com/tkoskela/toolgate/pkg/engine"
)

var (
	checkAutoFix    bool
	checkFixEnvOnly bool
	checkQuiet      bool
	checkJSON       bool
	checkYes        bool
	checkMinDisk    string
)

var checkCmd = &cobra.Command{
	Use:   "check [requirement...]",
	Short: "Probe the build prerequisites and report what is missing",
	Long: `Check probes every requirement in the catalog: the tool has to resolve on
PATH or in its usual install directory and answer a version probe. Naming
requirements restricts the run to those entries.

Examples:
  toolgate check                    # probe everything
  toolgate check Git pnpm           # probe two entries
  toolgate check --autofix          # install what is missing
  toolgate check --fix-env-only     # only write expected environment variables
  toolgate check --json             # machine-readable report`,
	RunE: runCheckCmd,
}

func init() {
	checkCmd.Flags().BoolVar(&checkAutoFix, "autofix", false,
		"install absent required tools with the first package manager that covers them")
	checkCmd.Flags().BoolVar(&checkFixEnvOnly, "fix-env-only", false,
		"write expected environment variables without installing anything")
	checkCmd.Flags().BoolVar(&checkQuiet, "quiet", false,
		"only report problems")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false,
		"emit the report as JSON")
	checkCmd.Flags().BoolVar(&checkYes, "yes", false,
		"do not ask before running installers")
	checkCmd.Flags().StringVar(&checkMinDisk, "min-disk", "",
		"minimum free disk space (e.g., 10G, 500M)")
	checkCmd.MarkFlagsMutuallyExclusive("autofix", "fix-env-only")
	rootCmd.AddCommand(checkCmd)
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	// Flags beat config beats defaults.
	quiet := checkQuiet
	if !cmd.Flags().Changed("quiet") && cfg != nil && cfg.Quiet != nil {
		quiet = *cfg.Quiet
	}
	autoFix := checkAutoFix
	if !cmd.Flags().Changed("autofix") && cfg != nil && cfg.AutoFix != nil && !checkFixEnvOnly {
		autoFix = *cfg.AutoFix
	}
	minDisk := checkMinDisk
	if !cmd.Flags().Changed("min-disk") && cfg != nil && cfg.MinDisk != "" {
		minDisk = cfg.MinDisk
	}

	reqs, err := buildCatalog(minDisk, args)
	if err != nil {
		return err
	}

	opts := engine.Options{AutoFix: autoFix, SetEnvOnly: checkFixEnvOnly}
	return runCheck(cmd, newEngine(reqs, checkYes), opts, quiet, checkJSON)
}

// reportJSON is the --json shape of a run.
type reportJSON struct {
	Status       string            `json:"status"`
	Checks       []checkItemJSON   `json:"checks"`
	Remediations []remediationJSON `json:"remediations,omitempty"`
}

type checkItemJSON struct {
	Name     string   `json:"name"`
	Status   string   `json:"status"`
	Required bool     `json:"required"`
	Details  []string `json:"details,omitempty"`
	Error    string   `json:"error,omitempty"`
}

type remediationJSON struct {
	Manager  string   `json:"manager"`
	Commands []string `json:"commands"`
}

func encodeReport(w io.Writer, rep engine.Report) error {
	out := reportJSON{
		Status: "ok",
		Checks: make([]checkItemJSON, len(rep.Results)),
	}
	if !rep.Success {
		out.Status = "missing"
	}

	for i, r := range rep.Results {
		item := checkItemJSON{
			Name:     r.Name,
			Status:   statusToString(r),
			Required: !r.Optional,
			Details:  r.Details,
		}
		if r.Err != nil {
			item.Error = r.Err.Error()
		}
		out.Checks[i] = item
	}
	for _, rem := range rep.Remediations {
		out.Remediations = append(out.Remediations, remediationJSON{
			Manager:  rem.Manager,
			Commands: rem.Commands,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func statusToString(r check.Result) string {
	switch {
	case r.Present():
		return "present"
	case r.Optional:
		return "warn"
	default:
		return "missing"
	}
}
