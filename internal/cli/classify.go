package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pkg-provenance/internal/app"
	"pkg-provenance/internal/types"
)

type classifyOptions struct {
	outputOptions
	Report  string
	Explain bool
}

func newClassifyCommand() *cobra.Command {
	opts := classifyOptions{}
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a saved apt-cache policy report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClassify(cmd.Context(), cmd, opts)
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVar(&opts.Report, "report", "-", "Report file, or - for stdin")
	cmd.Flags().BoolVar(&opts.Explain, "explain", false, "Print the parsed version table")
	_ = viper.BindPFlag("report", cmd.Flags().Lookup("report"))
	_ = viper.BindPFlag("explain", cmd.Flags().Lookup("explain"))
	return cmd
}

func runClassify(ctx context.Context, cmd *cobra.Command, opts classifyOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	service := newAppService()
	reportPath := resolveString(cmd, opts.Report, "report", "report")
	if reportPath == "" {
		reportPath = "-"
	}
	result, err := service.Classify(ctx, app.ClassifyRequest{
		ReportPath: reportPath,
		Explain:    resolveBool(cmd, opts.Explain, "explain", "explain"),
	})
	if err != nil {
		return err
	}
	req := opts.request(cmd, []types.PackageOutcome{result.Outcome})
	if err := service.WriteOutcomes(req); err != nil {
		return err
	}
	if result.Report != nil {
		printReport(explainWriter(req.Format), *result.Report)
	}
	return nil
}

// explainWriter keeps structured stdout output parseable by sending the
// explain view to stderr.
func explainWriter(format types.OutputFormat) io.Writer {
	switch format {
	case types.OutputFormatText, "":
		return os.Stdout
	default:
		return os.Stderr
	}
}

func printReport(w io.Writer, report types.PolicyReport) {
	fmt.Fprintf(w, "package: %s\n", report.Package)
	fmt.Fprintf(w, "installed: %s\n", report.Installed)
	fmt.Fprintf(w, "candidate: %s\n", report.Candidate)
	if !report.HasVersionTable {
		fmt.Fprintln(w, "version table: missing")
		return
	}
	fmt.Fprintf(w, "version table entries: %d\n", len(report.Entries))
	for _, entry := range report.Entries {
		marker := " "
		if entry.Active {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s (priority %d)\n", marker, entry.Version, entry.Priority)
		for _, source := range entry.Sources {
			kind := "local"
			if source.Repository {
				kind = "repository"
			}
			fmt.Fprintf(w, "    %d %s [%s]\n", source.Priority, source.Origin, kind)
		}
	}
}
