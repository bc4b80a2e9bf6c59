package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pkg-provenance/internal/app"
	"pkg-provenance/internal/types"
)

type outputOptions struct {
	Format string
	Output string
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Format, "format", "text", "Output format (text, yaml, json)")
	cmd.Flags().StringVar(&o.Output, "output", "", "Output file (default stdout)")
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
}

func (o outputOptions) request(cmd *cobra.Command, outcomes []types.PackageOutcome) app.WriteOutcomesRequest {
	return app.WriteOutcomesRequest{
		Path:     resolveString(cmd, o.Output, "output", "output"),
		Format:   types.OutputFormat(strings.ToLower(resolveString(cmd, o.Format, "format", "format"))),
		Outcomes: outcomes,
	}
}

type checkOptions struct {
	outputOptions
	Strict bool
}

func newCheckCommand() *cobra.Command {
	opts := checkOptions{}
	cmd := &cobra.Command{
		Use:   "check <package>...",
		Short: "Classify installed packages using apt-cache policy",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), cmd, args, opts)
		},
	}
	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail when a report cannot be interpreted")
	_ = viper.BindPFlag("strict", cmd.Flags().Lookup("strict"))
	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, packages []string, opts checkOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	service := newAppService()
	outcomes := make([]types.PackageOutcome, 0, len(packages))
	for _, pkg := range packages {
		result, err := service.Check(ctx, app.CheckRequest{Package: pkg})
		if err != nil {
			return err
		}
		outcomes = append(outcomes, result.Outcome)
	}
	if err := service.WriteOutcomes(opts.request(cmd, outcomes)); err != nil {
		return err
	}
	if resolveBool(cmd, opts.Strict, "strict", "strict") {
		return strictFailure(outcomes)
	}
	return nil
}

// strictFailure reports packages whose provenance could not be determined.
func strictFailure(outcomes []types.PackageOutcome) error {
	var malformed []string
	for _, outcome := range outcomes {
		if outcome.Classification.Provenance == types.ProvenanceMalformedReport {
			malformed = append(malformed, outcome.Package)
		}
	}
	if len(malformed) == 0 {
		return nil
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("malformed policy report: %s", strings.Join(malformed, ", ")))
}
