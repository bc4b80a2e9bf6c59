package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pkg-provenance/internal/app"
)

type scanOptions struct {
	outputOptions
	Packages        []string
	LocalCandidates bool
	Workers         int
}

func newScanCommand() *cobra.Command {
	opts := scanOptions{}
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Classify many packages concurrently",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd.Context(), cmd, args, opts)
		},
	}
	opts.register(cmd)
	cmd.Flags().StringSliceVar(&opts.Packages, "packages", nil, "Packages to scan")
	cmd.Flags().BoolVar(&opts.LocalCandidates, "local-candidates", false, "Also scan packages apt lists as installed locally")
	cmd.Flags().IntVar(&opts.Workers, "workers", 4, "Concurrent apt-cache invocations")
	_ = viper.BindPFlag("packages", cmd.Flags().Lookup("packages"))
	_ = viper.BindPFlag("local_candidates", cmd.Flags().Lookup("local-candidates"))
	_ = viper.BindPFlag("workers", cmd.Flags().Lookup("workers"))
	return cmd
}

func runScan(ctx context.Context, cmd *cobra.Command, args []string, opts scanOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	service := newAppService()
	packages := append(resolveStrings(cmd, opts.Packages, "packages", "packages"), args...)
	result, err := service.Scan(ctx, app.ScanRequest{
		Packages:        packages,
		LocalCandidates: resolveBool(cmd, opts.LocalCandidates, "local_candidates", "local-candidates"),
		Workers:         resolveInt(cmd, opts.Workers, "workers", "workers"),
	})
	if err != nil {
		return err
	}
	event := log.Info().Int("packages", len(result.Outcomes))
	for provenance, count := range result.Counts() {
		event = event.Int(provenance, count)
	}
	event.Msg("scan complete")
	return service.WriteOutcomes(opts.request(cmd, result.Outcomes))
}
