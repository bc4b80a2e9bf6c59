package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"pkg-provenance/internal/shared"
	"pkg-provenance/internal/types"
)

// Scan checks many packages with bounded parallelism. A package whose
// report cannot be obtained becomes an outcome row with Error set;
// only context cancellation aborts the scan.
func (s Service) Scan(ctx context.Context, req ScanRequest) (ScanResult, error) {
	names := append([]string(nil), req.Packages...)
	if req.LocalCandidates {
		if s.Installed == nil {
			return ScanResult{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("scan requires an installed list provider")
		}
		installs, err := s.Installed.LocalInstalls(ctx)
		if err != nil {
			return ScanResult{}, err
		}
		for _, install := range installs {
			names = append(names, install.Package)
		}
		log.Debug().Int("candidates", len(installs)).Msg("local install candidates listed")
	}
	names = shared.UniqueSorted(names)
	if len(names) == 0 {
		if req.LocalCandidates {
			return ScanResult{Outcomes: []types.PackageOutcome{}}, nil
		}
		return ScanResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no packages to scan")
	}
	if s.Reports == nil {
		return ScanResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("scan requires a policy report provider")
	}

	workers := req.Workers
	if workers <= 0 {
		workers = s.Workers
	}
	if workers <= 0 {
		workers = defaultWorkers
	}

	outcomes := make([]types.PackageOutcome, len(names))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, name := range names {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			report, err := s.Reports.Report(groupCtx, name)
			if err != nil {
				if ctxErr := groupCtx.Err(); ctxErr != nil {
					return ctxErr
				}
				log.Warn().
					Str("package", name).
					Err(err).
					Msg("policy report unavailable")
				outcomes[i] = types.PackageOutcome{Package: name, Error: err.Error()}
				return nil
			}
			outcomes[i] = s.evaluate(groupCtx, name, report)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return ScanResult{}, errbuilder.New().
			WithCode(errbuilder.CodeCanceled).
			WithMsg("scan aborted").
			WithCause(err)
	}
	return ScanResult{Outcomes: outcomes}, nil
}
