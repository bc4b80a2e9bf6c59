package app

import (
	"context"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pkg-provenance/internal/types"
)

// Check obtains the policy report for one package and classifies it.
// Provider failures are returned unchanged and nothing is classified.
func (s Service) Check(ctx context.Context, req CheckRequest) (CheckResult, error) {
	pkg := strings.TrimSpace(req.Package)
	if pkg == "" {
		return CheckResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package name is required")
	}
	if s.Reports == nil {
		return CheckResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("check requires a policy report provider")
	}
	report, err := s.Reports.Report(ctx, pkg)
	if err != nil {
		log.Warn().
			Str("package", pkg).
			Err(err).
			Msg("policy report unavailable")
		return CheckResult{}, err
	}
	return CheckResult{Outcome: s.evaluate(ctx, pkg, report)}, nil
}

func (s Service) evaluate(ctx context.Context, pkg string, report string) types.PackageOutcome {
	classification := s.Parser.Classify(report)
	assert.NotEmpty(ctx, string(classification.Provenance), "classification must carry a provenance")
	if classification.Package == "" {
		classification.Package = pkg
	}
	if pkg == "" {
		pkg = classification.Package
	}
	advice := s.Policy.Advise(classification)
	log.Debug().
		Str("package", pkg).
		Str("provenance", string(classification.Provenance)).
		Str("installed", classification.InstalledVersion).
		Str("action", string(advice.Action)).
		Msg(classification.Reason)
	return types.PackageOutcome{
		Package:        pkg,
		Classification: classification,
		Advice:         advice,
	}
}
