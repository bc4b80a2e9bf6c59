package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pkg-provenance/internal/types"
)

// Classify classifies a saved policy report without running apt.
func (s Service) Classify(ctx context.Context, req ClassifyRequest) (ClassifyResult, error) {
	if s.ReportSource == nil {
		return ClassifyResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("classify requires a report source")
	}
	report, err := s.ReportSource.ReadReport(req.ReportPath)
	if err != nil {
		return ClassifyResult{}, err
	}
	outcome := s.evaluate(ctx, "", report)
	result := ClassifyResult{Outcome: outcome}
	if req.Explain {
		parsed, err := s.Parser.Parse(report)
		if err != nil {
			return ClassifyResult{}, err
		}
		result.Report = &parsed
	}
	return result, nil
}

// ClassifyText classifies report text already held in memory. An empty
// pkg takes the name from the report header.
func (s Service) ClassifyText(ctx context.Context, pkg string, report string) types.PackageOutcome {
	return s.evaluate(ctx, pkg, report)
}
