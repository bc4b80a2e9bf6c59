package ports

import "context"

// PolicyReportPort obtains the apt-cache policy report for one package.
// Implementations return an error instead of empty or partial text.
type PolicyReportPort interface {
	Report(ctx context.Context, pkg string) (string, error)
}

// ReportSourcePort reads a previously captured policy report.
type ReportSourcePort interface {
	ReadReport(path string) (string, error)
}
