package ports

import "pkg-provenance/internal/types"

// ResultWriterPort renders check and scan outcomes. An empty path writes
// to the adapter's default stream.
type ResultWriterPort interface {
	WriteOutcomes(path string, format types.OutputFormat, outcomes []types.PackageOutcome) error
}
