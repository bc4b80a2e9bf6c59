package ports

import (
	"context"

	"pkg-provenance/internal/types"
)

// InstalledListPort lists packages apt reports as installed from a local
// archive.
type InstalledListPort interface {
	LocalInstalls(ctx context.Context) ([]types.LocalInstall, error)
}
