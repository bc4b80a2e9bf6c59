package ports

import (
	"context"

	"pkg-provenance/internal/types"
)

// DebInspectPort reads control information from .deb archives on disk.
type DebInspectPort interface {
	Inspect(ctx context.Context, path string) (types.DebControl, error)
	ScanDir(ctx context.Context, dir string) ([]types.DebControl, error)
}
