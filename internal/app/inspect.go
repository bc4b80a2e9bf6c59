package app

import (
	"context"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pkg-provenance/internal/types"
)

// InspectDeb reads control data for one .deb or every .deb in a directory.
func (s Service) InspectDeb(ctx context.Context, req InspectDebRequest) (InspectDebResult, error) {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return InspectDebResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("deb path is required")
	}
	if s.Debs == nil {
		return InspectDebResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("inspect requires a deb inspector")
	}
	info, err := os.Stat(path)
	if err != nil {
		return InspectDebResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("deb path not found").
			WithCause(err)
	}
	if info.IsDir() {
		controls, err := s.Debs.ScanDir(ctx, path)
		if err != nil {
			return InspectDebResult{}, err
		}
		return InspectDebResult{Controls: controls}, nil
	}
	control, err := s.Debs.Inspect(ctx, path)
	if err != nil {
		return InspectDebResult{}, err
	}
	return InspectDebResult{Controls: []types.DebControl{control}}, nil
}

// ListLocal lists packages apt reports as installed from local archives.
func (s Service) ListLocal(ctx context.Context) (ListLocalResult, error) {
	if s.Installed == nil {
		return ListLocalResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("list requires an installed list provider")
	}
	installs, err := s.Installed.LocalInstalls(ctx)
	if err != nil {
		return ListLocalResult{}, err
	}
	return ListLocalResult{Installs: installs}, nil
}

func (s Service) WriteOutcomes(req WriteOutcomesRequest) error {
	if s.Writer == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no result writer configured")
	}
	return s.Writer.WriteOutcomes(req.Path, req.Format, req.Outcomes)
}
