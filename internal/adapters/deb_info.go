package adapters

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pkg-provenance/internal/core"
	"pkg-provenance/internal/ports"
	"pkg-provenance/internal/types"
)

const (
	defaultDpkgDebBinary = "dpkg-deb"
	defaultDebTimeout    = 30 * time.Second
)

// DebInfoAdapter reads .deb control fields through dpkg-deb --info.
type DebInfoAdapter struct {
	Binary  string
	Timeout time.Duration
	Run     CommandRunner
}

func NewDebInfoAdapter(binary string, timeout time.Duration) DebInfoAdapter {
	if strings.TrimSpace(binary) == "" {
		binary = defaultDpkgDebBinary
	}
	if timeout <= 0 {
		timeout = defaultDebTimeout
	}
	return DebInfoAdapter{Binary: binary, Timeout: timeout, Run: execRunner}
}

func (a DebInfoAdapter) Inspect(ctx context.Context, path string) (types.DebControl, error) {
	absPath, err := checkReadableFile(path)
	if err != nil {
		return types.DebControl{}, err
	}
	binary := a.Binary
	if strings.TrimSpace(binary) == "" {
		binary = defaultDpkgDebBinary
	}
	run := a.Run
	if run == nil {
		run = execRunner
	}
	timeout := a.Timeout
	if timeout <= 0 {
		timeout = defaultDebTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stdout, stderr, err := run(ctx, localeEnv, binary, "--info", absPath)
	if err != nil {
		return types.DebControl{}, commandFailure(ctx, "dpkg-deb --info", stderr, err)
	}
	control, err := core.ParseControl(string(stdout))
	if err != nil {
		return types.DebControl{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("no control data in %s", absPath)).
			WithCause(err)
	}
	control.Filename = absPath
	return control, nil
}

// ScanDir inspects every .deb directly inside dir. Files that cannot be
// inspected are logged and skipped.
func (a DebInfoAdapter) ScanDir(ctx context.Context, dir string) ([]types.DebControl, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("deb directory not found").
			WithCause(err)
	}
	var controls []types.DebControl
	found := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".deb") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found++
		path := filepath.Join(dir, entry.Name())
		control, err := a.Inspect(ctx, path)
		if err != nil {
			log.Warn().
				Str("path", path).
				Err(err).
				Msg("skipping unreadable deb")
			continue
		}
		controls = append(controls, control)
	}
	if found == 0 {
		log.Warn().Str("dir", dir).Msg("no .deb files found in directory")
	}
	return controls, nil
}

func checkReadableFile(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("deb path is empty")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid deb path").
			WithCause(err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("deb file not found: %s", path)).
			WithCause(err)
	}
	if info.IsDir() {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s is a directory", path))
	}
	file, err := os.Open(absPath)
	if err != nil {
		code := errbuilder.CodeNotFound
		if errors.Is(err, fs.ErrPermission) {
			code = errbuilder.CodePermissionDenied
		}
		return "", errbuilder.New().
			WithCode(code).
			WithMsg(fmt.Sprintf("cannot read deb file: %s", path)).
			WithCause(err)
	}
	_ = file.Close()
	return absPath, nil
}

var _ ports.DebInspectPort = DebInfoAdapter{}
