package adapters

import (
	"context"
	"strings"
	"time"

	"pkg-provenance/internal/core"
	"pkg-provenance/internal/ports"
	"pkg-provenance/internal/types"
)

const (
	defaultAptBinary   = "apt"
	defaultListTimeout = 60 * time.Second
)

// AptListAdapter finds locally installed packages with apt list.
type AptListAdapter struct {
	Binary  string
	Timeout time.Duration
	Run     CommandRunner
}

func NewAptListAdapter(binary string, timeout time.Duration) AptListAdapter {
	if strings.TrimSpace(binary) == "" {
		binary = defaultAptBinary
	}
	if timeout <= 0 {
		timeout = defaultListTimeout
	}
	return AptListAdapter{Binary: binary, Timeout: timeout, Run: execRunner}
}

func (a AptListAdapter) LocalInstalls(ctx context.Context) ([]types.LocalInstall, error) {
	binary := a.Binary
	if strings.TrimSpace(binary) == "" {
		binary = defaultAptBinary
	}
	run := a.Run
	if run == nil {
		run = execRunner
	}
	timeout := a.Timeout
	if timeout <= 0 {
		timeout = defaultListTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stdout, stderr, err := run(ctx, localeEnv, binary, "list", "--installed", "-o", "APT::Color::Mode=never")
	if err != nil {
		return nil, commandFailure(ctx, "apt list", stderr, err)
	}
	return core.ParseInstalledList(string(stdout)), nil
}

var _ ports.InstalledListPort = AptListAdapter{}
