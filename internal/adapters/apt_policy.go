package adapters

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pkg-provenance/internal/ports"
	"pkg-provenance/internal/shared"
)

const (
	defaultAptCacheBinary = "apt-cache"
	defaultPolicyTimeout  = 10 * time.Second
)

// AptPolicyAdapter obtains policy reports by running apt-cache policy.
type AptPolicyAdapter struct {
	Binary  string
	Timeout time.Duration
	Run     CommandRunner
}

func NewAptPolicyAdapter(binary string, timeout time.Duration) AptPolicyAdapter {
	if strings.TrimSpace(binary) == "" {
		binary = defaultAptCacheBinary
	}
	if timeout <= 0 {
		timeout = defaultPolicyTimeout
	}
	return AptPolicyAdapter{Binary: binary, Timeout: timeout, Run: execRunner}
}

func (a AptPolicyAdapter) Report(ctx context.Context, pkg string) (string, error) {
	if !shared.ValidPackageName(pkg) {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid package name %q", pkg))
	}
	binary := a.Binary
	if strings.TrimSpace(binary) == "" {
		binary = defaultAptCacheBinary
	}
	run := a.Run
	if run == nil {
		run = execRunner
	}
	timeout := a.Timeout
	if timeout <= 0 {
		timeout = defaultPolicyTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stdout, stderr, err := run(ctx, localeEnv, binary, "policy", pkg)
	if err != nil {
		return "", commandFailure(ctx, "apt-cache policy", stderr, err)
	}
	report := string(stdout)
	if strings.TrimSpace(report) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg(fmt.Sprintf("empty policy report for %s", pkg)).
			WithCause(shared.CommandError(stderr, fmt.Errorf("no output")))
	}
	return report, nil
}

var _ ports.PolicyReportPort = AptPolicyAdapter{}
