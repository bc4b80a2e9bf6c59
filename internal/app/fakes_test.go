package app

import (
	"context"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pkg-provenance/internal/core"
	"pkg-provenance/internal/policies"
	"pkg-provenance/internal/types"
)

const repoReport = `libfoo:
  Installed: 1.0-1
  Candidate: 1.1-1
  Version table:
     1.1-1 500
        500 http://archive.ubuntu.com/ubuntu noble/main amd64 Packages
 *** 1.0-1 100
        100 /var/lib/dpkg/status
        500 http://archive.ubuntu.com/ubuntu noble/main amd64 Packages
`

const localReport = `libbar:
  Installed: 2.0-1
  Candidate: 2.0-1
  Version table:
 *** 2.0-1 100
        100 /var/lib/dpkg/status
`

const notInstalledReport = `libbaz:
  Installed: (none)
  Candidate: 3.0-1
  Version table:
     3.0-1 500
        500 http://archive.ubuntu.com/ubuntu noble/main amd64 Packages
`

type fakeReports struct {
	mu      sync.Mutex
	reports map[string]string
	fail    map[string]error
	calls   []string
	block   bool
}

func (f *fakeReports) Report(ctx context.Context, pkg string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, pkg)
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if err, ok := f.fail[pkg]; ok {
		return "", err
	}
	report, ok := f.reports[pkg]
	if !ok {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("apt-cache failed")
	}
	return report, nil
}

type fakeInstalled struct {
	installs []types.LocalInstall
	err      error
}

func (f fakeInstalled) LocalInstalls(context.Context) ([]types.LocalInstall, error) {
	return f.installs, f.err
}

type fakeSource struct {
	reports map[string]string
}

func (f fakeSource) ReadReport(path string) (string, error) {
	report, ok := f.reports[path]
	if !ok {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("report not found")
	}
	return report, nil
}

type fakeDebs struct {
	inspected []string
	scanned   []string
	dirs      map[string][]types.DebControl
}

func (f *fakeDebs) Inspect(_ context.Context, path string) (types.DebControl, error) {
	f.inspected = append(f.inspected, path)
	return types.DebControl{Package: "libfoo", Version: "1.0-1", Filename: path}, nil
}

func (f *fakeDebs) ScanDir(_ context.Context, dir string) ([]types.DebControl, error) {
	f.scanned = append(f.scanned, dir)
	if f.dirs == nil {
		return []types.DebControl{{Package: "a"}, {Package: "b"}}, nil
	}
	controls, ok := f.dirs[dir]
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("deb directory not found")
	}
	return controls, nil
}

type recordedWrite struct {
	path     string
	format   types.OutputFormat
	outcomes []types.PackageOutcome
}

type fakeWriter struct {
	writes []recordedWrite
}

func (f *fakeWriter) WriteOutcomes(path string, format types.OutputFormat, outcomes []types.PackageOutcome) error {
	f.writes = append(f.writes, recordedWrite{path: path, format: format, outcomes: outcomes})
	return nil
}

func testService(reports *fakeReports) Service {
	return Service{
		Reports: reports,
		Parser:  core.NewPolicyReportParser(),
		Policy:  policies.NewUpgradePolicy(nil),
		Workers: 2,
	}
}
