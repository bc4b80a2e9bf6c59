package app

import "pkg-provenance/internal/types"

type CheckRequest struct {
	Package string
}

type CheckResult struct {
	Outcome types.PackageOutcome
}

type ScanRequest struct {
	Packages        []string
	LocalCandidates bool
	Workers         int
}

type ScanResult struct {
	Outcomes []types.PackageOutcome
}

// Counts tallies outcomes by provenance; failed lookups count as "error".
func (r ScanResult) Counts() map[string]int {
	counts := map[string]int{}
	for _, outcome := range r.Outcomes {
		if !outcome.Determined() {
			counts["error"]++
			continue
		}
		counts[string(outcome.Classification.Provenance)]++
	}
	return counts
}

type ClassifyRequest struct {
	ReportPath string
	Explain    bool
}

type ClassifyResult struct {
	Outcome types.PackageOutcome
	Report  *types.PolicyReport
}

type InspectDebRequest struct {
	Path string
}

type InspectDebResult struct {
	Controls []types.DebControl
}

type ListLocalResult struct {
	Installs []types.LocalInstall
}

type WriteOutcomesRequest struct {
	Path     string
	Format   types.OutputFormat
	Outcomes []types.PackageOutcome
}

type LocalDebsRequest struct {
	Folders []string
}

// LocalDebMatch pairs a package apt lists as [installed,local] with the
// .deb found for it on disk, if any.
type LocalDebMatch struct {
	Install types.LocalInstall `json:"install" yaml:"install"`
	Deb     *types.DebControl  `json:"deb,omitempty" yaml:"deb,omitempty"`
}

type LocalDebsResult struct {
	Matches []LocalDebMatch
	// Unknown holds .debs whose package apt-cache has no record of.
	Unknown []types.DebControl
	Index   map[string]types.DebControl
}

// Deb returns the indexed .deb for pkg.
func (r LocalDebsResult) Deb(pkg string) (types.DebControl, bool) {
	control, ok := r.Index[pkg]
	return control, ok
}
