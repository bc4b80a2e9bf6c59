package policies

import (
	"fmt"
	"strings"

	debversion "github.com/knqyf263/go-deb-version"

	"pkg-provenance/internal/types"
)

// UpgradePolicy turns a provenance classification into an upgrade
// decision. Packages matching a pinned pattern are never advised to
// upgrade. Patterns are exact names, "prefix*" or "*".
type UpgradePolicy struct {
	Pinned   []string
	exact    map[string]struct{}
	prefixes []string
	wildcard bool
}

func NewUpgradePolicy(pinned []string) UpgradePolicy {
	policy := UpgradePolicy{Pinned: pinned}
	policy.compile()
	return policy
}

func (p UpgradePolicy) Advise(c types.Classification) types.Advice {
	switch c.Provenance {
	case types.ProvenanceNotInstalled:
		return types.Advice{Action: types.AdviceSkip, Reason: "package is not installed"}
	case types.ProvenanceMalformedReport:
		return types.Advice{Action: types.AdviceInvestigate, Reason: c.Reason}
	case types.ProvenanceRepository:
		return p.adviseRepository(c)
	case types.ProvenanceLocal:
		return adviseLocal(c)
	default:
		return types.Advice{Action: types.AdviceInvestigate, Reason: fmt.Sprintf("unknown provenance %q", c.Provenance)}
	}
}

// IsPinned reports whether name matches one of the pinned patterns.
func (p UpgradePolicy) IsPinned(name string) bool {
	if p.exact == nil {
		p.compile()
	}
	if p.wildcard {
		return true
	}
	if _, ok := p.exact[name]; ok {
		return true
	}
	for _, prefix := range p.prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func (p UpgradePolicy) adviseRepository(c types.Classification) types.Advice {
	newer, err := candidateNewer(c.InstalledVersion, c.CandidateVersion)
	if err != nil {
		return types.Advice{Action: types.AdviceUpToDate, Reason: err.Error()}
	}
	if !newer {
		return types.Advice{Action: types.AdviceUpToDate, Reason: "installed version is the newest candidate"}
	}
	if c.Package != "" && p.IsPinned(c.Package) {
		return types.Advice{
			Action: types.AdviceHold,
			Reason: fmt.Sprintf("candidate %s available but package is pinned", c.CandidateVersion),
		}
	}
	return types.Advice{
		Action: types.AdviceUpgrade,
		Reason: fmt.Sprintf("candidate %s is newer than %s", c.CandidateVersion, c.InstalledVersion),
	}
}

func adviseLocal(c types.Classification) types.Advice {
	newer, err := candidateNewer(c.InstalledVersion, c.CandidateVersion)
	if err != nil {
		if c.CandidateVersion != "" && c.CandidateVersion != c.InstalledVersion && c.CandidateVersion != "(none)" {
			return types.Advice{
				Action: types.AdviceHold,
				Reason: fmt.Sprintf("candidate %s differs from manually installed %s", c.CandidateVersion, c.InstalledVersion),
			}
		}
		return types.Advice{Action: types.AdviceKeep, Reason: "manually installed package"}
	}
	if newer {
		return types.Advice{
			Action: types.AdviceHold,
			Reason: fmt.Sprintf("upgrading to %s would replace the manually installed %s", c.CandidateVersion, c.InstalledVersion),
		}
	}
	return types.Advice{Action: types.AdviceKeep, Reason: "manually installed package"}
}

// candidateNewer compares versions with Debian ordering.
func candidateNewer(installed string, candidate string) (bool, error) {
	if candidate == "" || candidate == "(none)" {
		return false, fmt.Errorf("no candidate version")
	}
	installedVersion, err := debversion.NewVersion(installed)
	if err != nil {
		return false, fmt.Errorf("invalid installed version %q: %w", installed, err)
	}
	candidateVersion, err := debversion.NewVersion(candidate)
	if err != nil {
		return false, fmt.Errorf("invalid candidate version %q: %w", candidate, err)
	}
	return candidateVersion.GreaterThan(installedVersion), nil
}

func (p *UpgradePolicy) compile() {
	p.exact = map[string]struct{}{}
	p.prefixes = nil
	p.wildcard = false
	for _, pattern := range p.Pinned {
		name, kind := parseNamePattern(pattern)
		switch kind {
		case patternWildcard:
			p.wildcard = true
		case patternExact:
			p.exact[name] = struct{}{}
		case patternPrefix:
			p.prefixes = append(p.prefixes, name)
		}
	}
}

type patternKind int

const (
	patternExact patternKind = iota
	patternPrefix
	patternWildcard
	patternInvalid
)

func parseNamePattern(value string) (string, patternKind) {
	pattern := strings.TrimSpace(value)
	if pattern == "" {
		return "", patternInvalid
	}
	if pattern == "*" {
		return "", patternWildcard
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.TrimSuffix(pattern, "*"), patternPrefix
	}
	return pattern, patternExact
}
