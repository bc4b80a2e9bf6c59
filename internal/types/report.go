package types

// Classification is the provenance verdict for one policy report.
type Classification struct {
	Provenance       Provenance `json:"provenance" yaml:"provenance"`
	Package          string     `json:"package,omitempty" yaml:"package,omitempty"`
	InstalledVersion string     `json:"installed,omitempty" yaml:"installed,omitempty"`
	CandidateVersion string     `json:"candidate,omitempty" yaml:"candidate,omitempty"`
	Origin           string     `json:"origin,omitempty" yaml:"origin,omitempty"`
	Reason           string     `json:"reason" yaml:"reason"`
}

// PolicyReport is the structural view of an apt-cache policy report.
type PolicyReport struct {
	Package         string              `json:"package,omitempty" yaml:"package,omitempty"`
	Installed       string              `json:"installed,omitempty" yaml:"installed,omitempty"`
	Candidate       string              `json:"candidate,omitempty" yaml:"candidate,omitempty"`
	HasVersionTable bool                `json:"has_version_table" yaml:"has_version_table"`
	Entries         []VersionTableEntry `json:"entries,omitempty" yaml:"entries,omitempty"`
}

type VersionTableEntry struct {
	Version  string       `json:"version" yaml:"version"`
	Priority int          `json:"priority" yaml:"priority"`
	Active   bool         `json:"active" yaml:"active"`
	Sources  []SourceLine `json:"sources,omitempty" yaml:"sources,omitempty"`
}

type SourceLine struct {
	Priority   int    `json:"priority" yaml:"priority"`
	Origin     string `json:"origin" yaml:"origin"`
	Repository bool   `json:"repository" yaml:"repository"`
}

// ActiveEntry returns the entry carrying the installed marker, if any.
func (r PolicyReport) ActiveEntry() (VersionTableEntry, bool) {
	for _, entry := range r.Entries {
		if entry.Active {
			return entry, true
		}
	}
	return VersionTableEntry{}, false
}
