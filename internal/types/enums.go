package types

type Provenance string

const (
	ProvenanceNotInstalled    Provenance = "not-installed"
	ProvenanceLocal           Provenance = "local"
	ProvenanceRepository      Provenance = "repository"
	ProvenanceMalformedReport Provenance = "malformed-report"
)

type AdviceAction string

const (
	AdviceUpgrade     AdviceAction = "upgrade"
	AdviceUpToDate    AdviceAction = "up-to-date"
	AdviceHold        AdviceAction = "hold"
	AdviceKeep        AdviceAction = "keep"
	AdviceSkip        AdviceAction = "skip"
	AdviceInvestigate AdviceAction = "investigate"
)

type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatJSON OutputFormat = "json"
)

// LocalOrigin marks records that describe an artifact on disk rather than
// a repository package.
const LocalOrigin = "local"
