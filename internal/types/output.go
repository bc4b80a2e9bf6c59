package types

type Advice struct {
	Action AdviceAction `json:"action" yaml:"action"`
	Reason string       `json:"reason" yaml:"reason"`
}

// PackageOutcome is one row of a check or scan. Error is set when the
// policy report could not be obtained; Classification is then empty.
type PackageOutcome struct {
	Package        string         `json:"package" yaml:"package"`
	Classification Classification `json:"classification,omitzero" yaml:"classification,omitempty"`
	Advice         Advice         `json:"advice,omitzero" yaml:"advice,omitempty"`
	Error          string         `json:"error,omitempty" yaml:"error,omitempty"`
}

// Determined reports whether a classification was produced.
func (o PackageOutcome) Determined() bool {
	return o.Error == "" && o.Classification.Provenance != ""
}
