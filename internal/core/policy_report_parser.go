package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pkg-provenance/internal/types"
)

const (
	// DefaultMaxReportBytes bounds the size of a report the parser will scan.
	DefaultMaxReportBytes = 1 << 20

	installedLabel    = "Installed:"
	candidateLabel    = "Candidate:"
	versionTableLabel = "Version table:"
	noneSentinel      = "(none)"
	activeMarker      = "***"
	uriSchemeMarker   = "://"

	// fallbackHeaderIndent applies until the first source line of the
	// table has been seen: narrower lines are entry headers.
	fallbackHeaderIndent = 6
)

// PolicyReportParser classifies apt-cache policy reports. A zero
// MaxReportBytes means DefaultMaxReportBytes.
type PolicyReportParser struct {
	MaxReportBytes int
}

func NewPolicyReportParser() PolicyReportParser {
	return PolicyReportParser{MaxReportBytes: DefaultMaxReportBytes}
}

// ClassifyProvenance classifies a report with the default parser.
func ClassifyProvenance(report string) types.Provenance {
	return NewPolicyReportParser().Classify(report).Provenance
}

// Classify determines whether the installed version described by report
// came from a local archive or a repository. Only source lines under the
// active entry whose version equals the installed version are evidence.
func (p PolicyReportParser) Classify(report string) types.Classification {
	if p.tooLarge(report) {
		return types.Classification{
			Provenance: types.ProvenanceMalformedReport,
			Reason:     fmt.Sprintf("report exceeds %d bytes", p.limit()),
		}
	}
	lines := splitLines(report)
	result := types.Classification{
		Package:          packageName(lines),
		InstalledVersion: labelValue(lines, installedLabel),
		CandidateVersion: labelValue(lines, candidateLabel),
	}
	if result.InstalledVersion == "" || result.InstalledVersion == noneSentinel {
		result.Provenance = types.ProvenanceNotInstalled
		result.Reason = "no installed version"
		return result
	}

	start := versionTableStart(lines)
	if start < 0 {
		result.Provenance = types.ProvenanceMalformedReport
		result.Reason = "version table not found"
		return result
	}

	scan := newTableScanner()
	inActive := false
	for _, line := range lines[start:] {
		kind, fields := scan.next(line)
		switch kind {
		case lineHeader:
			if inActive {
				return local(result)
			}
			active, version := headerVersion(fields)
			inActive = active && version == result.InstalledVersion
		case lineSource:
			if !inActive {
				continue
			}
			origin := sourceOrigin(fields)
			if isRepositoryOrigin(origin) {
				result.Provenance = types.ProvenanceRepository
				result.Origin = origin
				result.Reason = "installed version is published by a repository"
				return result
			}
			result.Origin = origin
		}
	}
	if inActive {
		return local(result)
	}
	result.Provenance = types.ProvenanceMalformedReport
	result.Origin = ""
	result.Reason = fmt.Sprintf("installed version %s not found in version table", result.InstalledVersion)
	return result
}

// Parse builds the structural view of a report. Each source line is
// attributed to the nearest preceding entry header.
func (p PolicyReportParser) Parse(report string) (types.PolicyReport, error) {
	if p.tooLarge(report) {
		return types.PolicyReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("report exceeds %d bytes", p.limit()))
	}
	lines := splitLines(report)
	parsed := types.PolicyReport{
		Package:   packageName(lines),
		Installed: labelValue(lines, installedLabel),
		Candidate: labelValue(lines, candidateLabel),
	}
	start := versionTableStart(lines)
	if start < 0 {
		return parsed, nil
	}
	parsed.HasVersionTable = true

	scan := newTableScanner()
	for _, line := range lines[start:] {
		kind, fields := scan.next(line)
		switch kind {
		case lineHeader:
			active, version := headerVersion(fields)
			entry := types.VersionTableEntry{Version: version, Active: active}
			if len(fields) > 0 {
				entry.Priority = atoiOrZero(fields[len(fields)-1])
			}
			parsed.Entries = append(parsed.Entries, entry)
		case lineSource:
			if len(parsed.Entries) == 0 {
				continue
			}
			origin := sourceOrigin(fields)
			current := &parsed.Entries[len(parsed.Entries)-1]
			current.Sources = append(current.Sources, types.SourceLine{
				Priority:   atoiOrZero(fields[0]),
				Origin:     origin,
				Repository: isRepositoryOrigin(origin),
			})
		}
	}
	return parsed, nil
}

func (p PolicyReportParser) limit() int {
	if p.MaxReportBytes <= 0 {
		return DefaultMaxReportBytes
	}
	return p.MaxReportBytes
}

func (p PolicyReportParser) tooLarge(report string) bool {
	return len(report) > p.limit()
}

func local(result types.Classification) types.Classification {
	result.Provenance = types.ProvenanceLocal
	if result.Origin == "" {
		result.Reason = "installed version has no sources"
	} else {
		result.Reason = "installed version has no repository source"
	}
	return result
}

type lineKind int

const (
	lineIgnored lineKind = iota
	lineHeader
	lineSource
)

// tableScanner classifies version table lines. Source indentation is
// learned from the first source line rather than assumed.
type tableScanner struct {
	sawHeader    bool
	sourceIndent int
}

func newTableScanner() *tableScanner {
	return &tableScanner{sourceIndent: -1}
}

func (s *tableScanner) next(line string) (lineKind, []string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return lineIgnored, nil
	}
	fields := strings.Fields(trimmed)
	if strings.HasPrefix(trimmed, activeMarker) {
		s.sawHeader = true
		return lineHeader, fields
	}
	indent := indentWidth(line)
	threshold := fallbackHeaderIndent
	if s.sourceIndent >= 0 {
		threshold = s.sourceIndent
	}
	if indent < threshold {
		s.sawHeader = true
		return lineHeader, fields
	}
	if !s.sawHeader {
		return lineIgnored, nil
	}
	if s.sourceIndent < 0 {
		s.sourceIndent = indent
	}
	return lineSource, fields
}

// headerVersion returns the marker flag and version token of a header.
func headerVersion(fields []string) (bool, string) {
	if len(fields) == 0 {
		return false, ""
	}
	if fields[0] == activeMarker {
		if len(fields) < 2 {
			return true, ""
		}
		return true, fields[1]
	}
	if strings.HasPrefix(fields[0], activeMarker) {
		return true, strings.TrimPrefix(fields[0], activeMarker)
	}
	return false, fields[0]
}

// sourceOrigin drops the leading priority token of a source line.
func sourceOrigin(fields []string) string {
	if len(fields) < 2 {
		return strings.Join(fields, " ")
	}
	if _, err := strconv.Atoi(fields[0]); err != nil {
		return strings.Join(fields, " ")
	}
	return strings.Join(fields[1:], " ")
}

func isRepositoryOrigin(origin string) bool {
	return strings.Contains(origin, uriSchemeMarker)
}

func splitLines(report string) []string {
	return strings.Split(strings.ReplaceAll(report, "\r\n", "\n"), "\n")
}

// labelValue returns the value of the first line starting with label.
func labelValue(lines []string, label string) string {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, label) {
			continue
		}
		_, value, _ := strings.Cut(trimmed, ":")
		return strings.TrimSpace(value)
	}
	return ""
}

func versionTableStart(lines []string) int {
	for i, line := range lines {
		if strings.TrimSpace(line) == versionTableLabel {
			return i + 1
		}
	}
	return -1
}

// packageName reads the "<name>:" header line that opens a report.
func packageName(lines []string) string {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if indentWidth(line) == 0 && strings.HasSuffix(trimmed, ":") && !strings.Contains(trimmed, " ") {
			return strings.TrimSuffix(trimmed, ":")
		}
		return ""
	}
	return ""
}

// indentWidth measures leading whitespace in columns, tabs advancing to
// the next multiple of 8.
func indentWidth(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 8 - width%8
		default:
			return width
		}
	}
	return width
}

func atoiOrZero(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}
