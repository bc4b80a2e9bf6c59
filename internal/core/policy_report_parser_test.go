package core

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkg-provenance/internal/types"
)

const repoReport = `bash:
  Installed: 5.2.37-2ubuntu5
  Candidate: 5.2.37-2ubuntu5
  Version table:
 *** 5.2.37-2ubuntu5 500
        500 http://archive.ubuntu.com/ubuntu questing/main amd64 Packages
        100 /var/lib/dpkg/status`

const localReport = `mypackage:
  Installed: 1.0-local
  Candidate: 1.0-local
  Version table:
 *** 1.0-local 100
        100 /var/lib/dpkg/status`

const localWithRepoCandidateReport = `mypackage:
  Installed: 1.0-local
  Candidate: 1.0-local
  Version table:
 *** 1.0-local 100
        100 /var/lib/dpkg/status
     0.9-repo 500
        500 http://archive.ubuntu.com/ubuntu questing/main amd64 Packages`

// ---------------------------------------------------------------------------
// Classify
// ---------------------------------------------------------------------------

func TestClassifyProvenance(t *testing.T) {
	tests := []struct {
		name   string
		report string
		want   types.Provenance
	}{
		{name: "repository", report: repoReport, want: types.ProvenanceRepository},
		{name: "local", report: localReport, want: types.ProvenanceLocal},
		{name: "local with repo candidate", report: localWithRepoCandidateReport, want: types.ProvenanceLocal},
		{
			name: "https source",
			report: `curl:
  Installed: 8.5.0-2ubuntu10
  Candidate: 8.5.0-2ubuntu10
  Version table:
 *** 8.5.0-2ubuntu10 500
        500 https://mirror.example.org/ubuntu noble/main amd64 Packages
        100 /var/lib/dpkg/status`,
			want: types.ProvenanceRepository,
		},
		{
			name: "file scheme counts as repository",
			report: `tool:
  Installed: 2.0
  Candidate: 2.0
  Version table:
 *** 2.0 500
        500 file:/srv/repo ./ Packages
        500 file:///srv/repo ./ Packages`,
			want: types.ProvenanceRepository,
		},
		{
			name: "repository listed after local status",
			report: `bash:
  Installed: 5.2
  Candidate: 5.2
  Version table:
 *** 5.2 100
        100 /var/lib/dpkg/status
        500 ftp://ftp.debian.org/debian stable/main amd64 Packages`,
			want: types.ProvenanceRepository,
		},
		{
			name: "no installed line",
			report: `ghost:
  Candidate: 1.0
  Version table:
     1.0 500
        500 http://archive.ubuntu.com/ubuntu noble/main amd64 Packages`,
			want: types.ProvenanceNotInstalled,
		},
		{
			name: "installed none",
			report: `vim:
  Installed: (none)
  Candidate: 2:9.1.0016-1ubuntu7
  Version table:
     2:9.1.0016-1ubuntu7 500
        500 http://archive.ubuntu.com/ubuntu noble/main amd64 Packages`,
			want: types.ProvenanceNotInstalled,
		},
		{
			name:   "installed empty",
			report: "pkg:\n  Installed:\n  Version table:\n *** 1.0 100\n        100 /var/lib/dpkg/status",
			want:   types.ProvenanceNotInstalled,
		},
		{name: "empty report", report: "", want: types.ProvenanceNotInstalled},
		{
			name:   "no version table",
			report: "pkg:\n  Installed: 1.0\n  Candidate: 1.0\n",
			want:   types.ProvenanceMalformedReport,
		},
		{
			name: "installed version missing from table",
			report: `pkg:
  Installed: 1.1
  Candidate: 1.0
  Version table:
 *** 1.0 100
        100 /var/lib/dpkg/status`,
			want: types.ProvenanceMalformedReport,
		},
		{
			name: "matching version without marker is not active",
			report: `pkg:
  Installed: 1.0
  Candidate: 1.0
  Version table:
     1.0 500
        500 http://archive.ubuntu.com/ubuntu noble/main amd64 Packages`,
			want: types.ProvenanceMalformedReport,
		},
		{
			name: "active entry with zero sources before next header",
			report: `pkg:
  Installed: 1.0
  Candidate: 2.0
  Version table:
 *** 1.0 100
     2.0 500
        500 http://archive.ubuntu.com/ubuntu noble/main amd64 Packages`,
			want: types.ProvenanceLocal,
		},
		{
			name:   "active entry with zero sources at end of input",
			report: "pkg:\n  Installed: 1.0\n  Version table:\n *** 1.0 100\n",
			want:   types.ProvenanceLocal,
		},
		{
			name: "repository entry before active local entry",
			report: `pkg:
  Installed: 1.0-local
  Candidate: 2.0
  Version table:
     2.0 500
        500 http://archive.ubuntu.com/ubuntu noble/main amd64 Packages
 *** 1.0-local 100
        100 /var/lib/dpkg/status`,
			want: types.ProvenanceLocal,
		},
		{
			name: "only first installed line honored",
			report: `pkg:
  Installed: 1.0
  Installed: 2.0
  Version table:
 *** 2.0 500
        500 http://archive.ubuntu.com/ubuntu noble/main amd64 Packages
 *** 1.0 100
        100 /var/lib/dpkg/status`,
			want: types.ProvenanceLocal,
		},
		{
			name: "path without scheme is not repository",
			report: `pkg:
  Installed: 1.0
  Version table:
 *** 1.0 100
        100 something-odd`,
			want: types.ProvenanceLocal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyProvenance(tt.report)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected provenance (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassifyLearnsIndentation(t *testing.T) {
	// Wider indentation than apt usually prints: plain headers at 8
	// columns, sources at 12. The fallback threshold alone would read
	// the 0.9 header as a source of the active entry.
	report := strings.Join([]string{
		"pkg:",
		"  Installed: 1.0",
		"  Version table:",
		"     *** 1.0 100",
		"            100 /var/lib/dpkg/status",
		"        0.9 500",
		"            500 http://archive.ubuntu.com/ubuntu noble/main amd64 Packages",
	}, "\n")
	assert.Equal(t, types.ProvenanceLocal, ClassifyProvenance(report))
}

// Until a source line has fixed the indentation, a line indented less than
// six columns opens a new entry. A first source line indented only three
// columns therefore reads as a header and leaves the active entry empty.
func TestClassifyShallowFirstSourceReadsAsHeader(t *testing.T) {
	report := `pkg:
  Installed: 1.0
  Candidate: 1.0
  Version table:
 *** 1.0 500
   500 http://deb.example.org stable/main amd64 Packages
`
	parser := NewPolicyReportParser()
	got := parser.Classify(report)
	assert.Equal(t, types.ProvenanceLocal, got.Provenance)
	assert.Equal(t, "installed version has no sources", got.Reason)
	assert.Empty(t, got.Origin)

	parsed, err := parser.Parse(report)
	require.NoError(t, err)
	require.Len(t, parsed.Entries, 2)
	assert.Empty(t, parsed.Entries[0].Sources)

	deeper := strings.Replace(report, "   500 http", "        500 http", 1)
	assert.Equal(t, types.ProvenanceRepository, parser.Classify(deeper).Provenance)
}

func TestClassifyTabsAndCRLF(t *testing.T) {
	report := "pkg:\r\n\tInstalled: 1.0\r\n\tVersion table:\r\n *** 1.0 500\r\n\t\t500 https://deb.example.com stable/main amd64 Packages\r\n"
	assert.Equal(t, types.ProvenanceRepository, ClassifyProvenance(report))
}

func TestClassifyEpochVersion(t *testing.T) {
	report := `vim:
  Installed: 2:9.1.0016-1ubuntu7
  Candidate: 2:9.1.0016-1ubuntu7
  Version table:
 *** 2:9.1.0016-1ubuntu7 500
        500 http://archive.ubuntu.com/ubuntu noble/main amd64 Packages
        100 /var/lib/dpkg/status`
	got := NewPolicyReportParser().Classify(report)
	assert.Equal(t, types.ProvenanceRepository, got.Provenance)
	assert.Equal(t, "2:9.1.0016-1ubuntu7", got.InstalledVersion)
}

func TestClassifyDetails(t *testing.T) {
	parser := NewPolicyReportParser()

	repo := parser.Classify(repoReport)
	want := types.Classification{
		Provenance:       types.ProvenanceRepository,
		Package:          "bash",
		InstalledVersion: "5.2.37-2ubuntu5",
		CandidateVersion: "5.2.37-2ubuntu5",
		Origin:           "http://archive.ubuntu.com/ubuntu questing/main amd64 Packages",
		Reason:           "installed version is published by a repository",
	}
	if diff := cmp.Diff(want, repo); diff != "" {
		t.Fatalf("unexpected classification (-want +got):\n%s", diff)
	}

	local := parser.Classify(localWithRepoCandidateReport)
	assert.Equal(t, types.ProvenanceLocal, local.Provenance)
	assert.Equal(t, "/var/lib/dpkg/status", local.Origin)
	assert.Equal(t, "installed version has no repository source", local.Reason)

	malformed := parser.Classify("pkg:\n  Installed: 3.0\n  Version table:\n *** 1.0 100\n        100 /var/lib/dpkg/status\n")
	assert.Equal(t, types.ProvenanceMalformedReport, malformed.Provenance)
	assert.Empty(t, malformed.Origin)
	assert.Contains(t, malformed.Reason, "3.0")
}

func TestClassifyRejectsOversizedReport(t *testing.T) {
	parser := PolicyReportParser{MaxReportBytes: 64}
	report := localReport + strings.Repeat(" ", 64)
	got := parser.Classify(report)
	assert.Equal(t, types.ProvenanceMalformedReport, got.Provenance)
	assert.Contains(t, got.Reason, "exceeds 64 bytes")

	assert.Equal(t, types.ProvenanceLocal, PolicyReportParser{}.Classify(localReport).Provenance)
}

func TestClassifyIdempotent(t *testing.T) {
	parser := NewPolicyReportParser()
	for _, report := range []string{repoReport, localReport, localWithRepoCandidateReport, ""} {
		first := parser.Classify(report)
		second := parser.Classify(report)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("classification changed between calls (-first +second):\n%s", diff)
		}
	}
}

func TestClassifyConcurrentUse(t *testing.T) {
	parser := NewPolicyReportParser()
	var wg sync.WaitGroup
	results := make([]types.Provenance, 32)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				results[i] = parser.Classify(repoReport).Provenance
				return
			}
			results[i] = parser.Classify(localWithRepoCandidateReport).Provenance
		}()
	}
	wg.Wait()
	for i, got := range results {
		want := types.ProvenanceLocal
		if i%2 == 0 {
			want = types.ProvenanceRepository
		}
		require.Equal(t, want, got, "result %d", i)
	}
}

// ---------------------------------------------------------------------------
// Parse
// ---------------------------------------------------------------------------

func TestParseAttributesSourcesToNearestHeader(t *testing.T) {
	parsed, err := NewPolicyReportParser().Parse(localWithRepoCandidateReport)
	require.NoError(t, err)

	want := types.PolicyReport{
		Package:         "mypackage",
		Installed:       "1.0-local",
		Candidate:       "1.0-local",
		HasVersionTable: true,
		Entries: []types.VersionTableEntry{
			{
				Version:  "1.0-local",
				Priority: 100,
				Active:   true,
				Sources: []types.SourceLine{
					{Priority: 100, Origin: "/var/lib/dpkg/status"},
				},
			},
			{
				Version:  "0.9-repo",
				Priority: 500,
				Sources: []types.SourceLine{
					{Priority: 500, Origin: "http://archive.ubuntu.com/ubuntu questing/main amd64 Packages", Repository: true},
				},
			},
		},
	}
	if diff := cmp.Diff(want, parsed); diff != "" {
		t.Fatalf("unexpected report (-want +got):\n%s", diff)
	}

	active, ok := parsed.ActiveEntry()
	require.True(t, ok)
	assert.Equal(t, "1.0-local", active.Version)
}

func TestParseWithoutVersionTable(t *testing.T) {
	parsed, err := NewPolicyReportParser().Parse("pkg:\n  Installed: (none)\n  Candidate: (none)\n")
	require.NoError(t, err)
	assert.False(t, parsed.HasVersionTable)
	assert.Empty(t, parsed.Entries)
	assert.Equal(t, "(none)", parsed.Installed)
	_, ok := parsed.ActiveEntry()
	assert.False(t, ok)
}

func TestParseRejectsOversizedReport(t *testing.T) {
	_, err := PolicyReportParser{MaxReportBytes: 8}.Parse(repoReport)
	require.Error(t, err)
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func TestHeaderVersion(t *testing.T) {
	tests := []struct {
		line       string
		wantActive bool
		wantVer    string
	}{
		{line: "*** 1.0 100", wantActive: true, wantVer: "1.0"},
		{line: "***1.0 100", wantActive: true, wantVer: "1.0"},
		{line: "***", wantActive: true, wantVer: ""},
		{line: "0.9 500", wantActive: false, wantVer: "0.9"},
		{line: "", wantActive: false, wantVer: ""},
	}
	for _, tt := range tests {
		active, version := headerVersion(strings.Fields(tt.line))
		assert.Equal(t, tt.wantActive, active, tt.line)
		assert.Equal(t, tt.wantVer, version, tt.line)
	}
}

func TestSourceOrigin(t *testing.T) {
	assert.Equal(t, "/var/lib/dpkg/status", sourceOrigin([]string{"100", "/var/lib/dpkg/status"}))
	assert.Equal(t, "http://a b c", sourceOrigin([]string{"500", "http://a", "b", "c"}))
	assert.Equal(t, "/only/path", sourceOrigin([]string{"/only/path"}))
	assert.Equal(t, "x y", sourceOrigin([]string{"x", "y"}))
}

func TestPackageName(t *testing.T) {
	assert.Equal(t, "bash", packageName(splitLines(repoReport)))
	assert.Equal(t, "", packageName(splitLines("  Installed: 1.0\n")))
	assert.Equal(t, "", packageName(nil))
}
