package app

import (
	"time"

	"pkg-provenance/internal/adapters"
	"pkg-provenance/internal/core"
	"pkg-provenance/internal/policies"
	"pkg-provenance/internal/ports"
)

const defaultWorkers = 4

type Service struct {
	Reports      ports.PolicyReportPort
	ReportSource ports.ReportSourcePort
	Installed    ports.InstalledListPort
	Debs         ports.DebInspectPort
	Writer       ports.ResultWriterPort
	Parser       core.PolicyReportParser
	Policy       policies.UpgradePolicy
	Workers      int
	DebFolders   []string
}

// Config carries the tool paths and limits used to build a Service.
// Zero values select the defaults.
type Config struct {
	AptCacheBinary string
	AptBinary      string
	DpkgDebBinary  string
	PolicyTimeout  time.Duration
	ListTimeout    time.Duration
	DebTimeout     time.Duration
	Workers        int
	MaxReportBytes int
	Pinned         []string
	DebFolders     []string
}

func NewService(cfg Config) Service {
	maxBytes := cfg.MaxReportBytes
	if maxBytes <= 0 {
		maxBytes = core.DefaultMaxReportBytes
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	return Service{
		Reports:      adapters.NewAptPolicyAdapter(cfg.AptCacheBinary, cfg.PolicyTimeout),
		ReportSource: adapters.NewReportFileAdapter(maxBytes),
		Installed:    adapters.NewAptListAdapter(cfg.AptBinary, cfg.ListTimeout),
		Debs:         adapters.NewDebInfoAdapter(cfg.DpkgDebBinary, cfg.DebTimeout),
		Writer:       adapters.NewResultWriterAdapter(),
		Parser:       core.PolicyReportParser{MaxReportBytes: maxBytes},
		Policy:       policies.NewUpgradePolicy(cfg.Pinned),
		Workers:      workers,
		DebFolders:   cfg.DebFolders,
	}
}
