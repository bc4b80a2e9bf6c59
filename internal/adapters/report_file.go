package adapters

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pkg-provenance/internal/core"
	"pkg-provenance/internal/ports"
)

// ReportFileAdapter reads saved policy reports from disk or stdin ("-").
type ReportFileAdapter struct {
	MaxBytes int
	Stdin    io.Reader
}

func NewReportFileAdapter(maxBytes int) ReportFileAdapter {
	if maxBytes <= 0 {
		maxBytes = core.DefaultMaxReportBytes
	}
	return ReportFileAdapter{MaxBytes: maxBytes, Stdin: os.Stdin}
}

func (a ReportFileAdapter) ReadReport(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report path is required")
	}
	maxBytes := a.MaxBytes
	if maxBytes <= 0 {
		maxBytes = core.DefaultMaxReportBytes
	}

	var source io.Reader
	if path == "-" {
		source = a.Stdin
		if source == nil {
			source = os.Stdin
		}
	} else {
		file, err := os.Open(path)
		if err != nil {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("policy report not found: %s", path)).
				WithCause(err)
		}
		defer file.Close()
		source = file
	}

	content, err := io.ReadAll(io.LimitReader(source, int64(maxBytes)+1))
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read policy report").
			WithCause(err)
	}
	if len(content) > maxBytes {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeResourceExhausted).
			WithMsg(fmt.Sprintf("policy report exceeds %d bytes", maxBytes))
	}
	return string(content), nil
}

var _ ports.ReportSourcePort = ReportFileAdapter{}
