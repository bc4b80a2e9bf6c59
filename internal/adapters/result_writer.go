package adapters

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"pkg-provenance/internal/ports"
	"pkg-provenance/internal/types"
)

// ResultWriterAdapter renders outcomes as text, yaml or json.
type ResultWriterAdapter struct {
	Stdout io.Writer
}

func NewResultWriterAdapter() ResultWriterAdapter {
	return ResultWriterAdapter{Stdout: os.Stdout}
}

func (a ResultWriterAdapter) WriteOutcomes(path string, format types.OutputFormat, outcomes []types.PackageOutcome) error {
	content, err := renderOutcomes(format, outcomes)
	if err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" {
		out := a.Stdout
		if out == nil {
			out = os.Stdout
		}
		if _, err := out.Write(content); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to write results").
				WithCause(err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write results").
			WithCause(err)
	}
	return nil
}

func renderOutcomes(format types.OutputFormat, outcomes []types.PackageOutcome) ([]byte, error) {
	if outcomes == nil {
		outcomes = []types.PackageOutcome{}
	}
	switch format {
	case types.OutputFormatText, "":
		return renderText(outcomes), nil
	case types.OutputFormatYAML:
		content, err := yaml.Marshal(map[string][]types.PackageOutcome{"packages": outcomes})
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to encode yaml results").
				WithCause(err)
		}
		return content, nil
	case types.OutputFormatJSON:
		content, err := json.MarshalIndent(map[string][]types.PackageOutcome{"packages": outcomes}, "", "  ")
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to encode json results").
				WithCause(err)
		}
		return append(content, '\n'), nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported output format: %s", format))
	}
}

func renderText(outcomes []types.PackageOutcome) []byte {
	var builder strings.Builder
	writer := tabwriter.NewWriter(&builder, 0, 4, 2, ' ', 0)
	for _, outcome := range outcomes {
		if outcome.Error != "" {
			fmt.Fprintf(writer, "%s\terror\t-\t%s\n", outcome.Package, outcome.Error)
			continue
		}
		installed := outcome.Classification.InstalledVersion
		if installed == "" {
			installed = "-"
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", outcome.Package, outcome.Classification.Provenance, installed, outcome.Advice.Action)
	}
	_ = writer.Flush()
	return []byte(builder.String())
}

var _ ports.ResultWriterPort = ResultWriterAdapter{}
