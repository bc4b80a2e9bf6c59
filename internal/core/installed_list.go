package core

import (
	"sort"
	"strings"

	"pkg-provenance/internal/types"
)

const installedLocalMarker = "[installed,local]"

// ParseInstalledList extracts the packages apt reports as installed from a
// local archive. Lines look like "name/now version arch [installed,local]".
func ParseInstalledList(output string) []types.LocalInstall {
	var installs []types.LocalInstall
	for _, line := range splitLines(output) {
		if !strings.Contains(line, installedLocalMarker) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		name, _, _ := strings.Cut(fields[0], "/")
		if strings.TrimSpace(name) == "" {
			continue
		}
		install := types.LocalInstall{Package: name}
		if len(fields) > 1 && fields[1] != installedLocalMarker {
			install.Version = fields[1]
		}
		if len(fields) > 2 && fields[2] != installedLocalMarker {
			install.Architecture = fields[2]
		}
		installs = append(installs, install)
	}
	sort.Slice(installs, func(i, j int) bool {
		return installs[i].Package < installs[j].Package
	})
	return installs
}
