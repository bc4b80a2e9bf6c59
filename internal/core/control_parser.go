package core

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pkg-provenance/internal/types"
)

// ParseControl reads the control fields printed by dpkg-deb --info. Field
// names may be indented; the first occurrence of a field wins.
func ParseControl(text string) (types.DebControl, error) {
	fields := map[string]string{}
	for _, line := range splitLines(text) {
		trimmed := strings.TrimSpace(line)
		name, value, ok := strings.Cut(trimmed, ":")
		if !ok || name == "" || strings.ContainsAny(name, " \t") {
			continue
		}
		if _, seen := fields[name]; seen {
			continue
		}
		fields[name] = strings.TrimSpace(value)
	}

	control := types.DebControl{
		Package:          fields["Package"],
		Version:          fields["Version"],
		Architecture:     fields["Architecture"],
		Maintainer:       fields["Maintainer"],
		Description:      fields["Description"],
		Section:          fields["Section"],
		Priority:         fields["Priority"],
		Homepage:         fields["Homepage"],
		Source:           fields["Source"],
		InstalledSize:    fields["Installed-Size"],
		DownloadSize:     fields["Size"],
		StandardsVersion: fields["Standards-Version"],
		Depends:          splitRelations(fields["Depends"]),
		PreDepends:       splitRelations(fields["Pre-Depends"]),
		Recommends:       splitRelations(fields["Recommends"]),
		Suggests:         splitRelations(fields["Suggests"]),
		Enhances:         splitRelations(fields["Enhances"]),
		Conflicts:        splitRelations(fields["Conflicts"]),
		Breaks:           splitRelations(fields["Breaks"]),
		Provides:         splitRelations(fields["Provides"]),
		Replaces:         splitRelations(fields["Replaces"]),
		Origin:           types.LocalOrigin,
	}
	if control.Package == "" {
		return types.DebControl{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("control data has no Package field")
	}
	return control, nil
}

func splitRelations(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
