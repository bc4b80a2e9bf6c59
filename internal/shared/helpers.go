// Package shared provides common utility functions used across multiple
// packages in the pkg-provenance codebase.
package shared

import (
	"fmt"
	"sort"
	"strings"
)

// CommandError wraps a command execution error with its trimmed output
// for cleaner error messages.
func CommandError(output []byte, err error) error {
	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return err
	}
	return fmt.Errorf("%s: %w", trimmed, err)
}

// ValidPackageName reports whether name can be passed to apt tools as a
// single package argument.
func ValidPackageName(name string) bool {
	if strings.TrimSpace(name) == "" || strings.HasPrefix(name, "-") {
		return false
	}
	return !strings.ContainsAny(name, " \t\r\n")
}

// UniqueSorted trims, de-duplicates and sorts values, dropping blanks.
func UniqueSorted(values []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	sort.Strings(out)
	return out
}
