package extplan

import (
	"os"
	"path/filepath"
	"strings"
)

// truthy reports whether an environment value looks like it was meant to
// turn its switch on. The historical behavior is "any non-empty value
// disables the feature"; the conventional off spellings are carved out so
// CASS_DRIVER_NO_LIBEV=false does what it says.
func truthy(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}

// resolvePaths trims and filters an override list, falling back to the
// defaults when nothing usable remains. The defaults are copied so the
// caller can append without clobbering package state.
func resolvePaths(override, defaults []string) []string {
	var paths []string
	for _, p := range override {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return append([]string{}, defaults...)
	}
	return paths
}

// expandPaths resolves a leading "~/" against the current user's home
// directory. Entries that cannot be expanded are kept verbatim.
func expandPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.HasPrefix(p, "~/") {
			if home, err := os.UserHomeDir(); err == nil {
				p = filepath.Join(home, p[2:])
			}
		}
		out = append(out, p)
	}
	return out
}
