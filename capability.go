package extplan

import (
	"encoding/binary"
	"runtime"
	"strings"
)

// HostInfo holds the raw host facts the capability detector works from.
//
// It exists so that DetectCapabilities stays a pure function: production
// code fills it from the runtime package via CurrentHost, tests construct
// it directly.
type HostInfo struct {
	OS              string // GOOS value (linux, darwin, windows, ...)
	RuntimeIdentity string // compiler plus version string, e.g. "gc go1.25.1"
	LittleEndian    bool   // native byte order
}

// CurrentHost gathers HostInfo for the running process.
func CurrentHost() HostInfo {
	return HostInfo{
		OS:              runtime.GOOS,
		RuntimeIdentity: runtime.Compiler + " " + runtime.Version(),
		LittleEndian:    nativeLittleEndian(),
	}
}

func nativeLittleEndian() bool {
	return binary.NativeEndian.Uint16([]byte{0x01, 0x00}) == 1
}

// Capabilities is the immutable record of boolean host facts that gates
// extension eligibility. Computed once at startup, read-only afterwards.
type Capabilities struct {
	Windows            bool // building for Windows (MSVC compile args differ)
	MacOS              bool // building on macOS (Homebrew prefixes apply)
	AlternateRuntime   bool // non-reference runtime; cannot load most extensions
	SupportedPlatform  bool // false only on excluded managed/VM targets
	SupportedByteOrder bool // the murmur3 implementation assumes little-endian
}

// managedPlatforms are targets where loading native shared objects is not
// an option at all, so no extension is ever worth planning.
var managedPlatforms = map[string]bool{
	"js":     true,
	"wasip1": true,
}

// alternateRuntimes are substrings that identify a non-reference runtime
// in HostInfo.RuntimeIdentity.
var alternateRuntimes = []string{"gccgo", "tinygo"}

// DetectCapabilities computes the capability record for a host.
//
// It never fails: an unsupported host is a value, not an error. Callers
// that want a diagnostic for unsupported hosts print one of the message
// constants from messages.go themselves.
func DetectCapabilities(host HostInfo) Capabilities {
	return Capabilities{
		Windows:            host.OS == "windows",
		MacOS:              host.OS == "darwin",
		AlternateRuntime:   isAlternateRuntime(host.RuntimeIdentity),
		SupportedPlatform:  !managedPlatforms[host.OS],
		SupportedByteOrder: host.LittleEndian,
	}
}

func isAlternateRuntime(identity string) bool {
	for _, name := range alternateRuntimes {
		if strings.Contains(identity, name) {
			return true
		}
	}
	return false
}
