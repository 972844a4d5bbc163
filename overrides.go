package extplan

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Flags captures the presence-only switches recognized on the invocation
// command line. Flags outrank environment variables, which outrank the
// built-in defaults.
type Flags struct {
	NoExtensions bool // --no-extensions
	NoMurmur3    bool // --no-murmur3
	NoLibev      bool // --no-libev
	NoCython     bool // --no-cython
}

// ScanArgs extracts Flags from a raw argument list by membership. The
// surrounding packaging command forwards arguments it does not recognize,
// so anything that is not one of the four switches is ignored.
func ScanArgs(args []string) Flags {
	var f Flags
	for _, arg := range args {
		switch arg {
		case "--no-extensions":
			f.NoExtensions = true
		case "--no-murmur3":
			f.NoMurmur3 = true
		case "--no-libev":
			f.NoLibev = true
		case "--no-cython":
			f.NoCython = true
		}
	}
	return f
}

// Default search paths for libev headers and libraries, used when the
// corresponding environment variable is unset or empty.
var (
	DefaultLibevIncludes = []string{"/usr/include/libev", "/usr/local/include", "/opt/local/include", "/usr/include"}
	DefaultLibevLibdirs  = []string{"/usr/local/lib", "/opt/local/lib", "/usr/lib64"}
)

// Homebrew prefixes appended on macOS after override resolution. They are
// appended even when the environment variable was set explicitly: user
// paths are extended, never fully replaced. Surprising, but it is the
// long-standing behavior of the driver build and some setups depend on it.
var (
	macosExtraIncludes = []string{"/opt/homebrew/include", "~/homebrew/include"}
	macosExtraLibdirs  = []string{"/opt/homebrew/lib"}
)

// envOverrides is the raw CASS_DRIVER_* environment surface. The NO_*
// switches are strings rather than bools because any truthy-looking value
// disables the feature; see truthy.
type envOverrides struct {
	NoExtensions     string   `env:"CASS_DRIVER_NO_EXTENSIONS"`
	NoLibev          string   `env:"CASS_DRIVER_NO_LIBEV"`
	NoCython         string   `env:"CASS_DRIVER_NO_CYTHON"`
	LibevIncludes    []string `env:"CASS_DRIVER_LIBEV_INCLUDES" envSeparator:","`
	LibevLibdirs     []string `env:"CASS_DRIVER_LIBEV_LIBS" envSeparator:","`
	BuildConcurrency int      `env:"CASS_DRIVER_BUILD_CONCURRENCY" envDefault:"0"`
}

// Overrides is the effective configuration after merging invocation flags
// (highest priority), environment variables, built-in defaults, and the
// forced downgrades implied by the host capabilities. Immutable once
// resolved.
//
// The reason fields name the highest-priority cause that disabled a
// feature, empty while the feature is enabled. They exist so diagnostics
// can tell a host-forced downgrade from an explicit opt-out.
type Overrides struct {
	TryMurmur3 bool // build the murmur3 hash extension
	TryLibev   bool // build the libev event loop wrapper
	TryCython  bool // attempt cython translation of pure modules

	Murmur3Reason string // why murmur3 is off
	LibevReason   string // why libev is off
	CythonReason  string // why cython is off

	LibevIncludes []string // header search paths for the libev wrapper
	LibevLibdirs  []string // library search paths for the libev wrapper

	BuildConcurrency int // parallelism hint passed through to the translator
}

// ResolveOverrides merges flags, the environment and the defaults into the
// effective Overrides for a host with the given capabilities.
//
// The environ map makes the resolver a pure function for testing; pass nil
// to read the real process environment. Absent configuration never fails.
// The single fatal case is a malformed CASS_DRIVER_BUILD_CONCURRENCY
// value, which indicates a broken invocation environment rather than a
// missing optional feature.
//
// Host gating: an unsupported platform or byte order forces every
// extension off. An alternate runtime forces off libev and cython but not
// murmur3 - that is the one extension such runtimes can still load.
func ResolveOverrides(flags Flags, environ map[string]string, caps Capabilities) (Overrides, error) {
	var raw envOverrides
	if err := env.ParseWithOptions(&raw, env.Options{Environment: environ}); err != nil {
		return Overrides{}, fmt.Errorf("invalid build environment: %w", err)
	}
	if raw.BuildConcurrency < 0 {
		return Overrides{}, fmt.Errorf("invalid build environment: CASS_DRIVER_BUILD_CONCURRENCY must be non-negative, got %d", raw.BuildConcurrency)
	}

	// The reason the whole extension group is off, highest priority first.
	var groupReason string
	switch {
	case flags.NoExtensions:
		groupReason = "--no-extensions"
	case !caps.SupportedPlatform:
		groupReason = "unsupported platform"
	case !caps.SupportedByteOrder:
		groupReason = "unsupported byte order"
	case truthy(raw.NoExtensions):
		groupReason = "CASS_DRIVER_NO_EXTENSIONS set"
	}

	murmurReason := groupReason
	if murmurReason == "" && flags.NoMurmur3 {
		murmurReason = "--no-murmur3"
	}

	libevReason := groupReason
	if libevReason == "" {
		switch {
		case flags.NoLibev:
			libevReason = "--no-libev"
		case caps.AlternateRuntime:
			libevReason = "alternate runtime"
		case truthy(raw.NoLibev):
			libevReason = "CASS_DRIVER_NO_LIBEV set"
		}
	}

	cythonReason := groupReason
	if cythonReason == "" {
		switch {
		case flags.NoCython:
			cythonReason = "--no-cython"
		case caps.AlternateRuntime:
			cythonReason = "alternate runtime"
		case truthy(raw.NoCython):
			cythonReason = "CASS_DRIVER_NO_CYTHON set"
		}
	}

	o := Overrides{
		TryMurmur3:       murmurReason == "",
		TryLibev:         libevReason == "",
		TryCython:        cythonReason == "",
		Murmur3Reason:    murmurReason,
		LibevReason:      libevReason,
		CythonReason:     cythonReason,
		BuildConcurrency: raw.BuildConcurrency,
	}

	o.LibevIncludes = resolvePaths(raw.LibevIncludes, DefaultLibevIncludes)
	o.LibevLibdirs = resolvePaths(raw.LibevLibdirs, DefaultLibevLibdirs)
	if caps.MacOS {
		o.LibevIncludes = append(o.LibevIncludes, expandPaths(macosExtraIncludes)...)
		o.LibevLibdirs = append(o.LibevLibdirs, expandPaths(macosExtraLibdirs)...)
	}

	return o, nil
}
