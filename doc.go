// Package extplan decides which of the Cassandra driver's optional native
// extensions should be built on the current machine and assembles the build
// plan that is handed to the surrounding packaging command.
//
// The extensions are strictly optional: they add a fast murmur3 hash for
// token-aware routing, a libev-backed event loop, and cython-compiled
// versions of the driver's hot pure modules. A host without the right
// toolchain, or with the wrong byte order, must still be able to build the
// driver - just without native acceleration. This package therefore never
// fails for feature-related reasons; the worst possible outcome is an
// empty plan.
//
// # Components
//
// Planning happens in four steps, each a pure function of its inputs:
//
//	HostInfo / Capabilities  - facts about the machine (capability.go)
//	Flags / Overrides        - merged invocation flags, environment
//	                           variables and built-in defaults (overrides.go)
//	Extension registry       - the static candidate descriptors (registry.go)
//	Planner                  - best-effort assembly of the final list (plan.go)
//
// # Basic Usage
//
// Detect the host, resolve the overrides, and assemble:
//
//	caps := extplan.DetectCapabilities(extplan.CurrentHost())
//
//	overrides, err := extplan.ResolveOverrides(extplan.ScanArgs(os.Args[1:]), nil, caps)
//	if err != nil {
//	    // the only fatal case: malformed configuration
//	    log.Fatal(err)
//	}
//
//	planner := extplan.NewPlanner(caps, overrides, extplan.NewCythonTool(nil), nil)
//	plan := planner.Assemble(ctx)
//
// # Failure Containment
//
// The Planner is the outermost containment boundary for optional-feature
// failures. A missing cython toolchain, or a module that fails to
// translate, degrades that stage and is recorded on the returned Plan;
// descriptors appended by earlier stages are always preserved. Only a
// malformed environment (a non-integer CASS_DRIVER_BUILD_CONCURRENCY)
// surfaces as an error, and it does so before assembly begins.
//
// # Environment Variables
//
// The resolver recognizes:
//
//	CASS_DRIVER_NO_EXTENSIONS      disable every optional extension
//	CASS_DRIVER_NO_LIBEV           disable the libev event loop wrapper
//	CASS_DRIVER_NO_CYTHON          disable cython-compiled modules
//	CASS_DRIVER_LIBEV_INCLUDES     comma-separated header search paths
//	CASS_DRIVER_LIBEV_LIBS         comma-separated library search paths
//	CASS_DRIVER_BUILD_CONCURRENCY  translation parallelism hint (0 = auto)
//
// # Platform Support
//
// Full support on Linux and macOS; Windows plans omit the gcc-only
// warning-suppression flag. Big-endian hosts and managed runtimes get a
// reduced (possibly empty) plan rather than an error.
package extplan
