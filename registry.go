package extplan

// The candidate registry: constructors for the static extension
// descriptors. Everything here is pure and deterministic - no I/O, no
// shared state - so each invocation gets fresh descriptor values.

// cythonModules are the driver's pure modules worth compiling for speed.
var cythonModules = []string{
	"cluster", "concurrent", "connection", "cqltypes", "metadata",
	"pool", "protocol", "query", "util",
}

// Murmur3Extension returns the descriptor for the fast-hash extension
// backing token-aware routing with the Murmur3Partitioner.
func Murmur3Extension() Extension {
	return Extension{
		Name:    "cassandra.cmurmur3",
		Sources: []string{"cassandra/cmurmur3.c"},
	}
}

// LibevExtension returns the descriptor for the libev event loop wrapper.
// Search-path order is precedence order, so the caller's resolved
// override paths go in front of nothing and are used as given. The
// wrapper links against the external ev library and needs no extra
// compile arguments.
func LibevExtension(includes, libdirs []string) Extension {
	return Extension{
		Name:        "cassandra.io.libevwrapper",
		Sources:     []string{"cassandra/io/libevwrapper.c"},
		IncludeDirs: append([]string{}, includes...),
		LibraryDirs: append([]string{}, libdirs...),
		Libraries:   []string{"ev"},
	}
}

// CythonCompileArgs returns the extra compiler arguments for
// cython-generated sources. Generated code is full of unused static
// functions; gcc and clang accept the suppression flag, MSVC does not.
func CythonCompileArgs(windows bool) []string {
	if windows {
		return nil
	}
	return []string{"-Wno-unused-function"}
}

// CythonCandidates returns the named pure-module candidates for cython
// translation, in catalog order.
func CythonCandidates(windows bool) []Extension {
	args := CythonCompileArgs(windows)
	candidates := make([]Extension, 0, len(cythonModules))
	for _, m := range cythonModules {
		candidates = append(candidates, Extension{
			Name:             "cassandra." + m,
			Sources:          []string{"cassandra/" + m + ".py"},
			ExtraCompileArgs: append([]string{}, args...),
		})
	}
	return candidates
}

// CythonPatterns returns the glob-sourced candidates: every hand-written
// .pyx module in the driver tree.
func CythonPatterns(windows bool) []Extension {
	return []Extension{{
		Name:             "*",
		Sources:          []string{"cassandra/*.pyx"},
		ExtraCompileArgs: append([]string{}, CythonCompileArgs(windows)...),
	}}
}
