package extplan

// Extension describes one optional compiled extension.
//
// It is the unit the surrounding packaging command consumes: it names the
// module to produce and carries everything the compiler needs to find
// headers and libraries. Search-path order is precedence order.
//
// Extension values are constructed fresh by the registry on every call
// and are never mutated after override resolution, so repeated plans in
// one process cannot bleed state into each other.
type Extension struct {
	Name             string   `yaml:"name"`                         // unique dotted module name, e.g. "cassandra.cmurmur3"
	Sources          []string `yaml:"sources"`                      // source files, relative to the package root
	IncludeDirs      []string `yaml:"include_dirs,omitempty"`       // header search paths, highest precedence first
	LibraryDirs      []string `yaml:"library_dirs,omitempty"`       // library search paths, highest precedence first
	Libraries        []string `yaml:"libraries,omitempty"`          // libraries to link against
	ExtraCompileArgs []string `yaml:"extra_compile_args,omitempty"` // platform-dependent compiler flags
}

// Batch is one translation request handed to a Cythonizer.
//
// The two groups fail differently: a failing entry in Modules is dropped
// and the rest of the batch survives, while a failure while expanding or
// translating Patterns fails the whole call.
type Batch struct {
	Modules  []Extension // named pure modules, translated with exclude-failures semantics
	Patterns []Extension // glob-style sources (e.g. "cassandra/*.pyx")
	Threads  int         // parallelism hint; 0 lets the tool choose
}

// StageStatus classifies the outcome of one assembly stage.
type StageStatus string

const (
	StageApplied  StageStatus = "applied"  // stage ran and appended its descriptors
	StageSkipped  StageStatus = "skipped"  // stage was ineligible and never attempted
	StageDegraded StageStatus = "degraded" // stage was attempted and contained a failure
)

// Stage records what happened to one assembly stage. Every degradation
// path the Planner can take shows up here, which keeps them enumerable
// and testable instead of hiding behind a catch-all.
type Stage struct {
	Name    string      `yaml:"name"`
	Status  StageStatus `yaml:"status"`
	Reason  string      `yaml:"reason,omitempty"`
	Applied int         `yaml:"applied"`
}

// Plan is the final ordered extension list plus the per-stage outcomes.
//
// Order matters only for diagnostics; the packaging command treats the
// list as a set. The plan never contains a descriptor whose eligibility
// predicate evaluated false.
type Plan struct {
	Extensions []Extension `yaml:"extensions"`
	Stages     []Stage     `yaml:"stages"`
}

// Empty reports whether the plan carries no extensions at all, i.e. the
// driver would build with zero native acceleration.
func (p *Plan) Empty() bool {
	return len(p.Extensions) == 0
}
