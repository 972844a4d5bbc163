package extplan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// ErrToolUnavailable reports that the translation toolchain is not
// installed. The Planner matches on it to pick the right diagnostic, but
// contains every Cythonize error the same way.
var ErrToolUnavailable = errors.New("cython toolchain unavailable")

// Cythonizer translates pure source modules into compiled-extension
// descriptors. Implementations must honor the Batch contract: entries in
// Batch.Modules fail individually and are dropped, a failure anywhere in
// Batch.Patterns fails the whole call.
type Cythonizer interface {
	// Available reports whether the translation toolchain is usable.
	// Errors wrap ErrToolUnavailable.
	Available() error

	// Cythonize translates the batch. On error the returned descriptor
	// set is nil; partial output is never returned.
	Cythonize(ctx context.Context, batch Batch) ([]Extension, error)
}

// CythonTool is the shipped Cythonizer. It shells out to the cython
// binary once per source file, rewriting each candidate descriptor to
// point at the generated C file.
//
// Named modules in a batch are translated concurrently, bounded by the
// batch's parallelism hint. The tool is stateless apart from its
// configuration and safe for concurrent use.
type CythonTool struct {
	// Path overrides the binary resolved from PATH. Empty means try
	// "cython" then "cython3".
	Path string

	logger   *log.Logger
	run      func(ctx context.Context, bin string, args ...string) error
	lookPath func(file string) (string, error)
}

// NewCythonTool returns a CythonTool reporting dropped modules through
// logger. A nil logger falls back to stderr.
func NewCythonTool(logger *log.Logger) *CythonTool {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "cython"})
	}
	return &CythonTool{
		logger:   logger,
		run:      runCythonCmd,
		lookPath: exec.LookPath,
	}
}

// translatorRequirement is the cython requirement itself, honoring the
// Path override. It backs both CheckTools and the binary lookup so the
// two can never disagree about what satisfies the requirement.
func (t *CythonTool) translatorRequirement() ToolRequirement {
	if t.Path != "" {
		return ToolRequirement{Name: t.Path, Purpose: "Cython source translator"}
	}
	return ToolRequirement{Name: "cython", Alternatives: []string{"cython3"}, Purpose: "Cython source translator"}
}

// RequiredTools lists the external tools the translation step depends on.
// The C compiler is optional here: its absence breaks the later compile
// step, which has its own error reporting, not the planning step.
func (t *CythonTool) RequiredTools() []ToolRequirement {
	return []ToolRequirement{
		t.translatorRequirement(),
		{Name: "gcc", Alternatives: []string{"clang", "cc", "cl"}, Optional: true, Purpose: "C compiler for the translated sources"},
	}
}

// CheckTools verifies that the required tools are available. Missing
// optional tools are logged so users learn about an absent C compiler
// before the later compile step trips over it.
func (t *CythonTool) CheckTools() error {
	for _, req := range t.RequiredTools() {
		if !req.Optional {
			continue
		}
		if _, err := lookupTool(t.lookPath, req.names()...); err != nil {
			t.logger.Warn("optional tool missing", "tool", req.Name, "purpose", req.Purpose)
		}
	}
	return checkRequiredTools(t.RequiredTools(), t.lookPath)
}

// Available reports whether the translation toolchain is usable.
func (t *CythonTool) Available() error {
	if err := t.CheckTools(); err != nil {
		return fmt.Errorf("%w: %v", ErrToolUnavailable, err)
	}
	return nil
}

func (t *CythonTool) binary() (string, error) {
	path, err := lookupTool(t.lookPath, t.translatorRequirement().names()...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrToolUnavailable, err)
	}
	return path, nil
}

// Cythonize translates the batch per the Cythonizer contract.
func (t *CythonTool) Cythonize(ctx context.Context, batch Batch) ([]Extension, error) {
	bin, err := t.binary()
	if err != nil {
		return nil, err
	}

	limit := batch.Threads
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	// Named modules translate independently; a failure drops that module
	// and nothing else. Completion order does not matter, only the final
	// set, so results are collected by index.
	results := make([]*Extension, len(batch.Modules))
	var grp errgroup.Group
	grp.SetLimit(limit)
	for i, mod := range batch.Modules {
		i, mod := i, mod
		grp.Go(func() error {
			ext, err := t.translate(ctx, bin, mod)
			if err != nil {
				t.logger.Warn("dropping module from plan", "module", mod.Name, "err", err)
				return nil
			}
			results[i] = &ext
			return nil
		})
	}
	grp.Wait() // goroutines above never return an error

	var compiled []Extension
	for _, r := range results {
		if r != nil {
			compiled = append(compiled, *r)
		}
	}

	// Pattern sources are all-or-nothing: the caller contains a failure
	// here by discarding the whole translation attempt.
	for _, pattern := range batch.Patterns {
		exts, err := t.expandPattern(ctx, bin, pattern)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, exts...)
	}

	return compiled, nil
}

// translate runs cython over the candidate's sources and returns a copy
// of the descriptor pointing at the generated C files.
func (t *CythonTool) translate(ctx context.Context, bin string, candidate Extension) (Extension, error) {
	out := candidate
	sources := make([]string, 0, len(candidate.Sources))
	for _, src := range candidate.Sources {
		cFile := strings.TrimSuffix(src, filepath.Ext(src)) + ".c"
		if err := t.run(ctx, bin, "-o", cFile, src); err != nil {
			return Extension{}, fmt.Errorf("cython %s: %w", src, err)
		}
		sources = append(sources, cFile)
	}
	out.Sources = sources
	return out, nil
}

func (t *CythonTool) expandPattern(ctx context.Context, bin string, pattern Extension) ([]Extension, error) {
	var out []Extension
	for _, glob := range pattern.Sources {
		matches, err := filepath.Glob(glob)
		if err != nil {
			return nil, fmt.Errorf("bad source pattern %q: %w", glob, err)
		}
		for _, src := range matches {
			ext, err := t.translate(ctx, bin, Extension{
				Name:             moduleName(src),
				Sources:          []string{src},
				ExtraCompileArgs: append([]string{}, pattern.ExtraCompileArgs...),
			})
			if err != nil {
				return nil, err
			}
			out = append(out, ext)
		}
	}
	return out, nil
}

// moduleName derives a dotted module name from a source path:
// "cassandra/io/foo.pyx" becomes "cassandra.io.foo".
func moduleName(src string) string {
	trimmed := strings.TrimSuffix(src, filepath.Ext(src))
	return strings.ReplaceAll(filepath.ToSlash(trimmed), "/", ".")
}

func runCythonCmd(ctx context.Context, bin string, args ...string) error {
	cmd := exec.CommandContext(ctx, bin, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(output)); msg != "" {
			return fmt.Errorf("%v\n%s", err, msg)
		}
		return err
	}
	return nil
}
