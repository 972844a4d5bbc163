package extplan

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/log"
)

// Planner assembles the final build plan from the host capabilities, the
// resolved overrides and the candidate registry, driving the Cythonizer
// for the translation stage.
//
// The Planner is the outermost containment boundary for optional-feature
// failures: Assemble never fails, it only degrades. Diagnostics go to the
// logger and are observational only - they never affect the returned
// plan's contents.
type Planner struct {
	caps       Capabilities
	overrides  Overrides
	cythonizer Cythonizer
	logger     *log.Logger
}

// NewPlanner wires up a Planner. A nil logger falls back to stderr, the
// process error stream where build diagnostics belong.
func NewPlanner(caps Capabilities, overrides Overrides, cythonizer Cythonizer, logger *log.Logger) *Planner {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "extplan"})
	}
	return &Planner{
		caps:       caps,
		overrides:  overrides,
		cythonizer: cythonizer,
		logger:     logger,
	}
}

// Assemble produces the build plan: murmur3 first, then libev, then
// whatever the translation stage yields. Stage order matters only for
// diagnostics.
//
// A translation failure of any kind - toolchain missing or otherwise - is
// contained here: the stage is recorded as degraded and the descriptors
// appended by earlier stages are preserved. The worst outcome is an empty
// plan, meaning the driver builds with zero native acceleration.
func (p *Planner) Assemble(ctx context.Context) *Plan {
	plan := &Plan{}

	if p.overrides.TryMurmur3 {
		ext := Murmur3Extension()
		p.logger.Info("appending murmur3 extension", "name", ext.Name)
		plan.Extensions = append(plan.Extensions, ext)
		plan.Stages = append(plan.Stages, Stage{Name: "murmur3", Status: StageApplied, Applied: 1})
	} else {
		reason := skipReason(p.overrides.Murmur3Reason)
		p.logger.Debug("skipping murmur3 extension", "reason", reason)
		plan.Stages = append(plan.Stages, Stage{Name: "murmur3", Status: StageSkipped, Reason: reason})
	}

	if p.overrides.TryLibev {
		ext := LibevExtension(p.overrides.LibevIncludes, p.overrides.LibevLibdirs)
		p.logger.Info("appending libev extension", "name", ext.Name)
		plan.Extensions = append(plan.Extensions, ext)
		plan.Stages = append(plan.Stages, Stage{Name: "libev", Status: StageApplied, Applied: 1})
	} else {
		reason := skipReason(p.overrides.LibevReason)
		p.logger.Debug("skipping libev extension", "reason", reason)
		plan.Stages = append(plan.Stages, Stage{Name: "libev", Status: StageSkipped, Reason: reason})
	}

	plan.Stages = append(plan.Stages, p.assembleCython(ctx, plan))

	return plan
}

// assembleCython runs the translation stage and returns its outcome. All
// errors from the adapter are contained: the whole attempt is treated as
// a single unit, so a failure yields no adapter-sourced descriptors at
// all, and nothing propagates to the caller.
func (p *Planner) assembleCython(ctx context.Context, plan *Plan) Stage {
	if !p.overrides.TryCython {
		reason := skipReason(p.overrides.CythonReason)
		p.logger.Debug("skipping cython translation", "reason", reason)
		return Stage{Name: "cython", Status: StageSkipped, Reason: reason}
	}

	if err := p.cythonizer.Available(); err != nil {
		p.logger.Warn("cython toolchain unavailable; compiled modules will be skipped", "err", err)
		return Stage{Name: "cython", Status: StageDegraded, Reason: err.Error()}
	}

	p.logger.Info("attempting cython translation", "concurrency", p.overrides.BuildConcurrency)
	batch := Batch{
		Modules:  CythonCandidates(p.caps.Windows),
		Patterns: CythonPatterns(p.caps.Windows),
		Threads:  p.overrides.BuildConcurrency,
	}

	compiled, err := p.cythonizer.Cythonize(ctx, batch)
	switch {
	case errors.Is(err, ErrToolUnavailable):
		p.logger.Warn("cython toolchain unavailable; compiled modules will be skipped", "err", err)
		return Stage{Name: "cython", Status: StageDegraded, Reason: err.Error()}
	case err != nil:
		p.logger.Warn("failed to cythonize one or more modules; these will not be compiled as extensions (optional)", "err", err)
		return Stage{Name: "cython", Status: StageDegraded, Reason: err.Error()}
	}

	p.logger.Info("appending cython extensions", "count", len(compiled))
	plan.Extensions = append(plan.Extensions, compiled...)
	return Stage{Name: "cython", Status: StageApplied, Applied: len(compiled)}
}

// skipReason guards against callers that build Overrides by hand without
// filling in the reason fields.
func skipReason(reason string) string {
	if reason == "" {
		return "disabled by configuration"
	}
	return reason
}
