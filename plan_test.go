package extplan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

// fakeCythonizer records the batch it receives and returns canned output.
type fakeCythonizer struct {
	batch    Batch
	exts     []Extension
	err      error
	availErr error
	calls    int
}

func (f *fakeCythonizer) Available() error {
	return f.availErr
}

func (f *fakeCythonizer) Cythonize(ctx context.Context, batch Batch) ([]Extension, error) {
	f.calls++
	f.batch = batch
	if f.err != nil {
		return nil, f.err
	}
	return f.exts, nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func fullOverrides() Overrides {
	return Overrides{
		TryMurmur3:    true,
		TryLibev:      true,
		TryCython:     true,
		LibevIncludes: DefaultLibevIncludes,
		LibevLibdirs:  DefaultLibevLibdirs,
	}
}

func planNames(plan *Plan) []string {
	names := make([]string, 0, len(plan.Extensions))
	for _, ext := range plan.Extensions {
		names = append(names, ext.Name)
	}
	return names
}

func stageByName(t *testing.T, plan *Plan, name string) Stage {
	t.Helper()
	for _, s := range plan.Stages {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("No %q stage in plan: %+v", name, plan.Stages)
	return Stage{}
}

func TestAssembleFullPlan(t *testing.T) {
	fake := &fakeCythonizer{exts: []Extension{
		{Name: "cassandra.cluster", Sources: []string{"cassandra/cluster.c"}},
		{Name: "cassandra.pool", Sources: []string{"cassandra/pool.c"}},
	}}
	planner := NewPlanner(supportedHost, fullOverrides(), fake, quietLogger())

	plan := planner.Assemble(context.Background())

	want := []string{"cassandra.cmurmur3", "cassandra.io.libevwrapper", "cassandra.cluster", "cassandra.pool"}
	got := planNames(plan)
	if len(got) != len(want) {
		t.Fatalf("Plan = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Plan[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	for _, name := range []string{"murmur3", "libev", "cython"} {
		if s := stageByName(t, plan, name); s.Status != StageApplied {
			t.Errorf("Stage %q status = %q, want applied", name, s.Status)
		}
	}
}

func TestAssembleEmptyWhenAllDisabled(t *testing.T) {
	fake := &fakeCythonizer{}
	planner := NewPlanner(supportedHost, Overrides{}, fake, quietLogger())

	plan := planner.Assemble(context.Background())

	if !plan.Empty() {
		t.Errorf("Expected empty plan, got %v", planNames(plan))
	}
	if fake.calls != 0 {
		t.Errorf("Cythonizer called %d times for an ineligible stage", fake.calls)
	}
	for _, s := range plan.Stages {
		if s.Status != StageSkipped {
			t.Errorf("Stage %q status = %q, want skipped", s.Name, s.Status)
		}
	}
}

func TestAssembleSingleFeatureDisabled(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Overrides)
		missing string
	}{
		{
			name:    "murmur3 disabled",
			mutate:  func(o *Overrides) { o.TryMurmur3 = false },
			missing: "cassandra.cmurmur3",
		},
		{
			name:    "libev disabled",
			mutate:  func(o *Overrides) { o.TryLibev = false },
			missing: "cassandra.io.libevwrapper",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			overrides := fullOverrides()
			tc.mutate(&overrides)
			fake := &fakeCythonizer{exts: []Extension{{Name: "cassandra.util"}}}
			planner := NewPlanner(supportedHost, overrides, fake, quietLogger())

			plan := planner.Assemble(context.Background())

			// Exactly one static descriptor is gone; everything else stays.
			if len(plan.Extensions) != 2 {
				t.Fatalf("Plan = %v, want 2 extensions", planNames(plan))
			}
			for _, name := range planNames(plan) {
				if name == tc.missing {
					t.Errorf("Plan still contains %q", tc.missing)
				}
			}
		})
	}
}

func TestAssembleContainsAdapterFailure(t *testing.T) {
	testCases := []struct {
		name string
		fake *fakeCythonizer
	}{
		{
			name: "toolchain unavailable",
			fake: &fakeCythonizer{availErr: fmt.Errorf("%w: no cython binary in PATH", ErrToolUnavailable)},
		},
		{
			name: "translation blew up",
			fake: &fakeCythonizer{err: errors.New("cython exploded")},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fake := tc.fake
			planner := NewPlanner(supportedHost, fullOverrides(), fake, quietLogger())

			plan := planner.Assemble(context.Background())

			// The failure is contained: earlier descriptors survive.
			want := []string{"cassandra.cmurmur3", "cassandra.io.libevwrapper"}
			got := planNames(plan)
			if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
				t.Errorf("Plan = %v, want %v", got, want)
			}

			s := stageByName(t, plan, "cython")
			if s.Status != StageDegraded {
				t.Errorf("Cython stage status = %q, want degraded", s.Status)
			}
			if s.Reason == "" {
				t.Error("Degraded stage should record a reason")
			}
		})
	}
}

func TestAssembleChecksAvailabilityFirst(t *testing.T) {
	fake := &fakeCythonizer{
		availErr: fmt.Errorf("%w: no cython binary in PATH", ErrToolUnavailable),
		exts:     []Extension{{Name: "cassandra.cluster"}},
	}
	planner := NewPlanner(supportedHost, fullOverrides(), fake, quietLogger())

	plan := planner.Assemble(context.Background())

	// An unavailable toolchain short-circuits the stage: translation is
	// never attempted and its canned output never reaches the plan.
	if fake.calls != 0 {
		t.Errorf("Cythonize called %d times despite unavailable toolchain", fake.calls)
	}
	if s := stageByName(t, plan, "cython"); s.Status != StageDegraded {
		t.Errorf("Cython stage status = %q, want degraded", s.Status)
	}
	for _, name := range planNames(plan) {
		if name == "cassandra.cluster" {
			t.Error("Plan contains descriptors from a skipped translation")
		}
	}
}

func TestAssembleRecordsSkipReasons(t *testing.T) {
	bigEndian := Capabilities{SupportedPlatform: true, SupportedByteOrder: false}
	overrides, err := ResolveOverrides(Flags{}, map[string]string{}, bigEndian)
	if err != nil {
		t.Fatal(err)
	}
	planner := NewPlanner(bigEndian, overrides, &fakeCythonizer{}, quietLogger())

	plan := planner.Assemble(context.Background())

	for _, name := range []string{"murmur3", "libev", "cython"} {
		s := stageByName(t, plan, name)
		if s.Status != StageSkipped {
			t.Errorf("Stage %q status = %q, want skipped", name, s.Status)
		}
		if s.Reason != "unsupported byte order" {
			t.Errorf("Stage %q reason = %q, want %q", name, s.Reason, "unsupported byte order")
		}
	}
}

func TestAssemblePassesBatchThrough(t *testing.T) {
	overrides := fullOverrides()
	overrides.BuildConcurrency = 4
	fake := &fakeCythonizer{}
	planner := NewPlanner(supportedHost, overrides, fake, quietLogger())

	planner.Assemble(context.Background())

	if fake.batch.Threads != 4 {
		t.Errorf("Batch threads = %d, want 4", fake.batch.Threads)
	}
	if len(fake.batch.Modules) != 9 {
		t.Errorf("Batch modules = %d, want 9", len(fake.batch.Modules))
	}
	if len(fake.batch.Patterns) != 1 {
		t.Errorf("Batch patterns = %d, want 1", len(fake.batch.Patterns))
	}
}

func TestAssembleWindowsCompileArgs(t *testing.T) {
	windows := Capabilities{Windows: true, SupportedPlatform: true, SupportedByteOrder: true}
	fake := &fakeCythonizer{}
	planner := NewPlanner(windows, fullOverrides(), fake, quietLogger())

	planner.Assemble(context.Background())

	for _, mod := range fake.batch.Modules {
		if len(mod.ExtraCompileArgs) != 0 {
			t.Errorf("Windows candidate %q carries compile args %v", mod.Name, mod.ExtraCompileArgs)
		}
	}
}

func TestAssembleLibevPathsFlowIntoDescriptor(t *testing.T) {
	overrides := fullOverrides()
	overrides.TryCython = false
	overrides.LibevIncludes = []string{"/a", "/b"}
	overrides.LibevLibdirs = []string{"/c"}
	planner := NewPlanner(supportedHost, overrides, &fakeCythonizer{}, quietLogger())

	plan := planner.Assemble(context.Background())

	var libev *Extension
	for i := range plan.Extensions {
		if plan.Extensions[i].Name == "cassandra.io.libevwrapper" {
			libev = &plan.Extensions[i]
		}
	}
	if libev == nil {
		t.Fatal("Plan missing the libev descriptor")
	}
	if libev.IncludeDirs[0] != "/a" || libev.IncludeDirs[1] != "/b" {
		t.Errorf("IncludeDirs = %v, want [/a /b]", libev.IncludeDirs)
	}
	if libev.LibraryDirs[0] != "/c" {
		t.Errorf("LibraryDirs = %v, want [/c]", libev.LibraryDirs)
	}
}
