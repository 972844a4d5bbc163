package extplan

import (
	"fmt"
	"os/exec"
	"strings"
)

// ToolChecker is implemented by translation backends that depend on
// external tools. The Planner consults it through Cythonizer.Available
// before attempting a translation, so a missing toolchain degrades the
// stage up front instead of failing mid-batch.
type ToolChecker interface {
	// RequiredTools returns the tools the backend needs.
	RequiredTools() []ToolRequirement

	// CheckTools verifies that all required tools are available. Optional
	// tools are reported but never cause an error.
	CheckTools() error
}

// ToolRequirement describes one external tool a translation step needs.
//
// A requirement is satisfied by the primary name or any of its
// alternatives being on PATH. Optional tools are reported but never fail
// the check: a missing C compiler, for example, is a problem for the
// later compile step, not for planning.
type ToolRequirement struct {
	Name         string   // primary binary name, e.g. "cython"
	Alternatives []string // alternative names that satisfy the requirement
	Optional     bool     // missing optional tools do not fail the check
	Purpose      string   // human-readable reason the tool is needed
}

// names returns the primary name followed by the alternatives.
func (r ToolRequirement) names() []string {
	return append([]string{r.Name}, r.Alternatives...)
}

// lookupTool resolves the first of names found by lookPath. All
// availability checks funnel through here so backends can swap the
// lookup in tests.
func lookupTool(lookPath func(string) (string, error), names ...string) (string, error) {
	for _, name := range names {
		if path, err := lookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s not found in PATH", strings.Join(names, ", "))
}

// CheckToolAvailable reports whether a tool is available on PATH.
func CheckToolAvailable(tool string) error {
	_, err := lookupTool(exec.LookPath, tool)
	return err
}

// CheckRequiredTools verifies a list of requirements against PATH,
// collecting every missing required tool into a single error so the user
// sees the full picture at once.
func CheckRequiredTools(requirements []ToolRequirement) error {
	return checkRequiredTools(requirements, exec.LookPath)
}

func checkRequiredTools(requirements []ToolRequirement, lookPath func(string) (string, error)) error {
	var missing []string

	for _, req := range requirements {
		if _, err := lookupTool(lookPath, req.names()...); err == nil || req.Optional {
			continue
		}
		if req.Purpose != "" {
			missing = append(missing, fmt.Sprintf("%s (%s)", req.Name, req.Purpose))
		} else {
			missing = append(missing, req.Name)
		}
	}

	switch len(missing) {
	case 0:
		return nil
	case 1:
		return fmt.Errorf("%s not found in PATH", missing[0])
	default:
		return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
	}
}
