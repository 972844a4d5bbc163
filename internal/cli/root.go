package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/absurdfarce/extplan"
	"github.com/absurdfarce/extplan/internal/meta"
)

var (
	noExtensions bool
	noMurmur3    bool
	noLibev      bool
	noCython     bool
	verbose      bool
)

// planDocument is the YAML document handed to the packaging command: the
// driver version passed through verbatim plus the assembled plan,
// inlined so the document tracks whatever Plan carries.
type planDocument struct {
	Version      string `yaml:"version"`
	extplan.Plan `yaml:",inline"`
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "extplan",
	Short: "Plan the driver's optional native extensions",
	Long: `extplan decides which of the driver's optional C extensions should be
built on this machine and emits the resulting build plan as YAML on stdout.

A missing toolchain or an unsupported host never fails the plan: affected
extensions are left out and the driver builds without native acceleration.
Only a malformed environment (a non-integer CASS_DRIVER_BUILD_CONCURRENCY)
is fatal.`,
	Version:      meta.Version,
	SilenceUsage: true,
	RunE:         runPlan,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolVar(&noExtensions, "no-extensions", false, "skip all optional extensions")
	rootCmd.Flags().BoolVar(&noMurmur3, "no-murmur3", false, "skip the murmur3 hash extension")
	rootCmd.Flags().BoolVar(&noLibev, "no-libev", false, "skip the libev event loop wrapper")
	rootCmd.Flags().BoolVar(&noCython, "no-cython", false, "skip cython compilation of pure modules")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug diagnostics")

	rootCmd.AddCommand(versionCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "extplan"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	caps := extplan.DetectCapabilities(extplan.CurrentHost())
	reportHost(cmd.ErrOrStderr(), caps)

	flags := extplan.Flags{
		NoExtensions: noExtensions,
		NoMurmur3:    noMurmur3,
		NoLibev:      noLibev,
		NoCython:     noCython,
	}
	overrides, err := extplan.ResolveOverrides(flags, nil, caps)
	if err != nil {
		return err
	}

	planner := extplan.NewPlanner(caps, overrides, extplan.NewCythonTool(logger), logger)
	plan := planner.Assemble(cmd.Context())

	reportDegradation(cmd.ErrOrStderr(), caps, plan)

	doc := planDocument{
		Version: meta.Version,
		Plan:    *plan,
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	return enc.Close()
}
