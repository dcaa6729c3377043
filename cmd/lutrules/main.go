// Command lutrules is the entrypoint for the rule-based LUT batch tool.
// It reads a project snapshot and an authored rules file, and can scan
// property values, list the LUT catalog, preview matches, apply mutations,
// or check the setup.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/backmassage/lutrules/internal/apply"
	"github.com/backmassage/lutrules/internal/check"
	"github.com/backmassage/lutrules/internal/config"
	"github.com/backmassage/lutrules/internal/display"
	"github.com/backmassage/lutrules/internal/host"
	"github.com/backmassage/lutrules/internal/logging"
	"github.com/backmassage/lutrules/internal/lut"
	"github.com/backmassage/lutrules/internal/rules"
	"github.com/backmassage/lutrules/internal/scan"
)

// version and commit are set at build time via -ldflags (e.g. Makefile).
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "lutrules: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Default()
	var colorMode string

	root := &cobra.Command{
		Use:           "lutrules",
		Short:         "Apply LUTs to timeline clips by property-matching rules",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.ColorMode = config.ColorMode(colorMode)
			return cfg.Validate()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&cfg.ProjectFile, "project", "p", "", "YAML project snapshot")
	pf.StringVarP(&cfg.RulesFile, "rules", "r", "", "TOML rules file")
	pf.StringSliceVarP(&cfg.Timelines, "timeline", "t", nil, "timeline name to process (repeatable; default all)")
	pf.StringSliceVar(&cfg.ExtraLUTDirs, "lut-dir", nil, "extra LUT search root (repeatable)")
	pf.BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&colorMode, "color", string(config.ColorAuto), "color output: auto, always, never")
	pf.StringVar(&cfg.LogFile, "log-file", "", "append log output to this file")

	root.AddCommand(
		newScanCmd(&cfg),
		newLUTsCmd(&cfg),
		newPreviewCmd(&cfg),
		newApplyCmd(&cfg),
		newCheckCmd(&cfg),
	)
	return root
}

func newScanCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "List the distinct property values present in the selected timelines",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, closer, err := logging.New(cfg)
			if err != nil {
				return err
			}
			defer closer()

			snap, err := loadSnapshot(cfg, log)
			if err != nil {
				return err
			}
			d, err := scan.New(snap, cfg.Timelines).Rescan()
			if err != nil {
				return err
			}
			fmt.Print(display.FormatDiscovered(d))
			return nil
		},
	}
}

func newLUTsCmd(cfg *config.Config) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "luts",
		Short: "List the LUT catalog available for rule authoring",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, closer, err := logging.New(cfg)
			if err != nil {
				return err
			}
			defer closer()

			reg, err := newRegistry(cfg)
			if err != nil {
				return err
			}
			fmt.Print(display.FormatCatalog(reg.DisplayNames()))

			if !watch {
				return nil
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			log.Infof("Watching LUT roots for changes (ctrl-c to stop)")
			return reg.Watch(ctx, func() {
				log.Infof("Catalog changed: %d resource(s)", reg.Len())
				fmt.Print(display.FormatCatalog(reg.DisplayNames()))
			})
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep running and reprint the catalog when LUT roots change")
	return cmd
}

func newPreviewCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Show which items the enabled rules would change, without mutating",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, closer, err := logging.New(cfg)
			if err != nil {
				return err
			}
			defer closer()

			a, containers, err := buildRun(cfg, log)
			if err != nil {
				return err
			}
			fmt.Print(display.FormatMatches(a.Preview(containers)))
			return nil
		},
	}
}

func newApplyCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Apply the enabled rules to the selected timelines",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, closer, err := logging.New(cfg)
			if err != nil {
				return err
			}
			defer closer()

			display.PrintBanner()
			a, containers, err := buildRun(cfg, log)
			if err != nil {
				return err
			}

			res := a.Apply(containers)
			fmt.Print(display.FormatSummary(res))
			if res.Errors > 0 {
				return errors.Newf("%d item(s) failed", res.Errors)
			}
			return nil
		},
	}
}

func newCheckCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check LUT roots, rules file, and project snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, closer, err := logging.New(cfg)
			if err != nil {
				return err
			}
			defer closer()
			check.Run(cfg, log)
			return nil
		},
	}
}

// loadSnapshot reads the project snapshot and warns about requested
// timeline names it does not contain.
func loadSnapshot(cfg *config.Config, log *zap.SugaredLogger) (*host.Snapshot, error) {
	if cfg.ProjectFile == "" {
		return nil, errors.New("no project file (--project)")
	}
	snap, err := host.LoadSnapshot(cfg.ProjectFile)
	if err != nil {
		return nil, err
	}
	for _, name := range snap.MissingNames(cfg.Timelines) {
		log.Warnf("Timeline %q not found in project", name)
	}
	return snap, nil
}

// loadContainers returns the selected timelines. An empty selection is an
// error since every command that gets here needs items to work on.
func loadContainers(cfg *config.Config, log *zap.SugaredLogger) ([]host.Container, error) {
	snap, err := loadSnapshot(cfg, log)
	if err != nil {
		return nil, err
	}
	containers, err := snap.ListContainers(cfg.Timelines)
	if err != nil {
		return nil, err
	}
	if len(containers) == 0 {
		return nil, errors.New("no timelines selected")
	}
	return containers, nil
}

// newRegistry builds and populates the LUT catalog from the default search
// roots plus any configured extras.
func newRegistry(cfg *config.Config) (*lut.Registry, error) {
	roots := append(lut.DefaultSearchRoots(), cfg.ExtraLUTDirs...)
	reg := lut.NewRegistry(roots)
	if err := reg.Rescan(); err != nil {
		return nil, errors.Wrap(err, "scan lut roots")
	}
	return reg, nil
}

// buildRun assembles everything preview and apply share: the LUT catalog,
// the compiled rule set, and the selected timelines.
func buildRun(cfg *config.Config, log *zap.SugaredLogger) (*apply.Applier, []host.Container, error) {
	if cfg.RulesFile == "" {
		return nil, nil, errors.New("no rules file (--rules)")
	}
	reg, err := newRegistry(cfg)
	if err != nil {
		return nil, nil, err
	}
	specs, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		return nil, nil, err
	}
	rs, err := rules.FromSpecs(specs, reg)
	if err != nil {
		return nil, nil, err
	}
	log.Debugf("Compiled %d enabled rule(s) against %d catalog entries", len(rs), reg.Len())

	a, err := apply.New(rs, log)
	if err != nil {
		return nil, nil, err
	}
	containers, err := loadContainers(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return a, containers, nil
}
