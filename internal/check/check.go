// Package check provides the environment diagnostic behind the check
// command: LUT search root availability, rules file health, and project
// snapshot readability.
package check

import (
	"os"
	"strings"

	"github.com/backmassage/lutrules/internal/config"
	"github.com/backmassage/lutrules/internal/host"
	"github.com/backmassage/lutrules/internal/lut"
	"github.com/backmassage/lutrules/internal/rules"
)

// Logger is the minimal logging interface needed by Run, satisfied by
// *zap.SugaredLogger. Defined here so the package stays testable with a
// recording fake.
type Logger interface {
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Errorf(string, ...interface{})
}

// Run reports on each part of the setup in turn. It is informational only
// and never stops on failure; the summary at the end says whether a run
// could proceed.
func Run(cfg *config.Config, log Logger) {
	log.Infof("=== Setup Check ===")

	ok := checkLUTRoots(cfg, log)
	ok = checkRulesFile(cfg, log) && ok
	ok = checkProject(cfg, log) && ok

	if ok {
		log.Infof("All checks passed")
	} else {
		log.Warnf("Some checks failed; see above")
	}
}

// checkLUTRoots scans every configured search root and reports how many LUT
// resources each one holds. A missing root is a warning, not an error; hosts
// differ in which defaults exist.
func checkLUTRoots(cfg *config.Config, log Logger) bool {
	roots := append(lut.DefaultSearchRoots(), cfg.ExtraLUTDirs...)
	reg := lut.NewRegistry(roots)
	if err := reg.Rescan(); err != nil {
		log.Errorf("LUT scan failed: %v", err)
		return false
	}

	counts := reg.CountByRoot()
	anyRoot := false
	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			log.Warnf("LUT root missing: %s", root)
			continue
		}
		anyRoot = true
		log.Infof("LUT root %s: %d file(s)", root, counts[root])
	}
	if !anyRoot {
		log.Errorf("No LUT search root exists")
		return false
	}
	log.Infof("LUT catalog: %d resource(s) total", reg.Len())
	return true
}

// checkRulesFile parses the rules file and reports how many rows are
// enabled. Display-name resolution against the catalog happens at run time,
// so only structural problems surface here.
func checkRulesFile(cfg *config.Config, log Logger) bool {
	if cfg.RulesFile == "" {
		log.Warnf("No rules file configured (--rules)")
		return false
	}
	specs, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		log.Errorf("Rules file: %v", err)
		return false
	}
	enabled := 0
	for _, s := range specs {
		if s.Enabled {
			enabled++
		}
	}
	log.Infof("Rules file %s: %d row(s), %d enabled", cfg.RulesFile, len(specs), enabled)
	if enabled == 0 {
		log.Errorf("Rules file has no enabled rules: %v", rules.ErrConfiguration)
		return false
	}
	return true
}

// checkProject loads the project snapshot and reports the timelines it
// contains, flagging any requested timeline names the project lacks.
func checkProject(cfg *config.Config, log Logger) bool {
	if cfg.ProjectFile == "" {
		log.Warnf("No project file configured (--project)")
		return false
	}
	snap, err := host.LoadSnapshot(cfg.ProjectFile)
	if err != nil {
		log.Errorf("Project file: %v", err)
		return false
	}
	log.Infof("Project %s: %d timeline(s)", cfg.ProjectFile, len(snap.Timelines))

	if missing := snap.MissingNames(cfg.Timelines); len(missing) > 0 {
		log.Errorf("Requested timelines not in project: %s", strings.Join(missing, ", "))
		return false
	}
	return true
}
