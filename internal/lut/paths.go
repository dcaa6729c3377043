package lut

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultSearchRoots returns the well-known LUT directories for the current
// OS: the system-wide install location plus the per-user one. Roots that do
// not exist are skipped later, at scan time.
func DefaultSearchRoots() []string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return []string{
			"/Library/Application Support/Blackmagic Design/DaVinci Resolve/LUT",
			filepath.Join(home, "Library/Application Support/Blackmagic Design/DaVinci Resolve/User/LUT"),
		}
	case "windows":
		programData := os.Getenv("PROGRAMDATA")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		roots := []string{
			filepath.Join(programData, "Blackmagic Design", "DaVinci Resolve", "LUT"),
		}
		if appData := os.Getenv("APPDATA"); appData != "" {
			roots = append(roots, filepath.Join(appData, "Blackmagic Design", "DaVinci Resolve", "LUT"))
		}
		return roots
	default: // linux and friends
		home, _ := os.UserHomeDir()
		return []string{
			"/opt/resolve/LUT",
			filepath.Join(home, ".local/share/DaVinciResolve/LUT"),
		}
	}
}
