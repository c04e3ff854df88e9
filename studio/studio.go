// Package studio locates a local Roblox Studio installation and reads
// the local auth cookie. Both are external collaborators: nothing here
// touches the document codec, and hosts without Studio installed only
// see ErrStudioNotFound from the path helpers.
package studio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ErrStudioNotFound is returned when no Studio installation could be
// located on this machine.
var ErrStudioNotFound = errors.New("studio: installation not found")

// EnvStudioRoot overrides installation discovery when set.
const EnvStudioRoot = "RBXDOC_STUDIO_ROOT"

// Studio describes a located installation.
type Studio struct {
	root string
}

// Locate finds an installed Studio: the env override first, then the
// platform's conventional install roots.
func Locate() (*Studio, error) {
	if root := os.Getenv(EnvStudioRoot); root != "" {
		return LocateAt(root)
	}
	for _, root := range defaultRoots() {
		if s, err := LocateAt(root); err == nil {
			return s, nil
		}
	}
	return nil, ErrStudioNotFound
}

// LocateAt validates a specific installation root.
func LocateAt(root string) (*Studio, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: root %q", ErrStudioNotFound, root)
	}
	return &Studio{root: root}, nil
}

func defaultRoots() []string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		return []string{
			filepath.Join(os.Getenv("LOCALAPPDATA"), "Roblox", "Versions"),
			filepath.Join(os.Getenv("PROGRAMFILES"), "Roblox", "Versions"),
		}
	case "darwin":
		return []string{
			"/Applications/RobloxStudio.app/Contents",
			filepath.Join(home, "Applications", "RobloxStudio.app", "Contents"),
		}
	default:
		// No native Linux Studio; Wine prefixes are the convention.
		return []string{
			filepath.Join(home, ".wine", "drive_c", "Program Files (x86)", "Roblox", "Versions"),
		}
	}
}

// Root returns the installation root directory.
func (s *Studio) Root() string { return s.root }

// ApplicationPath returns the Studio executable path.
func (s *Studio) ApplicationPath() string {
	if runtime.GOOS == "darwin" {
		return filepath.Join(s.root, "MacOS", "RobloxStudio")
	}
	return filepath.Join(s.root, "RobloxStudioBeta.exe")
}

// ContentPath returns the bundled content directory.
func (s *Studio) ContentPath() string {
	if runtime.GOOS == "darwin" {
		return filepath.Join(s.root, "Resources", "content")
	}
	return filepath.Join(s.root, "content")
}

// PluginsPath returns the user plugins directory.
func (s *Studio) PluginsPath() string {
	home, _ := os.UserHomeDir()
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "Roblox", "Plugins")
	}
	return filepath.Join(home, "Documents", "Roblox", "Plugins")
}

// BuiltinPluginsPath returns the built-in plugins directory inside the
// installation.
func (s *Studio) BuiltinPluginsPath() string {
	if runtime.GOOS == "darwin" {
		return filepath.Join(s.root, "Resources", "BuiltInPlugins")
	}
	return filepath.Join(s.root, "BuiltInPlugins")
}
