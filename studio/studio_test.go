package studio

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestLocateAt(t *testing.T) {
	root := t.TempDir()
	s, err := LocateAt(root)
	if err != nil {
		t.Fatalf("LocateAt(%q): %v", root, err)
	}
	if s.Root() != root {
		t.Errorf("Root = %q, want %q", s.Root(), root)
	}
}

func TestLocateAtMissing(t *testing.T) {
	_, err := LocateAt(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrStudioNotFound) {
		t.Errorf("error = %v, want ErrStudioNotFound", err)
	}
}

func TestLocateEnvOverride(t *testing.T) {
	root := t.TempDir()
	t.Setenv(EnvStudioRoot, root)
	s, err := Locate()
	if err != nil {
		t.Fatalf("Locate with override: %v", err)
	}
	if s.Root() != root {
		t.Errorf("Root = %q, want %q", s.Root(), root)
	}
}

func TestLocateEnvOverrideInvalid(t *testing.T) {
	t.Setenv(EnvStudioRoot, filepath.Join(t.TempDir(), "missing"))
	if _, err := Locate(); !errors.Is(err, ErrStudioNotFound) {
		t.Errorf("error = %v, want ErrStudioNotFound", err)
	}
}

func TestStudioPaths(t *testing.T) {
	root := t.TempDir()
	s, err := LocateAt(root)
	if err != nil {
		t.Fatal(err)
	}
	for name, path := range map[string]string{
		"application":     s.ApplicationPath(),
		"content":         s.ContentPath(),
		"plugins":         s.PluginsPath(),
		"builtin plugins": s.BuiltinPluginsPath(),
	} {
		if path == "" {
			t.Errorf("%s path should not be empty", name)
		}
		if !filepath.IsAbs(path) {
			t.Errorf("%s path %q should be absolute", name, path)
		}
	}
}

func TestGetAuthCookie(t *testing.T) {
	t.Setenv(EnvCookie, "SECRET")
	src := EnvCookieSource{}
	if got := GetAuthCookie(src, true); got != "SECRET" {
		t.Errorf("raw cookie = %q", got)
	}
	if got := GetAuthCookie(src, false); got != ".ROBLOSECURITY=SECRET" {
		t.Errorf("formatted cookie = %q", got)
	}
}

func TestGetAuthCookieAbsent(t *testing.T) {
	t.Setenv(EnvCookie, "")
	if got := GetAuthCookie(EnvCookieSource{}, false); got != "" {
		t.Errorf("absent cookie = %q, want empty", got)
	}
}
