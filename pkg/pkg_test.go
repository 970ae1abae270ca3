package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "hyprtxt" {
		t.Errorf("Name = %q", Name)
	}
}

func TestVersion(t *testing.T) {
	data, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatal(err)
	}

	if Version() != strings.TrimSpace(string(data)) {
		t.Errorf("Version() = %q, VERSION = %q", Version(), data)
	}

	if !regexp.MustCompile(`^\d+\.\d+\.\d+`).MatchString(Version()) {
		t.Errorf("Version() = %q is not semantic", Version())
	}
}

func TestPaths(t *testing.T) {
	if Prefix() == "" || strings.HasPrefix(Prefix(), ".") {
		t.Errorf("Prefix() = %q", Prefix())
	}

	if filepath.Base(ConfigDir()) != Prefix() {
		t.Errorf("ConfigDir() = %q", ConfigDir())
	}

	if filepath.Base(CacheDir()) != Prefix() {
		t.Errorf("CacheDir() = %q", CacheDir())
	}

	if got := ConfigPath("config.yaml"); got != filepath.Join(ConfigDir(), "config.yaml") {
		t.Errorf("ConfigPath = %q", got)
	}
}

func TestUserDir_Fallback(t *testing.T) {
	fail := func() (string, error) { return "", os.ErrNotExist }

	t.Setenv("HOME", "/home/someone")

	if got := userDir(fail, ".config"); got != filepath.Join("/home/someone", ".config") {
		t.Errorf("userDir = %q", got)
	}
}
