package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsZeroValue(t *testing.T) {
	d := Default()
	if d.ShortOpenTag {
		t.Error("ShortOpenTag = true, want false")
	}
	if len(d.ExtraKeywords) != 0 {
		t.Errorf("ExtraKeywords = %v, want empty", d.ExtraKeywords)
	}
}

// TestLoadDecodesTOML covers config.Load's github.com/BurntSushi/toml
// wiring, including the extra_keywords table form.
func TestLoadDecodesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dialect.toml")
	contents := `
short_open_tag = true

[extra_keywords]
elif = "elseif"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !d.ShortOpenTag {
		t.Error("ShortOpenTag = false, want true")
	}
	if got := d.ExtraKeywords["elif"]; got != "elseif" {
		t.Errorf("ExtraKeywords[elif] = %q, want elseif", got)
	}
}

// TestLoadMissingFileReturnsError covers Load's propagation of the
// underlying toml.DecodeFile error for a nonexistent path.
func TestLoadMissingFileReturnsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml")); err == nil {
		t.Fatal("Load on a missing file: err = nil, want non-nil")
	}
}
