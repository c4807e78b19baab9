package project

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func relative(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, len(files))
	for i, file := range files {
		rel, err := filepath.Rel(root, file)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestLoadWithoutConfigUsesDefaults(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"index.php":            "<?php echo 1;",
		"src/App.php":          "<?php class App {}",
		"src/view.phtml":       "<p></p>",
		"vendor/lib/Lib.php":   "<?php",
		"README.md":            "# readme",
		"sub/.git/hooks/a.php": "<?php",
	})

	p, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.ConfigFile != "" {
		t.Errorf("ConfigFile = %q, want none", p.ConfigFile)
	}
	if !p.Config.Scan.Cache {
		t.Error("cache should default to on")
	}

	files, err := p.Files()
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	want := []string{"index.php", "src/App.php"}
	if got := relative(t, p.RootDir, files); !slices.Equal(got, want) {
		t.Errorf("Files = %v, want %v", got, want)
	}
}

func TestLoadFindsConfigInParent(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		ConfigFileName: `
[source]
roots = ["src", "lib"]
extensions = ["php", ".phtml"]
exclude = ["src/generated"]
encoding = "windows-1252"

[scan]
jobs = 3
cache = false
cache_dir = ".cache"
`,
		"src/a/A.php":           "<?php",
		"src/a/view.phtml":      "<p></p>",
		"src/generated/Gen.php": "<?php",
		"lib/L.php":             "<?php",
		"other/O.php":           "<?php",
	})

	p, err := Load(filepath.Join(root, "src", "a"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.RootDir != root {
		t.Errorf("RootDir = %q, want %q", p.RootDir, root)
	}
	if got := p.Config.Scan.Workers(); got != 3 {
		t.Errorf("Workers = %d, want 3", got)
	}
	if p.Config.Scan.Cache {
		t.Error("cache should be off")
	}
	cacheDir, err := p.CachePath()
	if err != nil || cacheDir != filepath.Join(root, ".cache") {
		t.Errorf("CachePath = %q, %v", cacheDir, err)
	}

	files, err := p.Files()
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	want := []string{"lib/L.php", "src/a/A.php", "src/a/view.phtml"}
	if got := relative(t, root, files); !slices.Equal(got, want) {
		t.Errorf("Files = %v, want %v", got, want)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"invalid toml", "[source", "parse TOML"},
		{"unknown key", "[source]\nrootz = [\"src\"]\n", "unknown keys: source.rootz"},
		{"negative jobs", "[scan]\njobs = -1\n", "scan.jobs"},
		{"empty roots", "[source]\nroots = []\n", "source.roots"},
		{"unknown encoding", "[source]\nencoding = \"klingon\"\n", "unknown encoding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFiles(t, root, map[string]string{ConfigFileName: tt.content})
			_, err := Load(root)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		encoding string
		want     string
	}{
		{"utf-8 passes through", []byte("<?php 'é';"), "utf-8", "<?php 'é';"},
		{"invalid utf-8 is kept", []byte("<?php '\xff';"), "", "<?php '\xff';"},
		{"latin-1", []byte("<?php '\xe9';"), "iso-8859-1", "<?php 'é';"},
		{"windows-1252", []byte("<?php '\x80';"), "windows-1252", "<?php '€';"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.data, tt.encoding)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInitWritesLoadableConfig(t *testing.T) {
	root := t.TempDir()

	file, err := Init(root)
	if err != nil {
		t.Fatal(err)
	}
	if file != filepath.Join(root, ConfigFileName) {
		t.Errorf("Init = %s", file)
	}

	p, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if p.ConfigFile != file {
		t.Errorf("ConfigFile = %q, want %q", p.ConfigFile, file)
	}
	want := DefaultConfig()
	if !slices.Equal(p.Config.Source.Exclude, want.Source.Exclude) || p.Config.Scan != want.Scan {
		t.Errorf("config = %+v, want %+v", p.Config, want)
	}

	if _, err := Init(root); err == nil {
		t.Error("second Init succeeded")
	}
}
