package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/psai/php/codebase"
	"github.com/dhamidi/psai/project"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"src/Greeter.php": "<?php\n/** Greets people. */\nclass Greeter {\n  public function greet() {}\n}\n",
		"src/broken.php":  "<?php\necho 'hi'\n",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	p, err := project.Load(root)
	if err != nil {
		t.Fatal(err)
	}
	c := codebase.New(p)
	if err := c.ScanAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	s, err := NewServer(c)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func get(t *testing.T, s *Server, target string, asJSON bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if asJSON {
		req.Header.Set("Accept", "application/json")
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestServerPages(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		target   string
		status   int
		contains []string
	}{
		{"/", http.StatusOK, []string{"src/Greeter.php", "src/broken.php", "1 with syntax errors"}},
		{"/f/src/Greeter.php", http.StatusOK, []string{"Greeter", "greet", "Greets people."}},
		{"/f/src/broken.php", http.StatusOK, []string{"1 syntax errors", "expected Semicolon"}},
		{"/f/src/Greeter.php?view=tree", http.StatusOK, []string{"ClassDeclaration"}},
		{"/sidebar?q=GREET", http.StatusOK, []string{"Greeter", "greet"}},
		{"/f/src/missing.php", http.StatusNotFound, nil},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, s, tt.target, false)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			for _, want := range tt.contains {
				if !strings.Contains(rec.Body.String(), want) {
					t.Errorf("body does not contain %q:\n%s", want, rec.Body.String())
				}
			}
		})
	}
}

func TestServerJSON(t *testing.T) {
	s := newTestServer(t)

	var files []FileSummary
	if err := json.Unmarshal(get(t, s, "/", true).Body.Bytes(), &files); err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 || files[0].Path != "src/Greeter.php" || files[0].Symbols != 1 || files[1].Errors != 1 {
		t.Errorf("files = %+v", files)
	}

	var file struct {
		Symbols []jsonSymbol `json:"symbols"`
	}
	if err := json.Unmarshal(get(t, s, "/f/src/Greeter.php", true).Body.Bytes(), &file); err != nil {
		t.Fatal(err)
	}
	if len(file.Symbols) != 1 || file.Symbols[0].Doc != "Greets people." || len(file.Symbols[0].Children) != 1 {
		t.Errorf("symbols = %+v", file.Symbols)
	}

	var matches []SymbolMatch
	if err := json.Unmarshal(get(t, s, "/sidebar?q=greet", true).Body.Bytes(), &matches); err != nil {
		t.Fatal(err)
	}
	if len(matches) != 2 || matches[1].Kind != "method" || matches[1].Line != 4 {
		t.Errorf("matches = %+v", matches)
	}
}
