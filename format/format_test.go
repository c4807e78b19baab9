package format

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/vmihailenco/msgpack/v5"
)

func TestNewEncoderRejectsUnknownFormats(t *testing.T) {
	if _, err := NewTreeEncoder("yaml", &bytes.Buffer{}); err == nil {
		t.Error("NewTreeEncoder(yaml) succeeded")
	}
	if _, err := NewTokenEncoder("text", &bytes.Buffer{}, 0); err == nil {
		t.Error("NewTokenEncoder(text) succeeded")
	}
}

func TestRecords(t *testing.T) {
	doc := NewDocument("a.php", "<?php\n$a;")
	records := doc.Records()

	if len(records) != len(doc.Tokens) {
		t.Fatalf("records = %d, want %d", len(records), len(doc.Tokens))
	}
	last := records[len(records)-1]
	if last.Kind != "EndOfFile" {
		t.Errorf("last kind = %s, want EndOfFile", last.Kind)
	}

	var text strings.Builder
	for _, r := range records {
		text.WriteString(r.Text)
	}
	if text.String() != doc.Source {
		t.Errorf("records text = %q, want %q", text.String(), doc.Source)
	}

	for _, r := range records {
		if r.Text == "$a" {
			if r.Line != 2 || r.Column != 1 || r.Mode != "Scripting" {
				t.Errorf("$a record = %+v, want 2:1 in Scripting", r)
			}
		}
	}
}

func TestLineEncoder(t *testing.T) {
	src := "<?php echo 'a rather long string literal';"
	tests := []struct {
		name  string
		width int
	}{
		{"unlimited", 0},
		{"narrow", 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			doc := NewDocument("a.php", src)
			if err := NewLineEncoder(&buf, tt.width).Encode(doc); err != nil {
				t.Fatal(err)
			}
			lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
			if len(lines) != len(doc.Tokens) {
				t.Fatalf("lines = %d, want %d:\n%s", len(lines), len(doc.Tokens), buf.String())
			}
			if !strings.HasPrefix(lines[0], "1:1\tOpenTag\t") {
				t.Errorf("first line = %q", lines[0])
			}
			for _, line := range lines {
				fields := strings.SplitN(line, "\t", 3)
				if len(fields) != 3 {
					t.Fatalf("line %q has %d fields", line, len(fields))
				}
				if tt.width > 0 && runewidth.StringWidth(fields[2]) > tt.width {
					t.Errorf("text %q is wider than %d", fields[2], tt.width)
				}
			}
			long := strings.Contains(buf.String(), "string literal")
			if long != (tt.width == 0) {
				t.Errorf("full literal shown = %v with width %d", long, tt.width)
			}
		})
	}
}

func TestTokenJSONAndMsgpackAgree(t *testing.T) {
	doc := NewDocument("a.php", "<?php echo \"hi $name\";")

	var jsonBuf, mpBuf bytes.Buffer
	if err := NewTokenJSONEncoder(&jsonBuf).Encode(doc); err != nil {
		t.Fatal(err)
	}
	if err := NewMsgpackEncoder(&mpBuf).Encode(doc); err != nil {
		t.Fatal(err)
	}

	var fromJSON, fromMsgpack []TokenRecord
	if err := json.Unmarshal(jsonBuf.Bytes(), &fromJSON); err != nil {
		t.Fatal(err)
	}
	if err := msgpack.Unmarshal(mpBuf.Bytes(), &fromMsgpack); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(fromJSON, doc.Records()) {
		t.Errorf("json records differ:\n%+v\n%+v", fromJSON, doc.Records())
	}
	if !reflect.DeepEqual(fromMsgpack, fromJSON) {
		t.Errorf("msgpack records differ:\n%+v\n%+v", fromMsgpack, fromJSON)
	}
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	doc := NewDocument("a.php", "<?php echo 1")
	if err := NewJSONEncoder(&buf).Encode(doc); err != nil {
		t.Fatal(err)
	}

	var got struct {
		Path   string `json:"path"`
		Errors int    `json:"errors"`
		Tree   struct {
			Kind     string            `json:"kind"`
			Children []json.RawMessage `json:"children"`
		} `json:"tree"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("%s\n%s", err, buf.String())
	}
	if got.Path != "a.php" || got.Errors != 1 || got.Tree.Kind != "StatementList" || len(got.Tree.Children) == 0 {
		t.Errorf("json = %+v", got)
	}
}

func TestTextAndErrorEncoders(t *testing.T) {
	doc := NewDocument("a.php", "<?php echo 'hi'")

	var text bytes.Buffer
	if err := NewTextEncoder(&text).Encode(doc); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(text.String(), "StatementList") || !strings.Contains(text.String(), "EchoIntrinsic") {
		t.Errorf("outline:\n%s", text.String())
	}

	var errs bytes.Buffer
	if err := NewErrorEncoder(&errs).Encode(doc); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(errs.String()), "\n")
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "a.php:1:") || !strings.HasSuffix(lines[0], "expected Semicolon") {
		t.Errorf("errors = %q", errs.String())
	}

	errs.Reset()
	if err := NewErrorEncoder(&errs).Encode(NewDocument("b.php", "<?php echo 'hi';")); err != nil {
		t.Fatal(err)
	}
	if errs.Len() != 0 {
		t.Errorf("errors for valid input = %q", errs.String())
	}
}
