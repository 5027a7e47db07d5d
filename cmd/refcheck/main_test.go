package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const appTree = "../../internal/hir/testdata/app.yaml"

const appConfig = `
paths:
  - path: app::Thing::zeroed_ref
    tag: zero-fill
  - path: app::Zeroed::zeroed_ref
    tag: uninit
ignore:
  - app::broken
output:
  format: text
  color: off
`

func writeConfig(t *testing.T, text string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".refguard.yml")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if errOut.Len() > 0 {
		t.Log(errOut.String())
	}
	return out.String(), err
}

func TestCheck(t *testing.T) {
	cfg := writeConfig(t, appConfig)

	out, err := execute(t, "check", "--config", cfg, appTree)
	if !errors.Is(err, errFindings) {
		t.Fatalf("expected findings, got %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	var summaries []string
	for _, line := range lines {
		if strings.HasPrefix(line, "src/lib.rs:") {
			summaries = append(summaries, line)
		}
	}
	if len(summaries) != 7 {
		t.Fatalf("got %d diagnostics, want 7:\n%s", len(summaries), out)
	}
	if summaries[0] != "src/lib.rs:5:30: error[invalid_ref]: null reference" {
		t.Errorf("unexpected first diagnostic %q", summaries[0])
	}
	if strings.Contains(out, "internal-error") {
		t.Errorf("ignored unit must not be reported:\n%s", out)
	}
}

func TestCheckClean(t *testing.T) {
	cfg := writeConfig(t, appConfig+`
rules:
  invalid_ref: false
  transmuting_null:
    severity: warning
`)

	out, err := execute(t, "check", "--config", cfg, "--format", "json", "-j", "2", appTree)
	if err != nil {
		t.Fatalf("warnings must not fail the check: %v", err)
	}
	if strings.Contains(out, "invalid_ref") {
		t.Errorf("disabled rule reported:\n%s", out)
	}
	if !strings.Contains(out, "transmuting_null") {
		t.Errorf("enabled rule missing:\n%s", out)
	}
}

func TestCheckGoSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "snippet.go")
	err := os.WriteFile(src, []byte(`package snippet

func f() int {
	return 1
}
`), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "check", "--config", writeConfig(t, "{}"), src)
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestCheckUnknownFormat(t *testing.T) {
	_, err := execute(t, "check", "--config", writeConfig(t, appConfig), "--format", "xml", appTree)
	if err == nil || errors.Is(err, errFindings) {
		t.Errorf("expected format error, got %v", err)
	}
}

func TestInspect(t *testing.T) {
	cfg := writeConfig(t, appConfig)

	out, err := execute(t, "inspect", "--config", cfg, appTree, "src/lib.rs", "141")
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"call",
		"src/lib.rs:5:30",
		"core::mem::zeroed [zero-fill]",
		"matched: null reference",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("%q is missing in\n%s", want, out)
		}
	}

	if _, err := execute(t, "inspect", "--config", cfg, appTree, "src/lib.rs", "0"); err == nil {
		t.Error("offset outside of units must be an error")
	}
}

func TestConvert(t *testing.T) {
	cfg := writeConfig(t, appConfig)
	converted := filepath.Join(t.TempDir(), "app.msgpack")

	if _, err := execute(t, "convert", appTree, converted); err != nil {
		t.Fatal(err)
	}

	want, _ := execute(t, "check", "--config", cfg, appTree)
	got, _ := execute(t, "check", "--config", cfg, converted)
	if got != want {
		t.Errorf("converted tree gives different results:\n%s\nvs\n%s", got, want)
	}
}

func TestListings(t *testing.T) {
	cfg := writeConfig(t, appConfig+`
rules:
  transmuting_null: false
`)

	out, err := execute(t, "rules", "--config", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "invalid_ref") || !strings.Contains(out, "disabled") {
		t.Errorf("unexpected rules listing:\n%s", out)
	}

	out, err = execute(t, "paths", "--config", cfg)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"core::mem::zeroed", "app::Thing::zeroed_ref"} {
		if !strings.Contains(out, want) {
			t.Errorf("%q is missing in\n%s", want, out)
		}
	}
}
