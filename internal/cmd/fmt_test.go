package cmd

import (
	"strings"
	"testing"
)

func TestFmt_Normalizes(t *testing.T) {
	app, out, dir := setupTestApp(t)
	path := seedProperties(t, dir, "# old header\n  b  :  2\n\na \\\n   = 1\n")

	cmd := newFmtCmd(NewTestProvider(app))
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("fmt failed: %v", err)
	}

	if got, want := readTestFile(t, path), "b=2\na=1\n"; got != want {
		t.Errorf("file contents = %q, want %q", got, want)
	}
	if !strings.Contains(out.String(), "Formatted") {
		t.Errorf("output = %q, want Formatted message", out.String())
	}
}

func TestFmt_ConfiguredComment(t *testing.T) {
	app, _, dir := setupTestApp(t)
	app.Config.Write.Comment = "generated"
	path := seedProperties(t, dir, "a=1\n")

	cmd := newFmtCmd(NewTestProvider(app))
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("fmt failed: %v", err)
	}

	if got, want := readTestFile(t, path), "#generated\na=1\n"; got != want {
		t.Errorf("file contents = %q, want %q", got, want)
	}
}

func TestFmt_Check(t *testing.T) {
	app, _, dir := setupTestApp(t)
	path := seedProperties(t, dir, "a = 1\n")

	cmd := newFmtCmd(NewTestProvider(app))
	cmd.SetArgs([]string{path, "--check"})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "not formatted") {
		t.Fatalf("fmt --check error = %v, want not formatted", err)
	}
	if got := readTestFile(t, path); got != "a = 1\n" {
		t.Errorf("fmt --check modified the file: %q", got)
	}

	writeTestFile(t, path, "a=1\n")
	app2, out, _ := setupTestApp(t)
	cmd = newFmtCmd(NewTestProvider(app2))
	cmd.SetArgs([]string{path, "--check"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("fmt --check on formatted file: %v", err)
	}
	if !strings.Contains(out.String(), "is formatted") {
		t.Errorf("output = %q, want is formatted", out.String())
	}
}
