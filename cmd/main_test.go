package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestMain_RunError(t *testing.T) {
	origRun := run
	origExit := osExit
	defer func() {
		run = origRun
		osExit = origExit
	}()

	var gotCode int
	osExit = func(code int) { gotCode = code }
	run = func() error { return fmt.Errorf("something went wrong") }

	// Capture stderr
	origStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	main()

	w.Close()
	os.Stderr = origStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)

	if gotCode != 1 {
		t.Errorf("expected exit code 1, got %d", gotCode)
	}
	if !strings.Contains(buf.String(), "something went wrong") {
		t.Errorf("expected error on stderr, got: %s", buf.String())
	}
}

func TestMain_RunSuccess(t *testing.T) {
	origRun := run
	origExit := osExit
	defer func() {
		run = origRun
		osExit = origExit
	}()

	var gotCode int = -1
	osExit = func(code int) { gotCode = code }
	run = func() error { return nil }

	main()

	if gotCode != -1 {
		t.Errorf("expected osExit not to be called, but got code %d", gotCode)
	}
}

func TestRun_HelpFlag(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"props", "--help"}

	if err := run(); err != nil {
		t.Errorf("run(--help) returned error: %v", err)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"props", "nonexistent-command-xyz"}

	if err := run(); err == nil {
		t.Error("run(unknown command) should return error")
	}
}
