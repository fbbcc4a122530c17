package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRootPassesArgsThrough(t *testing.T) {
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"--help", "nothing-to-do"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}
	// flags are not interpreted by cobra, so --help reaches the keyword scan as plain text
	if !strings.HasPrefix(out.String(), "Help: ./") || !strings.Contains(out.String(), "status | start | stop | daemon") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunRejectsBadEnvironment(t *testing.T) {
	t.Setenv("SSSD_LOG_FORMAT", "xml")
	if err := run(context.Background(), []string{"x", "status"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unknown log format")
	}
}

func TestRunStatus(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"x", "status"}, &out); err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out.String(), "is stopped!") && !strings.Contains(out.String(), "is running.") {
		t.Fatalf("unexpected status output: %q", out.String())
	}
}
