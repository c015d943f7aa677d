package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ZaguanLabs/tmt"
)

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer

	if err := run([]string{"-version"}, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, tmt.Name) {
		t.Errorf("Expected name in version output, got %q", out)
	}
	if !strings.Contains(out, tmt.Version) {
		t.Errorf("Expected version in output, got %q", out)
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer

	if err := run([]string{"-bogus"}, &stdout, &stderr); err == nil {
		t.Fatal("Expected error for unknown flag")
	}
	if !strings.Contains(stderr.String(), "bogus") {
		t.Errorf("Expected flag usage in stderr, got %q", stderr.String())
	}
}

func TestRun_MissingConfig(t *testing.T) {
	t.Setenv("MONGO_URI", "")

	var stdout, stderr bytes.Buffer
	if err := run(nil, &stdout, &stderr); err == nil {
		t.Fatal("Expected error when MONGO_URI is unset")
	}
}
