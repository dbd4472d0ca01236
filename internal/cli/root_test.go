package cli

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"solve", "validate", "render", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"json"}},
		{"json", []string{"json"}},
		{"json,dot,svg", []string{"json", "dot", "svg"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "market.json")
	artifacts := map[string][]byte{
		"json": []byte(`{}`),
		"dot":  []byte("digraph matching {}\n"),
	}

	paths, err := writeArtifacts(artifacts, []string{"json", "dot"}, input, "")
	if err != nil {
		t.Fatalf("writeArtifacts error: %v", err)
	}
	want := []string{
		filepath.Join(dir, "market.result.json"),
		filepath.Join(dir, "market.dot"),
	}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("artifact %s not written: %v", p, err)
		}
	}
}

func TestWriteArtifactsExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "custom.dot")

	paths, err := writeArtifacts(map[string][]byte{"dot": []byte("digraph matching {}\n")},
		[]string{"dot"}, filepath.Join(dir, "market.json"), out)
	if err != nil {
		t.Fatalf("writeArtifacts error: %v", err)
	}
	if len(paths) != 1 || paths[0] != out {
		t.Errorf("paths = %v, want [%s]", paths, out)
	}
}

func TestSolveCommandEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "market.json")
	payload := `{
	  "agents": {"preferences": [[2, 1], [1, 2]]},
	  "objects": {"preferences": [[2, 1], [1, 2]]}
	}`
	if err := os.WriteFile(input, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"solve", "ttc2", input, "--no-cache"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err != nil {
		t.Fatalf("solve command error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "market.result.json")); err != nil {
		t.Errorf("result file not written: %v", err)
	}
}

func TestSolveCommandRejectsBadFormat(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"solve", "ttc2", "market.json", "-f", "pdf"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err == nil {
		t.Error("expected error for unsupported format")
	}
}
