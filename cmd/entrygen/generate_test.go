package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func generateToFile(t *testing.T, input string, args ...string) string {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "machine.fsm")
	out := filepath.Join(dir, "machine.go")
	if err := os.WriteFile(in, []byte(input), 0o644); err != nil {
		t.Fatal(err)
	}
	runGenerate(newLogger(), append(args, "-input", in, "-output", out))
	src, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	return string(src)
}

func TestGenerateSetRenameMethods(t *testing.T) {
	// rename_methods feeds the graph builder, so the -set spelling has to
	// take effect before the input is interpreted.
	out := generateToFile(t, "Start: int;\nStart -> BeautifulBridge;",
		"-set", "rename_methods=false")
	if !strings.Contains(out, "func (h Start) BeautifulBridge() int {") {
		t.Errorf("transition must keep its verbatim name\n%s", out)
	}
	if strings.Contains(out, "beautiful_bridge") {
		t.Errorf("method was derived before the option applied\n%s", out)
	}
	if !strings.Contains(out, "func (h Start) Get() int {") {
		t.Errorf("accessors must follow the same toggle\n%s", out)
	}
}

func TestGenerateDotGraphName(t *testing.T) {
	out := generateToFile(t, "digraph Traffic { red -> green; }", "-lang", "dot")
	if !strings.Contains(out, "type Traffic struct {") {
		t.Errorf("graph name must become the container name\n%s", out)
	}
}

func TestGenerateDotGraphNameOverride(t *testing.T) {
	out := generateToFile(t, "digraph Traffic { red -> green; }",
		"-lang", "dot", "-set", "name=Signal")
	if !strings.Contains(out, "type Signal struct {") {
		t.Errorf("an explicit name must win over the graph name\n%s", out)
	}
}
