package render

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrNoRenderer is returned by renderers that decline to produce output.
var ErrNoRenderer = errors.New("no renderer available")

// Renderer turns diagram text into markup suitable for embedding in
// generated documentation. Implementations return ErrNoRenderer to skip
// rendering without failing the caller.
type Renderer interface {
	Render(diagram string) (string, error)
}

// Nop never renders anything.
type Nop struct{}

func (Nop) Render(string) (string, error) {
	return "", ErrNoRenderer
}

// Maybe forwards to the inner renderer, or skips rendering when it is nil.
func Maybe(r Renderer) Renderer {
	if r == nil {
		return Nop{}
	}
	return r
}

// DefaultMermaidURL is the module URL embedded by the Mermaid renderer.
const DefaultMermaidURL = "https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.esm.min.mjs"

// Mermaid wraps mermaid diagram text in markup that loads mermaidjs when the
// documentation is viewed in a browser.
type Mermaid struct {
	// URL overrides DefaultMermaidURL when set.
	URL string
}

func (m Mermaid) Render(diagram string) (string, error) {
	url := m.URL
	if url == "" {
		url = DefaultMermaidURL
	}
	var b strings.Builder
	b.WriteString("<pre class=\"mermaid\">\n")
	b.WriteString(diagram)
	b.WriteString("</pre>\n")
	fmt.Fprintf(&b, "<script type=\"module\">import mermaid from %q;</script>", url)
	return b.String(), nil
}

// Graphviz renders DOT text to SVG by shelling out to the dot executable.
// The subprocess call is synchronous; its failure never corrupts generated
// code, only the decoration is lost.
type Graphviz struct {
	// Command overrides the executable name, default "dot".
	Command string
}

func (g Graphviz) Render(diagram string) (string, error) {
	command := g.Command
	if command == "" {
		command = "dot"
	}

	cmd := exec.Command(command, "-Tsvg")
	cmd.Stdin = strings.NewReader(diagram)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("exec %s: %w", command, err)
	}
	return out.String(), nil
}
