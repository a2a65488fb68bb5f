// Package dot accepts a conventional directed-graph description
// (`digraph Name { a; a -> b; }`) as an alternate front end. Statements map
// 1:1 onto the DSL's node and transition statements; everything beyond plain
// identifiers and directed edges (ports, subgraphs, attribute lists,
// undirected edges) is rejected as unsupported.
package dot

import (
	"fmt"

	"github.com/entrygen-xyz/go-entrygen/dsl"
	"github.com/entrygen-xyz/go-entrygen/graph"
)

// Parse reads DOT text and returns the graph name together with the
// equivalent DSL statement list.
func Parse(input string) (string, *dsl.File, error) {
	p := &parser{src: input, at: dsl.Pos{Offset: 0, Line: 1, Col: 1}}
	return p.parse()
}

// ParseGraph parses DOT text and builds the validated graph in one step,
// returning the graph name alongside it.
func ParseGraph(input string, renameMethods bool) (string, *graph.Graph, error) {
	name, file, err := Parse(input)
	if err != nil {
		return "", nil, err
	}
	g, err := dsl.Interpret(file, renameMethods)
	if err != nil {
		return "", nil, err
	}
	return name, g, nil
}

type parser struct {
	src string
	at  dsl.Pos
}

func (p *parser) parse() (string, *dsl.File, error) {
	if err := p.keyword("digraph"); err != nil {
		return "", nil, err
	}

	name := ""
	if id, ok := p.peekIdent(); ok {
		name = id
		p.ident()
	}
	if err := p.punct("{"); err != nil {
		return "", nil, err
	}

	file := &dsl.File{}
	for {
		p.skipSpace()
		if p.eof() {
			return "", nil, p.errorf("unexpected end of input, expected \"}\"")
		}
		if p.cur() == '}' {
			p.advance()
			break
		}
		stmt, err := p.stmt()
		if err != nil {
			return "", nil, err
		}
		file.Stmts = append(file.Stmts, stmt)
	}

	p.skipSpace()
	if !p.eof() {
		return "", nil, p.errorf("trailing input after \"}\"")
	}
	return name, file, nil
}

// stmt reads one node or edge statement up to its terminating semicolon.
func (p *parser) stmt() (dsl.Stmt, error) {
	start := p.at
	id, err := p.ident()
	if err != nil {
		return nil, err
	}
	if id == "subgraph" {
		return nil, dsl.WrapAt(start, fmt.Errorf("subgraphs are not supported"))
	}

	head := dsl.NodeRef{Name: id, At: start}
	p.skipSpace()
	if p.eof() {
		return nil, p.errorf("unexpected end of input in statement")
	}

	switch p.cur() {
	case ';':
		p.advance()
		return &dsl.NodeStmt{Name: head.Name, At: head.At}, nil
	case '}':
		return &dsl.NodeStmt{Name: head.Name, At: head.At}, nil
	case '[':
		return nil, p.errorf("attribute lists are not supported")
	case ':':
		return nil, p.errorf("ports are not supported")
	case '=':
		return nil, p.errorf("attribute assignments are not supported")
	case '{':
		return nil, p.errorf("subgraphs are not supported")
	}

	chain := &dsl.ChainStmt{Head: []dsl.NodeRef{head}, At: head.At}
	for {
		arrowAt := p.at
		if err := p.arrow(); err != nil {
			return nil, err
		}
		p.skipSpace()
		refAt := p.at
		to, err := p.ident()
		if err != nil {
			return nil, err
		}
		chain.Hops = append(chain.Hops, dsl.Hop{
			Arrow: dsl.Arrow{Kind: dsl.ArrowPlain, At: arrowAt},
			To:    []dsl.NodeRef{{Name: to, At: refAt}},
		})

		p.skipSpace()
		if p.eof() {
			return nil, p.errorf("unexpected end of input in edge statement")
		}
		switch p.cur() {
		case ';':
			p.advance()
			return chain, nil
		case '}':
			return chain, nil
		case '[':
			return nil, p.errorf("attribute lists are not supported")
		}
	}
}

func (p *parser) arrow() error {
	p.skipSpace()
	if p.eof() || p.cur() != '-' {
		return p.errorf("expected \"->\"")
	}
	at := p.at
	p.advance()
	if p.eof() {
		return dsl.WrapAt(at, fmt.Errorf("expected \"->\""))
	}
	switch p.cur() {
	case '>':
		p.advance()
		return nil
	case '-':
		return dsl.WrapAt(at, fmt.Errorf("undirected edges are not supported"))
	}
	return dsl.WrapAt(at, fmt.Errorf("expected \"->\""))
}

func (p *parser) keyword(want string) error {
	p.skipSpace()
	at := p.at
	id, err := p.ident()
	if err != nil {
		return err
	}
	if id != want {
		return dsl.WrapAt(at, fmt.Errorf("expected %q, found %q", want, id))
	}
	return nil
}

func (p *parser) punct(want string) error {
	p.skipSpace()
	if p.eof() || string(p.cur()) != want {
		return p.errorf("expected %q", want)
	}
	p.advance()
	return nil
}

func (p *parser) ident() (string, error) {
	p.skipSpace()
	if p.eof() || !identStart(p.cur()) {
		return "", p.errorf("expected an identifier")
	}
	start := p.at.Offset
	for !p.eof() && identPart(p.cur()) {
		p.advance()
	}
	return p.src[start:p.at.Offset], nil
}

// peekIdent looks ahead for an identifier without consuming anything.
func (p *parser) peekIdent() (string, bool) {
	save := p.at
	defer func() { p.at = save }()
	id, err := p.ident()
	return id, err == nil
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch {
		case p.cur() == ' ' || p.cur() == '\t' || p.cur() == '\r' || p.cur() == '\n':
			p.advance()
		case p.cur() == '#':
			p.skipLine()
		case p.cur() == '/' && p.at.Offset+1 < len(p.src) && p.src[p.at.Offset+1] == '/':
			p.skipLine()
		default:
			return
		}
	}
}

func (p *parser) skipLine() {
	for !p.eof() && p.cur() != '\n' {
		p.advance()
	}
}

func (p *parser) cur() byte { return p.src[p.at.Offset] }

func (p *parser) eof() bool { return p.at.Offset >= len(p.src) }

func (p *parser) advance() {
	if p.cur() == '\n' {
		p.at.Line++
		p.at.Col = 1
	} else {
		p.at.Col++
	}
	p.at.Offset++
}

func (p *parser) errorf(format string, args ...any) error {
	return dsl.WrapAt(p.at, fmt.Errorf(format, args...))
}

func identStart(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func identPart(ch byte) bool {
	return identStart(ch) || ('0' <= ch && ch <= '9')
}
