package dsl

// Parser parses DSL input into a File. The first error aborts; there is no
// recovery.
type Parser struct {
	lexer *Lexer
	cur   Token
	peek  Token
}

// NewParser creates a new parser for the given input.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
}

// Parse parses the input and returns a File.
func Parse(input string) (*File, error) {
	p := NewParser(input)
	return p.parseFile()
}

func (p *Parser) parseFile() (*File, error) {
	file := &File{}

	for p.cur.Type != TokenEOF {
		doc, endLine := p.collectComments()

		if p.cur.Type == TokenEOF {
			if file.Doc == nil && len(file.Stmts) == 0 {
				file.Doc = doc
			}
			break
		}

		// A comment block separated from the next statement by a blank
		// line documents the machine itself, not the statement.
		if doc != nil && p.cur.At.Line > endLine+1 {
			if file.Doc == nil && len(file.Stmts) == 0 {
				file.Doc = doc
			}
			continue
		}

		stmt, err := p.parseStmt(doc)
		if err != nil {
			return nil, err
		}
		file.Stmts = append(file.Stmts, stmt)
	}

	return file, nil
}

// collectComments gathers a run of comments on consecutive lines. It returns
// the text and the line of the last comment collected.
func (p *Parser) collectComments() (doc []string, endLine int) {
	for p.cur.Type == TokenComment {
		if doc != nil && p.cur.At.Line > endLine+1 {
			break
		}
		doc = append(doc, p.cur.Literal)
		endLine = p.cur.At.Line
		p.nextToken()
	}
	return doc, endLine
}

func (p *Parser) parseStmt(doc []string) (Stmt, error) {
	at := p.cur.At
	head, err := p.parseGroup()
	if err != nil {
		return nil, err
	}

	if p.cur.Type == TokenSemi {
		p.nextToken()
		if len(head) > 1 {
			return nil, errorAt(at, "a node group must be part of a transition")
		}
		ref := head[0]
		return &NodeStmt{Doc: doc, Name: ref.Name, Type: ref.Type, At: ref.At}, nil
	}

	var hops []Hop
	for isArrow(p.cur.Type) {
		arrow := p.parseArrow()
		to, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		if arrow.Kind == ArrowNamed && len(to) > 1 {
			return nil, errorAt(arrow.At, "cannot name a transition into a node group: the method name %q would repeat on every member", arrow.Name)
		}
		hops = append(hops, Hop{Arrow: arrow, To: to})
	}

	if len(hops) == 0 {
		return nil, errorAt(p.cur.At, "expected ';' or an arrow, got %v", p.cur.Type)
	}
	if p.cur.Type != TokenSemi {
		return nil, errorAt(p.cur.At, "expected ';' to end the transition, got %v", p.cur.Type)
	}
	p.nextToken()

	return &ChainStmt{Doc: doc, Head: head, Hops: hops, At: at}, nil
}

// parseGroup parses `node (& node)*`.
func (p *Parser) parseGroup() ([]NodeRef, error) {
	ref, err := p.parseNodeRef()
	if err != nil {
		return nil, err
	}
	group := []NodeRef{ref}
	for p.cur.Type == TokenAmp {
		p.nextToken()
		ref, err := p.parseNodeRef()
		if err != nil {
			return nil, err
		}
		group = append(group, ref)
	}
	return group, nil
}

// parseNodeRef parses `name (':' type)?`.
func (p *Parser) parseNodeRef() (NodeRef, error) {
	if p.cur.Type != TokenIdent {
		return NodeRef{}, errorAt(p.cur.At, "expected a node name, got %v", p.cur.Type)
	}
	ref := NodeRef{Name: p.cur.Literal, At: p.cur.At}
	p.nextToken()

	if p.cur.Type == TokenColon {
		p.nextToken()
		if p.cur.Type != TokenTypeText || p.cur.Literal == "" {
			return NodeRef{}, errorAt(p.cur.At, "expected a payload type after ':'")
		}
		ref.Type = p.cur.Literal
		p.nextToken()
	}
	return ref, nil
}

func (p *Parser) parseArrow() Arrow {
	arrow := Arrow{At: p.cur.At}
	switch p.cur.Type {
	case TokenArrow:
		arrow.Kind = ArrowPlain
	case TokenLongArrow:
		arrow.Kind = ArrowLong
	case TokenNamedArrow:
		arrow.Kind = ArrowNamed
		arrow.Name = p.cur.Literal
	case TokenDocArrow:
		arrow.Kind = ArrowDoc
		arrow.Doc = p.cur.Literal
	}
	p.nextToken()
	return arrow
}

func isArrow(t TokenType) bool {
	switch t {
	case TokenArrow, TokenLongArrow, TokenNamedArrow, TokenDocArrow:
		return true
	}
	return false
}
