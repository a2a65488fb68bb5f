// Package dsl implements the text front end for state machine definitions:
// node declarations with optional payload types, and transition chains
// connected by arrows.
//
//	// a node with a payload type
//	Bar: []string;
//
//	// a chain of transitions
//	Foo -> Bar -"with inline docs"-> Baz;
//	Foo -reset-> Start;
package dsl

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenType represents the type of a lexer token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenComment    // // doc text
	TokenIdent      // node or method name
	TokenColon      // :
	TokenTypeText   // raw payload type following a colon
	TokenSemi       // ;
	TokenAmp        // & node group combinator
	TokenArrow      // ->
	TokenLongArrow  // -->
	TokenNamedArrow // -name->
	TokenDocArrow   // -"docs"->
	TokenIllegal
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenComment:
		return "comment"
	case TokenIdent:
		return "identifier"
	case TokenColon:
		return "':'"
	case TokenTypeText:
		return "payload type"
	case TokenSemi:
		return "';'"
	case TokenAmp:
		return "'&'"
	case TokenArrow:
		return "'->'"
	case TokenLongArrow:
		return "'-->'"
	case TokenNamedArrow:
		return "named arrow"
	case TokenDocArrow:
		return "documented arrow"
	}
	return "illegal token"
}

// Pos is a location in the input, 1-based line and column.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Token is a single token from the lexer.
type Token struct {
	Type    TokenType
	Literal string
	At      Pos
}

func (t Token) String() string {
	return fmt.Sprintf("Token{%v, %q, %v}", t.Type, t.Literal, t.At)
}

// Lexer tokenizes DSL input.
type Lexer struct {
	input   string
	pos     int
	readPos int
	ch      byte
	line    int
	col     int

	// a colon switches the lexer into raw payload-type mode for one token
	afterColon bool
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, col: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) at() Pos {
	return Pos{Offset: l.pos, Line: l.line, Col: l.col}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// NextToken returns the next token from the input. Comments are returned as
// tokens so the parser can attach them as documentation.
func (l *Lexer) NextToken() Token {
	if l.afterColon {
		l.afterColon = false
		return l.readTypeText()
	}

	l.skipWhitespace()
	pos := l.at()

	switch {
	case l.ch == 0:
		return Token{Type: TokenEOF, At: pos}
	case l.ch == '/' && l.peekChar() == '/':
		return Token{Type: TokenComment, Literal: l.readComment(), At: pos}
	case l.ch == ':':
		l.readChar()
		l.afterColon = true
		return Token{Type: TokenColon, Literal: ":", At: pos}
	case l.ch == ';':
		l.readChar()
		return Token{Type: TokenSemi, Literal: ";", At: pos}
	case l.ch == '&':
		l.readChar()
		return Token{Type: TokenAmp, Literal: "&", At: pos}
	case l.ch == '-':
		return l.readArrow(pos)
	case isIdentStart(l.ch):
		return Token{Type: TokenIdent, Literal: l.readIdent(), At: pos}
	}

	tok := Token{Type: TokenIllegal, Literal: string(l.ch), At: pos}
	l.readChar()
	return tok
}

func (l *Lexer) readIdent() string {
	start := l.pos
	for isIdentChar(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readComment() string {
	l.readChar() // first /
	l.readChar() // second /
	start := l.pos
	for l.ch != 0 && l.ch != '\n' {
		l.readChar()
	}
	text := l.input[start:l.pos]
	text = strings.TrimPrefix(text, " ")
	return strings.TrimRight(text, "\r")
}

// readTypeText consumes an opaque payload type: everything up to the end of
// the statement, the next arrow, a group combinator, or the end of the line.
// A minus directly after '<' belongs to a channel type (<-chan, chan<-), not
// to an arrow. The text is copied verbatim into generated code.
func (l *Lexer) readTypeText() Token {
	for l.ch == ' ' || l.ch == '\t' {
		l.readChar()
	}
	pos := l.at()
	start := l.pos
	var prev byte
	for l.ch != 0 && l.ch != ';' && l.ch != '&' && l.ch != '\n' {
		if l.ch == '-' && prev != '<' {
			break
		}
		if l.ch != ' ' && l.ch != '\t' {
			prev = l.ch
		}
		l.readChar()
	}
	text := strings.TrimRight(l.input[start:l.pos], " \t\r")
	return Token{Type: TokenTypeText, Literal: text, At: pos}
}

// readArrow consumes one of the arrow forms:
//
//	->   -->   -name->   -"docs"->
//
// plus the long spellings of the latter two (an extra leading or trailing
// minus, which is cosmetic).
func (l *Lexer) readArrow(pos Pos) Token {
	l.readChar() // -
	if l.ch == '>' {
		l.readChar()
		return Token{Type: TokenArrow, Literal: "->", At: pos}
	}
	long := false
	if l.ch == '-' {
		l.readChar()
		long = true
	}
	switch {
	case l.ch == '>':
		if !long {
			break
		}
		l.readChar()
		return Token{Type: TokenLongArrow, Literal: "-->", At: pos}
	case l.ch == '"':
		doc, ok := l.readString()
		if !ok || !l.finishArrow() {
			break
		}
		return Token{Type: TokenDocArrow, Literal: doc, At: pos}
	case isIdentStart(l.ch):
		name := l.readIdent()
		if !l.finishArrow() {
			break
		}
		return Token{Type: TokenNamedArrow, Literal: name, At: pos}
	}
	return Token{Type: TokenIllegal, Literal: "-", At: pos}
}

// finishArrow consumes the `->` (or `-->`) closing an arrow body.
func (l *Lexer) finishArrow() bool {
	if l.ch != '-' {
		return false
	}
	l.readChar()
	if l.ch == '-' {
		l.readChar()
	}
	if l.ch != '>' {
		return false
	}
	l.readChar()
	return true
}

func (l *Lexer) readString() (string, bool) {
	l.readChar() // opening quote
	var result []byte
	for l.ch != 0 && l.ch != '"' && l.ch != '\n' {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				result = append(result, '\n')
			case 't':
				result = append(result, '\t')
			case '\\':
				result = append(result, '\\')
			case '"':
				result = append(result, '"')
			default:
				result = append(result, l.ch)
			}
		} else {
			result = append(result, l.ch)
		}
		l.readChar()
	}
	if l.ch != '"' {
		return "", false
	}
	l.readChar() // closing quote
	return string(result), true
}

func isIdentStart(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || ch == '_'
}

func isIdentChar(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || unicode.IsDigit(rune(ch)) || ch == '_'
}

// Tokenize returns all tokens from the input.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return tokens
}
