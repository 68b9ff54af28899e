// Package tape runs line-oriented scripts against a canvas. A script is a
// sequence of commands, one per line, with # comments:
//
//	NewSection "Landing"
//	Add Hero
//	Resize se 50 30
//	ExpectSize 350 130
//
// Scripts drive the editor headlessly for demos and tests.
package tape

import (
	"strconv"
	"strings"
	"unicode"
)

// TokenType classifies a lexed token.
type TokenType int

// Token types.
const (
	TokenEOF TokenType = iota
	TokenNewline
	TokenIdent
	TokenString
	TokenNumber
	TokenIllegal
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenNewline:
		return "newline"
	case TokenIdent:
		return "identifier"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	}
	return "illegal"
}

// Token is one lexeme with its source position.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// Lexer splits a script into tokens.
type Lexer struct {
	input  []rune
	pos    int
	line   int
	column int
}

// New returns a lexer over input.
func New(input string) *Lexer {
	return &Lexer{input: []rune(input), line: 1, column: 1}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) advance() rune {
	r := l.input[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

// NextToken returns the next token, skipping blanks and comments.
func (l *Lexer) NextToken() Token {
	for l.pos < len(l.input) {
		r := l.peek()
		if r == '\n' || !unicode.IsSpace(r) {
			break
		}
		l.advance()
	}
	if l.peek() == '#' {
		for l.pos < len(l.input) && l.peek() != '\n' {
			l.advance()
		}
	}

	tok := Token{Line: l.line, Column: l.column}
	if l.pos >= len(l.input) {
		tok.Type = TokenEOF
		return tok
	}

	switch r := l.peek(); {
	case r == '\n':
		l.advance()
		tok.Type = TokenNewline
		tok.Literal = "\n"
	case r == '"':
		tok.Literal, tok.Type = l.readString()
	default:
		word := l.readWord()
		tok.Literal = word
		tok.Type = TokenIdent
		if _, err := strconv.Atoi(word); err == nil {
			tok.Type = TokenNumber
		}
	}
	return tok
}

func (l *Lexer) readWord() string {
	start := l.pos
	for l.pos < len(l.input) && !unicode.IsSpace(l.peek()) {
		l.advance()
	}
	return string(l.input[start:l.pos])
}

// readString reads a double quoted string with Go escapes. An unterminated
// string yields an illegal token holding the raw text.
func (l *Lexer) readString() (string, TokenType) {
	var sb strings.Builder
	sb.WriteRune(l.advance())
	for l.pos < len(l.input) {
		r := l.peek()
		if r == '\n' {
			break
		}
		sb.WriteRune(l.advance())
		if r == '\\' && l.pos < len(l.input) && l.peek() != '\n' {
			sb.WriteRune(l.advance())
			continue
		}
		if r == '"' {
			s, err := strconv.Unquote(sb.String())
			if err != nil {
				return sb.String(), TokenIllegal
			}
			return s, TokenString
		}
	}
	return sb.String(), TokenIllegal
}
