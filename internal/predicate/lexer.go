package predicate

import (
	stderrors "errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/standardbeagle/notegrep/internal/errors"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokAnd
	tokOr
	tokLParen
	tokRParen
	tokComma
	tokString
	tokInt
	tokIdent
)

type token struct {
	kind tokenKind
	text string // decoded value for strings, raw text otherwise
	pos  int    // byte offset into the expression
}

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of expression"
	case tokAnd:
		return "'&&'"
	case tokOr:
		return "'||'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	case tokString:
		return "string"
	case tokInt:
		return "integer"
	case tokIdent:
		return "identifier"
	}
	return "token"
}

// lexer turns an expression string into tokens. All errors are surfaced as
// *errors.ExprError with the byte offset of the offending character.
type lexer struct {
	input string
	pos   int
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	if l.pos >= len(l.input) {
		return token{kind: tokEOF, pos: l.pos}, nil
	}

	start := l.pos
	c := l.input[l.pos]

	switch {
	case c == '(':
		l.pos++
		return token{kind: tokLParen, text: "(", pos: start}, nil
	case c == ')':
		l.pos++
		return token{kind: tokRParen, text: ")", pos: start}, nil
	case c == ',':
		l.pos++
		return token{kind: tokComma, text: ",", pos: start}, nil
	case c == '&':
		if strings.HasPrefix(l.input[l.pos:], "&&") {
			l.pos += 2
			return token{kind: tokAnd, text: "&&", pos: start}, nil
		}
		return token{}, errors.NewExprError(l.input, start, "&", stderrors.New("expected '&&'"))
	case c == '|':
		if strings.HasPrefix(l.input[l.pos:], "||") {
			l.pos += 2
			return token{kind: tokOr, text: "||", pos: start}, nil
		}
		return token{}, errors.NewExprError(l.input, start, "|", stderrors.New("expected '||'"))
	case c == '\'' || c == '"':
		return l.lexString()
	case c >= '0' && c <= '9':
		return l.lexInt()
	case c == '$':
		l.pos++
		return token{kind: tokIdent, text: "$", pos: start}, nil
	case isIdentStart(rune(c)):
		return l.lexIdent()
	}

	return token{}, errors.NewExprError(l.input, start, string(c),
		fmt.Errorf("unexpected character %q", c))
}

// lexString reads a quoted string. Both single and double quotes are
// accepted; backslash escapes the quote character and itself.
func (l *lexer) lexString() (token, error) {
	start := l.pos
	quote := l.input[l.pos]
	l.pos++

	var sb strings.Builder
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch c {
		case quote:
			l.pos++
			return token{kind: tokString, text: sb.String(), pos: start}, nil
		case '\\':
			if l.pos+1 < len(l.input) {
				next := l.input[l.pos+1]
				if next == quote || next == '\\' {
					sb.WriteByte(next)
					l.pos += 2
					continue
				}
			}
			sb.WriteByte(c)
			l.pos++
		default:
			sb.WriteByte(c)
			l.pos++
		}
	}
	return token{}, errors.NewExprError(l.input, start, string(quote), stderrors.New("unterminated string literal"))
}

func (l *lexer) lexInt() (token, error) {
	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] >= '0' && l.input[l.pos] <= '9' {
		l.pos++
	}
	return token{kind: tokInt, text: l.input[start:l.pos], pos: start}, nil
}

func (l *lexer) lexIdent() (token, error) {
	start := l.pos
	for l.pos < len(l.input) && isIdentPart(rune(l.input[l.pos])) {
		l.pos++
	}
	return token{kind: tokIdent, text: l.input[start:l.pos], pos: start}, nil
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.input) && (l.input[l.pos] == ' ' || l.input[l.pos] == '\t' || l.input[l.pos] == '\n' || l.input[l.pos] == '\r') {
		l.pos++
	}
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
