package predicate

import (
	stderrors "errors"
	"fmt"
	"strconv"

	"github.com/standardbeagle/notegrep/internal/errors"
	"github.com/standardbeagle/notegrep/internal/matcher"
)

// parser is a recursive-descent parser over the token stream. One token of
// lookahead is enough for this grammar.
type parser struct {
	input string
	lex   *lexer
	cur   token
}

// parse parses a complete expression and requires the input be fully
// consumed.
func parse(input string) (Node, error) {
	p := &parser{input: input, lex: newLexer(input)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if p.cur.kind != tokEOF {
		return nil, errors.NewExprError(input, p.cur.pos, p.cur.text,
			fmt.Errorf("unexpected %s after expression", p.cur.kind))
	}
	return root, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *parser) expect(kind tokenKind) (token, error) {
	if p.cur.kind != kind {
		return token{}, errors.NewExprError(p.input, p.cur.pos, p.cur.text,
			fmt.Errorf("expected %s, found %s", kind, p.cur.kind))
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return token{}, err
	}
	return tok, nil
}

func (p *parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &OrNode{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokAnd {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &AndNode{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (Node, error) {
	switch p.cur.kind {
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return inner, nil
	case tokIdent:
		return p.parseCall()
	}
	return nil, errors.NewExprError(p.input, p.cur.pos, p.cur.text,
		fmt.Errorf("expected '(' or a function call, found %s", p.cur.kind))
}

// parseCall parses one builtin invocation and validates its arity here, so
// malformed calls surface as query-level errors before any file is read.
func (p *parser) parseCall() (Node, error) {
	name := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}

	switch name.text {
	case "$", "past", "future", "today":
	case "ts":
		return nil, errors.NewExprError(p.input, name.pos, name.text,
			stderrors.New("'ts' is only valid as a function argument"))
	default:
		exprErr := errors.NewExprError(p.input, name.pos, name.text,
			fmt.Errorf("unknown function %q", name.text))
		if s := suggestBuiltin(name.text); s != "" {
			exprErr = exprErr.WithSuggestion(s)
		}
		return nil, exprErr
	}

	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}

	var node *CallNode
	var err error
	if name.text == "$" {
		node, err = p.parseContainsArgs(name)
	} else {
		node, err = p.parseTemporalArgs(name)
	}
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	return node, nil
}

// parseContainsArgs handles `$('text')`.
func (p *parser) parseContainsArgs(name token) (*CallNode, error) {
	str, err := p.expect(tokString)
	if err != nil {
		return nil, err
	}
	if str.text == "" {
		return nil, errors.NewExprError(p.input, str.pos, "",
			stderrors.New("$() requires non-empty text"))
	}

	lit, err := matcher.NewLiteral(str.text)
	if err != nil {
		return nil, errors.NewExprError(p.input, str.pos, str.text, err)
	}
	return &CallNode{Name: name.text, Text: str.text, lit: lit}, nil
}

// parseTemporalArgs handles `past(ts[, N])`, `future(ts[, N])`, `today(ts)`.
func (p *parser) parseTemporalArgs(name token) (*CallNode, error) {
	arg, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}
	if arg.text != "ts" {
		return nil, errors.NewExprError(p.input, arg.pos, arg.text,
			fmt.Errorf("%s() takes the timestamp reference 'ts', found %q", name.text, arg.text))
	}

	node := &CallNode{Name: name.text}
	if p.cur.kind != tokComma {
		return node, nil
	}

	if name.text == "today" {
		return nil, errors.NewExprError(p.input, p.cur.pos, p.cur.text,
			stderrors.New("today() takes exactly one argument"))
	}

	if err := p.advance(); err != nil {
		return nil, err
	}
	num, err := p.expect(tokInt)
	if err != nil {
		return nil, err
	}
	days, err := strconv.ParseInt(num.text, 10, 64)
	if err != nil {
		return nil, errors.NewExprError(p.input, num.pos, num.text, err)
	}
	node.Days = days
	node.HasDays = true
	return node, nil
}
