// Package formula evaluates small arithmetic template expressions against
// the flat scalar map produced by a takeoff. Evaluation fails closed: an
// unknown identifier or malformed expression is an error, never a silent
// zero, because these expressions feed customer-facing documents.
package formula

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Scalars is the flat name -> value table expressions resolve against.
type Scalars map[string]float64

// Eval evaluates one expression such as "ceil(lf.ridge / 33)" against the
// scalar table. Supported grammar: numeric literals, + - * /, parentheses,
// unary minus, the functions ceil and floor, and dotted identifiers.
func Eval(expr string, vars Scalars) (float64, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return 0, err
	}
	p := &parser{tokens: tokens, vars: vars}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if !p.atEnd() {
		return 0, fmt.Errorf("unexpected token %q in expression %q", p.peek().text, expr)
	}
	return v, nil
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

func tokenize(expr string) ([]token, error) {
	var tokens []token
	runes := []rune(expr)
	i := 0

	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++

		case r == '(':
			tokens = append(tokens, token{kind: tokLParen, text: "("})
			i++

		case r == ')':
			tokens = append(tokens, token{kind: tokRParen, text: ")"})
			i++

		case r == '+' || r == '-' || r == '*' || r == '/':
			tokens = append(tokens, token{kind: tokOp, text: string(r)})
			i++

		case unicode.IsDigit(r) || r == '.':
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				i++
			}
			text := string(runes[start:i])
			num, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q", text)
			}
			tokens = append(tokens, token{kind: tokNumber, text: text, num: num})

		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_' || runes[i] == '.') {
				i++
			}
			tokens = append(tokens, token{kind: tokIdent, text: string(runes[start:i])})

		default:
			return nil, fmt.Errorf("unexpected character %q", r)
		}
	}

	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty expression")
	}
	return tokens, nil
}

type parser struct {
	tokens []token
	pos    int
	vars   Scalars
}

func (p *parser) atEnd() bool { return p.pos >= len(p.tokens) }

func (p *parser) peek() token {
	if p.atEnd() {
		return token{}
	}
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.peek()
	p.pos++
	return t
}

// parseExpr handles + and -.
func (p *parser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for !p.atEnd() && p.peek().kind == tokOp && (p.peek().text == "+" || p.peek().text == "-") {
		op := p.next().text
		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == "+" {
			left += right
		} else {
			left -= right
		}
	}
	return left, nil
}

// parseTerm handles * and /.
func (p *parser) parseTerm() (float64, error) {
	left, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for !p.atEnd() && p.peek().kind == tokOp && (p.peek().text == "*" || p.peek().text == "/") {
		op := p.next().text
		right, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		if op == "*" {
			left *= right
		} else {
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		}
	}
	return left, nil
}

// parseFactor handles literals, identifiers, function calls, parentheses,
// and unary minus.
func (p *parser) parseFactor() (float64, error) {
	if p.atEnd() {
		return 0, fmt.Errorf("unexpected end of expression")
	}

	t := p.next()
	switch t.kind {
	case tokNumber:
		return t.num, nil

	case tokOp:
		if t.text == "-" {
			v, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			return -v, nil
		}
		return 0, fmt.Errorf("unexpected operator %q", t.text)

	case tokLParen:
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.atEnd() || p.next().kind != tokRParen {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		return v, nil

	case tokIdent:
		// Function call when followed by an opening parenthesis.
		if !p.atEnd() && p.peek().kind == tokLParen {
			return p.parseCall(t.text)
		}
		v, ok := p.vars[t.text]
		if !ok {
			return 0, fmt.Errorf("unknown identifier %q", t.text)
		}
		return v, nil

	default:
		return 0, fmt.Errorf("unexpected token %q", t.text)
	}
}

func (p *parser) parseCall(name string) (float64, error) {
	fn, ok := functions[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown function %q", name)
	}
	p.next() // consume '('
	arg, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if p.atEnd() || p.next().kind != tokRParen {
		return 0, fmt.Errorf("missing closing parenthesis in call to %q", name)
	}
	return fn(arg), nil
}

var functions = map[string]func(float64) float64{
	"ceil":  math.Ceil,
	"floor": math.Floor,
}
