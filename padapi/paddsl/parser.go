// Package paddsl parses mapper definition strings such as
//
//	Split(Axis(X, +), Button(3))
//
// into a syntax tree. Interpreting the tree into element mappers is the
// job of the mappers package; this package is only concerned with syntax.
package paddsl

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/padshift/padshift/padapi"
)

var (
	ruleNumber     = lexer.SimpleRule{Name: "Number", Pattern: `\d+`}
	ruleIdent      = lexer.SimpleRule{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`}
	rulePunct      = lexer.SimpleRule{Name: "Punct", Pattern: `[(),+\-]`}
	ruleWhitespace = lexer.SimpleRule{Name: "Whitespace", Pattern: `[ \t]+`}
)

var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	ruleWhitespace,
	ruleNumber,
	ruleIdent,
	rulePunct,
})

var exprParser = participle.MustBuild[Expr](
	participle.Lexer(exprLexer),
	participle.UseLookahead(2),
	participle.Elide(ruleWhitespace.Name),
)

// Expr is one mapper expression: a type name with an optional
// parenthesized parameter list.
type Expr struct {
	Type string    `parser:"@Ident"`
	Args *argGroup `parser:"@@?"`
}

type argGroup struct {
	Open   bool    `parser:"@'('"`
	Params []Param `parser:"(@@ (',' @@)*)? ')'"`
}

// HasParens reports whether the expression carries a parameter list, even
// an empty one.
func (e *Expr) HasParens() bool {
	return e.Args != nil
}

// ParamList returns the expression's parameters, nil when absent.
func (e *Expr) ParamList() []Param {
	if e.Args == nil {
		return nil
	}
	return e.Args.Params
}

// Param is a single parameter: a (possibly signed) integer literal, a bare
// sign, or a nested expression. A bare identifier parses as a
// parameterless Expr and is interpreted as a literal by the consumer.
type Param struct {
	Signed *SignedNumber `parser:"@@"`
	Sign   *string       `parser:"| @('+' | '-')"`
	Expr   *Expr         `parser:"| @@"`
}

// SignedNumber is an integer literal with an optional leading sign.
type SignedNumber struct {
	Sign   *string `parser:"@('+' | '-')?"`
	Number int64   `parser:"@Number"`
}

// Value returns the integer value with the sign applied.
func (n SignedNumber) Value() int64 {
	if n.Sign != nil && *n.Sign == "-" {
		return -n.Number
	}
	return n.Number
}

// IsLiteralIdent reports whether the parameter is a bare identifier with
// no parameters and no parentheses, and returns it.
func (p Param) IsLiteralIdent() (string, bool) {
	if p.Expr != nil && !p.Expr.HasParens() {
		return p.Expr.Type, true
	}
	return "", false
}

// IsNumber reports whether the parameter is an integer literal, applying
// the optional sign, and returns its value.
func (p Param) IsNumber() (int64, bool) {
	if p.Signed == nil {
		return 0, false
	}
	return p.Signed.Value(), true
}

// IsBareSign reports whether the parameter is a lone "+" or "-".
func (p Param) IsBareSign() (string, bool) {
	if p.Sign != nil {
		return *p.Sign, true
	}
	return "", false
}

func (p Param) String() string {
	if s, ok := p.IsBareSign(); ok {
		return s
	}
	if n, ok := p.IsNumber(); ok {
		return fmt.Sprintf("%d", n)
	}
	if p.Expr != nil {
		return p.Expr.String()
	}
	return "(empty)"
}

// Depth returns the nesting depth of the expression tree, counting only
// expressions that carry parameters. A bare identifier leaf is a literal,
// not a nested mapper, and contributes no depth.
func (e *Expr) Depth() int {
	depth := 1
	for _, p := range e.ParamList() {
		if p.Expr == nil || !p.Expr.HasParens() {
			continue
		}
		if d := 1 + p.Expr.Depth(); d > depth {
			depth = d
		}
	}
	return depth
}

func (e *Expr) String() string {
	if !e.HasParens() {
		return e.Type
	}
	params := make([]string, len(e.ParamList()))
	for i, p := range e.ParamList() {
		params[i] = p.String()
	}
	return e.Type + "(" + strings.Join(params, ", ") + ")"
}

// Parse parses a single mapper expression. Syntax failures are reported as
// padapi.ErrInvalidMapperSyntax with the position detail produced by the
// underlying parser.
func Parse(definition string) (*Expr, error) {
	expr, err := exprParser.ParseString("", definition)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", padapi.ErrInvalidMapperSyntax, err)
	}
	return expr, nil
}
