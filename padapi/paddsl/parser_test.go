package paddsl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padshift/padshift/padapi"
)

func TestParseExpressions(t *testing.T) {
	type testCase struct {
		input    string
		rendered string
		depth    int
	}

	testCases := []testCase{
		{
			input:    `Null`,
			rendered: `Null`,
			depth:    1,
		},
		{
			input:    `Axis(X)`,
			rendered: `Axis(X)`,
			depth:    1,
		},
		{
			input:    `Axis(X, +)`,
			rendered: `Axis(X, +)`,
			depth:    1,
		},
		{
			input:    `axis( rotX , neg )`,
			rendered: `axis(rotX, neg)`,
			depth:    1,
		},
		{
			input:    `Button(12)`,
			rendered: `Button(12)`,
			depth:    1,
		},
		{
			input:    `Keyboard(DIK_UPARROW)`,
			rendered: `Keyboard(DIK_UPARROW)`,
			depth:    1,
		},
		{
			input:    `Split(Axis(Z, +), Axis(Z, -))`,
			rendered: `Split(Axis(Z, +), Axis(Z, -))`,
			depth:    2,
		},
		{
			input:    `Compound(Button(1), Pov(Up), Null, Invert(Axis(Y)))`,
			rendered: `Compound(Button(1), Pov(Up), Null, Invert(Axis(Y)))`,
			depth:    3,
		},
	}

	for _, test := range testCases {
		expr, err := Parse(test.input)
		require.NoError(t, err, test.input)
		assert.Equal(t, test.rendered, expr.String(), test.input)
		assert.Equal(t, test.depth, expr.Depth(), test.input)
	}
}

func TestParseParamClassification(t *testing.T) {
	expr, err := Parse(`Example(X, +, -42, Inner(1))`)
	require.NoError(t, err)
	params := expr.ParamList()
	require.Len(t, params, 4)

	name, ok := params[0].IsLiteralIdent()
	require.True(t, ok)
	assert.Equal(t, "X", name)

	sign, ok := params[1].IsBareSign()
	require.True(t, ok)
	assert.Equal(t, "+", sign)

	n, ok := params[2].IsNumber()
	require.True(t, ok)
	assert.Equal(t, int64(-42), n)

	require.NotNil(t, params[3].Expr)
	assert.True(t, params[3].Expr.HasParens())
	assert.Equal(t, "Inner", params[3].Expr.Type)
}

func TestParseEmptyParens(t *testing.T) {
	expr, err := Parse(`Null()`)
	require.NoError(t, err)
	assert.True(t, expr.HasParens())
	assert.Empty(t, expr.ParamList())
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		``,
		`42`,
		`Axis(X`,
		`Axis X)`,
		`Axis(X,)`,
		`Axis(,X)`,
		`Axis(X))`,
		`Split(Axis(X), )`,
		`(X)`,
	}

	for _, input := range inputs {
		_, err := Parse(input)
		require.Error(t, err, "input %q", input)
		assert.True(t, errors.Is(err, padapi.ErrInvalidMapperSyntax), "input %q: %v", input, err)
	}
}
