package variables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func group(tokens ...string) Group {
	values := make([]any, len(tokens))
	for i, t := range tokens {
		values[i] = t
	}
	return Group{Tokens: tokens, Values: values, ConverterID: "string"}
}

func tokensOf(scenarios []Scenario) [][]string {
	out := make([][]string, len(scenarios))
	for i, s := range scenarios {
		out[i] = s.Tokens
	}
	return out
}

func TestProduct_LexicographicByGroup(t *testing.T) {
	got := Product([]Group{group("a", "b"), group("x", "y")})

	assert.Equal(t, [][]string{
		{"a", "x"},
		{"a", "y"},
		{"b", "x"},
		{"b", "y"},
	}, tokensOf(got))
}

func TestProduct_SingleGroup(t *testing.T) {
	got := Product([]Group{group("present", "absent")})
	assert.Equal(t, [][]string{{"present"}, {"absent"}}, tokensOf(got))
}

func TestProduct_NoGroupsYieldsOneEmptyScenario(t *testing.T) {
	got := Product(nil)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Tokens)
}

func TestProduct_ValuesFollowTokens(t *testing.T) {
	typed := Group{Tokens: []string{"1", "2"}, Values: []any{1, 2}, ConverterID: "int"}
	got := Product([]Group{typed, group("z")})

	require.Len(t, got, 2)
	assert.Equal(t, []any{1, "z"}, got[0].Values)
	assert.Equal(t, []any{2, "z"}, got[1].Values)
}

func TestProduct_CountIsProductOfSizes(t *testing.T) {
	got := Product([]Group{group("a", "b", "c"), group("x", "y"), group("1", "2")})
	assert.Len(t, got, 12)
	assert.Equal(t, []string{"c", "y", "2"}, got[11].Tokens)
}

func TestCombine_CommonGroupsLast(t *testing.T) {
	combined := Combine([]Group{group("a")}, []Group{group("c1", "c2")})
	got := Product(combined)

	assert.Equal(t, [][]string{{"a", "c1"}, {"a", "c2"}}, tokensOf(got))
}

func TestScenario_StringAndContains(t *testing.T) {
	s := Scenario{Tokens: []string{"arg1=0", "arg2=5"}}
	assert.Equal(t, "arg1=0, arg2=5", s.String())
	assert.True(t, s.Contains("arg2=5"))
	assert.False(t, s.Contains("arg2=0"))
}
