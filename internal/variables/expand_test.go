package variables

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scenariocast/internal/casterr"
	"github.com/roach88/scenariocast/internal/convert"
)

func TestExpand_DefaultStringConverter(t *testing.T) {
	e := NewExpander(convert.NewRegistry())

	groups, err := e.Expand(0, " present , absent | x,y ", TokenSeparator, "")
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, []string{"present", "absent"}, groups[0].Tokens)
	assert.Equal(t, []any{"present", "absent"}, groups[0].Values)
	assert.Equal(t, convert.String, groups[0].ConverterID)
	assert.Equal(t, []string{"x", "y"}, groups[1].Tokens)
}

func TestExpand_EmptyGroupContributesNothing(t *testing.T) {
	e := NewExpander(convert.NewRegistry())

	groups, err := e.Expand(0, "", TokenSeparator, "")
	require.NoError(t, err)
	assert.Empty(t, groups)

	groups, err = e.Expand(1, "a,b||c", TokenSeparator, "")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, []string{"c"}, groups[1].Tokens)
}

func TestExpand_TypedGroupsRecordTokenConverters(t *testing.T) {
	e := NewExpander(convert.NewRegistry())

	groups, err := e.Expand(2, "1,2|yes,no", TokenSeparator, "int|string")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, []any{1, 2}, groups[0].Values)
	assert.Equal(t, []string{"1", "2"}, groups[0].Tokens)

	tc := e.TokenConverters(2)
	assert.Len(t, tc, 4)

	v, err := tc["1"].Convert("7")
	require.NoError(t, err)
	assert.Equal(t, 7, v, "numeric tokens map to the int converter")

	v, err = tc["yes"].Convert("7")
	require.NoError(t, err)
	assert.Equal(t, "7", v, "text tokens map to the string converter")
}

func TestExpand_EmptyGroupStillConsumesConverterSlot(t *testing.T) {
	e := NewExpander(convert.NewRegistry())

	groups, err := e.Expand(0, "|3,4", TokenSeparator, "string|int")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, []any{3, 4}, groups[0].Values)
}

func TestExpand_TrailingSeparatorsDropped(t *testing.T) {
	e := NewExpander(convert.NewRegistry())

	groups, err := e.Expand(0, "present,absent,", TokenSeparator, "")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"present", "absent"}, groups[0].Tokens)
	assert.Len(t, Product(groups), 2)

	groups, err = e.Expand(1, "1,2|3,4|", TokenSeparator, "int|int")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, []any{3, 4}, groups[1].Values)

	groups, err = e.Expand(2, "arg1=0, arg1=5 | arg2=0, arg2=5 | ", TokenSeparator, "string|string|")
	require.NoError(t, err)
	assert.Len(t, groups, 2)
}

func TestExpand_InteriorEmptyTokenKept(t *testing.T) {
	e := NewExpander(convert.NewRegistry())

	groups, err := e.Expand(0, "a,,b", TokenSeparator, "")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"a", "", "b"}, groups[0].Tokens)
}

func TestExpand_CommonGroupsNotRecorded(t *testing.T) {
	e := NewExpander(convert.NewRegistry())

	_, err := e.Expand(CommonIndex, "c1,c2", TokenSeparator, "")
	require.NoError(t, err)
	assert.Empty(t, e.TokenConverters(CommonIndex))
}

func TestExpand_Errors(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		converters string
		code       string
	}{
		{"unknown converter", "a,b", "com.example.Nope", casterr.CodeConverterNotFound},
		{"too few converters", "a|b", "string", casterr.CodeConverterCountMismatch},
		{"too many converters", "a", "string|int", casterr.CodeConverterCountMismatch},
		{"interior empty group still counted", "a||b", "string|string", casterr.CodeConverterCountMismatch},
		{"conversion failure", "one,two", "int", casterr.CodeConversionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExpander(convert.NewRegistry())

			groups, err := e.Expand(4, tt.raw, TokenSeparator, tt.converters)
			require.Error(t, err)
			assert.Nil(t, groups)
			assert.True(t, casterr.IsConfiguration(err))
			assert.Equal(t, tt.code, casterr.CodeOf(err))
			assert.Empty(t, e.TokenConverters(4), "nothing recorded on failure")
		})
	}
}

func TestExpand_UnknownConverterNamesIdentifier(t *testing.T) {
	e := NewExpander(convert.NewRegistry())

	_, err := e.Expand(0, "a", TokenSeparator, "money")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"money"`)
	assert.Contains(t, err.Error(), "(case=0)")
}

func TestWithCase_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("convert: %w", casterr.Configuration(casterr.CodeConversionFailed, "bad token"))

	var ce *casterr.Error
	require.ErrorAs(t, withCase(wrapped, 5), &ce)
	assert.Equal(t, 5, ce.CaseIndex)
}
