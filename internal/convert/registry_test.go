package convert

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scenariocast/internal/casterr"
)

func TestRegistry_BuiltIns(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		id    string
		token string
		want  any
	}{
		{String, "present", "present"},
		{Int, "42", 42},
		{Int, " -7 ", -7},
		{Float, "2.5", 2.5},
		{Bool, "true", true},
		{Bool, "FALSE", false},
	}

	for _, tt := range tests {
		t.Run(tt.id+"/"+tt.token, func(t *testing.T) {
			got, err := r.Convert(tt.id, []string{tt.token})
			require.NoError(t, err)
			assert.Equal(t, []any{tt.want}, got)
		})
	}
}

func TestRegistry_GetReturnsSameInstance(t *testing.T) {
	r := NewRegistry()
	var created int32
	r.Register("upper", func() (Converter, error) {
		atomic.AddInt32(&created, 1)
		return &upperConverter{}, nil
	})

	first, err := r.Get("upper")
	require.NoError(t, err)
	second, err := r.Get(" upper ")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&created))
}

func TestRegistry_ConcurrentGetCreatesOnce(t *testing.T) {
	r := NewRegistry()
	var created int32
	r.Register("upper", func() (Converter, error) {
		atomic.AddInt32(&created, 1)
		return &upperConverter{}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Get("upper")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&created))
}

func TestRegistry_UnknownID(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("com.example.MissingConverter")
	require.Error(t, err)
	assert.True(t, casterr.IsConfiguration(err))
	assert.Equal(t, casterr.CodeConverterNotFound, casterr.CodeOf(err))
	assert.Contains(t, err.Error(), "com.example.MissingConverter")
}

func TestRegistry_FactoryFailure(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	r.Register("broken", func() (Converter, error) { return nil, boom })

	_, err := r.Get("broken")
	require.Error(t, err)
	assert.Equal(t, casterr.CodeConverterInitFailed, casterr.CodeOf(err))
	assert.ErrorIs(t, err, boom)
}

func TestRegistry_ConversionFailureNamesToken(t *testing.T) {
	r := NewRegistry()

	_, err := r.Convert(Int, []string{"1", "two"})
	require.Error(t, err)
	assert.Equal(t, casterr.CodeConversionFailed, casterr.CodeOf(err))
	assert.Contains(t, err.Error(), `"two"`)
}

func TestRegistry_IDsSorted(t *testing.T) {
	assert.Equal(t, []string{Bool, Float, Int, String}, NewRegistry().IDs())
}

type upperConverter struct{}

func (upperConverter) Convert(text string) (any, error) {
	out := []rune(text)
	for i, r := range out {
		if r >= 'a' && r <= 'z' {
			out[i] = r - 'a' + 'A'
		}
	}
	return string(out), nil
}
