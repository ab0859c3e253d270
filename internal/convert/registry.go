// Package convert maps converter identifiers to stateless converters that
// turn raw configuration tokens into typed values.
//
// A Registry is constructed once at startup and passed by reference to every
// component that converts tokens. Converter instances are created lazily, at
// most once per identifier, and reused for the lifetime of the registry.
package convert

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/roach88/scenariocast/internal/casterr"
)

// Built-in converter identifiers.
const (
	String = "string"
	Int    = "int"
	Float  = "float"
	Bool   = "bool"
)

// Converter converts one raw token into a typed value.
// Implementations must be stateless; one instance is shared across cases.
type Converter interface {
	Convert(text string) (any, error)
}

// Func adapts a function to the Converter interface.
type Func func(text string) (any, error)

// Convert calls f(text).
func (f Func) Convert(text string) (any, error) {
	return f(text)
}

// Factory creates a converter instance. Called at most once per identifier.
type Factory func() (Converter, error)

// Registry resolves converter identifiers to shared converter instances.
//
// Thread-safety: all methods are safe for concurrent use. The mutex guards
// the registry as a whole, never individual converters.
type Registry struct {
	mu        sync.Mutex
	factories map[string]Factory
	instances map[string]Converter
}

// NewRegistry creates a registry with the built-in converters registered.
func NewRegistry() *Registry {
	r := &Registry{
		factories: make(map[string]Factory),
		instances: make(map[string]Converter),
	}
	r.Register(String, func() (Converter, error) { return Func(convertString), nil })
	r.Register(Int, func() (Converter, error) { return Func(convertInt), nil })
	r.Register(Float, func() (Converter, error) { return Func(convertFloat), nil })
	r.Register(Bool, func() (Converter, error) { return Func(convertBool), nil })
	return r
}

// Register adds or replaces the factory for id. Replacing a factory drops any
// instance already created for that id.
func (r *Registry) Register(id string, factory Factory) {
	id = strings.TrimSpace(id)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[id] = factory
	delete(r.instances, id)
}

// Get returns the shared converter for id, creating it on first use.
// Unknown identifiers and factory failures are configuration errors.
func (r *Registry) Get(id string) (Converter, error) {
	id = strings.TrimSpace(id)

	r.mu.Lock()
	defer r.mu.Unlock()

	if conv, ok := r.instances[id]; ok {
		return conv, nil
	}

	factory, ok := r.factories[id]
	if !ok {
		return nil, casterr.Configuration(casterr.CodeConverterNotFound,
			"cannot find converter %q (known: %s)", id, strings.Join(r.idsLocked(), ", "))
	}

	conv, err := factory()
	if err != nil {
		return nil, casterr.Configuration(casterr.CodeConverterInitFailed,
			"error instantiating converter %q", id).WithCause(err)
	}
	if conv == nil {
		return nil, casterr.Configuration(casterr.CodeConverterInitFailed,
			"factory for converter %q returned nil", id)
	}

	r.instances[id] = conv
	return conv, nil
}

// Convert converts every token with the converter registered under id.
// The result has the same length and order as tokens.
func (r *Registry) Convert(id string, tokens []string) ([]any, error) {
	conv, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return Apply(conv, id, tokens)
}

// IDs returns the registered identifiers in sorted order.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.idsLocked()
}

func (r *Registry) idsLocked() []string {
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Apply converts tokens with conv. id is only used in error messages.
func Apply(conv Converter, id string, tokens []string) ([]any, error) {
	values := make([]any, len(tokens))
	for i, tok := range tokens {
		v, err := conv.Convert(tok)
		if err != nil {
			return nil, casterr.Configuration(casterr.CodeConversionFailed,
				"cannot convert token %q with converter %q", tok, id).WithCause(err)
		}
		values[i] = v
	}
	return values, nil
}

func convertString(text string) (any, error) {
	return text, nil
}

func convertInt(text string) (any, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("not an integer: %w", err)
	}
	return n, nil
}

func convertFloat(text string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return nil, fmt.Errorf("not a float: %w", err)
	}
	return f, nil
}

func convertBool(text string) (any, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("not a boolean: %w", err)
	}
	return b, nil
}
