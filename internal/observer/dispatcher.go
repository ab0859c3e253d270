// Package observer lets a test react to the variable tokens of the scenario
// it is running.
//
// A Dispatcher is bound to one scenario run. Callbacks are registered per
// variant, then Dispatch walks the scenario tokens once, resolves each to a
// variant through an explicit Variants table, and fires the callbacks:
//
//	d := observer.NewDispatcher(variants, fixture)
//	d.RegisterTransient("divisor", 0, Zero)
//	d.RegisterTransientName("mode", Fast, Slow)
//	err := d.Dispatch(param.Tokens)
//
// A Dispatcher is single-use: after Dispatch it accepts nothing further.
package observer

import (
	"github.com/roach88/scenariocast/internal/casterr"
)

// State is the lifecycle state of a Dispatcher.
type State int

const (
	// Accepting takes registrations and one Dispatch.
	Accepting State = iota

	// Dispatched is terminal.
	Dispatched
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Accepting:
		return "accepting"
	case Dispatched:
		return "dispatched"
	default:
		return "unknown"
	}
}

// Callback is invoked with the scenario position and raw token of a
// matching variant.
type Callback func(index int, token string)

// TransientSetter receives values injected by RegisterTransient.
type TransientSetter interface {
	SetTransientValue(key string, value any)
}

// ValueParser computes a transient value from the variant that matched.
type ValueParser[V comparable] func(variant V) any

// Dispatcher routes scenario tokens to per-variant callbacks.
type Dispatcher[V comparable] struct {
	variants  Variants[V]
	target    any
	state     State
	callbacks map[V][]Callback
}

// NewDispatcher creates a dispatcher. target receives transient values and
// may be nil when only Register is used.
func NewDispatcher[V comparable](variants Variants[V], target any) *Dispatcher[V] {
	return &Dispatcher[V]{
		variants:  variants,
		target:    target,
		callbacks: make(map[V][]Callback),
	}
}

// State returns the current lifecycle state.
func (d *Dispatcher[V]) State() State {
	return d.state
}

// Register appends cb to the callbacks of variant.
func (d *Dispatcher[V]) Register(variant V, cb Callback) error {
	if d.state == Dispatched {
		return casterr.Usage(casterr.CodeDispatchConsumed,
			"cannot register after the scenario has been dispatched")
	}
	d.callbacks[variant] = append(d.callbacks[variant], cb)
	return nil
}

// RegisterTransient sets key on the target whenever one of variants appears.
// value is either a constant or a ValueParser evaluated when the callback
// fires.
func (d *Dispatcher[V]) RegisterTransient(key string, value any, variants ...V) error {
	setter, err := d.transientTarget(variants)
	if err != nil {
		return err
	}

	parse := func(V) any { return value }
	switch p := value.(type) {
	case ValueParser[V]:
		parse = p
	case func(V) any:
		parse = p
	}

	for _, v := range variants {
		v := v
		if err := d.Register(v, func(int, string) {
			setter.SetTransientValue(key, parse(v))
		}); err != nil {
			return err
		}
	}
	return nil
}

// RegisterTransientName sets key to the variant's name whenever one of
// variants appears.
func (d *Dispatcher[V]) RegisterTransientName(key string, variants ...V) error {
	setter, err := d.transientTarget(variants)
	if err != nil {
		return err
	}

	for _, v := range variants {
		name, ok := d.variants.Name(v)
		if !ok {
			return casterr.Configuration(casterr.CodeUnknownVariant,
				"variant %v is not in the variants table", v)
		}
		if err := d.Register(v, func(int, string) {
			setter.SetTransientValue(key, name)
		}); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher[V]) transientTarget(variants []V) (TransientSetter, error) {
	if d.state == Dispatched {
		return nil, casterr.Usage(casterr.CodeDispatchConsumed,
			"cannot register after the scenario has been dispatched")
	}
	setter, ok := d.target.(TransientSetter)
	if !ok {
		return nil, casterr.Usage(casterr.CodeUnsupportedTarget,
			"target %T does not accept transient values", d.target)
	}
	if len(variants) == 0 {
		return nil, casterr.Usage(casterr.CodeNoVariants,
			"at least one variant is required")
	}
	return setter, nil
}

// Dispatch resolves every token of scenario and fires the registered
// callbacks in scenario order, then registration order. An unresolvable
// token fails the whole dispatch before any callback runs and leaves the
// dispatcher accepting.
func (d *Dispatcher[V]) Dispatch(scenario []string) error {
	if d.state == Dispatched {
		return casterr.Usage(casterr.CodeDispatchConsumed,
			"scenario has already been dispatched")
	}

	resolved := make([]V, len(scenario))
	for i, tok := range scenario {
		v, ok := d.variants.Resolve(tok)
		if !ok {
			return casterr.Configuration(casterr.CodeUnknownVariant,
				"token %q at position %d does not name a variant", tok, i)
		}
		resolved[i] = v
	}

	for i, v := range resolved {
		for _, cb := range d.callbacks[v] {
			cb(i, scenario[i])
		}
	}

	d.state = Dispatched
	d.callbacks = nil
	return nil
}
