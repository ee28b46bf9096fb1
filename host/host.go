// Package host defines the boundary between the wallet adapter core and
// the runtime that actually owns the wallets, typically a browser window
// bridged over WASM or an embedded webview. The core never touches the
// runtime directly: it reads named fields out of opaque values through the
// Value interface and invokes capability callbacks through Func.
//
// A non-browser embedding (a test harness, a headless agent) supplies its
// own Value implementation; Wrap provides one backed by plain Go maps and
// slices so wallets can be described as ordinary literals.
package host

import (
	"context"
	"sort"
)

// Func is a capability callback exposed by a wallet. It receives a single
// structured argument and settles exactly once with either a result value
// or an error.
type Func func(ctx context.Context, arg map[string]any) (Value, error)

// ChangeListener receives the wallet's current account list whenever the
// wallet raises a change notification. An empty slice means the wallet no
// longer exposes any account.
type ChangeListener func(accounts []Value)

// Value is a read-only view over an externally defined object of unknown
// shape. Every accessor reports whether the underlying field existed and
// had the requested type, so callers can distinguish "missing" from
// "present but wrong shape".
type Value interface {
	// Get returns the named field as a Value.
	Get(key string) (Value, bool)

	// Keys enumerates the field names of an object value.
	Keys() []string

	// AsString returns the value as a string.
	AsString() (string, bool)

	// AsBytes returns the value as a byte buffer.
	AsBytes() ([]byte, bool)

	// AsUint returns the value as an unsigned integer. Floating point
	// values with no fractional part are accepted since numbers often
	// arrive through JSON.
	AsUint() (uint64, bool)

	// AsBool returns the value as a boolean.
	AsBool() (bool, bool)

	// AsArray returns the value as a slice of Values.
	AsArray() ([]Value, bool)

	// AsFunc returns the value as an invocable capability callback.
	AsFunc() (Func, bool)

	// Unwrap returns the underlying host representation. The core keeps
	// it only to hand back to the host when reissuing requests; it never
	// inspects it.
	Unwrap() any
}

// Wrap adapts a plain Go value into a Value. Maps become objects, slices
// become arrays, and func values with the Func signature become callbacks.
func Wrap(v any) Value {
	return value{v}
}

type value struct {
	v any
}

func (w value) Get(key string) (Value, bool) {
	m, ok := w.v.(map[string]any)
	if !ok {
		return nil, false
	}
	inner, ok := m[key]
	if !ok {
		return nil, false
	}
	return value{inner}, true
}

func (w value) Keys() []string {
	m, ok := w.v.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (w value) AsString() (string, bool) {
	s, ok := w.v.(string)
	return s, ok
}

func (w value) AsBytes() ([]byte, bool) {
	switch b := w.v.(type) {
	case []byte:
		return b, true
	case [32]byte:
		return b[:], true
	case [64]byte:
		return b[:], true
	}
	return nil, false
}

func (w value) AsUint() (uint64, bool) {
	switch n := w.v.(type) {
	case uint64:
		return n, true
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case float64:
		if n < 0 || n != float64(uint64(n)) {
			return 0, false
		}
		return uint64(n), true
	}
	return 0, false
}

func (w value) AsBool() (bool, bool) {
	b, ok := w.v.(bool)
	return b, ok
}

func (w value) AsArray() ([]Value, bool) {
	raw, ok := w.v.([]any)
	if !ok {
		return nil, false
	}
	values := make([]Value, len(raw))
	for i, inner := range raw {
		values[i] = value{inner}
	}
	return values, true
}

func (w value) AsFunc() (Func, bool) {
	switch fn := w.v.(type) {
	case Func:
		return fn, true
	case func(context.Context, map[string]any) (Value, error):
		return fn, true
	}
	return nil, false
}

func (w value) Unwrap() any {
	return w.v
}
