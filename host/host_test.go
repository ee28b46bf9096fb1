package host

import (
	"context"
	"testing"
)

func TestWrapObject(t *testing.T) {
	v := Wrap(map[string]any{
		"name":  "Phantom",
		"count": 3,
		"ready": true,
		"key":   [32]byte{1},
		"tags":  []any{"a", "b"},
		"inner": map[string]any{"deep": "value"},
	})

	if got, ok := v.Get("name"); !ok {
		t.Fatal("Get(name) missing")
	} else if s, _ := got.AsString(); s != "Phantom" {
		t.Errorf("AsString() = %q", s)
	}

	if got, _ := v.Get("count"); got != nil {
		if n, ok := got.AsUint(); !ok || n != 3 {
			t.Errorf("AsUint() = %d, %v", n, ok)
		}
	}

	if got, _ := v.Get("ready"); got != nil {
		if b, ok := got.AsBool(); !ok || !b {
			t.Errorf("AsBool() = %v, %v", b, ok)
		}
	}

	if got, _ := v.Get("key"); got != nil {
		if raw, ok := got.AsBytes(); !ok || len(raw) != 32 || raw[0] != 1 {
			t.Errorf("AsBytes() = %v, %v", raw, ok)
		}
	}

	if got, _ := v.Get("tags"); got != nil {
		items, ok := got.AsArray()
		if !ok || len(items) != 2 {
			t.Fatalf("AsArray() = %v, %v", items, ok)
		}
		if s, _ := items[1].AsString(); s != "b" {
			t.Errorf("items[1] = %q", s)
		}
	}

	if inner, ok := v.Get("inner"); !ok {
		t.Fatal("Get(inner) missing")
	} else if deep, ok := inner.Get("deep"); !ok {
		t.Fatal("nested Get missing")
	} else if s, _ := deep.AsString(); s != "value" {
		t.Errorf("nested value = %q", s)
	}

	if _, ok := v.Get("absent"); ok {
		t.Error("Get(absent) reported present")
	}

	keys := v.Keys()
	if len(keys) != 6 || keys[0] != "count" {
		t.Errorf("Keys() = %v, want sorted field names", keys)
	}
}

func TestWrapFunc(t *testing.T) {
	called := false
	fn := Func(func(ctx context.Context, arg map[string]any) (Value, error) {
		called = true
		return Wrap(map[string]any{"ok": true}), nil
	})

	v := Wrap(map[string]any{"call": fn})
	field, ok := v.Get("call")
	if !ok {
		t.Fatal("Get(call) missing")
	}
	got, ok := field.AsFunc()
	if !ok {
		t.Fatal("AsFunc() failed")
	}
	result, err := got(context.Background(), nil)
	if err != nil {
		t.Fatalf("call error = %v", err)
	}
	if !called {
		t.Error("callback not invoked")
	}
	if okField, _ := result.Get("ok"); okField != nil {
		if b, _ := okField.AsBool(); !b {
			t.Error("result ok = false")
		}
	}
}

func TestWrapNumericCoercion(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want uint64
		ok   bool
	}{
		{"float whole", float64(7), 7, true},
		{"float fractional", float64(7.5), 0, false},
		{"negative int", -1, 0, false},
		{"uint8", uint8(255), 255, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Wrap(tt.in).AsUint()
			if ok != tt.ok || got != tt.want {
				t.Errorf("AsUint() = %d, %v, want %d, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}
