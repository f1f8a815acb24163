package registry

import (
	"context"
	"testing"
	"time"
)

func noopInit(context.Context) (any, error) { return nil, nil }

func TestRegister_RequiresNameAndInitializer(t *testing.T) {
	reg := New()

	if err := reg.Register(&Descriptor{Init: noopInit}); err == nil {
		t.Error("expected an error for a descriptor without a name")
	}
	if err := reg.Register(&Descriptor{Name: "no-init"}); err == nil {
		t.Error("expected an error for a descriptor without an initializer")
	}
	if err := reg.Register(&Descriptor{Name: "ok", Init: noopInit}); err != nil {
		t.Errorf("valid descriptor rejected: %v", err)
	}
}

func TestRegister_LastWriteWins(t *testing.T) {
	reg := New()

	if err := reg.Register(&Descriptor{Name: "db", Priority: 1, Init: noopInit}); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := reg.Register(&Descriptor{Name: "db", Priority: 9, Init: noopInit}); err != nil {
		t.Fatalf("re-registration failed: %v", err)
	}

	if reg.Len() != 1 {
		t.Fatalf("expected 1 descriptor after re-registration, got %d", reg.Len())
	}
	d, ok := reg.Get("db")
	if !ok {
		t.Fatal("descriptor not found after re-registration")
	}
	if d.Priority != 9 {
		t.Errorf("expected the second descriptor to win, got priority %d", d.Priority)
	}
}

func TestRegistry_Lookups(t *testing.T) {
	reg := New()
	for _, name := range []string{"c", "a", "b"} {
		if err := reg.Register(&Descriptor{Name: name, Init: noopInit}); err != nil {
			t.Fatalf("failed to register %q: %v", name, err)
		}
	}

	if !reg.Has("a") || reg.Has("z") {
		t.Error("Has returned wrong results")
	}

	all := reg.All()
	if len(all) != 3 {
		t.Fatalf("All returned %d descriptors, want 3", len(all))
	}
	for i, want := range []string{"a", "b", "c"} {
		if all[i].Name != want {
			t.Errorf("All()[%d] = %q, want %q (sorted)", i, all[i].Name, want)
		}
	}
}

func TestDescriptor_EffectiveDefaults(t *testing.T) {
	d := &Descriptor{Name: "d", Init: noopInit}

	if got := d.EffectiveTimeout(); got != DefaultTimeout {
		t.Errorf("EffectiveTimeout = %v, want %v", got, DefaultTimeout)
	}
	if got := d.EffectiveMaxRetries(); got != DefaultMaxRetries {
		t.Errorf("EffectiveMaxRetries = %v, want %v", got, DefaultMaxRetries)
	}
	if got := d.EffectiveRetryDelay(); got != DefaultRetryDelay {
		t.Errorf("EffectiveRetryDelay = %v, want %v", got, DefaultRetryDelay)
	}

	d.Timeout = time.Second
	d.MaxRetries = 5
	d.RetryDelay = time.Millisecond
	if d.EffectiveTimeout() != time.Second || d.EffectiveMaxRetries() != 5 || d.EffectiveRetryDelay() != time.Millisecond {
		t.Error("explicit values were not honored")
	}
}

func TestRegisterHandler_DuplicatePanics(t *testing.T) {
	reg := New()
	h := &RegisteredHandler{Init: func(context.Context, any) (any, error) { return nil, nil }}
	reg.RegisterHandler("InitThing", h)

	defer func() {
		if recover() == nil {
			t.Error("expected duplicate handler registration to panic")
		}
	}()
	reg.RegisterHandler("InitThing", h)
}
