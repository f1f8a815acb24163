package hooks

import (
	"context"
	"fmt"
	"testing"
)

func TestRun_WildcardFiresBeforeSpecific(t *testing.T) {
	bus := NewBus()
	var got []string

	bus.Add(PhaseBefore, "moduleX", func(_ context.Context, module string, _ Phase) error {
		got = append(got, "specific:"+module)
		return nil
	})
	bus.Add(PhaseBefore, Wildcard, func(_ context.Context, module string, _ Phase) error {
		got = append(got, "wildcard:"+module)
		return nil
	})

	bus.Run(context.Background(), PhaseBefore, "moduleX")

	want := []string{"wildcard:moduleX", "specific:moduleX"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("hook order[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRun_RegistrationOrderPreserved(t *testing.T) {
	bus := NewBus()
	var got []int
	for i := 0; i < 5; i++ {
		i := i
		bus.Add(PhaseAfter, "m", func(context.Context, string, Phase) error {
			got = append(got, i)
			return nil
		})
	}

	bus.Run(context.Background(), PhaseAfter, "m")

	for i, v := range got {
		if v != i {
			t.Fatalf("hooks fired out of registration order: %v", got)
		}
	}
}

func TestRun_ErrorsAreSwallowed(t *testing.T) {
	bus := NewBus()
	fired := false

	bus.Add(PhaseBefore, Wildcard, func(context.Context, string, Phase) error {
		return fmt.Errorf("observer broke")
	})
	bus.Add(PhaseBefore, "m", func(context.Context, string, Phase) error {
		fired = true
		return nil
	})

	// Must not panic, and the failing hook must not stop later hooks.
	bus.Run(context.Background(), PhaseBefore, "m")

	if !fired {
		t.Error("hook after a failing hook did not fire")
	}
}

func TestRun_PhasesAreIndependent(t *testing.T) {
	bus := NewBus()
	var got []string

	bus.Add(PhaseBefore, "m", func(_ context.Context, _ string, phase Phase) error {
		got = append(got, string(phase))
		return nil
	})

	bus.Run(context.Background(), PhaseAfter, "m")
	if len(got) != 0 {
		t.Fatalf("after-phase run fired before-phase hooks: %v", got)
	}

	bus.Run(context.Background(), PhaseBefore, "m")
	if len(got) != 1 || got[0] != "before" {
		t.Fatalf("before-phase hook did not fire correctly: %v", got)
	}
}
