package plume

import (
	"errors"
	"sync"
	"testing"
)

func TestSharedStateSerializesUpdates(t *testing.T) {
	state := NewSharedState(0)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := state.Update(func(n *int) { *n++ }); err != nil {
				t.Errorf("Update() error = %v", err)
			}
		}()
	}
	wg.Wait()

	var got int
	if err := state.View(func(n int) { got = n }); err != nil {
		t.Fatalf("View() error = %v", err)
	}
	if got != 100 {
		t.Errorf("counter = %d after 100 concurrent updates, want 100", got)
	}
}

func TestSharedStatePoisoning(t *testing.T) {
	state := NewSharedState([]string{"before"})

	func() {
		defer func() {
			if recover() == nil {
				t.Error("panic inside Update should propagate")
			}
		}()
		state.Update(func(v *[]string) {
			*v = append(*v, "partial")
			panic("handler failed mid-mutation")
		})
	}()

	if err := state.Update(func(*[]string) {}); !errors.Is(err, ErrPoisoned) {
		t.Errorf("Update() after poison = %v, want ErrPoisoned", err)
	}
	if err := state.View(func([]string) {}); !errors.Is(err, ErrPoisoned) {
		t.Errorf("View() after poison = %v, want ErrPoisoned", err)
	}
}
