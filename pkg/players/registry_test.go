package players

import (
	"testing"

	"github.com/google/uuid"
)

func TestRegistryFirstAddWins(t *testing.T) {
	r := NewRegistry()
	id := uuid.New()

	if !r.Add(id, "x") {
		t.Fatal("first Add returned false")
	}
	if r.Add(id, "renamed") {
		t.Error("second Add for the same id returned true")
	}
	if name, _ := r.Name(id); name != "x" {
		t.Errorf("Name = %q, want x", name)
	}
}

func TestRegistryRemoveAbsent(t *testing.T) {
	r := NewRegistry()
	id := uuid.New()
	r.Add(id, "x")

	if r.Remove(uuid.New()) {
		t.Error("Remove of an absent id returned true")
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d after no-op remove, want 1", r.Len())
	}
}

func TestRegistrySnapshot(t *testing.T) {
	r := NewRegistry()
	a, b := uuid.New(), uuid.New()

	r.Add(a, "x")
	r.Add(b, "y")
	r.Remove(a)

	snap := r.Snapshot()
	if len(snap) != 1 || snap[b] != "y" {
		t.Errorf("Snapshot = %v, want only %s -> y", snap, b)
	}

	// the snapshot is a copy
	snap[a] = "z"
	if _, ok := r.Name(a); ok {
		t.Error("mutating the snapshot changed the registry")
	}
}

func TestRegistrySorted(t *testing.T) {
	r := NewRegistry()
	r.Add(uuid.New(), "charlie")
	r.Add(uuid.New(), "Alice")
	r.Add(uuid.New(), "bob")

	got := r.Sorted()
	want := []string{"Alice", "bob", "charlie"}
	if len(got) != len(want) {
		t.Fatalf("Sorted returned %d players, want %d", len(got), len(want))
	}
	for i, p := range got {
		if p.Name != want[i] {
			t.Errorf("Sorted[%d] = %q, want %q", i, p.Name, want[i])
		}
	}

	r.Reset()
	if r.Len() != 0 {
		t.Errorf("Len after Reset = %d", r.Len())
	}
}
