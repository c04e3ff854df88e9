package rbx

import (
	"errors"
	"sync"
	"testing"
)

func TestRegistryInsertAndLookup(t *testing.T) {
	r := NewRegistry()
	r.InsertPropertyGetter("Part", "Mass", func(Instance) (Value, error) {
		return FloatValue(8), nil
	})

	getter, ok := r.PropertyGetter("Part", "Mass")
	if !ok {
		t.Fatal("getter not found after insert")
	}
	v, err := getter(Instance{})
	if err != nil || v.Float() != 8 {
		t.Errorf("getter returned (%v, %v), want (8, nil)", v, err)
	}

	if _, ok := r.PropertyGetter("Part", "Other"); ok {
		t.Error("lookup of unregistered member should miss")
	}
	if _, ok := r.PropertyGetter("Folder", "Mass"); ok {
		t.Error("lookup under a different class should miss")
	}
}

func TestRegistryUpsertLastWriteWins(t *testing.T) {
	r := NewRegistry()
	r.InsertPropertyGetter("Part", "Mass", func(Instance) (Value, error) {
		return IntValue(1), nil
	})
	r.InsertPropertyGetter("Part", "Mass", func(Instance) (Value, error) {
		return IntValue(2), nil
	})

	getter, ok := r.PropertyGetter("Part", "Mass")
	if !ok {
		t.Fatal("getter not found")
	}
	v, _ := getter(Instance{})
	if v.Int() != 2 {
		t.Errorf("second install should win, got %d", v.Int())
	}
}

func TestRegistryUnknownClassIsLegal(t *testing.T) {
	r := NewRegistry()
	r.InsertMethod("NoSuchClass", "Frobnicate", func(Instance, []Value) (Value, error) {
		return NilValue(), nil
	})
	if _, ok := r.Method("NoSuchClass", "Frobnicate"); !ok {
		t.Error("registration for unknown class should still be retrievable")
	}
}

func TestRegistrySynthesizedReadOnlySetter(t *testing.T) {
	r := NewRegistry()
	r.InsertProperty("Part", "ByteSize", func(Instance) (Value, error) {
		return IntValue(0), nil
	}, nil)

	setter, ok := r.PropertySetter("Part", "ByteSize")
	if !ok {
		t.Fatal("synthesized setter not installed")
	}
	err := setter(Instance{}, IntValue(1))
	if err == nil {
		t.Fatal("synthesized setter should fail")
	}
	var roErr *ReadOnlyPropertyError
	if !errors.As(err, &roErr) {
		t.Fatalf("error should be ReadOnlyPropertyError, got %T", err)
	}
	if roErr.Property != "ByteSize" {
		t.Errorf("error names %q, want ByteSize", roErr.Property)
	}
	if err.Error() != "Property 'ByteSize' is read-only" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestRegistryExplicitSetterKept(t *testing.T) {
	r := NewRegistry()
	var stored Value
	r.InsertProperty("Part", "Tag", func(Instance) (Value, error) {
		return stored, nil
	}, func(_ Instance, v Value) error {
		stored = v
		return nil
	})

	setter, _ := r.PropertySetter("Part", "Tag")
	if err := setter(Instance{}, StringValue("x")); err != nil {
		t.Fatalf("explicit setter failed: %v", err)
	}
	if stored.String() != "x" {
		t.Error("explicit setter should store the value")
	}
}

func TestRegistryConcurrentReads(t *testing.T) {
	r := NewRegistry()
	r.InsertPropertyGetter("Part", "Mass", func(Instance) (Value, error) {
		return IntValue(1), nil
	})

	// Concurrent readers against a host-thread writer must not race.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if _, ok := r.PropertyGetter("Part", "Mass"); !ok {
					t.Error("getter disappeared during concurrent reads")
					return
				}
			}
		}()
	}
	for j := 0; j < 1000; j++ {
		r.InsertPropertyGetter("Folder", "Depth", func(Instance) (Value, error) {
			return IntValue(0), nil
		})
	}
	wg.Wait()
}
