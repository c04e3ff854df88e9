package rbx

import "testing"

func TestNewInstance(t *testing.T) {
	a := NewArena()
	part := NewInstance(a, "Part")
	if !part.Valid() {
		t.Fatal("new instance should be valid")
	}
	if part.ClassName() != "Part" {
		t.Errorf("ClassName = %q, want Part", part.ClassName())
	}
	if part.Name() != "Part" {
		t.Errorf("Name should default to class name, got %q", part.Name())
	}
	if _, ok := part.Parent(); ok {
		t.Error("new instance should have no parent")
	}
}

func TestInstanceAliasing(t *testing.T) {
	a := NewArena()
	part := NewInstance(a, "Part")
	alias := part

	alias.SetName("Floor")
	if part.Name() != "Floor" {
		t.Errorf("rename through alias not visible: got %q", part.Name())
	}

	alias.SetProperty("Anchored", BoolValue(true))
	v, ok := part.GetProperty("Anchored")
	if !ok || !v.Bool() {
		t.Error("property set through alias not visible")
	}
}

func TestInstanceProperties(t *testing.T) {
	a := NewArena()
	part := NewInstance(a, "Part")

	if _, ok := part.GetProperty("Size"); ok {
		t.Error("unset property should not be found")
	}

	part.SetProperty("Size", Vector3Value(Vector3{4, 1, 2}))
	part.SetProperty("Anchored", BoolValue(true))

	names := part.PropertyNames()
	if len(names) != 2 || names[0] != "Anchored" || names[1] != "Size" {
		t.Errorf("PropertyNames = %v, want [Anchored Size]", names)
	}

	// Setting nil clears.
	part.SetProperty("Anchored", NilValue())
	if _, ok := part.GetProperty("Anchored"); ok {
		t.Error("nil set should clear the property")
	}
}

func TestInstanceChildren(t *testing.T) {
	a := NewArena()
	folder := NewInstance(a, "Folder")
	p1 := NewInstance(a, "Part")
	p2 := NewInstance(a, "Part")

	folder.AddChild(p1)
	folder.AddChild(p2)

	kids := folder.Children()
	if len(kids) != 2 {
		t.Fatalf("Children len = %d, want 2", len(kids))
	}
	if kids[0] != p1 || kids[1] != p2 {
		t.Error("children order should match insertion order")
	}
	if parent, ok := p1.Parent(); !ok || parent != folder {
		t.Error("child should report folder as parent")
	}
}

func TestInstanceReparent(t *testing.T) {
	a := NewArena()
	f1 := NewInstance(a, "Folder")
	f2 := NewInstance(a, "Folder")
	part := NewInstance(a, "Part")

	f1.AddChild(part)
	f2.AddChild(part)

	if len(f1.Children()) != 0 {
		t.Error("reparent should detach from previous parent")
	}
	if parent, ok := part.Parent(); !ok || parent != f2 {
		t.Error("reparent should attach to new parent")
	}
}

func TestInstanceCrossArenaIgnored(t *testing.T) {
	a := NewArena()
	b := NewArena()
	fa := NewInstance(a, "Folder")
	pb := NewInstance(b, "Part")

	fa.AddChild(pb)
	if len(fa.Children()) != 0 {
		t.Error("cross-arena AddChild should be ignored")
	}
}

func TestInvalidHandle(t *testing.T) {
	var in Instance
	if in.Valid() {
		t.Error("zero Instance should be invalid")
	}
	if in.ClassName() != "" {
		t.Error("invalid handle ClassName should be empty")
	}
	in.SetName("x") // must not panic
	if _, ok := in.GetProperty("x"); ok {
		t.Error("invalid handle should have no properties")
	}
}
