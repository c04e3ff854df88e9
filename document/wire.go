package document

import (
	"github.com/chazu/rbxdoc/rbx"
)

// ---------------------------------------------------------------------------
// Flattened tree: the format-independent wire model
// ---------------------------------------------------------------------------

// Both codecs serialize the same flattened form: nodes in depth-first
// preorder, parents before children, with instance references rewritten
// to flat indices. A ref to an instance outside the document becomes a
// null reference.

const nullRef int64 = -1

type flatValue struct {
	Kind   string     `cbor:"k"`
	Bool   bool       `cbor:"b,omitempty"`
	Int    int64      `cbor:"i,omitempty"`
	Float  float64    `cbor:"f,omitempty"`
	Str    string     `cbor:"s,omitempty"`
	Bytes  []byte     `cbor:"y,omitempty"`
	Triple [3]float64 `cbor:"t,omitempty"`
	Ref    int64      `cbor:"r,omitempty"`
}

type flatProp struct {
	Name  string    `cbor:"n"`
	Value flatValue `cbor:"v"`
}

type flatNode struct {
	Class  string     `cbor:"c"`
	Name   string     `cbor:"m"`
	Parent int64      `cbor:"p"` // index of parent node, nullRef for roots
	Props  []flatProp `cbor:"x,omitempty"`
}

// flatten walks the root instances depth-first and produces the wire
// node list. Fails with EncodeFailure on a dead handle.
func flatten(roots []rbx.Instance) ([]flatNode, error) {
	// First pass assigns indices so refs can point forward.
	index := make(map[rbx.Instance]int64)
	var order []rbx.Instance
	var walk func(in rbx.Instance) error
	walk = func(in rbx.Instance) error {
		if !in.Valid() {
			return newError(EncodeFailure, "instance handle is not alive")
		}
		if _, seen := index[in]; seen {
			return newError(EncodeFailure, "instance %q appears twice in the tree", in.Name())
		}
		index[in] = int64(len(order))
		order = append(order, in)
		for _, child := range in.Children() {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	for _, root := range roots {
		if err := walk(root); err != nil {
			return nil, err
		}
	}

	nodes := make([]flatNode, 0, len(order))
	for _, in := range order {
		n := flatNode{
			Class:  in.ClassName(),
			Name:   in.Name(),
			Parent: nullRef,
		}
		if parent, ok := in.Parent(); ok {
			if pi, ok := index[parent]; ok {
				n.Parent = pi
			}
		}
		for _, name := range in.PropertyNames() {
			v, ok := in.GetProperty(name)
			if !ok {
				continue
			}
			n.Props = append(n.Props, flatProp{Name: name, Value: toFlatValue(v, in.Arena(), index)})
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func toFlatValue(v rbx.Value, arena *rbx.Arena, index map[rbx.Instance]int64) flatValue {
	switch v.Kind() {
	case rbx.KindBool:
		return flatValue{Kind: "bool", Bool: v.Bool()}
	case rbx.KindInt:
		return flatValue{Kind: "int", Int: v.Int()}
	case rbx.KindFloat:
		return flatValue{Kind: "float", Float: v.Float()}
	case rbx.KindString:
		return flatValue{Kind: "string", Str: v.String()}
	case rbx.KindBytes:
		return flatValue{Kind: "bytes", Bytes: v.Bytes()}
	case rbx.KindVector3:
		vec := v.Vector3()
		return flatValue{Kind: "vector3", Triple: [3]float64{vec.X, vec.Y, vec.Z}}
	case rbx.KindColor3:
		c := v.Color3()
		return flatValue{Kind: "color3", Triple: [3]float64{c.R, c.G, c.B}}
	case rbx.KindRef:
		target := rbx.HandleFor(arena, v.Ref())
		if ti, ok := index[target]; ok {
			return flatValue{Kind: "ref", Ref: ti}
		}
		return flatValue{Kind: "ref", Ref: nullRef}
	default:
		return flatValue{Kind: "nil"}
	}
}

// unflatten rebuilds an instance tree from wire nodes into a fresh arena
// and returns the root handles in document order.
func unflatten(nodes []flatNode) ([]rbx.Instance, error) {
	arena := rbx.NewArena()
	instances := make([]rbx.Instance, len(nodes))
	for i, n := range nodes {
		if n.Class == "" {
			return nil, newError(MalformedBytes, "node %d has no class", i)
		}
		in := rbx.NewInstance(arena, n.Class)
		in.SetName(n.Name)
		instances[i] = in
	}

	var roots []rbx.Instance
	for i, n := range nodes {
		switch {
		case n.Parent == nullRef:
			roots = append(roots, instances[i])
		case n.Parent < 0 || n.Parent >= int64(len(nodes)):
			return nil, newError(MalformedBytes, "node %d has out-of-range parent %d", i, n.Parent)
		case n.Parent >= int64(i):
			return nil, newError(MalformedBytes, "node %d precedes its parent %d", i, n.Parent)
		default:
			instances[n.Parent].AddChild(instances[i])
		}
	}

	// Refs resolve after every node exists.
	for i, n := range nodes {
		for _, p := range n.Props {
			v, err := fromFlatValue(p.Value, instances)
			if err != nil {
				return nil, wrapError(MalformedBytes, err, "node %d property %q", i, p.Name)
			}
			instances[i].SetProperty(p.Name, v)
		}
	}
	return roots, nil
}

func fromFlatValue(fv flatValue, instances []rbx.Instance) (rbx.Value, error) {
	switch fv.Kind {
	case "nil":
		return rbx.NilValue(), nil
	case "bool":
		return rbx.BoolValue(fv.Bool), nil
	case "int":
		return rbx.IntValue(fv.Int), nil
	case "float":
		return rbx.FloatValue(fv.Float), nil
	case "string":
		return rbx.StringValue(fv.Str), nil
	case "bytes":
		return rbx.BytesValue(fv.Bytes), nil
	case "vector3":
		return rbx.Vector3Value(rbx.Vector3{X: fv.Triple[0], Y: fv.Triple[1], Z: fv.Triple[2]}), nil
	case "color3":
		return rbx.Color3Value(rbx.Color3{R: fv.Triple[0], G: fv.Triple[1], B: fv.Triple[2]}), nil
	case "ref":
		if fv.Ref == nullRef {
			return rbx.RefValue(-1), nil
		}
		if fv.Ref < 0 || fv.Ref >= int64(len(instances)) {
			return rbx.Value{}, newError(MalformedBytes, "ref target %d out of range", fv.Ref)
		}
		return rbx.RefValue(instances[fv.Ref].ID()), nil
	default:
		return rbx.Value{}, newError(MalformedBytes, "unknown value kind %q", fv.Kind)
	}
}
