package rbx

import (
	"sort"
	"sync"
)

// ---------------------------------------------------------------------------
// Arena: shared storage for instance trees
// ---------------------------------------------------------------------------

// node is the stored form of a single instance.
type node struct {
	id       int64
	class    string
	name     string
	props    map[string]Value
	parent   int64 // -1 when the node is a root
	children []int64
}

// Arena owns the nodes of one or more instance trees. Instances are
// handles into an Arena; a node lives as long as its Arena does.
//
// Locking model: the host thread mutates under the write lock, and
// background codec work reads under the read lock. Codec encode therefore
// sees a consistent snapshot for the duration of its traversal.
type Arena struct {
	mu     sync.RWMutex
	nodes  map[int64]*node
	nextID int64
}

// NewArena creates an empty Arena.
func NewArena() *Arena {
	return &Arena{nodes: make(map[int64]*node)}
}

// NewInstance allocates a new root node of the given class and returns a
// handle to it. The node's Name defaults to its class name.
func NewInstance(a *Arena, className string) Instance {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.nextID
	a.nextID++
	a.nodes[id] = &node{
		id:     id,
		class:  className,
		name:   className,
		props:  make(map[string]Value),
		parent: -1,
	}
	return Instance{arena: a, id: id}
}

// Len returns the number of live nodes in the arena.
func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.nodes)
}

// get returns the node for id, or nil if the id is unknown.
// Caller must hold a.mu.
func (a *Arena) get(id int64) *node {
	return a.nodes[id]
}

// ---------------------------------------------------------------------------
// Instance: a copyable handle to an arena node
// ---------------------------------------------------------------------------

// Instance is a non-owning handle to a node in an Arena. Instances are
// compared by identity: two handles are equal exactly when they name the
// same node in the same arena.
type Instance struct {
	arena *Arena
	id    int64
}

// HandleFor returns a handle for a node id in the given arena. The
// handle is invalid if the id does not name a live node; codecs use this
// to resolve ref property payloads.
func HandleFor(a *Arena, id int64) Instance {
	return Instance{arena: a, id: id}
}

// Valid reports whether the handle points at a live node.
func (in Instance) Valid() bool {
	if in.arena == nil {
		return false
	}
	in.arena.mu.RLock()
	defer in.arena.mu.RUnlock()
	return in.arena.get(in.id) != nil
}

// ID returns the node id within the owning arena.
func (in Instance) ID() int64 { return in.id }

// Arena returns the owning arena.
func (in Instance) Arena() *Arena { return in.arena }

// ClassName returns the node's class name, or "" for an invalid handle.
func (in Instance) ClassName() string {
	if in.arena == nil {
		return ""
	}
	in.arena.mu.RLock()
	defer in.arena.mu.RUnlock()
	n := in.arena.get(in.id)
	if n == nil {
		return ""
	}
	return n.class
}

// Name returns the node's Name, or "" for an invalid handle.
func (in Instance) Name() string {
	if in.arena == nil {
		return ""
	}
	in.arena.mu.RLock()
	defer in.arena.mu.RUnlock()
	n := in.arena.get(in.id)
	if n == nil {
		return ""
	}
	return n.name
}

// SetName renames the node. No-op on an invalid handle.
func (in Instance) SetName(name string) {
	if in.arena == nil {
		return
	}
	in.arena.mu.Lock()
	defer in.arena.mu.Unlock()
	if n := in.arena.get(in.id); n != nil {
		n.name = name
	}
}

// GetProperty returns the named property value and whether it is set.
func (in Instance) GetProperty(name string) (Value, bool) {
	if in.arena == nil {
		return Value{}, false
	}
	in.arena.mu.RLock()
	defer in.arena.mu.RUnlock()
	n := in.arena.get(in.id)
	if n == nil {
		return Value{}, false
	}
	v, ok := n.props[name]
	return v, ok
}

// SetProperty sets the named property. Setting a Nil value clears it.
func (in Instance) SetProperty(name string, v Value) {
	if in.arena == nil {
		return
	}
	in.arena.mu.Lock()
	defer in.arena.mu.Unlock()
	n := in.arena.get(in.id)
	if n == nil {
		return
	}
	if v.IsNil() {
		delete(n.props, name)
		return
	}
	n.props[name] = v
}

// PropertyNames returns the set property names in sorted order.
func (in Instance) PropertyNames() []string {
	if in.arena == nil {
		return nil
	}
	in.arena.mu.RLock()
	defer in.arena.mu.RUnlock()
	n := in.arena.get(in.id)
	if n == nil {
		return nil
	}
	names := make([]string, 0, len(n.props))
	for name := range n.props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parent returns the node's parent handle and whether it has one.
func (in Instance) Parent() (Instance, bool) {
	if in.arena == nil {
		return Instance{}, false
	}
	in.arena.mu.RLock()
	defer in.arena.mu.RUnlock()
	n := in.arena.get(in.id)
	if n == nil || n.parent < 0 {
		return Instance{}, false
	}
	return Instance{arena: in.arena, id: n.parent}, true
}

// Children returns handles to the node's children in insertion order.
func (in Instance) Children() []Instance {
	if in.arena == nil {
		return nil
	}
	in.arena.mu.RLock()
	defer in.arena.mu.RUnlock()
	n := in.arena.get(in.id)
	if n == nil {
		return nil
	}
	out := make([]Instance, len(n.children))
	for i, id := range n.children {
		out[i] = Instance{arena: in.arena, id: id}
	}
	return out
}

// AddChild reparents child under in. Both handles must belong to the same
// arena; cross-arena links are ignored. A child is detached from its
// previous parent first.
func (in Instance) AddChild(child Instance) {
	if in.arena == nil || child.arena != in.arena || in.id == child.id {
		return
	}
	in.arena.mu.Lock()
	defer in.arena.mu.Unlock()
	parent := in.arena.get(in.id)
	c := in.arena.get(child.id)
	if parent == nil || c == nil {
		return
	}
	if c.parent >= 0 {
		if prev := in.arena.get(c.parent); prev != nil {
			prev.children = removeID(prev.children, c.id)
		}
	}
	c.parent = parent.id
	parent.children = append(parent.children, c.id)
}

func removeID(ids []int64, id int64) []int64 {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
