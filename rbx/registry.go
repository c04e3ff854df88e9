package rbx

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// ---------------------------------------------------------------------------
// Registry: runtime property/method overrides keyed by class and member
// ---------------------------------------------------------------------------

// PropertyGetter computes a property value for an instance.
type PropertyGetter func(Instance) (Value, error)

// PropertySetter stores a property value on an instance.
type PropertySetter func(Instance, Value) error

// Method is an installed method implementation.
type Method func(Instance, []Value) (Value, error)

// memberKey identifies one member of one class. Case-sensitive.
type memberKey struct {
	class  string
	member string
}

// Registry maps (class, member) pairs to installed property and method
// implementations. Installs are upserts: the last write for a key wins
// and entries are never removed.
//
// Mutation happens only on the host thread, but lookups may run
// concurrently from background codec work, so the tables are xsync maps
// rather than plain maps behind a mutex.
type Registry struct {
	getters *xsync.MapOf[memberKey, PropertyGetter]
	setters *xsync.MapOf[memberKey, PropertySetter]
	methods *xsync.MapOf[memberKey, Method]
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		getters: xsync.NewMapOf[memberKey, PropertyGetter](),
		setters: xsync.NewMapOf[memberKey, PropertySetter](),
		methods: xsync.NewMapOf[memberKey, Method](),
	}
}

// InsertPropertyGetter installs a getter for (class, property).
// Registrations for classes unknown to the reflection database are legal;
// they simply never match an instance.
func (r *Registry) InsertPropertyGetter(class, property string, getter PropertyGetter) {
	r.getters.Store(memberKey{class, property}, getter)
}

// InsertPropertySetter installs a setter for (class, property).
func (r *Registry) InsertPropertySetter(class, property string, setter PropertySetter) {
	r.setters.Store(memberKey{class, property}, setter)
}

// InsertProperty installs a getter and setter pair in one call. A nil
// setter synthesizes one that always fails with ReadOnlyPropertyError
// naming this property.
func (r *Registry) InsertProperty(class, property string, getter PropertyGetter, setter PropertySetter) {
	if setter == nil {
		name := property
		setter = func(Instance, Value) error {
			return &ReadOnlyPropertyError{Property: name}
		}
	}
	r.InsertPropertyGetter(class, property, getter)
	r.InsertPropertySetter(class, property, setter)
}

// InsertMethod installs a method for (class, method).
func (r *Registry) InsertMethod(class, method string, impl Method) {
	r.methods.Store(memberKey{class, method}, impl)
}

// PropertyGetter returns the installed getter for (class, property).
func (r *Registry) PropertyGetter(class, property string) (PropertyGetter, bool) {
	return r.getters.Load(memberKey{class, property})
}

// PropertySetter returns the installed setter for (class, property).
func (r *Registry) PropertySetter(class, property string) (PropertySetter, bool) {
	return r.setters.Load(memberKey{class, property})
}

// Method returns the installed method for (class, method).
func (r *Registry) Method(class, method string) (Method, bool) {
	return r.methods.Load(memberKey{class, method})
}
