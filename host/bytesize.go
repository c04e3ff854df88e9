package host

import (
	"github.com/chazu/rbxdoc/document"
	"github.com/chazu/rbxdoc/rbx"
)

// ByteSizeProperty is the derived property installed on every known
// class at module construction.
const ByteSizeProperty = "ByteSize"

// byteSizeGetter computes the instance's binary-encoded size. Any wrap
// or encode failure yields 0: a broken ByteSize must never break member
// access.
func byteSizeGetter(in rbx.Instance) (rbx.Value, error) {
	var doc *document.Document
	var err error
	if in.ClassName() == "DataModel" {
		doc, err = document.FromDataModelInstance(in)
	} else {
		doc, err = document.FromInstanceArray([]rbx.Instance{in})
	}
	if err != nil {
		return rbx.IntValue(0), nil
	}
	data, err := doc.ToBytesWithFormat(document.Binary)
	if err != nil {
		return rbx.IntValue(0), nil
	}
	return rbx.IntValue(int64(len(data))), nil
}

// installByteSizeForAllClasses installs the read-only ByteSize property
// for every class in the reflection database. One class failing to
// install is reported and skipped; the rest still get the property.
func (m *Module) installByteSizeForAllClasses() {
	for _, class := range m.db.GetClassNames() {
		if err := m.installProperty(class, ByteSizeProperty, byteSizeGetter, nil); err != nil {
			m.log.Errorf("failed to implement %s for class %s: %s", ByteSizeProperty, class, err.Error())
		}
	}
}
