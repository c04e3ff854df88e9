package document

import (
	"github.com/chazu/rbxdoc/rbx"
)

// Kind distinguishes whole-application-state documents from detached
// object collections.
type Kind uint8

const (
	// Place holds exactly one DataModel root.
	Place Kind = iota + 1
	// Model holds zero or more non-DataModel roots.
	Model
)

func (k Kind) String() string {
	switch k {
	case Place:
		return "place"
	case Model:
		return "model"
	default:
		return "unknown"
	}
}

// Format selects the wire encoding. Encoding choice is orthogonal to
// document kind.
type Format uint8

const (
	Binary Format = iota + 1
	Xml
)

func (f Format) String() string {
	switch f {
	case Binary:
		return "binary"
	case Xml:
		return "xml"
	default:
		return "unknown"
	}
}

// dataModelClass is the class that marks a document root as a whole
// application state.
const dataModelClass = "DataModel"

// Document is a kind-tagged set of root instances ready for encoding, or
// freshly decoded from bytes.
type Document struct {
	kind  Kind
	roots []rbx.Instance
}

// Kind returns the document kind.
func (d *Document) Kind() Kind { return d.kind }

// newDocument validates the root shape against the kind. Decoded bytes
// that describe the other kind fail here instead of being coerced.
func newDocument(kind Kind, roots []rbx.Instance) (*Document, error) {
	switch kind {
	case Place:
		if len(roots) != 1 {
			return nil, newError(KindMismatch, "a place holds exactly one root, found %d", len(roots))
		}
		if class := roots[0].ClassName(); class != dataModelClass {
			return nil, newError(KindMismatch, "place root is %q, expected %s", class, dataModelClass)
		}
	case Model:
		for _, root := range roots {
			if root.ClassName() == dataModelClass {
				return nil, newError(KindMismatch, "a model cannot hold a %s root", dataModelClass)
			}
		}
	default:
		return nil, newError(WrongKind, "unknown document kind %d", kind)
	}
	return &Document{kind: kind, roots: roots}, nil
}

// FromBytes parses raw bytes as either wire format, sniffing the format
// from content. Fails with a DocumentError when the bytes are malformed
// or describe a different kind than requested.
func FromBytes(data []byte, kind Kind) (*Document, error) {
	switch {
	case SniffBinary(data):
		return decodeBinary(data, kind)
	case SniffXml(data):
		return decodeXml(data, kind)
	default:
		return nil, newError(MalformedBytes, "input is neither a binary nor an xml document")
	}
}

// FromDataModelInstance wraps a single DataModel instance as a Place
// document.
func FromDataModelInstance(inst rbx.Instance) (*Document, error) {
	if !inst.Valid() {
		return nil, newError(EncodeFailure, "instance handle is not alive")
	}
	return newDocument(Place, []rbx.Instance{inst})
}

// FromInstanceArray wraps an ordered sequence of instances as a Model
// document. An empty sequence is a legal, minimal model.
func FromInstanceArray(insts []rbx.Instance) (*Document, error) {
	for _, in := range insts {
		if !in.Valid() {
			return nil, newError(EncodeFailure, "instance handle is not alive")
		}
	}
	roots := make([]rbx.Instance, len(insts))
	copy(roots, insts)
	return newDocument(Model, roots)
}

// IntoDataModelInstance returns the single root of a Place document.
func (d *Document) IntoDataModelInstance() (rbx.Instance, error) {
	if d.kind != Place {
		return rbx.Instance{}, newError(WrongKind, "document is a %s, not a place", d.kind)
	}
	return d.roots[0], nil
}

// IntoInstanceArray returns the roots of a Model document in order.
func (d *Document) IntoInstanceArray() ([]rbx.Instance, error) {
	if d.kind != Model {
		return nil, newError(WrongKind, "document is a %s, not a model", d.kind)
	}
	out := make([]rbx.Instance, len(d.roots))
	copy(out, d.roots)
	return out, nil
}

// ToBytesWithFormat encodes the document tree to the requested format.
// Repeated calls on an unmodified document produce identical bytes.
func (d *Document) ToBytesWithFormat(f Format) ([]byte, error) {
	switch f {
	case Binary:
		return encodeBinary(d)
	case Xml:
		return encodeXml(d)
	default:
		return nil, newError(EncodeFailure, "unknown format %d", f)
	}
}
