package document

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// ---------------------------------------------------------------------------
// Binary format: magic + version + kind + canonical CBOR payload
// ---------------------------------------------------------------------------

// BinaryMagic identifies a binary rbxdoc stream.
var BinaryMagic = [8]byte{'<', 'r', 'b', 'x', 'd', 'o', 'c', '!'}

// BinaryVersion is the current binary format version.
// v1: initial format
const BinaryVersion byte = 1

// Kind bytes stored in the binary header.
const (
	binaryKindPlace byte = 1
	binaryKindModel byte = 2
)

// binaryHeaderSize is magic(8) + version(1) + kind(1).
const binaryHeaderSize = 10

// Canonical mode keeps encoding deterministic for a given document state.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("document: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

type binaryPayload struct {
	Nodes []flatNode `cbor:"n"`
}

func encodeBinary(d *Document) ([]byte, error) {
	nodes, err := flatten(d.roots)
	if err != nil {
		return nil, err
	}
	body, err := cborEncMode.Marshal(binaryPayload{Nodes: nodes})
	if err != nil {
		return nil, wrapError(EncodeFailure, err, "marshal binary payload")
	}

	buf := bytes.NewBuffer(make([]byte, 0, binaryHeaderSize+len(body)))
	buf.Write(BinaryMagic[:])
	buf.WriteByte(BinaryVersion)
	if d.kind == Place {
		buf.WriteByte(binaryKindPlace)
	} else {
		buf.WriteByte(binaryKindModel)
	}
	buf.Write(body)
	return buf.Bytes(), nil
}

func decodeBinary(data []byte, kind Kind) (*Document, error) {
	if len(data) < binaryHeaderSize {
		return nil, newError(MalformedBytes, "binary stream truncated at %d bytes", len(data))
	}
	if !bytes.HasPrefix(data, BinaryMagic[:]) {
		return nil, newError(MalformedBytes, "bad binary magic")
	}
	if v := data[8]; v != BinaryVersion {
		return nil, newError(MalformedBytes, "unsupported binary version %d", v)
	}

	var storedKind Kind
	switch data[9] {
	case binaryKindPlace:
		storedKind = Place
	case binaryKindModel:
		storedKind = Model
	default:
		return nil, newError(MalformedBytes, "unknown kind byte %d", data[9])
	}
	if storedKind != kind {
		return nil, newError(KindMismatch, "stream holds a %s, caller requested a %s", storedKind, kind)
	}

	var payload binaryPayload
	if err := cbor.Unmarshal(data[binaryHeaderSize:], &payload); err != nil {
		return nil, wrapError(MalformedBytes, err, "unmarshal binary payload")
	}
	roots, err := unflatten(payload.Nodes)
	if err != nil {
		return nil, err
	}
	return newDocument(kind, roots)
}

// SniffBinary reports whether data starts with the binary magic.
func SniffBinary(data []byte) bool {
	return bytes.HasPrefix(data, BinaryMagic[:])
}
