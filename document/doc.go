// Package document converts instance trees to and from wire formats.
//
// A Document is either a Place (exactly one DataModel root, a whole
// application state) or a Model (an ordered sequence of detached roots).
// Either kind can be encoded as Binary (a magic-prefixed canonical-CBOR
// stream) or Xml; decoding sniffs the format from content, so callers
// only state which document kind they expect.
package document
