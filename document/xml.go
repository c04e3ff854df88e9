package document

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Xml format
// ---------------------------------------------------------------------------

// xmlNullRef is the referent text for a null instance reference.
const xmlNullRef = "null"

// xmlStringB64 tags a string property whose value cannot survive as XML
// chardata and is carried base64-encoded instead.
const xmlStringB64 = "string64"

type xmlDocument struct {
	XMLName xml.Name  `xml:"rbxdoc"`
	Version int       `xml:"version,attr"`
	Items   []xmlItem `xml:"Item"`
}

type xmlItem struct {
	Class      string    `xml:"class,attr"`
	Referent   string    `xml:"referent,attr"`
	Name       string    `xml:"name,attr"`
	Properties []xmlProp `xml:"Properties>Property"`
	Items      []xmlItem `xml:"Item"`
}

type xmlProp struct {
	Name  string `xml:"name,attr"`
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

// xmlSafeString reports whether s can round-trip as XML chardata: valid
// UTF-8 consisting only of characters XML 1.0 allows (tab, newline,
// carriage return, and everything from space up, minus the surrogate and
// noncharacter gaps).
func xmlSafeString(s string) bool {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return false
		}
		switch {
		case r == '\t' || r == '\n' || r == '\r':
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			return false
		}
		i += size
	}
	return true
}

// referentFor derives a stable referent for a flat node index. SHA1-based
// UUIDs keep repeated encodes of an unmodified document byte-identical.
func referentFor(index int64) string {
	u := uuid.NewSHA1(uuid.NameSpaceOID, []byte("rbxdoc-referent-"+strconv.FormatInt(index, 10)))
	return "RBX" + strings.ReplaceAll(u.String(), "-", "")
}

func encodeXml(d *Document) ([]byte, error) {
	nodes, err := flatten(d.roots)
	if err != nil {
		return nil, err
	}

	children := make([][]int64, len(nodes))
	for i, n := range nodes {
		if n.Parent != nullRef {
			children[n.Parent] = append(children[n.Parent], int64(i))
		}
	}

	var build func(i int64) (xmlItem, error)
	build = func(i int64) (xmlItem, error) {
		n := nodes[i]
		item := xmlItem{
			Class:    n.Class,
			Referent: referentFor(i),
			Name:     n.Name,
		}
		for _, p := range n.Props {
			xp, err := toXmlProp(p)
			if err != nil {
				return xmlItem{}, err
			}
			item.Properties = append(item.Properties, xp)
		}
		for _, c := range children[i] {
			child, err := build(c)
			if err != nil {
				return xmlItem{}, err
			}
			item.Items = append(item.Items, child)
		}
		return item, nil
	}

	doc := xmlDocument{Version: int(BinaryVersion)}
	for i, n := range nodes {
		if n.Parent == nullRef {
			item, err := build(int64(i))
			if err != nil {
				return nil, err
			}
			doc.Items = append(doc.Items, item)
		}
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, wrapError(EncodeFailure, err, "marshal xml document")
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func toXmlProp(p flatProp) (xmlProp, error) {
	fv := p.Value
	out := xmlProp{Name: p.Name, Type: fv.Kind}
	switch fv.Kind {
	case "nil":
		out.Value = ""
	case "bool":
		out.Value = strconv.FormatBool(fv.Bool)
	case "int":
		out.Value = strconv.FormatInt(fv.Int, 10)
	case "float":
		out.Value = strconv.FormatFloat(fv.Float, 'g', -1, 64)
	case "string":
		// The encoder silently replaces XML-invalid runes with U+FFFD,
		// which would corrupt the value; such strings ride as base64
		// under their own type tag instead.
		if xmlSafeString(fv.Str) {
			out.Value = fv.Str
		} else {
			out.Type = xmlStringB64
			out.Value = base64.StdEncoding.EncodeToString([]byte(fv.Str))
		}
	case "bytes":
		out.Value = base64.StdEncoding.EncodeToString(fv.Bytes)
	case "vector3", "color3":
		out.Value = fmt.Sprintf("%s %s %s",
			strconv.FormatFloat(fv.Triple[0], 'g', -1, 64),
			strconv.FormatFloat(fv.Triple[1], 'g', -1, 64),
			strconv.FormatFloat(fv.Triple[2], 'g', -1, 64))
	case "ref":
		if fv.Ref == nullRef {
			out.Value = xmlNullRef
		} else {
			out.Value = referentFor(fv.Ref)
		}
	default:
		return xmlProp{}, newError(EncodeFailure, "property %q has unknown kind %q", p.Name, fv.Kind)
	}
	return out, nil
}

func decodeXml(data []byte, kind Kind) (*Document, error) {
	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, wrapError(MalformedBytes, err, "unmarshal xml document")
	}

	// Flatten items back to wire nodes, mapping referents to indices
	// first so refs can point anywhere in the document.
	refIndex := make(map[string]int64)
	var nodes []flatNode
	var rawProps [][]xmlProp
	var walk func(item *xmlItem, parent int64) error
	walk = func(item *xmlItem, parent int64) error {
		if item.Class == "" {
			return newError(MalformedBytes, "item with no class attribute")
		}
		idx := int64(len(nodes))
		if item.Referent != "" {
			if _, dup := refIndex[item.Referent]; dup {
				return newError(MalformedBytes, "duplicate referent %q", item.Referent)
			}
			refIndex[item.Referent] = idx
		}
		nodes = append(nodes, flatNode{Class: item.Class, Name: item.Name, Parent: parent})
		rawProps = append(rawProps, item.Properties)
		for i := range item.Items {
			if err := walk(&item.Items[i], idx); err != nil {
				return err
			}
		}
		return nil
	}
	for i := range doc.Items {
		if err := walk(&doc.Items[i], nullRef); err != nil {
			return nil, err
		}
	}

	for i := range nodes {
		for _, xp := range rawProps[i] {
			fv, err := fromXmlProp(xp, refIndex)
			if err != nil {
				return nil, wrapError(MalformedBytes, err, "item %d property %q", i, xp.Name)
			}
			nodes[i].Props = append(nodes[i].Props, flatProp{Name: xp.Name, Value: fv})
		}
	}

	roots, err := unflatten(nodes)
	if err != nil {
		return nil, err
	}
	return newDocument(kind, roots)
}

func fromXmlProp(xp xmlProp, refIndex map[string]int64) (flatValue, error) {
	text := strings.TrimSpace(xp.Value)
	switch xp.Type {
	case "nil":
		return flatValue{Kind: "nil"}, nil
	case "bool":
		b, err := strconv.ParseBool(text)
		if err != nil {
			return flatValue{}, err
		}
		return flatValue{Kind: "bool", Bool: b}, nil
	case "int":
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return flatValue{}, err
		}
		return flatValue{Kind: "int", Int: i}, nil
	case "float":
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return flatValue{}, err
		}
		return flatValue{Kind: "float", Float: f}, nil
	case "string":
		// Strings keep their exact chardata, including edge whitespace.
		return flatValue{Kind: "string", Str: xp.Value}, nil
	case xmlStringB64:
		b, err := base64.StdEncoding.DecodeString(text)
		if err != nil {
			return flatValue{}, err
		}
		return flatValue{Kind: "string", Str: string(b)}, nil
	case "bytes":
		b, err := base64.StdEncoding.DecodeString(text)
		if err != nil {
			return flatValue{}, err
		}
		return flatValue{Kind: "bytes", Bytes: b}, nil
	case "vector3", "color3":
		parts := strings.Fields(text)
		if len(parts) != 3 {
			return flatValue{}, fmt.Errorf("expected 3 components, got %d", len(parts))
		}
		var triple [3]float64
		for i, p := range parts {
			f, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return flatValue{}, err
			}
			triple[i] = f
		}
		return flatValue{Kind: xp.Type, Triple: triple}, nil
	case "ref":
		if text == xmlNullRef || text == "" {
			return flatValue{Kind: "ref", Ref: nullRef}, nil
		}
		idx, ok := refIndex[text]
		if !ok {
			return flatValue{}, fmt.Errorf("unknown referent %q", text)
		}
		return flatValue{Kind: "ref", Ref: idx}, nil
	default:
		return flatValue{}, fmt.Errorf("unknown property type %q", xp.Type)
	}
}

// SniffXml reports whether data looks like an XML document: optional
// whitespace or a byte order mark followed by '<'.
func SniffXml(data []byte) bool {
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}), " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '<'
}
