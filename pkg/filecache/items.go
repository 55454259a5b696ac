// Item stream codec shared by the raw and (post-inflation) gzip
// sections of a cache file, per spec §6.1: a flat concatenation of
// type-tagged, length-prefixed payloads. Modeled on the teacher's
// Entry.Serialize/Deserialize fixed-header-then-payload convention,
// generalized from "one entry shape" to "five payload kinds."
package filecache

import (
	"encoding/binary"

	cerr "github.com/utkarsh5026/filehash/pkg/common/err"
)

// ItemKind names one of the five type tags an item stream can carry.
type ItemKind uint8

const (
	// ItemOpaque stores an uninterpreted byte string (tag 0).
	ItemOpaque ItemKind = 0
	// ItemText stores UTF-8 text (tag 1).
	ItemText ItemKind = 1
	// ItemStructured stores a Value, round-tripped as JSON text (tag 2).
	ItemStructured ItemKind = 2
	// ItemNullValue marks an explicit null, distinct from absence (tag 3).
	ItemNullValue ItemKind = 3
	// ItemAbsentValue marks a caller-supplied undefined/missing slot,
	// distinct from an explicit null (tag 4).
	ItemAbsentValue ItemKind = 4
)

const itemHeaderSize = 5 // 1 tag byte + 4-byte LE payload length

// Item is one payload in a raw or gzip item stream.
type Item struct {
	Kind  ItemKind
	Bytes []byte // meaningful when Kind == ItemOpaque
	Text  string // meaningful when Kind == ItemText
	Value Value  // meaningful when Kind == ItemStructured
}

// ItemFromBytes wraps an opaque byte string (tag 0) — the Go analogue
// of a caller-supplied Buffer.
func ItemFromBytes(b []byte) Item { return Item{Kind: ItemOpaque, Bytes: b} }

// ItemFromText wraps a UTF-8 string (tag 1).
func ItemFromText(s string) Item { return Item{Kind: ItemText, Text: s} }

// ItemFromValue wraps a structured Value (tag 2), stored as JSON text.
func ItemFromValue(v Value) Item { return Item{Kind: ItemStructured, Value: v} }

// ItemNull represents an explicit null (tag 3).
func ItemNull() Item { return Item{Kind: ItemNullValue} }

// ItemAbsent represents an absent/undefined slot (tag 4), distinct from
// ItemNull per spec §6.1: "The cache preserves the distinction between
// 'null' and 'absent'."
func ItemAbsent() Item { return Item{Kind: ItemAbsentValue} }

// encodeItems serializes items into one concatenated byte stream.
func encodeItems(items []Item) ([]byte, error) {
	var out []byte
	for _, it := range items {
		payload, err := itemPayload(it)
		if err != nil {
			return nil, err
		}

		header := make([]byte, itemHeaderSize)
		header[0] = byte(it.Kind)
		binary.LittleEndian.PutUint32(header[1:5], uint32(len(payload)))

		out = append(out, header...)
		out = append(out, payload...)
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}

// itemPayload renders the payload bytes for one item, per its kind.
func itemPayload(it Item) ([]byte, error) {
	switch it.Kind {
	case ItemOpaque:
		return it.Bytes, nil
	case ItemText:
		return []byte(it.Text), nil
	case ItemStructured:
		return marshalValue(it.Value)
	case ItemNullValue, ItemAbsentValue:
		return nil, nil
	default:
		return nil, cerr.New("filecache", cerr.CodeNotSerializable, "item_payload",
			"unknown item kind", nil).WithContext("kind", int(it.Kind))
	}
}

// decodeItems parses count items out of a fully-buffered item stream.
// A truncated header, a payload length exceeding the remaining buffer,
// or an unrecognized type tag all fail with CodeRange, per spec §4.E's
// failure policy ("Corrupted item stream during parse -> fails with
// Range"); callers never recover from this one locally the way they do
// a corrupt header.
func decodeItems(buf []byte, count int) ([]Item, error) {
	items := make([]Item, 0, count)
	offset := 0

	for i := 0; i < count; i++ {
		if offset+itemHeaderSize > len(buf) {
			return nil, cerr.New("filecache", cerr.CodeRange, "decode_items",
				"truncated item header", nil).WithContext("index", i)
		}

		tag := ItemKind(buf[offset])
		length := int(binary.LittleEndian.Uint32(buf[offset+1 : offset+5]))
		offset += itemHeaderSize

		if offset+length > len(buf) {
			return nil, cerr.New("filecache", cerr.CodeRange, "decode_items",
				"item payload exceeds buffer", nil).
				WithContext("index", i).WithContext("length", length)
		}
		payload := buf[offset : offset+length]
		offset += length

		item, err := decodeOneItem(tag, payload)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func decodeOneItem(tag ItemKind, payload []byte) (Item, error) {
	switch tag {
	case ItemOpaque:
		return ItemFromBytes(append([]byte(nil), payload...)), nil
	case ItemText:
		return ItemFromText(string(payload)), nil
	case ItemStructured:
		v, err := unmarshalValue(payload)
		if err != nil {
			return Item{}, err
		}
		return ItemFromValue(v), nil
	case ItemNullValue:
		return ItemNull(), nil
	case ItemAbsentValue:
		return ItemAbsent(), nil
	default:
		return Item{}, cerr.New("filecache", cerr.CodeRange, "decode_items",
			"unknown item type tag", nil).WithContext("tag", int(tag))
	}
}
