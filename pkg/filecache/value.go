package filecache

import (
	"encoding/json"
	"fmt"

	cerr "github.com/utkarsh5026/filehash/pkg/common/err"
)

// ValueKind discriminates the closed sum type Value represents: the
// native Go shape chosen for raw-item type-tag 2 ("structured / JSON"),
// per SPEC_FULL.md's resolution of spec.md §9 Open Question #1.
type ValueKind int

const (
	ValueKindNull ValueKind = iota
	ValueKindString
	ValueKindNumber
	ValueKindBool
	ValueKindArray
	ValueKindObject
)

// Value is a closed sum type standing in for "arbitrary JSON value":
// exactly one of the fields below is meaningful, selected by Kind.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
	Arr  []Value
	Obj  map[string]Value
}

func ValueString(s string) Value { return Value{Kind: ValueKindString, Str: s} }
func ValueNumber(n float64) Value { return Value{Kind: ValueKindNumber, Num: n} }
func ValueBool(b bool) Value      { return Value{Kind: ValueKindBool, Bool: b} }
func ValueNull() Value            { return Value{Kind: ValueKindNull} }
func ValueArray(v []Value) Value  { return Value{Kind: ValueKindArray, Arr: v} }
func ValueObject(m map[string]Value) Value {
	return Value{Kind: ValueKindObject, Obj: m}
}

// toAny converts v into the generic any-tree encoding/json expects,
// recursing through arrays and objects.
func (v Value) toAny() any {
	switch v.Kind {
	case ValueKindString:
		return v.Str
	case ValueKindNumber:
		return v.Num
	case ValueKindBool:
		return v.Bool
	case ValueKindArray:
		out := make([]any, len(v.Arr))
		for i, e := range v.Arr {
			out[i] = e.toAny()
		}
		return out
	case ValueKindObject:
		out := make(map[string]any, len(v.Obj))
		for k, e := range v.Obj {
			out[k] = e.toAny()
		}
		return out
	default:
		return nil
	}
}

// fromAny converts a decoded any-tree (as produced by json.Unmarshal
// into an any) back into a Value.
func fromAny(a any) Value {
	switch t := a.(type) {
	case nil:
		return ValueNull()
	case string:
		return ValueString(t)
	case float64:
		return ValueNumber(t)
	case bool:
		return ValueBool(t)
	case []any:
		arr := make([]Value, len(t))
		for i, e := range t {
			arr[i] = fromAny(e)
		}
		return ValueArray(arr)
	case map[string]any:
		obj := make(map[string]Value, len(t))
		for k, e := range t {
			obj[k] = fromAny(e)
		}
		return ValueObject(obj)
	default:
		return ValueNull()
	}
}

// marshalValue renders v as the JSON text stored in a structured item's
// payload. Failure here is the item-stream's CodeNotSerializable error
// — per spec §7 this is fatal during write, never recovered locally.
func marshalValue(v Value) ([]byte, error) {
	out, err := json.Marshal(v.toAny())
	if err != nil {
		return nil, cerr.New("filecache", cerr.CodeNotSerializable, "marshal_value",
			fmt.Sprintf("value not JSON-serializable: %v", err), err)
	}
	return out, nil
}

// unmarshalValue parses JSON text back into a Value. A decode failure
// here means the item stream itself is corrupt (not a caller-facing
// NotSerializable case) — fails with CodeRange per decodeItems.
func unmarshalValue(data []byte) (Value, error) {
	var a any
	if err := json.Unmarshal(data, &a); err != nil {
		return Value{}, cerr.New("filecache", cerr.CodeRange, "unmarshal_value",
			"structured item payload is not valid JSON", err)
	}
	return fromAny(a), nil
}
