package document

import "github.com/platformdrive/drivecore/pkg/identifier"

// Value holds a single decoded property value. Only the field matching Kind
// is meaningful.
type Value struct {
	Kind Kind

	Int   int64  // Integer, Date (millis since epoch)
	Float float64
	Str   string
	Bytes []byte // ByteArray, Identifier
	Bool  bool

	Object OrderedValues
	Array  []Value
}

// NamedValue pairs a property name with its value, in document-type
// property order.
type NamedValue struct {
	Name  string
	Value Value
}

// OrderedValues is an insertion-ordered value map mirroring OrderedProperties.
type OrderedValues []NamedValue

func (vs OrderedValues) Get(name string) (Value, bool) {
	for _, v := range vs {
		if v.Name == name {
			return v.Value, true
		}
	}
	return Value{}, false
}

func IntegerValue(v int64) Value   { return Value{Kind: KindInteger, Int: v} }
func NumberValue(v float64) Value  { return Value{Kind: KindNumber, Float: v} }
func StringValue(v string) Value   { return Value{Kind: KindString, Str: v} }
func ByteArrayValue(v []byte) Value {
	return Value{Kind: KindByteArray, Bytes: append([]byte(nil), v...)}
}
func IdentifierValue(id identifier.Identifier) Value {
	return Value{Kind: KindIdentifier, Bytes: id.Bytes()}
}
func BooleanValue(v bool) Value { return Value{Kind: KindBoolean, Bool: v} }
func DateValue(millis int64) Value { return Value{Kind: KindDate, Int: millis} }
