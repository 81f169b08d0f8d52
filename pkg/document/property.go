package document

// Kind discriminates the PropertyDef variants.
type Kind byte

const (
	KindInteger Kind = iota
	KindNumber
	KindString
	KindByteArray
	KindIdentifier
	KindBoolean
	KindDate
	KindObject
	KindArray
	KindVariableTypeArray
)

// Indexable reports whether values of this kind may appear in an index key.
// Object and Array values are forbidden as index keys.
func (k Kind) Indexable() bool {
	switch k {
	case KindObject, KindArray, KindVariableTypeArray:
		return false
	default:
		return true
	}
}

// PropertyDef is a tagged-union property definition. Only the fields
// relevant to Kind are meaningful: a closed sum type expressed as an
// exhaustive switch on Kind rather than an interface hierarchy.
type PropertyDef struct {
	Name     string
	Kind     Kind
	Required bool

	// String / ByteArray bounds, in bytes.
	MinSize *uint32
	MaxSize *uint32

	// Object
	Properties OrderedProperties

	// Array / VariableTypeArray
	ItemType *PropertyDef
}

// NamedProperty pairs a property name with its definition, preserving
// declaration order: property order is significant for payload
// serialization.
type NamedProperty struct {
	Name string
	Def  PropertyDef
}

// OrderedProperties is an insertion-ordered property map.
type OrderedProperties []NamedProperty

func (ps OrderedProperties) Get(name string) (PropertyDef, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p.Def, true
		}
	}
	return PropertyDef{}, false
}

// MinEncodedSize returns the minimum number of bytes the property's value
// occupies in the sort-preserving index-key encoding (fixed-width kinds
// return a single value; variable-width kinds return their declared
// minimum).
func (p PropertyDef) MinEncodedSize() uint32 {
	switch p.Kind {
	case KindInteger, KindNumber, KindDate:
		return 8
	case KindIdentifier:
		return 32
	case KindBoolean:
		return 1
	case KindString, KindByteArray:
		if p.MinSize != nil {
			return *p.MinSize
		}
		return 0
	default:
		return 0
	}
}

// MaxEncodedSize returns the maximum number of bytes the property's value
// may occupy. Unbounded variable-length kinds with no declared MaxSize
// return 0, meaning "unbounded" — callers must treat 0 specially for those
// kinds.
func (p PropertyDef) MaxEncodedSize() uint32 {
	switch p.Kind {
	case KindInteger, KindNumber, KindDate:
		return 8
	case KindIdentifier:
		return 32
	case KindBoolean:
		return 1
	case KindString, KindByteArray:
		if p.MaxSize != nil {
			return *p.MaxSize
		}
		return 0
	default:
		return 0
	}
}

func sizePtr(n uint32) *uint32 { return &n }
