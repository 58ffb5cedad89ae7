package types

// VariantType is the wire discriminant for the value held by a Variant.
type VariantType uint8

const (
	VariantTypeNone     VariantType = 0
	VariantTypeInt64    VariantType = 1
	VariantTypeFloat64  VariantType = 2
	VariantTypeBool     VariantType = 3
	VariantTypeString   VariantType = 4
	VariantTypeDateTime VariantType = 5
	VariantTypeUInt64   VariantType = 6
)

// Variant is an implementation of rdv::Variant, a tagged union used for
// loosely-typed RMC parameters. A discriminant byte outside 1..6 is not an
// error; it yields an empty Variant and consumes only the type byte.
type Variant struct {
	Type     VariantType
	Int64    int64
	Float64  float64
	Bool     bool
	String   string
	DateTime *DateTime
	UInt64   uint64
}

// WriteTo writes the Variant to the given writable
func (v *Variant) WriteTo(writable Writable) {
	writable.WritePrimitiveUInt8(uint8(v.Type))

	switch v.Type {
	case VariantTypeInt64:
		writable.WritePrimitiveInt64LE(v.Int64)
	case VariantTypeFloat64:
		writable.WritePrimitiveUInt64LE(uint64(v.Float64))
	case VariantTypeBool:
		writable.WritePrimitiveBool(v.Bool)
	case VariantTypeString:
		String(v.String).WriteTo(writable)
	case VariantTypeDateTime:
		if v.DateTime == nil {
			v.DateTime = NewDateTime(0)
		}
		v.DateTime.WriteTo(writable)
	case VariantTypeUInt64:
		writable.WritePrimitiveUInt64LE(v.UInt64)
	}
}

// ExtractFrom extracts the Variant from the given readable
func (v *Variant) ExtractFrom(readable Readable) error {
	rawType, err := readable.ReadPrimitiveUInt8()
	if err != nil {
		return err
	}

	v.Type = VariantType(rawType)

	switch v.Type {
	case VariantTypeInt64:
		value, err := readable.ReadPrimitiveInt64LE()
		if err != nil {
			return err
		}
		v.Int64 = value
	case VariantTypeFloat64:
		// Mirrors the reference decoder, which reads the bit pattern as a
		// uint64 and numerically converts it to float64 rather than
		// reinterpreting the bits.
		raw, err := readable.ReadPrimitiveUInt64LE()
		if err != nil {
			return err
		}
		v.Float64 = float64(raw)
	case VariantTypeBool:
		value, err := readable.ReadPrimitiveBool()
		if err != nil {
			return err
		}
		v.Bool = value
	case VariantTypeString:
		var s String
		if err := s.ExtractFrom(readable); err != nil {
			return err
		}
		v.String = string(s)
	case VariantTypeDateTime:
		dt := NewDateTime(0)
		if err := dt.ExtractFrom(readable); err != nil {
			return err
		}
		v.DateTime = dt
	case VariantTypeUInt64:
		value, err := readable.ReadPrimitiveUInt64LE()
		if err != nil {
			return err
		}
		v.UInt64 = value
	default:
		v.Type = VariantTypeNone
	}

	return nil
}

// Copy returns a pointer to a copy of the Variant. Requires type assertion when used
func (v *Variant) Copy() RVType {
	copied := *v

	if v.DateTime != nil {
		dt := *v.DateTime
		copied.DateTime = &dt
	}

	return &copied
}

// Equals checks if the input is equal in value to the current instance
func (v *Variant) Equals(o RVType) bool {
	other, ok := o.(*Variant)
	if !ok || other.Type != v.Type {
		return false
	}

	switch v.Type {
	case VariantTypeInt64:
		return v.Int64 == other.Int64
	case VariantTypeFloat64:
		return v.Float64 == other.Float64
	case VariantTypeBool:
		return v.Bool == other.Bool
	case VariantTypeString:
		return v.String == other.String
	case VariantTypeUInt64:
		return v.UInt64 == other.UInt64
	case VariantTypeDateTime:
		if v.DateTime == nil || other.DateTime == nil {
			return v.DateTime == other.DateTime
		}
		return *v.DateTime == *other.DateTime
	default:
		return true
	}
}

// NewVariant returns an empty Variant
func NewVariant() *Variant {
	return &Variant{}
}
