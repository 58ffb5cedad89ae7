package types

// RVType represents a generic NEX value-object: something that can be
// written to and read from an RMC parameter stream, copied, and compared.
type RVType interface {
	WriteTo(writable Writable)
	ExtractFrom(readable Readable) error
	Copy() RVType
	Equals(o RVType) bool
}

// Writable is a destination stream for NEX primitives and value objects.
// Implemented by ByteStreamOut.
type Writable interface {
	Write(data []byte)
	WritePrimitiveUInt8(u8 uint8)
	WritePrimitiveInt8(s8 int8)
	WritePrimitiveUInt16LE(u16 uint16)
	WritePrimitiveInt16LE(s16 int16)
	WritePrimitiveUInt32LE(u32 uint32)
	WritePrimitiveInt32LE(s32 int32)
	WritePrimitiveUInt64LE(u64 uint64)
	WritePrimitiveInt64LE(s64 int64)
	WritePrimitiveFloat32LE(f32 float32)
	WritePrimitiveFloat64LE(f64 float64)
	WritePrimitiveBool(b bool)
}

// Readable is a source stream for NEX primitives and value objects.
// Implemented by StreamIn.
type Readable interface {
	Read(length uint64) ([]byte, error)
	Remaining() uint64
	ReadPrimitiveUInt8() (uint8, error)
	ReadPrimitiveInt8() (int8, error)
	ReadPrimitiveUInt16LE() (uint16, error)
	ReadPrimitiveInt16LE() (int16, error)
	ReadPrimitiveUInt32LE() (uint32, error)
	ReadPrimitiveInt32LE() (int32, error)
	ReadPrimitiveUInt64LE() (uint64, error)
	ReadPrimitiveInt64LE() (int64, error)
	ReadPrimitiveFloat32LE() (float32, error)
	ReadPrimitiveFloat64LE() (float64, error)
	ReadPrimitiveBool() (bool, error)
}
