package types

import (
	crunch "github.com/superwhiskers/crunch/v3"
)

// StreamSettings controls the variable-width encodings used by ByteStreamOut
// and StreamIn. NEX negotiates these per library version; this runtime does
// not model that negotiation, so callers pick the widths up front.
type StreamSettings struct {
	StringLengthSize int // byte width of the length prefix on NexString, 2 or 4
	PIDSize          int // byte width of a PID, 4 or 8
}

// DefaultStreamSettings mirrors the widths used before the PID-expansion and
// long-string library revisions.
func DefaultStreamSettings() *StreamSettings {
	return &StreamSettings{
		StringLengthSize: 2,
		PIDSize:          4,
	}
}

// ByteStreamOut is a binary writer for RMC parameters and value objects,
// built on top of a crunch buffer.
type ByteStreamOut struct {
	*crunch.Buffer
	Settings *StreamSettings
}

// StringLengthSize returns the configured byte width of string length prefixes.
func (bso *ByteStreamOut) StringLengthSize() int {
	if bso.Settings == nil {
		return 2
	}

	return bso.Settings.StringLengthSize
}

// PIDSize returns the configured byte width of PIDs.
func (bso *ByteStreamOut) PIDSize() int {
	if bso.Settings == nil {
		return 4
	}

	return bso.Settings.PIDSize
}

// Write writes raw bytes to the stream, growing it as needed.
func (bso *ByteStreamOut) Write(data []byte) {
	bso.Grow(int64(len(data)))
	bso.WriteBytesNext(data)
}

// WritePrimitiveUInt8 writes a uint8 to the stream.
func (bso *ByteStreamOut) WritePrimitiveUInt8(u8 uint8) {
	bso.Grow(1)
	bso.WriteByteNext(byte(u8))
}

// WritePrimitiveInt8 writes an int8 to the stream.
func (bso *ByteStreamOut) WritePrimitiveInt8(s8 int8) {
	bso.WritePrimitiveUInt8(uint8(s8))
}

// WritePrimitiveUInt16LE writes a little-endian uint16 to the stream.
func (bso *ByteStreamOut) WritePrimitiveUInt16LE(u16 uint16) {
	bso.Grow(2)
	bso.WriteU16LENext([]uint16{u16})
}

// WritePrimitiveInt16LE writes a little-endian int16 to the stream.
func (bso *ByteStreamOut) WritePrimitiveInt16LE(s16 int16) {
	bso.WritePrimitiveUInt16LE(uint16(s16))
}

// WritePrimitiveUInt32LE writes a little-endian uint32 to the stream.
func (bso *ByteStreamOut) WritePrimitiveUInt32LE(u32 uint32) {
	bso.Grow(4)
	bso.WriteU32LENext([]uint32{u32})
}

// WritePrimitiveInt32LE writes a little-endian int32 to the stream.
func (bso *ByteStreamOut) WritePrimitiveInt32LE(s32 int32) {
	bso.WritePrimitiveUInt32LE(uint32(s32))
}

// WritePrimitiveUInt64LE writes a little-endian uint64 to the stream.
func (bso *ByteStreamOut) WritePrimitiveUInt64LE(u64 uint64) {
	bso.Grow(8)
	bso.WriteU64LENext([]uint64{u64})
}

// WritePrimitiveInt64LE writes a little-endian int64 to the stream.
func (bso *ByteStreamOut) WritePrimitiveInt64LE(s64 int64) {
	bso.WritePrimitiveUInt64LE(uint64(s64))
}

// WritePrimitiveFloat32LE writes a little-endian float32 to the stream.
func (bso *ByteStreamOut) WritePrimitiveFloat32LE(f32 float32) {
	bso.Grow(4)
	bso.WriteF32LENext([]float32{f32})
}

// WritePrimitiveFloat64LE writes a little-endian float64 to the stream.
func (bso *ByteStreamOut) WritePrimitiveFloat64LE(f64 float64) {
	bso.Grow(8)
	bso.WriteF64LENext([]float64{f64})
}

// WritePrimitiveBool writes a bool as a single byte, 1 for true.
func (bso *ByteStreamOut) WritePrimitiveBool(b bool) {
	if b {
		bso.WritePrimitiveUInt8(1)
	} else {
		bso.WritePrimitiveUInt8(0)
	}
}

// WriteString writes a NexString: a length-prefixed, NUL-terminated string.
func (bso *ByteStreamOut) WriteString(str string) {
	data := append([]byte(str), 0x00)

	if bso.StringLengthSize() == 4 {
		bso.WritePrimitiveUInt32LE(uint32(len(data)))
	} else {
		bso.WritePrimitiveUInt16LE(uint16(len(data)))
	}

	bso.Write(data)
}

// WriteBuffer writes a length-prefixed (u32) byte buffer.
func (bso *ByteStreamOut) WriteBuffer(data []byte) {
	bso.WritePrimitiveUInt32LE(uint32(len(data)))

	if len(data) > 0 {
		bso.Write(data)
	}
}

// WritePID writes a PID using the configured width.
func (bso *ByteStreamOut) WritePID(pid uint64) {
	if bso.PIDSize() == 8 {
		bso.WritePrimitiveUInt64LE(pid)
	} else {
		bso.WritePrimitiveUInt32LE(uint32(pid))
	}
}

// NewByteStreamOut returns a new ByteStreamOut using the given settings, or
// DefaultStreamSettings if nil.
func NewByteStreamOut(settings *StreamSettings) *ByteStreamOut {
	if settings == nil {
		settings = DefaultStreamSettings()
	}

	return &ByteStreamOut{
		Buffer:   crunch.NewBuffer(),
		Settings: settings,
	}
}
