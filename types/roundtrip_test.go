package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_WriteExtractRoundTrip(t *testing.T) {
	out := NewByteStreamOut(nil)
	original := NewBuffer([]byte{1, 2, 3, 4})
	original.WriteTo(out)

	var decoded Buffer
	in := NewStreamIn(out.Bytes(), nil)
	require.NoError(t, decoded.ExtractFrom(in))

	assert.True(t, original.Equals(&decoded))
}

func TestBuffer_EmptyRoundTrip(t *testing.T) {
	out := NewByteStreamOut(nil)
	original := NewBuffer(nil)
	original.WriteTo(out)

	var decoded Buffer
	in := NewStreamIn(out.Bytes(), nil)
	require.NoError(t, decoded.ExtractFrom(in))

	assert.Equal(t, Buffer{}, decoded)
}

func TestQBuffer_WriteExtractRoundTrip(t *testing.T) {
	out := NewByteStreamOut(nil)
	original := NewQBuffer([]byte{0xaa, 0xbb})
	original.WriteTo(out)

	var decoded QBuffer
	in := NewStreamIn(out.Bytes(), nil)
	require.NoError(t, decoded.ExtractFrom(in))

	assert.True(t, original.Equals(&decoded))
}

func TestString_WriteExtractRoundTrip(t *testing.T) {
	out := NewByteStreamOut(nil)
	original := NewString("hello world")
	original.WriteTo(out)

	var decoded String
	in := NewStreamIn(out.Bytes(), nil)
	require.NoError(t, decoded.ExtractFrom(in))

	assert.Equal(t, *original, decoded)
}

func TestString_TrimsTrailingNULOnNonStreamInReader(t *testing.T) {
	// Exercises the fallback path where the readable isn't a *StreamIn.
	original := NewString("abc")

	out := NewByteStreamOut(nil)
	original.WriteTo(out)

	var decoded String
	in := struct{ *StreamIn }{NewStreamIn(out.Bytes(), nil)}
	require.NoError(t, decoded.ExtractFrom(in))
	assert.Equal(t, String("abc"), decoded)
}

func TestDateTime_PackUnpackComponents(t *testing.T) {
	dt := NewDateTimeFromComponents(2023, 4, 15, 13, 30, 45)

	assert.Equal(t, 2023, dt.Year())
	assert.Equal(t, 4, dt.Month())
	assert.Equal(t, 15, dt.Day())
	assert.Equal(t, 13, dt.Hours())
	assert.Equal(t, 30, dt.Minutes())
	assert.Equal(t, 45, dt.Seconds())
}

func TestDateTime_WriteExtractRoundTrip(t *testing.T) {
	out := NewByteStreamOut(nil)
	original := NewDateTimeFromComponents(2020, 1, 1, 0, 0, 0)
	original.WriteTo(out)

	decoded := NewDateTime(0)
	in := NewStreamIn(out.Bytes(), nil)
	require.NoError(t, decoded.ExtractFrom(in))

	assert.Equal(t, *original, *decoded)
}

func TestPrimitiveF64_WriteExtractRoundTrip(t *testing.T) {
	out := NewByteStreamOut(nil)
	original := NewPrimitiveF64(3.5)
	original.WriteTo(out)

	decoded := NewPrimitiveF64(0)
	in := NewStreamIn(out.Bytes(), nil)
	require.NoError(t, decoded.ExtractFrom(in))

	assert.True(t, original.Equals(decoded))
}

func TestResultCode_SuccessAndErrorBit(t *testing.T) {
	success := NewResultCode(0x00010001)
	assert.True(t, success.IsSuccess())
	assert.False(t, success.IsError())

	failure := NewResultCodeError(0x0001)
	assert.True(t, failure.IsError())
	assert.EqualValues(t, 0x0001|ErrorBit, *failure)
}

func TestResultRange_WriteExtractRoundTrip(t *testing.T) {
	out := NewByteStreamOut(nil)
	original := &ResultRange{Offset: 5, Length: 20}
	original.WriteTo(out)

	decoded := NewResultRange()
	in := NewStreamIn(out.Bytes(), nil)
	require.NoError(t, decoded.ExtractFrom(in))

	assert.True(t, original.Equals(decoded))
}

func TestVariant_Int64RoundTrip(t *testing.T) {
	out := NewByteStreamOut(nil)
	original := &Variant{Type: VariantTypeInt64, Int64: -42}
	original.WriteTo(out)

	decoded := NewVariant()
	in := NewStreamIn(out.Bytes(), nil)
	require.NoError(t, decoded.ExtractFrom(in))

	assert.True(t, original.Equals(decoded))
}

func TestVariant_Float64IsReadAsNumericCastNotBitReinterpret(t *testing.T) {
	out := NewByteStreamOut(nil)
	out.WritePrimitiveUInt8(uint8(VariantTypeFloat64))
	out.WritePrimitiveUInt64LE(7)

	decoded := NewVariant()
	in := NewStreamIn(out.Bytes(), nil)
	require.NoError(t, decoded.ExtractFrom(in))

	assert.Equal(t, VariantTypeFloat64, decoded.Type)
	assert.Equal(t, float64(7), decoded.Float64)
}

func TestVariant_UnknownDiscriminantDecodesAsNone(t *testing.T) {
	out := NewByteStreamOut(nil)
	out.WritePrimitiveUInt8(0xff)

	decoded := NewVariant()
	in := NewStreamIn(out.Bytes(), nil)
	require.NoError(t, decoded.ExtractFrom(in))

	assert.Equal(t, VariantTypeNone, decoded.Type)
}

func TestStationURL_EncodeDecodeRoundTrip(t *testing.T) {
	original := NewStationURL()
	original.Scheme = "prudps"
	original.Address = "127.0.0.1"
	original.Port = "60000"
	original.PID = "100"

	encoded := original.EncodeToString()
	decoded := NewStationURLFromString(encoded)

	assert.Equal(t, *original, *decoded)
}

func TestStationURL_SchemeOnlyHasNoFields(t *testing.T) {
	decoded := NewStationURLFromString("prudp:/")

	assert.Equal(t, "prudp", decoded.Scheme)
	assert.Empty(t, decoded.Address)
}

func TestDataHolder_WriteExtractRoundTripWithConcreteObject(t *testing.T) {
	out := NewByteStreamOut(nil)
	original := NewDataHolder("TestObject", NewBuffer([]byte{9, 8, 7}))
	original.WriteTo(out)

	decoded := &DataHolder{Object: NewBuffer(nil)}
	in := NewStreamIn(out.Bytes(), nil)
	require.NoError(t, decoded.ExtractFrom(in))

	assert.Equal(t, "TestObject", decoded.Name)
	assert.True(t, original.Object.Equals(decoded.Object))
}

func TestDataHolder_RawObjectAvailableWithoutConcreteType(t *testing.T) {
	out := NewByteStreamOut(nil)
	original := NewDataHolder("TestObject", NewBuffer([]byte{1, 2}))
	original.WriteTo(out)

	decoded := &DataHolder{}
	in := NewStreamIn(out.Bytes(), nil)
	require.NoError(t, decoded.ExtractFrom(in))

	// RawObject is the encoded inner object: the Buffer's u32 length, then its bytes.
	assert.Equal(t, []byte{0x02, 0x00, 0x00, 0x00, 0x01, 0x02}, []byte(decoded.RawObject))
}

func newBufferElement() *Buffer { return NewBuffer(nil) }

func TestList_WriteExtractRoundTrip(t *testing.T) {
	out := NewByteStreamOut(nil)
	original := NewList(newBufferElement)
	original.Elements = []*Buffer{NewBuffer([]byte{1}), NewBuffer([]byte{2, 3})}
	original.WriteTo(out)

	decoded := NewList(newBufferElement)
	in := NewStreamIn(out.Bytes(), nil)
	require.NoError(t, decoded.ExtractFrom(in))

	assert.True(t, original.Equals(decoded))
}

func TestList_EmptyListRoundTrip(t *testing.T) {
	out := NewByteStreamOut(nil)
	original := NewList(newBufferElement)
	original.WriteTo(out)

	decoded := NewList(newBufferElement)
	in := NewStreamIn(out.Bytes(), nil)
	require.NoError(t, decoded.ExtractFrom(in))

	assert.Len(t, decoded.Elements, 0)
}

func newStringKey() *String { return NewString("") }

func TestMap_WriteExtractRoundTrip(t *testing.T) {
	out := NewByteStreamOut(nil)
	original := NewMap(newStringKey, newBufferElement)
	original.Entries = []MapEntry[*String, *Buffer]{
		{Key: NewString("a"), Value: NewBuffer([]byte{1})},
		{Key: NewString("b"), Value: NewBuffer([]byte{2})},
	}
	original.WriteTo(out)

	decoded := NewMap(newStringKey, newBufferElement)
	in := NewStreamIn(out.Bytes(), nil)
	require.NoError(t, decoded.ExtractFrom(in))

	assert.True(t, original.Equals(decoded))
}

func TestStruct_WriteExtractRoundTrip(t *testing.T) {
	out := NewByteStreamOut(nil)
	original := NewStruct(uint8(1), NewBuffer([]byte{1, 2, 3}))
	original.WriteTo(out)

	decoded := NewStruct(uint8(0), NewBuffer(nil))
	in := NewStreamIn(out.Bytes(), nil)
	require.NoError(t, decoded.ExtractFrom(in))

	assert.True(t, original.Equals(decoded))
	assert.EqualValues(t, 1, decoded.Version)
}

func TestStruct_RejectsSizeMismatch(t *testing.T) {
	out := NewByteStreamOut(nil)
	out.WritePrimitiveUInt8(0)
	out.WritePrimitiveUInt32LE(10)
	out.Write([]byte{1, 2, 3})

	decoded := NewStruct(uint8(0), NewBuffer(nil))
	in := NewStreamIn(out.Bytes(), nil)

	err := decoded.ExtractFrom(in)
	assert.Error(t, err)
}

func TestCopy_ListProducesDistinctElementSlice(t *testing.T) {
	original := NewList(newBufferElement)
	original.Elements = []*Buffer{NewBuffer([]byte{1, 2})}

	copied := original.Copy().(*List[*Buffer])
	copied.Elements = append(copied.Elements, NewBuffer([]byte{3}))

	assert.Len(t, original.Elements, 1)
	assert.Len(t, copied.Elements, 2)
}
