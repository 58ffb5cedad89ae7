package prudp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// basePacket is the canonical fixture wire bytes reused across the
// encode/decode round-trip tests below. The signatures in these fixtures
// were computed with an empty SignatureContext (all-zero signature key,
// zero signature base), not with one derived from an access key.
var basePacket = []byte{
	0xea, 0xd0, 0x01, 0x1b, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x86,
	0x70, 0xe5, 0x83, 0x0f, 0x94, 0x72, 0x8f, 0x38, 0xc3, 0x29, 0xc6, 0x46, 0x52, 0x7b, 0x1f,
	0x00, 0x04, 0x00, 0x00, 0x00, 0x00, 0x01, 0x10, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x04, 0x01, 0x00,
}

func TestDecodePacket_SynPacket(t *testing.T) {
	data := []byte{
		0xea, 0xd0, 0x01, 0x1b, 0x00, 0x00, 0x00, 0x00, 0xc0, 0x00, 0x00, 0x00, 0x00, 0x00,
		0xd3, 0x7f, 0xf5, 0x70, 0x42, 0x0b, 0xba, 0xbf, 0xa3, 0xb6, 0xc3, 0x47, 0x5e, 0x14,
		0x99, 0x61, 0x00, 0x04, 0x04, 0x00, 0x00, 0x00, 0x01, 0x10, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x04, 0x01,
		0x01,
	}

	packet, err := decodePacket(data, FlagsVersion1)
	require.NoError(t, err)

	assert.Equal(t, PacketTypeSyn, packet.Type)
	assert.True(t, packet.Flags.Has(FlagNeedsAck))
	assert.True(t, packet.Flags.Has(FlagHasSize))
	assert.EqualValues(t, 4, packet.Options.SupportedFunctions)
	assert.EqualValues(t, 1, packet.Options.MaxSubstreamID)

	ctx := &SignatureContext{}
	require.NoError(t, packet.validateSignature(FlagsVersion1, ctx))
}

func TestEncodePacket_SynPacket(t *testing.T) {
	packet, err := decodePacket(basePacket, FlagsVersion1)
	require.NoError(t, err)

	packet.Type = PacketTypeSyn
	packet.Flags = 0
	packet.Flags.Set(FlagNeedsAck)
	packet.Flags.Set(FlagHasSize)
	packet.Options.SupportedFunctions = 4
	packet.Options.MaxSubstreamID = 1

	ctx := &SignatureContext{}
	result := packet.encode(FlagsVersion1, ctx)

	expected := []byte{
		0xea, 0xd0, 0x01, 0x1b, 0x00, 0x00, 0x00, 0x00, 0xc0, 0x00, 0x00, 0x00, 0x00, 0x00,
		0xd3, 0x7f, 0xf5, 0x70, 0x42, 0x0b, 0xba, 0xbf, 0xa3, 0xb6, 0xc3, 0x47, 0x5e, 0x14,
		0x99, 0x61, 0x00, 0x04, 0x04, 0x00, 0x00, 0x00, 0x01, 0x10, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x04, 0x01,
		0x01,
	}

	assert.Equal(t, expected, result)
}

func TestDecodePacket_ConnectPacket(t *testing.T) {
	data := []byte{
		0xea, 0xd0, 0x01, 0x1f, 0x01, 0x00, 0x00, 0x00, 0xe1, 0x00, 0x01, 0x00, 0x00, 0x00,
		0x15, 0xab, 0x64, 0x8a, 0xc2, 0xea, 0xcd, 0xa7, 0x25, 0x20, 0x19, 0x6f, 0x58, 0x0e,
		0xea, 0x14, 0x00, 0x04, 0x04, 0x00, 0x00, 0x00, 0x01, 0x10, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03, 0x02,
		0xcd, 0xab, 0x04, 0x01, 0x00, 0xaa,
	}

	packet, err := decodePacket(data, FlagsVersion1)
	require.NoError(t, err)

	assert.Equal(t, PacketTypeConnect, packet.Type)
	assert.True(t, packet.Flags.Has(FlagReliable))
	assert.True(t, packet.Flags.Has(FlagNeedsAck))
	assert.True(t, packet.Flags.Has(FlagHasSize))
	assert.EqualValues(t, 1, packet.SessionID)
	assert.EqualValues(t, 4, packet.Options.SupportedFunctions)
	assert.EqualValues(t, 0, packet.Options.MaxSubstreamID)
	assert.EqualValues(t, 0xabcd, packet.Options.InitialSequenceID)
	assert.Equal(t, []byte{0xaa}, packet.Payload)

	ctx := &SignatureContext{}
	require.NoError(t, packet.validateSignature(FlagsVersion1, ctx))
}

func TestDecodePacket_DataPacket(t *testing.T) {
	data := []byte{
		0xea, 0xd0, 0x01, 0x03, 0x11, 0x00, 0x00, 0x00, 0xe2, 0x00, 0x01, 0x00, 0x00, 0x00,
		0x41, 0xbd, 0xb8, 0xf8, 0x3f, 0x68, 0xdc, 0x5d, 0x04, 0x67, 0x4a, 0xee, 0x5b, 0xec,
		0x04, 0x0d, 0x02, 0x01, 0x00, 0xd3, 0x18, 0x89, 0x41, 0x09, 0x36, 0x5c, 0x3b, 0x8b,
		0x04, 0x1c, 0x65, 0x55, 0x6d, 0x91, 0x6e, 0xc4,
	}

	packet, err := decodePacket(data, FlagsVersion1)
	require.NoError(t, err)

	assert.Equal(t, PacketTypeData, packet.Type)
	assert.True(t, packet.Flags.Has(FlagReliable))
	assert.True(t, packet.Flags.Has(FlagNeedsAck))
	assert.True(t, packet.Flags.Has(FlagHasSize))
	assert.EqualValues(t, 1, packet.SessionID)
	assert.EqualValues(t, 0, packet.Options.FragmentID)
	assert.Equal(t, []byte{
		0xd3, 0x18, 0x89, 0x41, 0x09, 0x36, 0x5c, 0x3b, 0x8b, 0x04, 0x1c, 0x65, 0x55, 0x6d,
		0x91, 0x6e, 0xc4,
	}, packet.Payload)

	ctx := &SignatureContext{}
	require.NoError(t, packet.validateSignature(FlagsVersion1, ctx))
}

func TestEncodePacket_DataPacket(t *testing.T) {
	packet, err := decodePacket(basePacket, FlagsVersion1)
	require.NoError(t, err)

	packet.Type = PacketTypeData
	packet.Flags = 0
	packet.Flags.Set(FlagReliable)
	packet.Flags.Set(FlagNeedsAck)
	packet.Flags.Set(FlagHasSize)
	packet.SessionID = 1
	packet.Options.FragmentID = 0
	packet.Payload = []byte{
		0x0d, 0x00, 0x00, 0x00, 0xaa, 0x01, 0x01, 0x01, 0x01, 0x02, 0x02, 0x02, 0x02, 0x03,
		0x03, 0x03, 0x03,
	}

	ctx := &SignatureContext{}
	result := packet.encode(FlagsVersion1, ctx)

	expected := []byte{
		0xea, 0xd0, 0x01, 0x03, 0x11, 0x00, 0x00, 0x00, 0xe2, 0x00, 0x01, 0x00, 0x00, 0x00,
		0x7a, 0xde, 0xd4, 0xa9, 0xac, 0x49, 0x08, 0xcf, 0x5d, 0x93, 0xbb, 0x4f, 0x52, 0xec,
		0x81, 0xa3, 0x02, 0x01, 0x00, 0x0d, 0x00, 0x00, 0x00, 0xaa, 0x01, 0x01, 0x01, 0x01,
		0x02, 0x02, 0x02, 0x02, 0x03, 0x03, 0x03, 0x03,
	}

	assert.Equal(t, expected, result)
}

func TestDecodePacket_DisconnectPacket(t *testing.T) {
	data := []byte{
		0xea, 0xd0, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0xe3, 0x00, 0x01, 0x00, 0x00, 0x00,
		0x35, 0x74, 0x21, 0x30, 0x50, 0xde, 0x6d, 0xd9, 0x1d, 0xdc, 0xa3, 0x8b, 0xf5, 0x7a,
		0x5b, 0x10,
	}

	packet, err := decodePacket(data, FlagsVersion1)
	require.NoError(t, err)

	assert.Equal(t, PacketTypeDisconnect, packet.Type)
	assert.True(t, packet.Flags.Has(FlagReliable))
	assert.EqualValues(t, 1, packet.SessionID)

	ctx := &SignatureContext{}
	require.NoError(t, packet.validateSignature(FlagsVersion1, ctx))
}

func TestDecodePacket_PingPacket(t *testing.T) {
	data := []byte{
		0xea, 0xd0, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0xc4, 0x00, 0x01, 0x00, 0x00, 0x00,
		0x27, 0x0f, 0x9e, 0xb1, 0x07, 0xda, 0x84, 0x11, 0x88, 0x89, 0x2b, 0x81, 0x92, 0xad,
		0x91, 0x2b,
	}

	packet, err := decodePacket(data, FlagsVersion1)
	require.NoError(t, err)

	assert.Equal(t, PacketTypePing, packet.Type)
	assert.True(t, packet.Flags.Has(FlagNeedsAck))
	assert.EqualValues(t, 1, packet.SessionID)

	ctx := &SignatureContext{}
	require.NoError(t, packet.validateSignature(FlagsVersion1, ctx))
}

func TestDecodePacket_RejectsTruncatedPacket(t *testing.T) {
	_, err := decodePacket(basePacket[:10], FlagsVersion1)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestDecodePacket_RejectsBadMagic(t *testing.T) {
	data := append([]byte(nil), basePacket...)
	data[0] = 0x00

	_, err := decodePacket(data, FlagsVersion1)
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestDecodePacket_RejectsUnknownOption(t *testing.T) {
	_, err := decodeOptions([]byte{0xff, 0x01, 0x00})
	assert.ErrorIs(t, err, ErrInvalidPacketOption)
}

func TestValidateSignature_RejectsTamperedPayload(t *testing.T) {
	data := []byte{
		0xea, 0xd0, 0x01, 0x03, 0x11, 0x00, 0x00, 0x00, 0xe2, 0x00, 0x01, 0x00, 0x00, 0x00,
		0x41, 0xbd, 0xb8, 0xf8, 0x3f, 0x68, 0xdc, 0x5d, 0x04, 0x67, 0x4a, 0xee, 0x5b, 0xec,
		0x04, 0x0d, 0x02, 0x01, 0x00, 0xd3, 0x18, 0x89, 0x41, 0x09, 0x36, 0x5c, 0x3b, 0x8b,
		0x04, 0x1c, 0x65, 0x55, 0x6d, 0x91, 0x6e, 0xc4,
	}

	packet, err := decodePacket(data, FlagsVersion1)
	require.NoError(t, err)

	packet.Payload[0] ^= 0xff

	ctx := &SignatureContext{}
	err = packet.validateSignature(FlagsVersion1, ctx)

	var sigErr *InvalidSignatureError
	assert.ErrorAs(t, err, &sigErr)
}

func TestFragmentPayload_ExactMultipleProducesTrailingEmptyFragment(t *testing.T) {
	payload := make([]byte, 10)

	fragments := fragmentPayload(payload, 10)

	require.Len(t, fragments, 2)
	assert.Len(t, fragments[0], 10)
	assert.Len(t, fragments[1], 0)
}

func TestFragmentPayload_OneByteOverProducesTwoFragments(t *testing.T) {
	payload := make([]byte, 11)

	fragments := fragmentPayload(payload, 10)

	require.Len(t, fragments, 2)
	assert.Len(t, fragments[0], 10)
	assert.Len(t, fragments[1], 1)
}
