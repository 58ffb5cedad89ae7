package prudp

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddr(t *testing.T) *net.UDPAddr {
	t.Helper()

	addr, err := net.ResolveUDPAddr("udp", "127.0.0.1:12345")
	require.NoError(t, err)

	return addr
}

func TestNewClientConnection_StartsDisconnected(t *testing.T) {
	conn := NewClientConnection(testAddr(t), DefaultSettings())

	assert.False(t, conn.IsConnected)
	assert.EqualValues(t, 0, conn.SequenceIDIn())
}

func TestClientConnection_ResetForSynMarksConnected(t *testing.T) {
	conn := NewClientConnection(testAddr(t), DefaultSettings())

	err := conn.ResetForSyn(5)
	require.NoError(t, err)

	assert.True(t, conn.IsConnected)
	assert.EqualValues(t, 5, conn.KickTimer)
	assert.Len(t, conn.Signature.ServerConnectionSignature, 16)
	assert.Nil(t, conn.Signature.ClientConnectionSignature)
}

func TestClientConnection_DecrementKickTimerSaturatesAtZero(t *testing.T) {
	conn := NewClientConnection(testAddr(t), DefaultSettings())
	conn.KickTimer = 2

	conn.DecrementKickTimer(5)

	assert.EqualValues(t, 0, conn.KickTimer)
	assert.True(t, conn.Evicted())
}

func TestClientConnection_CanDecryptPayloadRejectsOutOfOrder(t *testing.T) {
	conn := NewClientConnection(testAddr(t), DefaultSettings())
	conn.IncrementSequenceIDIn()

	packet := &Packet{Type: PacketTypeData, SequenceID: 0}

	err := conn.CanDecryptPayload(packet)
	assert.ErrorIs(t, err, ErrOutOfOrder)
}

func TestClientConnection_EncryptOutboundSkipsEmptyPayload(t *testing.T) {
	conn := NewClientConnection(testAddr(t), DefaultSettings())

	packet := &Packet{Type: PacketTypeData}
	conn.EncryptOutbound(packet)

	assert.Nil(t, packet.Payload)
}

func TestClientConnection_AddFragmentReassemblesAcrossCalls(t *testing.T) {
	conn := NewClientConnection(testAddr(t), DefaultSettings())

	complete, err := conn.AddFragment([]byte{1, 2, 3}, false)
	require.NoError(t, err)
	assert.Nil(t, complete)

	complete, err = conn.AddFragment([]byte{4, 5, 6}, true)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, complete)
}

func TestClientConnection_AddFragmentEnforcesCap(t *testing.T) {
	settings := DefaultSettings()
	settings.MaxPendingFragments = 2

	conn := NewClientConnection(testAddr(t), settings)

	_, err := conn.AddFragment([]byte{1}, false)
	require.NoError(t, err)

	_, err = conn.AddFragment([]byte{2}, false)
	require.NoError(t, err)

	_, err = conn.AddFragment([]byte{3}, false)

	var capErr *TooManyPendingFragmentsError
	assert.ErrorAs(t, err, &capErr)
}
