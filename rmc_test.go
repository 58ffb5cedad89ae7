package prudp

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRMCRequest_EncodeDecodeRoundTrip(t *testing.T) {
	params := make([]byte, 8)
	binary.LittleEndian.PutUint32(params[0:4], 1)
	binary.LittleEndian.PutUint32(params[4:8], 2)

	request := &RMCRequest{
		ProtocolID: 1,
		CallID:     10,
		MethodID:   1,
		Parameters: params,
	}

	decoded, err := DecodeRMCRequest(request.Encode())
	require.NoError(t, err)

	assert.Equal(t, request.ProtocolID, decoded.ProtocolID)
	assert.Equal(t, request.CallID, decoded.CallID)
	assert.Equal(t, request.MethodID, decoded.MethodID)
	assert.Equal(t, request.Parameters, decoded.Parameters)
}

func TestRMCRequest_CustomProtocolIDCarriesCustomID(t *testing.T) {
	request := &RMCRequest{
		ProtocolID: customProtocolID,
		CustomID:   42,
		CallID:     5,
		MethodID:   7,
	}

	decoded, err := DecodeRMCRequest(request.Encode())
	require.NoError(t, err)

	assert.Equal(t, uint16(42), decoded.CustomID)
}

func TestRMCRequest_RejectsShortBuffer(t *testing.T) {
	_, err := DecodeRMCRequest([]byte{0x01, 0x02})
	assert.ErrorIs(t, err, ErrPacketTooShort)
}

func TestAddScenario_SuccessResponseCarriesSum(t *testing.T) {
	params := make([]byte, 8)
	binary.LittleEndian.PutUint32(params[0:4], 1)
	binary.LittleEndian.PutUint32(params[4:8], 2)

	request := &RMCRequest{ProtocolID: 1, CallID: 99, MethodID: 1, Parameters: params}

	a := binary.LittleEndian.Uint32(request.Parameters[0:4])
	b := binary.LittleEndian.Uint32(request.Parameters[4:8])

	result := make([]byte, 4)
	binary.LittleEndian.PutUint32(result, a+b)

	response := NewRMCSuccess(request.ProtocolID, request.CustomID, request.CallID, request.MethodID, result)

	decoded, err := DecodeRMCResponse(response.Encode())
	require.NoError(t, err)

	assert.True(t, decoded.Success)
	assert.Equal(t, request.CallID, decoded.CallID)
	assert.EqualValues(t, 3, binary.LittleEndian.Uint32(decoded.Data))
}

func TestRMCResponse_ErrorForcesErrorBit(t *testing.T) {
	response := NewRMCError(1, 0, 1, 0x0001)

	decoded, err := DecodeRMCResponse(response.Encode())
	require.NoError(t, err)

	assert.False(t, decoded.Success)
	assert.NotZero(t, decoded.ErrorCode&0x80000000)
}

func TestRouteTable_DispatchUnknownRouteIsSilentlyDropped(t *testing.T) {
	table := NewRouteTable()

	request := &RMCRequest{ProtocolID: 9, CallID: 1, MethodID: 9}

	response, decoded, err := table.Dispatch(nil, request.Encode(), NoopObserver{})
	require.NoError(t, err)
	assert.Nil(t, response)
	assert.Equal(t, uint32(9), decoded.MethodID)
}

func TestRouteTable_DispatchMapsHandlerErrorToResultCode(t *testing.T) {
	table := NewRouteTable()
	table.Register(1, 1, func(conn *ClientConnection, parameters []byte) ([]byte, error) {
		return nil, NewHandlerError(0x0010)
	})

	request := &RMCRequest{ProtocolID: 1, CallID: 1, MethodID: 1}

	responseBytes, _, err := table.Dispatch(nil, request.Encode(), NoopObserver{})
	require.NoError(t, err)
	require.NotNil(t, responseBytes)

	decoded, err := DecodeRMCResponse(responseBytes)
	require.NoError(t, err)

	assert.False(t, decoded.Success)
	assert.EqualValues(t, 0x0010|0x80000000, decoded.ErrorCode)
}
