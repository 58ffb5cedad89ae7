package prudp

import "encoding/binary"

// customProtocolID is the sentinel protocol id that carries an extra 16-bit
// custom_id field, used by protocols defined outside the standard NEX set.
const customProtocolID = 0x7F

// minRMCRequestSize is the shortest possible request: data_size(4) +
// protocol_id(1) + call_id(4) + method_id(4).
const minRMCRequestSize = 13

// RMCRequest is a decoded Remote Method Call request, the payload of a Data
// packet once RC4-decrypted.
type RMCRequest struct {
	ProtocolID uint8
	CustomID   uint16
	CallID     uint32
	MethodID   uint32
	Parameters []byte
}

// DecodeRMCRequest parses an RMCRequest out of a decrypted Data payload.
func DecodeRMCRequest(data []byte) (*RMCRequest, error) {
	if len(data) < minRMCRequestSize {
		return nil, ErrPacketTooShort
	}

	// data_size is descriptive only; it is not used to bound parsing, since
	// the payload is already framed by the packet layer.
	_ = binary.LittleEndian.Uint32(data[0:4])

	protocolID := data[4] ^ 0x80
	offset := 5

	request := &RMCRequest{ProtocolID: protocolID}

	if protocolID == customProtocolID {
		if len(data) < offset+2 {
			return nil, ErrPacketTooShort
		}
		request.CustomID = binary.LittleEndian.Uint16(data[offset : offset+2])
		offset += 2
	}

	if len(data) < offset+8 {
		return nil, ErrPacketTooShort
	}

	request.CallID = binary.LittleEndian.Uint32(data[offset : offset+4])
	offset += 4
	request.MethodID = binary.LittleEndian.Uint32(data[offset : offset+4])
	offset += 4

	request.Parameters = append([]byte(nil), data[offset:]...)

	return request, nil
}

// Encode serializes the RMCRequest back into its wire form. Used by test
// fixtures and by any code acting as an RMC client.
func (r *RMCRequest) Encode() []byte {
	body := make([]byte, 0, minRMCRequestSize+len(r.Parameters))

	body = append(body, r.ProtocolID^0x80)

	if r.ProtocolID == customProtocolID {
		var customID [2]byte
		binary.LittleEndian.PutUint16(customID[:], r.CustomID)
		body = append(body, customID[:]...)
	}

	var callID, methodID [4]byte
	binary.LittleEndian.PutUint32(callID[:], r.CallID)
	binary.LittleEndian.PutUint32(methodID[:], r.MethodID)
	body = append(body, callID[:]...)
	body = append(body, methodID[:]...)
	body = append(body, r.Parameters...)

	out := make([]byte, 4, 4+len(body))
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(body)))

	return append(out, body...)
}

// RMCResponse is an encoded Remote Method Call response: either a success
// carrying a data blob, or a failure carrying a result code.
type RMCResponse struct {
	ProtocolID uint8
	CustomID   uint16
	CallID     uint32
	Success    bool
	MethodID   uint32 // only meaningful when Success is true
	ErrorCode  uint32 // only meaningful when Success is false; bit 31 forced on
	Data       []byte
}

// NewRMCSuccess builds a success RMCResponse.
func NewRMCSuccess(protocolID uint8, customID uint16, callID uint32, methodID uint32, data []byte) *RMCResponse {
	return &RMCResponse{
		ProtocolID: protocolID,
		CustomID:   customID,
		CallID:     callID,
		Success:    true,
		MethodID:   methodID,
		Data:       data,
	}
}

// NewRMCError builds a failure RMCResponse. The error bit (1<<31) is forced
// on regardless of what the caller passed.
func NewRMCError(protocolID uint8, customID uint16, callID uint32, errorCode uint32) *RMCResponse {
	return &RMCResponse{
		ProtocolID: protocolID,
		CustomID:   customID,
		CallID:     callID,
		Success:    false,
		ErrorCode:  errorCode | 0x80000000,
	}
}

// Encode serializes the RMCResponse into its wire form.
func (r *RMCResponse) Encode() []byte {
	var body []byte

	body = append(body, r.ProtocolID)

	if r.ProtocolID == customProtocolID {
		var customID [2]byte
		binary.LittleEndian.PutUint16(customID[:], r.CustomID)
		body = append(body, customID[:]...)
	}

	if r.Success {
		body = append(body, 1)

		var callID, methodID [4]byte
		binary.LittleEndian.PutUint32(callID[:], r.CallID)
		binary.LittleEndian.PutUint32(methodID[:], r.MethodID|0x8000)
		body = append(body, callID[:]...)
		body = append(body, methodID[:]...)
		body = append(body, r.Data...)
	} else {
		body = append(body, 0)

		var errorCode, callID [4]byte
		binary.LittleEndian.PutUint32(errorCode[:], r.ErrorCode|0x80000000)
		binary.LittleEndian.PutUint32(callID[:], r.CallID)
		body = append(body, errorCode[:]...)
		body = append(body, callID[:]...)
	}

	out := make([]byte, 4, 4+len(body))
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(body)))

	return append(out, body...)
}

// DecodeRMCResponse parses an RMCResponse, mainly for tests and for code
// acting as an RMC client against this runtime.
func DecodeRMCResponse(data []byte) (*RMCResponse, error) {
	if len(data) < 4+2 {
		return nil, ErrPacketTooShort
	}

	_ = binary.LittleEndian.Uint32(data[0:4])

	response := &RMCResponse{ProtocolID: data[4]}
	offset := 5

	if response.ProtocolID == customProtocolID {
		if len(data) < offset+2 {
			return nil, ErrPacketTooShort
		}
		response.CustomID = binary.LittleEndian.Uint16(data[offset : offset+2])
		offset += 2
	}

	if len(data) < offset+1 {
		return nil, ErrPacketTooShort
	}

	success := data[offset]
	offset++

	if success == 1 {
		if len(data) < offset+8 {
			return nil, ErrPacketTooShort
		}

		response.Success = true
		response.CallID = binary.LittleEndian.Uint32(data[offset : offset+4])
		response.MethodID = binary.LittleEndian.Uint32(data[offset+4:offset+8]) &^ 0x8000
		response.Data = append([]byte(nil), data[offset+8:]...)
	} else {
		if len(data) < offset+8 {
			return nil, ErrPacketTooShort
		}

		response.Success = false
		response.ErrorCode = binary.LittleEndian.Uint32(data[offset : offset+4])
		response.CallID = binary.LittleEndian.Uint32(data[offset+4 : offset+8])
	}

	return response, nil
}
