package prudp

import "fmt"

// Sentinel and structured errors for the packet, session, and RMC layers.
// Each layer gets its own small set, mirroring the split the reference
// implementation keeps between its packet, client, and server error enums
// rather than one flat error type for the whole runtime.

var (
	// ErrInvalidSize is returned when a datagram is too short to possibly be
	// a valid packet.
	ErrInvalidSize = fmt.Errorf("prudp: packet too short")

	// ErrInvalidMagic is returned when a packet's magic bytes are not 0xD0EA.
	ErrInvalidMagic = fmt.Errorf("prudp: invalid packet magic")

	// ErrInvalidVersion is returned when a packet's version byte is not 1.
	ErrInvalidVersion = fmt.Errorf("prudp: invalid packet version")

	// ErrInvalidPacketType is returned when a packet's type nibble/tribble
	// does not map to a known PacketType.
	ErrInvalidPacketType = fmt.Errorf("prudp: invalid packet type")

	// ErrInvalidPacketOption is returned when an option TLV's type byte does
	// not map to a known PacketOptionType.
	ErrInvalidPacketOption = fmt.Errorf("prudp: invalid packet option")

	// ErrOutOfOrder is returned when a DATA packet's payload is decrypted
	// before its turn in the inbound sequence.
	ErrOutOfOrder = fmt.Errorf("prudp: tried to decode a packet out of order")

	// ErrEmptyPayload is returned when attempting to encrypt a packet with
	// no payload.
	ErrEmptyPayload = fmt.Errorf("prudp: cannot encrypt an empty payload")

	// ErrNotDataPacket is returned when attempting to encrypt or decrypt the
	// payload of a non-DATA packet.
	ErrNotDataPacket = fmt.Errorf("prudp: only data packets can carry an encrypted payload")

	// ErrHoldsNoPayload is returned when attempting to encrypt or decrypt a
	// MultiAck-flagged packet, which never carries ciphertext.
	ErrHoldsNoPayload = fmt.Errorf("prudp: ack packets can not hold payloads")

	// ErrNoSocket is returned by Listen when the UDP socket cannot be bound.
	ErrNoSocket = fmt.Errorf("prudp: server has no bound socket")

	// ErrPacketTooShort is returned when a RMC request/response buffer is
	// shorter than the minimum valid envelope.
	ErrPacketTooShort = fmt.Errorf("prudp: rmc packet too short")

	// ErrUnknownRoute names the case where no handler is registered for a
	// (protocol_id, method_id) pair. RouteTable.Dispatch does not return it:
	// it reports an unregistered route as a nil response with a nil error.
	ErrUnknownRoute = fmt.Errorf("prudp: no handler registered for route")
)

// InvalidSignatureError is returned when a packet's HMAC does not match the
// one computed from its header, options, and payload.
type InvalidSignatureError struct {
	PacketType PacketType
	SequenceID uint16
	Calculated []byte
	Found      []byte
}

func (e *InvalidSignatureError) Error() string {
	return fmt.Sprintf("prudp: invalid signature for %s packet (sequence_id=%d): calculated %x, found %x",
		e.PacketType, e.SequenceID, e.Calculated, e.Found)
}

// TooManyFragmentsError is returned when a single Send call would need more
// fragments than fit in a uint8 fragment id.
type TooManyFragmentsError struct {
	SequenceID uint16
	FragmentID int
}

func (e *TooManyFragmentsError) Error() string {
	return fmt.Sprintf("prudp: too many fragments for sequence_id=%d (fragment_id=%d overflows uint8)",
		e.SequenceID, e.FragmentID)
}

// TooManyPendingFragmentsError is returned when a peer's reassembly buffer
// would exceed the configured per-connection fragment cap.
type TooManyPendingFragmentsError struct {
	SequenceID uint16
	Pending    int
	Limit      int
}

func (e *TooManyPendingFragmentsError) Error() string {
	return fmt.Sprintf("prudp: too many pending fragments (sequence_id=%d, pending=%d, limit=%d)",
		e.SequenceID, e.Pending, e.Limit)
}

// RMCError is a dispatch-level error carrying a NEX result code. Handlers
// that want to send a specific RMC error back to the client should return
// one of these (or anything else implementing ResultCode() uint32).
type RMCError struct {
	Code uint32
}

func (e *RMCError) Error() string {
	return fmt.Sprintf("prudp: rmc error 0x%08x", e.Code)
}

// ResultCode implements the interface the dispatcher looks for when mapping
// a handler's error to an RMCResponse error code.
func (e *RMCError) ResultCode() uint32 {
	return e.Code
}

// NewHandlerError returns an RMCError with the error bit already set, for a
// handler to return when it wants to fail a call with a specific code.
func NewHandlerError(code uint32) *RMCError {
	return &RMCError{Code: code | 0x80000000}
}
