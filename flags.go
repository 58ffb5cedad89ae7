package prudp

import "fmt"

// PacketType is the packet kind packed into the low bits of a header's
// type_flags field.
type PacketType uint16

const (
	PacketTypeSyn PacketType = iota
	PacketTypeConnect
	PacketTypeData
	PacketTypeDisconnect
	PacketTypePing
)

func (t PacketType) String() string {
	switch t {
	case PacketTypeSyn:
		return "SYN"
	case PacketTypeConnect:
		return "CONNECT"
	case PacketTypeData:
		return "DATA"
	case PacketTypeDisconnect:
		return "DISCONNECT"
	case PacketTypePing:
		return "PING"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint16(t))
	}
}

// packetTypeFromUint16 validates a raw type value against the five known
// packet kinds.
func packetTypeFromUint16(raw uint16) (PacketType, error) {
	if raw > uint16(PacketTypePing) {
		return 0, ErrInvalidPacketType
	}

	return PacketType(raw), nil
}

// PacketFlag is a single bit of a packet's flag set.
type PacketFlag uint16

const (
	FlagAck      PacketFlag = 0x1
	FlagReliable PacketFlag = 0x2
	FlagNeedsAck PacketFlag = 0x4
	FlagHasSize  PacketFlag = 0x8
	FlagMultiAck PacketFlag = 0x200
)

// PacketFlags is the flag set packed into the high bits of a header's
// type_flags field.
type PacketFlags uint16

// Has reports whether flag is set.
func (f PacketFlags) Has(flag PacketFlag) bool {
	return f&PacketFlags(flag) != 0
}

// Set turns flag on.
func (f *PacketFlags) Set(flag PacketFlag) {
	*f |= PacketFlags(flag)
}

// Clear turns flag off.
func (f *PacketFlags) Clear(flag PacketFlag) {
	*f &^= PacketFlags(flag)
}

// FlagsVersion selects the bit layout of type_flags: 3-bit kind / 13-bit
// flags for version 0, 4-bit kind / 12-bit flags for version 1.
type FlagsVersion uint8

const (
	FlagsVersion0 FlagsVersion = 0
	FlagsVersion1 FlagsVersion = 1
)

func (v FlagsVersion) splitBits() uint {
	if v == FlagsVersion0 {
		return 3
	}

	return 4
}

// packTypeFlags packs a PacketType and PacketFlags into the wire type_flags
// field for the given flags version.
func packTypeFlags(kind PacketType, flags PacketFlags, version FlagsVersion) uint16 {
	split := version.splitBits()
	mask := uint16(1)<<split - 1

	return uint16(kind)&mask | uint16(flags)<<split
}

// unpackTypeFlags splits a wire type_flags field into a PacketType and
// PacketFlags for the given flags version.
func unpackTypeFlags(raw uint16, version FlagsVersion) (PacketType, PacketFlags, error) {
	split := version.splitBits()
	mask := uint16(1)<<split - 1

	kind, err := packetTypeFromUint16(raw & mask)
	if err != nil {
		return 0, 0, err
	}

	return kind, PacketFlags(raw >> split), nil
}
