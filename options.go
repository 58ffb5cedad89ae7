package prudp

import (
	"encoding/binary"
)

// PacketOptionType is the TLV type byte identifying a single packet option.
type PacketOptionType uint8

const (
	OptionSupportedFunctions PacketOptionType = 0
	OptionConnectionSignature PacketOptionType = 1
	OptionFragmentID          PacketOptionType = 2
	OptionInitialSequenceID   PacketOptionType = 3
	OptionMaxSubstreamID      PacketOptionType = 4
)

// PacketOptions holds every option value a PRUDP v1 packet can carry. Which
// fields are actually serialized is determined entirely by the packet's
// kind, not by any field here being zero or non-zero.
type PacketOptions struct {
	SupportedFunctions  uint32
	ConnectionSignature [16]byte
	FragmentID          uint8
	InitialSequenceID   uint16
	MaxSubstreamID      uint8
}

// optionSetFor returns the ordered list of option types a packet of the
// given kind carries.
func optionSetFor(kind PacketType) []PacketOptionType {
	switch kind {
	case PacketTypeSyn:
		return []PacketOptionType{OptionSupportedFunctions, OptionConnectionSignature, OptionMaxSubstreamID}
	case PacketTypeConnect:
		return []PacketOptionType{OptionSupportedFunctions, OptionConnectionSignature, OptionInitialSequenceID, OptionMaxSubstreamID}
	case PacketTypeData:
		return []PacketOptionType{OptionFragmentID}
	default:
		return nil
	}
}

// encode serializes the options relevant to kind, in TLV form.
func (o *PacketOptions) encode(kind PacketType) []byte {
	var out []byte

	for _, optionType := range optionSetFor(kind) {
		switch optionType {
		case OptionSupportedFunctions:
			out = append(out, byte(OptionSupportedFunctions), 4)
			var buf [4]byte
			binary.LittleEndian.PutUint32(buf[:], o.SupportedFunctions)
			out = append(out, buf[:]...)
		case OptionConnectionSignature:
			out = append(out, byte(OptionConnectionSignature), 16)
			out = append(out, o.ConnectionSignature[:]...)
		case OptionFragmentID:
			out = append(out, byte(OptionFragmentID), 1, o.FragmentID)
		case OptionInitialSequenceID:
			out = append(out, byte(OptionInitialSequenceID), 2)
			var buf [2]byte
			binary.LittleEndian.PutUint16(buf[:], o.InitialSequenceID)
			out = append(out, buf[:]...)
		case OptionMaxSubstreamID:
			out = append(out, byte(OptionMaxSubstreamID), 1, o.MaxSubstreamID)
		}
	}

	return out
}

// decodeOptions parses a raw TLV option block. An unrecognized option type
// fails decoding outright rather than being skipped.
func decodeOptions(data []byte) (*PacketOptions, error) {
	options := &PacketOptions{}

	offset := 0
	for offset < len(data) {
		if offset+2 > len(data) {
			return nil, ErrInvalidPacketOption
		}

		optionType := PacketOptionType(data[offset])
		size := int(data[offset+1])
		offset += 2

		if offset+size > len(data) {
			return nil, ErrInvalidPacketOption
		}

		value := data[offset : offset+size]
		offset += size

		switch optionType {
		case OptionSupportedFunctions:
			if size != 4 {
				return nil, ErrInvalidPacketOption
			}
			options.SupportedFunctions = binary.LittleEndian.Uint32(value)
		case OptionConnectionSignature:
			if size != 16 {
				return nil, ErrInvalidPacketOption
			}
			copy(options.ConnectionSignature[:], value)
		case OptionFragmentID:
			if size != 1 {
				return nil, ErrInvalidPacketOption
			}
			options.FragmentID = value[0]
		case OptionInitialSequenceID:
			if size != 2 {
				return nil, ErrInvalidPacketOption
			}
			options.InitialSequenceID = binary.LittleEndian.Uint16(value)
		case OptionMaxSubstreamID:
			if size != 1 {
				return nil, ErrInvalidPacketOption
			}
			options.MaxSubstreamID = value[0]
		default:
			return nil, ErrInvalidPacketOption
		}
	}

	return options, nil
}
