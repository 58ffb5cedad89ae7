package prudp

import (
	"bytes"
	"encoding/binary"
)

// Magic is the constant 2-byte value every PRUDP v1 packet's header begins
// with, serialized little-endian as the wire bytes EA D0.
const Magic uint16 = 0xD0EA

// Version is the only packet version this runtime understands.
const Version uint8 = 1

// minPacketSize is the smallest possible packet: a 14-byte header plus a
// 16-byte signature, with no options or payload.
const minPacketSize = 14 + 16

// PacketHeader is the 14-byte fixed-size header every packet starts with.
type PacketHeader struct {
	Magic         uint16
	Version       uint8
	OptionsLength uint8
	PayloadSize   uint16
	Source        uint8
	Destination   uint8
	TypeFlags     uint16
	SessionID     uint8
	SubstreamID   uint8
	SequenceID    uint16
}

func (h *PacketHeader) encode() []byte {
	buf := make([]byte, 14)
	binary.LittleEndian.PutUint16(buf[0:2], h.Magic)
	buf[2] = h.Version
	buf[3] = h.OptionsLength
	binary.LittleEndian.PutUint16(buf[4:6], h.PayloadSize)
	buf[6] = h.Source
	buf[7] = h.Destination
	binary.LittleEndian.PutUint16(buf[8:10], h.TypeFlags)
	buf[10] = h.SessionID
	buf[11] = h.SubstreamID
	binary.LittleEndian.PutUint16(buf[12:14], h.SequenceID)
	return buf
}

func decodeHeader(data []byte) *PacketHeader {
	return &PacketHeader{
		Magic:         binary.LittleEndian.Uint16(data[0:2]),
		Version:       data[2],
		OptionsLength: data[3],
		PayloadSize:   binary.LittleEndian.Uint16(data[4:6]),
		Source:        data[6],
		Destination:   data[7],
		TypeFlags:     binary.LittleEndian.Uint16(data[8:10]),
		SessionID:     data[10],
		SubstreamID:   data[11],
		SequenceID:    binary.LittleEndian.Uint16(data[12:14]),
	}
}

// Packet is the fully decoded, logical form of a PRUDP v1 datagram.
type Packet struct {
	Type        PacketType
	Flags       PacketFlags
	Source      uint8
	Destination uint8
	SessionID   uint8
	SubstreamID uint8
	SequenceID  uint16
	Options     PacketOptions
	Signature   [16]byte
	Payload     []byte
}

// encode serializes a packet using the given flags version and signs it
// with ctx.ClientConnectionSignature, the half of the connection signature
// used for outbound packets (inbound ones are validated against
// ctx.ServerConnectionSignature).
func (p *Packet) encode(flagsVersion FlagsVersion, ctx *SignatureContext) []byte {
	if p.Type == PacketTypeData {
		p.Flags.Set(FlagHasSize)
	}

	optionBytes := p.Options.encode(p.Type)

	header := &PacketHeader{
		Magic:         Magic,
		Version:       Version,
		OptionsLength: uint8(len(optionBytes)),
		PayloadSize:   uint16(len(p.Payload)),
		Source:        p.Source,
		Destination:   p.Destination,
		TypeFlags:     packTypeFlags(p.Type, p.Flags, flagsVersion),
		SessionID:     p.SessionID,
		SubstreamID:   p.SubstreamID,
		SequenceID:    p.SequenceID,
	}

	headerBytes := header.encode()

	signature := calculateSignature(headerBytes[2:14], p.Payload, ctx.ClientConnectionSignature, optionBytes, ctx)
	copy(p.Signature[:], signature)

	out := make([]byte, 0, len(headerBytes)+len(signature)+len(optionBytes)+len(p.Payload))
	out = append(out, headerBytes...)
	out = append(out, signature...)
	out = append(out, optionBytes...)
	out = append(out, p.Payload...)

	return out
}

// decodePacket parses the structural contents of a datagram. It does not
// validate the signature; call validateSignature separately.
func decodePacket(data []byte, flagsVersion FlagsVersion) (*Packet, error) {
	if len(data) < minPacketSize {
		return nil, ErrInvalidSize
	}

	header := decodeHeader(data[0:14])

	if header.Magic != Magic {
		return nil, ErrInvalidMagic
	}

	if header.Version != Version {
		return nil, ErrInvalidVersion
	}

	kind, flags, err := unpackTypeFlags(header.TypeFlags, flagsVersion)
	if err != nil {
		return nil, err
	}

	offset := 14

	var signature [16]byte
	copy(signature[:], data[offset:offset+16])
	offset += 16

	if offset+int(header.OptionsLength) > len(data) {
		return nil, ErrInvalidSize
	}

	optionsData := data[offset : offset+int(header.OptionsLength)]
	offset += int(header.OptionsLength)

	options, err := decodeOptions(optionsData)
	if err != nil {
		return nil, err
	}

	if offset+int(header.PayloadSize) > len(data) {
		return nil, ErrInvalidSize
	}

	payload := make([]byte, header.PayloadSize)
	copy(payload, data[offset:offset+int(header.PayloadSize)])

	return &Packet{
		Type:        kind,
		Flags:       flags,
		Source:      header.Source,
		Destination: header.Destination,
		SessionID:   header.SessionID,
		SubstreamID: header.SubstreamID,
		SequenceID:  header.SequenceID,
		Options:     *options,
		Signature:   signature,
		Payload:     payload,
	}, nil
}

// validateSignature recomputes an inbound packet's signature against the
// server's half of the connection signature and compares it byte-for-byte.
func (p *Packet) validateSignature(flagsVersion FlagsVersion, ctx *SignatureContext) error {
	optionBytes := p.Options.encode(p.Type)

	header := &PacketHeader{
		Magic:         Magic,
		Version:       Version,
		OptionsLength: uint8(len(optionBytes)),
		PayloadSize:   uint16(len(p.Payload)),
		Source:        p.Source,
		Destination:   p.Destination,
		TypeFlags:     packTypeFlags(p.Type, p.Flags, flagsVersion),
		SessionID:     p.SessionID,
		SubstreamID:   p.SubstreamID,
		SequenceID:    p.SequenceID,
	}

	headerBytes := header.encode()

	calculated := calculateSignature(headerBytes[2:14], p.Payload, ctx.ServerConnectionSignature, optionBytes, ctx)

	if !bytes.Equal(calculated, p.Signature[:]) {
		return &InvalidSignatureError{
			PacketType: p.Type,
			SequenceID: p.SequenceID,
			Calculated: calculated,
			Found:      append([]byte(nil), p.Signature[:]...),
		}
	}

	return nil
}
