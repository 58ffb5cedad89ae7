package types

import (
	"errors"
	"strings"

	crunch "github.com/superwhiskers/crunch/v3"
)

// StreamIn is a binary reader for RMC parameters and value objects, built on
// top of a crunch buffer. Every primitive reader bounds-checks against the
// remaining buffer length before touching crunch, since crunch itself panics
// on out-of-bounds reads rather than returning an error.
type StreamIn struct {
	*crunch.Buffer
	Settings *StreamSettings
}

// Remaining returns the number of unread bytes left in the stream.
func (si *StreamIn) Remaining() uint64 {
	return uint64(si.ByteCapacity() - si.ByteOffset())
}

// Read reads length bytes from the stream.
func (si *StreamIn) Read(length uint64) ([]byte, error) {
	if si.Remaining() < length {
		return nil, errors.New("Not enough data to read requested byte count")
	}

	return si.ReadBytesNext(int64(length)), nil
}

func (si *StreamIn) stringLengthSize() int {
	if si.Settings == nil {
		return 2
	}

	return si.Settings.StringLengthSize
}

func (si *StreamIn) pidSize() int {
	if si.Settings == nil {
		return 4
	}

	return si.Settings.PIDSize
}

// ReadPrimitiveUInt8 reads a uint8.
func (si *StreamIn) ReadPrimitiveUInt8() (uint8, error) {
	if si.Remaining() < 1 {
		return 0, errors.New("Not enough data to read uint8")
	}

	return si.ReadByteNext(), nil
}

// ReadPrimitiveInt8 reads an int8.
func (si *StreamIn) ReadPrimitiveInt8() (int8, error) {
	value, err := si.ReadPrimitiveUInt8()
	return int8(value), err
}

// ReadPrimitiveUInt16LE reads a little-endian uint16.
func (si *StreamIn) ReadPrimitiveUInt16LE() (uint16, error) {
	if si.Remaining() < 2 {
		return 0, errors.New("Not enough data to read uint16")
	}

	return si.ReadU16LENext(1)[0], nil
}

// ReadPrimitiveInt16LE reads a little-endian int16.
func (si *StreamIn) ReadPrimitiveInt16LE() (int16, error) {
	value, err := si.ReadPrimitiveUInt16LE()
	return int16(value), err
}

// ReadPrimitiveUInt32LE reads a little-endian uint32.
func (si *StreamIn) ReadPrimitiveUInt32LE() (uint32, error) {
	if si.Remaining() < 4 {
		return 0, errors.New("Not enough data to read uint32")
	}

	return si.ReadU32LENext(1)[0], nil
}

// ReadPrimitiveInt32LE reads a little-endian int32.
func (si *StreamIn) ReadPrimitiveInt32LE() (int32, error) {
	value, err := si.ReadPrimitiveUInt32LE()
	return int32(value), err
}

// ReadPrimitiveUInt64LE reads a little-endian uint64.
func (si *StreamIn) ReadPrimitiveUInt64LE() (uint64, error) {
	if si.Remaining() < 8 {
		return 0, errors.New("Not enough data to read uint64")
	}

	return si.ReadU64LENext(1)[0], nil
}

// ReadPrimitiveInt64LE reads a little-endian int64.
func (si *StreamIn) ReadPrimitiveInt64LE() (int64, error) {
	value, err := si.ReadPrimitiveUInt64LE()
	return int64(value), err
}

// ReadPrimitiveFloat32LE reads a little-endian float32.
func (si *StreamIn) ReadPrimitiveFloat32LE() (float32, error) {
	if si.Remaining() < 4 {
		return 0, errors.New("Not enough data to read float32")
	}

	return si.ReadF32LENext(1)[0], nil
}

// ReadPrimitiveFloat64LE reads a little-endian float64.
func (si *StreamIn) ReadPrimitiveFloat64LE() (float64, error) {
	if si.Remaining() < 8 {
		return 0, errors.New("Not enough data to read float64")
	}

	return si.ReadF64LENext(1)[0], nil
}

// ReadPrimitiveBool reads a bool encoded as a single byte.
func (si *StreamIn) ReadPrimitiveBool() (bool, error) {
	value, err := si.ReadPrimitiveUInt8()
	if err != nil {
		return false, err
	}

	return value == 1, nil
}

// ReadString reads a NexString: a length-prefixed, NUL-terminated string.
func (si *StreamIn) ReadString() (string, error) {
	var length uint64

	if si.stringLengthSize() == 4 {
		value, err := si.ReadPrimitiveUInt32LE()
		if err != nil {
			return "", errors.New("Failed to read NEX string length. " + err.Error())
		}

		length = uint64(value)
	} else {
		value, err := si.ReadPrimitiveUInt16LE()
		if err != nil {
			return "", errors.New("Failed to read NEX string length. " + err.Error())
		}

		length = uint64(value)
	}

	data, err := si.Read(length)
	if err != nil {
		return "", errors.New("Failed to read NEX string data. " + err.Error())
	}

	return strings.TrimRight(string(data), "\x00"), nil
}

// ReadBuffer reads a length-prefixed (u32) byte buffer.
func (si *StreamIn) ReadBuffer() ([]byte, error) {
	length, err := si.ReadPrimitiveUInt32LE()
	if err != nil {
		return nil, errors.New("Failed to read NEX buffer length. " + err.Error())
	}

	if length == 0 {
		return []byte{}, nil
	}

	return si.Read(uint64(length))
}

// ReadPID reads a PID using the configured width.
func (si *StreamIn) ReadPID() (uint64, error) {
	if si.pidSize() == 8 {
		return si.ReadPrimitiveUInt64LE()
	}

	value, err := si.ReadPrimitiveUInt32LE()
	return uint64(value), err
}

// NewStreamIn returns a new StreamIn over data, using the given settings or
// DefaultStreamSettings if nil.
func NewStreamIn(data []byte, settings *StreamSettings) *StreamIn {
	if settings == nil {
		settings = DefaultStreamSettings()
	}

	return &StreamIn{
		Buffer:   crunch.NewBuffer(data),
		Settings: settings,
	}
}
