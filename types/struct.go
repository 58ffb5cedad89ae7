package types

import "fmt"

// Struct is an implementation of rdv::Structure: a versioned envelope
// around an inner RVType, prefixed with the version byte and a u32
// byte-length of the inner content. Decoding rejects an envelope whose
// declared length does not match the bytes actually consumed.
type Struct[T RVType] struct {
	Version uint8
	Inner   T
}

// WriteTo writes the Struct to the given writable
func (s *Struct[T]) WriteTo(writable Writable) {
	writable.WritePrimitiveUInt8(s.Version)

	inner := NewByteStreamOut(nil)
	s.Inner.WriteTo(inner)
	payload := inner.Bytes()

	writable.WritePrimitiveUInt32LE(uint32(len(payload)))
	writable.Write(payload)
}

// ExtractFrom extracts the Struct from the given readable
func (s *Struct[T]) ExtractFrom(readable Readable) error {
	version, err := readable.ReadPrimitiveUInt8()
	if err != nil {
		return err
	}

	size, err := readable.ReadPrimitiveUInt32LE()
	if err != nil {
		return err
	}

	raw, err := readable.Read(uint64(size))
	if err != nil {
		return err
	}

	inner := NewStreamIn(raw, nil)
	if err := s.Inner.ExtractFrom(inner); err != nil {
		return err
	}

	if inner.ByteOffset() != int64(size) {
		return fmt.Errorf("NexStruct data size did not match read size: declared %d, consumed %d", size, inner.ByteOffset())
	}

	s.Version = version

	return nil
}

// Copy returns a pointer to a copy of the Struct. Requires type assertion when used
func (s *Struct[T]) Copy() RVType {
	copied := &Struct[T]{Version: s.Version}
	copied.Inner = s.Inner.Copy().(T)
	return copied
}

// Equals checks if the input is equal in value to the current instance
func (s *Struct[T]) Equals(o RVType) bool {
	other, ok := o.(*Struct[T])
	if !ok || other.Version != s.Version {
		return false
	}

	return s.Inner.Equals(other.Inner)
}

// NewStruct returns a new Struct wrapping the given inner value
func NewStruct[T RVType](version uint8, inner T) *Struct[T] {
	return &Struct[T]{Version: version, Inner: inner}
}
