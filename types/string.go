package types

import "fmt"

// String is an implementation of rdv::string. Type alias of string.
type String string

// WriteTo writes the string to the given writable
func (s String) WriteTo(writable Writable) {
	if bso, ok := writable.(*ByteStreamOut); ok {
		bso.WriteString(string(s))
		return
	}

	// Fall back to a 2-byte length prefix for Writable implementations
	// which are not a *ByteStreamOut.
	data := append([]byte(s), 0x00)
	writable.WritePrimitiveUInt16LE(uint16(len(data)))
	writable.Write(data)
}

// ExtractFrom extracts the String from the given readable
func (s *String) ExtractFrom(readable Readable) error {
	if si, ok := readable.(*StreamIn); ok {
		value, err := si.ReadString()
		if err != nil {
			return err
		}

		*s = String(value)
		return nil
	}

	length, err := readable.ReadPrimitiveUInt16LE()
	if err != nil {
		return fmt.Errorf("Failed to read NEX string length. %s", err.Error())
	}

	data, err := readable.Read(uint64(length))
	if err != nil {
		return fmt.Errorf("Failed to read NEX string data. %s", err.Error())
	}

	value := string(data)
	for len(value) > 0 && value[len(value)-1] == 0x00 {
		value = value[:len(value)-1]
	}

	*s = String(value)
	return nil
}

// Copy returns a pointer to a copy of the String. Requires type assertion when used
func (s String) Copy() RVType {
	return &s
}

// Equals checks if the input is equal in value to the current instance
func (s *String) Equals(o RVType) bool {
	if _, ok := o.(*String); !ok {
		return false
	}

	return *s == *o.(*String)
}

// String returns the Go string representation
func (s String) String() string {
	return string(s)
}

// NewString returns a new String
func NewString(input string) *String {
	s := String(input)
	return &s
}
