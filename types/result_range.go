package types

// ResultRange is an implementation of rdv::ResultRange, used by list/search
// methods to page through results.
type ResultRange struct {
	Offset uint32
	Length uint32
}

// WriteTo writes the ResultRange to the given writable
func (rr *ResultRange) WriteTo(writable Writable) {
	writable.WritePrimitiveUInt32LE(rr.Offset)
	writable.WritePrimitiveUInt32LE(rr.Length)
}

// ExtractFrom extracts the ResultRange from the given readable
func (rr *ResultRange) ExtractFrom(readable Readable) error {
	offset, err := readable.ReadPrimitiveUInt32LE()
	if err != nil {
		return err
	}

	length, err := readable.ReadPrimitiveUInt32LE()
	if err != nil {
		return err
	}

	rr.Offset = offset
	rr.Length = length

	return nil
}

// Copy returns a pointer to a copy of the ResultRange. Requires type assertion when used
func (rr *ResultRange) Copy() RVType {
	copied := *rr
	return &copied
}

// Equals checks if the input is equal in value to the current instance
func (rr *ResultRange) Equals(o RVType) bool {
	other, ok := o.(*ResultRange)
	if !ok {
		return false
	}

	return rr.Offset == other.Offset && rr.Length == other.Length
}

// NewResultRange returns a new ResultRange
func NewResultRange() *ResultRange {
	return &ResultRange{}
}
