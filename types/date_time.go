package types

// DateTime is an implementation of rdv::DateTime. NEX packs a timestamp into
// a single uint64: seconds in the low 6 bits, minutes in the next 6,
// hours in the next 5, day in the next 5, month in the next 4, and the
// remaining high bits hold the year.
type DateTime uint64

// WriteTo writes the uint64 to the given writable
func (dt *DateTime) WriteTo(writable Writable) {
	writable.WritePrimitiveUInt64LE(uint64(*dt))
}

// ExtractFrom extracts the uint64 to the given readable
func (dt *DateTime) ExtractFrom(readable Readable) error {
	value, err := readable.ReadPrimitiveUInt64LE()
	if err != nil {
		return err
	}

	*dt = DateTime(value)
	return nil
}

// Copy returns a pointer to a copy of the DateTime. Requires type assertion when used
func (dt *DateTime) Copy() RVType {
	copied := *dt
	return &copied
}

// Equals checks if the input is equal in value to the current instance
func (dt *DateTime) Equals(o RVType) bool {
	if _, ok := o.(*DateTime); !ok {
		return false
	}

	return *dt == *o.(*DateTime)
}

// Seconds returns the seconds component of the timestamp
func (dt *DateTime) Seconds() int {
	return int(*dt & 0x3F)
}

// Minutes returns the minutes component of the timestamp
func (dt *DateTime) Minutes() int {
	return int((*dt >> 6) & 0x3F)
}

// Hours returns the hours component of the timestamp
func (dt *DateTime) Hours() int {
	return int((*dt >> 12) & 0x1F)
}

// Day returns the day-of-month component of the timestamp
func (dt *DateTime) Day() int {
	return int((*dt >> 17) & 0x1F)
}

// Month returns the month component of the timestamp
func (dt *DateTime) Month() int {
	return int((*dt >> 22) & 0xF)
}

// Year returns the year component of the timestamp
func (dt *DateTime) Year() int {
	return int(*dt >> 26)
}

// NewDateTime returns a new DateTime from a raw packed value
func NewDateTime(value uint64) *DateTime {
	dt := DateTime(value)
	return &dt
}

// NewDateTimeFromComponents packs a calendar timestamp the way the wire
// format expects it.
func NewDateTimeFromComponents(year, month, day, hour, minute, second int) *DateTime {
	value := uint64(second&0x3F) |
		uint64(minute&0x3F)<<6 |
		uint64(hour&0x1F)<<12 |
		uint64(day&0x1F)<<17 |
		uint64(month&0xF)<<22 |
		uint64(year)<<26

	dt := DateTime(value)
	return &dt
}
