package types

// ResultCode is an implementation of rdv::qResult's underlying error code.
// Bit 31 set marks an error; a clear bit 31 is a success code.
type ResultCode uint32

// ErrorBit is set on every failing ResultCode.
const ErrorBit uint32 = 1 << 31

// WriteTo writes the uint32 to the given writable
func (rc *ResultCode) WriteTo(writable Writable) {
	writable.WritePrimitiveUInt32LE(uint32(*rc))
}

// ExtractFrom extracts the uint32 to the given readable
func (rc *ResultCode) ExtractFrom(readable Readable) error {
	value, err := readable.ReadPrimitiveUInt32LE()
	if err != nil {
		return err
	}

	*rc = ResultCode(value)
	return nil
}

// Copy returns a pointer to a copy of the ResultCode. Requires type assertion when used
func (rc *ResultCode) Copy() RVType {
	copied := *rc
	return &copied
}

// Equals checks if the input is equal in value to the current instance
func (rc *ResultCode) Equals(o RVType) bool {
	if _, ok := o.(*ResultCode); !ok {
		return false
	}

	return *rc == *o.(*ResultCode)
}

// IsSuccess reports whether the result code represents success
func (rc *ResultCode) IsSuccess() bool {
	return uint32(*rc)&ErrorBit == 0
}

// IsError reports whether the result code represents failure
func (rc *ResultCode) IsError() bool {
	return !rc.IsSuccess()
}

// NewResultCode returns a new ResultCode
func NewResultCode(value uint32) *ResultCode {
	rc := ResultCode(value)
	return &rc
}

// NewResultCodeError returns a new ResultCode with the error bit forced on
func NewResultCodeError(code uint32) *ResultCode {
	rc := ResultCode(code | ErrorBit)
	return &rc
}
