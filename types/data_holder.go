package types

import "fmt"

// DataHolder is an implementation of rdv::DataHolder, which tags an inner
// structure with the name of the class it was serialized from, so the
// remote end can look up how to interpret it.
type DataHolder struct {
	Name      string
	Length    uint32
	Object    RVType
	RawObject []byte
}

// WriteTo writes the DataHolder to the given writable
func (dh *DataHolder) WriteTo(writable Writable) {
	String(dh.Name).WriteTo(writable)

	inner := NewByteStreamOut(nil)
	dh.Object.WriteTo(inner)
	payload := inner.Bytes()

	writable.WritePrimitiveUInt32LE(uint32(len(payload)))
	writable.Write(payload)
}

// ExtractFrom extracts the DataHolder from the given readable. Object must
// already hold a concrete RVType for its inner contents to be decoded into;
// callers that don't know the concrete type ahead of time should inspect
// Name first and then decode RawObject themselves.
func (dh *DataHolder) ExtractFrom(readable Readable) error {
	var name String
	if err := name.ExtractFrom(readable); err != nil {
		return fmt.Errorf("Failed to read NEX DataHolder name. %s", err.Error())
	}

	length, err := readable.ReadPrimitiveUInt32LE()
	if err != nil {
		return fmt.Errorf("Failed to read NEX DataHolder length. %s", err.Error())
	}

	raw, err := readable.Read(uint64(length))
	if err != nil {
		return fmt.Errorf("Failed to read NEX DataHolder content. %s", err.Error())
	}

	dh.Name = string(name)
	dh.Length = length
	dh.RawObject = raw

	if dh.Object != nil {
		inner := NewStreamIn(raw, nil)
		if err := dh.Object.ExtractFrom(inner); err != nil {
			return fmt.Errorf("Failed to read NEX DataHolder object. %s", err.Error())
		}
	}

	return nil
}

// Copy returns a pointer to a copy of the DataHolder. Requires type assertion when used
func (dh *DataHolder) Copy() RVType {
	copied := *dh

	if dh.Object != nil {
		copied.Object = dh.Object.Copy()
	}

	return &copied
}

// Equals checks if the input is equal in value to the current instance
func (dh *DataHolder) Equals(o RVType) bool {
	other, ok := o.(*DataHolder)
	if !ok || other.Name != dh.Name {
		return false
	}

	if dh.Object == nil || other.Object == nil {
		return dh.Object == other.Object
	}

	return dh.Object.Equals(other.Object)
}

// NewDataHolder returns a new DataHolder wrapping the given named object
func NewDataHolder(name string, object RVType) *DataHolder {
	return &DataHolder{Name: name, Object: object}
}
