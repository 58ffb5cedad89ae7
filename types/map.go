package types

// MapEntry is a single key/value pair of a Map, kept as a slice of pairs
// rather than a native Go map so that key order is preserved across the
// wire the way rdv::qMap demands.
type MapEntry[K RVType, V RVType] struct {
	Key   K
	Value V
}

// Map is an implementation of rdv::qMap, a u32-length prefixed sequence of
// key/value pairs.
type Map[K RVType, V RVType] struct {
	Entries []MapEntry[K, V]
	NewKey  func() K
	NewVal  func() V
}

// WriteTo writes the Map to the given writable
func (m *Map[K, V]) WriteTo(writable Writable) {
	writable.WritePrimitiveUInt32LE(uint32(len(m.Entries)))

	for _, entry := range m.Entries {
		entry.Key.WriteTo(writable)
		entry.Value.WriteTo(writable)
	}
}

// ExtractFrom extracts the Map from the given readable
func (m *Map[K, V]) ExtractFrom(readable Readable) error {
	length, err := readable.ReadPrimitiveUInt32LE()
	if err != nil {
		return err
	}

	m.Entries = make([]MapEntry[K, V], 0, length)

	for i := uint32(0); i < length; i++ {
		key := m.NewKey()
		if err := key.ExtractFrom(readable); err != nil {
			return err
		}

		value := m.NewVal()
		if err := value.ExtractFrom(readable); err != nil {
			return err
		}

		m.Entries = append(m.Entries, MapEntry[K, V]{Key: key, Value: value})
	}

	return nil
}

// Copy returns a pointer to a copy of the Map. Requires type assertion when used
func (m *Map[K, V]) Copy() RVType {
	copied := &Map[K, V]{
		Entries: make([]MapEntry[K, V], len(m.Entries)),
		NewKey:  m.NewKey,
		NewVal:  m.NewVal,
	}

	for i, entry := range m.Entries {
		copied.Entries[i] = MapEntry[K, V]{
			Key:   entry.Key.Copy().(K),
			Value: entry.Value.Copy().(V),
		}
	}

	return copied
}

// Equals checks if the input is equal in value to the current instance
func (m *Map[K, V]) Equals(o RVType) bool {
	other, ok := o.(*Map[K, V])
	if !ok || len(other.Entries) != len(m.Entries) {
		return false
	}

	for i, entry := range m.Entries {
		if !entry.Key.Equals(other.Entries[i].Key) || !entry.Value.Equals(other.Entries[i].Value) {
			return false
		}
	}

	return true
}

// NewMap returns an empty Map whose keys and values are produced by
// newKey/newVal when decoding
func NewMap[K RVType, V RVType](newKey func() K, newVal func() V) *Map[K, V] {
	return &Map[K, V]{NewKey: newKey, NewVal: newVal}
}
