package types

// List is an implementation of rdv::qList / std::Vector<T>, a u32-length
// prefixed homogeneous list of value objects.
type List[T RVType] struct {
	Elements []T
	New      func() T
}

// WriteTo writes the List to the given writable
func (l *List[T]) WriteTo(writable Writable) {
	writable.WritePrimitiveUInt32LE(uint32(len(l.Elements)))

	for _, element := range l.Elements {
		element.WriteTo(writable)
	}
}

// ExtractFrom extracts the List from the given readable
func (l *List[T]) ExtractFrom(readable Readable) error {
	length, err := readable.ReadPrimitiveUInt32LE()
	if err != nil {
		return err
	}

	l.Elements = make([]T, 0, length)

	for i := uint32(0); i < length; i++ {
		element := l.New()

		if err := element.ExtractFrom(readable); err != nil {
			return err
		}

		l.Elements = append(l.Elements, element)
	}

	return nil
}

// Copy returns a pointer to a copy of the List. Requires type assertion when used
func (l *List[T]) Copy() RVType {
	copied := &List[T]{
		Elements: make([]T, len(l.Elements)),
		New:      l.New,
	}

	for i, element := range l.Elements {
		copied.Elements[i] = element.Copy().(T)
	}

	return copied
}

// Equals checks if the input is equal in value to the current instance
func (l *List[T]) Equals(o RVType) bool {
	other, ok := o.(*List[T])
	if !ok || len(other.Elements) != len(l.Elements) {
		return false
	}

	for i, element := range l.Elements {
		if !element.Equals(other.Elements[i]) {
			return false
		}
	}

	return true
}

// NewList returns an empty List whose elements are produced by newElement
// when decoding
func NewList[T RVType](newElement func() T) *List[T] {
	return &List[T]{New: newElement}
}
