package record

// Put sets rec[field] to *v when v is non-nil. Typed update inputs use it so
// only supplied fields reach Update.
func Put[T any](rec Record, field string, v *T) {
	if v != nil {
		rec[field] = *v
	}
}

// PutNullable sets rec[field] to *v, or to NULL when clear is true.
func PutNullable[T any](rec Record, field string, v *T, clear bool) {
	switch {
	case clear:
		rec[field] = nil
	case v != nil:
		rec[field] = *v
	}
}
