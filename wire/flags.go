package wire

// FieldPresent reports whether bit in flags marks its field as present.
//
// Polarity is inverted throughout this wire format: a clear bit (0) means
// present, a set bit (1) means absent. This centralizes that inversion so
// no body decoder has to restate it; see
// _examples/original_source/build-scan/lib/src/kryo.rs:is_field_present.
func FieldPresent(flags uint16, bit uint) bool {
	return (flags>>bit)&1 == 0
}

// BytePresent is FieldPresent for an 8-bit flags word.
func BytePresent(flags uint8, bit uint) bool {
	return FieldPresent(uint16(flags), bit)
}
