package wire

// ListOfI64 reads a varint count followed by that many fixed little-endian
// 8-byte signed integers (dependency/node-id lists, file property roots).
func (r *Reader) ListOfI64() ([]int64, error) {
	n, err := r.Uvarint()
	if err != nil {
		return nil, err
	}
	result := make([]int64, 0, n)
	for i := uint64(0); i < n; i++ {
		v, err := r.FixedI64LE()
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

// ListOfByteArrays reads a varint count followed by that many length-prefixed
// byte arrays (content hashes, action class loader hashes).
func (r *Reader) ListOfByteArrays() ([][]byte, error) {
	n, err := r.Uvarint()
	if err != nil {
		return nil, err
	}
	result := make([][]byte, 0, n)
	for i := uint64(0); i < n; i++ {
		b, err := r.ByteArray()
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, nil
}

// ListOfPositiveVarintI32 reads a varint count followed by that many
// Kryo-style positive-varint-encoded i32 values.
func (r *Reader) ListOfPositiveVarintI32() ([]int32, error) {
	n, err := r.Uvarint()
	if err != nil {
		return nil, err
	}
	result := make([]int32, 0, n)
	for i := uint64(0); i < n; i++ {
		v, err := r.PositiveVarintI32()
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

// ListOfListOfI32 reads an outer varint count, then that many inner lists,
// each itself a varint count followed by positive-varint i32 values. Used
// by ResourceUsage's IndexedNormalizedSamples.indices.
func (r *Reader) ListOfListOfI32() ([][]int32, error) {
	n, err := r.Uvarint()
	if err != nil {
		return nil, err
	}
	result := make([][]int32, 0, n)
	for i := uint64(0); i < n; i++ {
		inner, err := r.ListOfPositiveVarintI32()
		if err != nil {
			return nil, err
		}
		result = append(result, inner)
	}
	return result, nil
}
