package params

const (
	SecParam = 256
	SecBytes = SecParam / 8

	// BytesScalar is the size of an encoded scalar for the curves we support.
	BytesScalar = 32
	// BytesPoint is the size of a compressed point encoding.
	BytesPoint = 33
)
