package common

// Quantization scales and clamp bounds.
const (
	// AScale maps the block average a in [0, 1] onto 9 unsigned bits.
	AScale = 511

	// BCDScale maps a clamped difference coefficient onto 5 signed bits.
	BCDScale = 50

	// BCDClamp bounds b, c and d before scaling. The coefficients can reach
	// ±1 but almost all of their energy lies well inside ±0.3.
	BCDClamp = 0.3
)

// Codeword layout. Offsets count from the least significant bit.
const (
	CodewordBits = 32

	AWidth      = 9
	BCDWidth    = 5
	ChromaWidth = 4

	PrLSB = 0
	PbLSB = PrLSB + ChromaWidth
	DLSB  = PbLSB + ChromaWidth
	CLSB  = DLSB + BCDWidth
	BLSB  = CLSB + BCDWidth
	ALSB  = BLSB + BCDWidth
)

// CodewordBytes is the serialized size of one codeword.
const CodewordBytes = CodewordBits / 8
