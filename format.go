package pgraw

// FormatCode is the wire format of a parameter or result column: text or
// binary. pgraw always negotiates a single format code for every parameter
// and every result column.
type FormatCode int16

const (
	TextFormat   FormatCode = 0
	BinaryFormat FormatCode = 1
)

func (f FormatCode) String() string {
	if f == BinaryFormat {
		return "binary"
	}
	return "text"
}
