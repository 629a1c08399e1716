package section

// Magic and version of the AGXB layout.
const (
	Magic   = "AGXB"
	Version = 1
)

// Fixed sizes of the layout, in bytes.
const (
	MagicSize       = 4
	HeaderSize      = MagicSize + 5*4 // magic + version, marker, objectType, timeSteps, constantParamCount
	SubtypeLenSize  = 4
	StepHeaderSize  = 8  // timeStepIndex + paramCount
	NameLenSize     = 4  // nameLen prefix of a parameter record
	FlagSize        = 1  // isArray byte
	ScalarTailSize  = 8  // type + valueBytes
	ArrayTailSize   = 20 // elementType + elementCount + dataBytes
	MaxRecordPrefix = NameLenSize + FlagSize + ArrayTailSize
)

// Byte offsets of the fixed header fields.
const (
	offVersion    = 4
	offMarker     = 8
	offObjectType = 12
	offTimeSteps  = 16
	offConstCount = 20
)

// Record flag values.
const (
	FlagScalar byte = 0
	FlagArray  byte = 1
)
