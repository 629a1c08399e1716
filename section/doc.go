// Package section defines the byte layout of AGXB files and the helpers that emit
// and parse its fixed-size parts.
//
// # Layout (version 1)
//
// All integers are stored in the byte order of the producing host; the endian
// marker records which order that was.
//
//	Header (24 bytes):
//	  char[4]  magic = "AGXB"
//	  uint32   version = 1
//	  uint32   endianMarker = 0x01020304
//	  uint32   objectType
//	  uint32   timeSteps
//	  uint32   constantParamCount
//
//	Subtype block:
//	  uint32   subtypeLen
//	  char[]   subtype (subtypeLen bytes, no trailing NUL)
//
//	constantParamCount parameter records
//
//	timeSteps blocks:
//	  uint32   timeStepIndex
//	  uint32   paramCount
//	  paramCount parameter records
//
//	Parameter record:
//	  uint32   nameLen
//	  char[]   name (nameLen bytes, no trailing NUL)
//	  uint8    isArray (0 = value, 1 = array)
//	  isArray == 0:
//	    uint32   type
//	    uint32   valueBytes
//	    uint8[]  value
//	  isArray == 1:
//	    uint32   elementType
//	    uint64   elementCount
//	    uint64   dataBytes
//	    uint8[]  data
//
// Encoding helpers append to a caller supplied buffer through an
// endian.EndianEngine. Parsing helpers take an endian.Normalizer so fields written
// by a host of the opposite byte order decode to the same values.
package section
