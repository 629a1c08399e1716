// Package render turns parameter values into text for inspection.
//
// Scalars decodes a payload into its numeric components: floating point values with
// 7 significant digits, 8-bit and boolean types as unsigned bytes, other integers in
// their own signedness. Types without a numeric layout fall back to a per-byte
// listing. Arrays render as one bracketed group per element.
//
// On top of that the package writes diagnostic documents for a whole param.Store:
// JSON (WriteJSON), MessagePack (WriteMsgpack) and Parquet (WriteParquet). None of
// them is an interchange format; the AGXB layout is.
package render
