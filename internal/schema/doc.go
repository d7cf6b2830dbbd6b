// Package schema decodes the schema descriptors stored in world files.
//
// Two MessagePack documents are involved:
//   - GlobalData: world-wide name tables (entity types, assets, component
//     structs) shared by every schema in the file
//   - Schema: enum and struct definitions describing how a sibling .mps file
//     is laid out
//
// Struct names inside a schema may be interned: an unsigned integer key is an
// index into GlobalData.ComponentDataStructNames, which is why decoding a
// schema needs the global data.
//
// A decoded Schema renders to a canonical text form (String) and can be
// re-encoded as JSON or YAML for tooling.
//
// Example Usage:
//
//	gd, err := schema.DecodeGlobalData(globalBytes)
//	s, err := schema.Decode(schemaBytes, gd)
//	fmt.Println(s)
package schema
