// Package render turns world file entries into printable output.
//
// Rendering is chosen by path suffix alone, never by content:
//   - .schema: decoded with the world's global data and printed as text
//   - .json: passed through after a UTF-8 check
//   - .mps: copied byte for byte to the raw writer
//
// Any other suffix is rejected, and so is a path with no suffix at all.
//
// Example Usage:
//
//	r := render.New(world, os.Stdout, render.WithFormat(schema.FormatJSON))
//	text, err := r.Render("World/0/Bricks.schema")
package render
