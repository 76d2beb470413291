// Package render rasterises a finished mana field and, optionally, the
// agents' climb paths.
//
// What:
//
//	Rows map to the image x axis and columns to the y axis, flipped so
//	larger y is drawn higher. Evaluated cells are shaded on a blue→red
//	gradient normalised to the evaluated min/max; cells never evaluated are
//	black; paths are overlaid in white.
//
// Render reads memoised values only (Source.Peek) and never evaluates or
// mutates the field, so coverage is unchanged by drawing.
//
// Complexity:
//
//	O(rows×cols×scale²) time, one RGBA buffer of the same size.
package render
