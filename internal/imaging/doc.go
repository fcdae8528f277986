// Package imaging provides the image-facing support layer for the MCP
// server: loading and caching rasters, sampling individual pixels, limiting
// extraction to rectangular regions, and presenting colors in the formats
// tool callers expect.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner.
// X increases rightward and Y downward. For regions, (x1,y1) is inclusive
// and (x2,y2) is exclusive.
//
// # Color Representation
//
// Colors are returned in multiple formats for flexibility:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// Normalized swatch.Color values produced by the extraction core convert to
// this presentation via FromSwatch.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The remaining operations are
// stateless and can run concurrently on different images; images are never
// mutated here.
package imaging
