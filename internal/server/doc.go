// Package server implements the MCP (Model Context Protocol) server that
// exposes color-summary extraction as tools.
//
// The server speaks JSON-RPC 2.0 over stdin/stdout with newline-delimited
// messages, handling initialize, tools/list, tools/call and ping. Diagnostic
// output goes to stderr; stdout carries only protocol traffic.
//
// # Tools
//
// Basic information: image_load, image_dimensions. Pixel sampling:
// image_sample_color, image_sample_colors_multi. Extraction:
// image_average_color (median_cut or area_average with automatic fallback)
// and image_dominant_colors (median_cut ranked palette of up to 5, or
// cluster for exactly 8 unranked swatches, optionally limited to a region).
//
// # State
//
// The only state is the image cache; extraction itself is stateless and
// each tools/call is handled synchronously on the read loop.
package server
