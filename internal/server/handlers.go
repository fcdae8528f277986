package server

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/kmbriggs/swatch-mcp/internal/imaging"
	"github.com/kmbriggs/swatch-mcp/internal/swatch"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_average_color").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls into the imaging layer or the extraction core
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Pixel Sampling
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)

	// Color Extraction
	case "image_average_color":
		return s.handleImageAverageColor(args)
	case "image_dominant_colors":
		return s.handleImageDominantColors(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// loadRegion loads an image and, when a region is given, narrows it to that
// rectangle before extraction.
func (s *Server) loadRegion(path string, region *imaging.Region) (image.Image, error) {
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	if region == nil {
		return img, nil
	}
	return imaging.CropRegion(img, *region)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.cache.Info(a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.cache.Dimensions(a.Path)
}

// === Pixel Sampling Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type imageSampleColorsMultiArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.SampleColorsMulti(img, points)
}

// === Color Extraction Handlers ===

// AverageColorResult is the image_average_color tool result.
type AverageColorResult struct {
	Algorithm string              `json:"algorithm"`
	Color     imaging.ColorResult `json:"color"`
}

type imageAverageColorArgs struct {
	Path      string          `json:"path"`
	Algorithm string          `json:"algorithm"`
	Region    *imaging.Region `json:"region,omitempty"`
}

func (s *Server) handleImageAverageColor(args json.RawMessage) (interface{}, error) {
	var a imageAverageColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Algorithm == "" {
		a.Algorithm = "median_cut"
	}
	algorithm, err := swatch.ParseAverageAlgorithm(a.Algorithm)
	if err != nil {
		return nil, err
	}

	img, err := s.loadRegion(a.Path, a.Region)
	if err != nil {
		return nil, err
	}

	c, err := s.extractor.AverageColor(img, algorithm)
	if err != nil {
		return nil, err
	}
	return &AverageColorResult{
		Algorithm: a.Algorithm,
		Color:     *imaging.FromSwatch(c),
	}, nil
}

// DominantColorsResult is the image_dominant_colors tool result.
//
// Ordered reports whether the colors are ranked most-dominant first; the
// cluster algorithm's swatches are unranked and Ordered is false for them.
type DominantColorsResult struct {
	Algorithm string                `json:"algorithm"`
	Quality   string                `json:"quality"`
	Ordered   bool                  `json:"ordered"`
	Count     int                   `json:"count"`
	Colors    []imaging.ColorResult `json:"colors"`
}

type imageDominantColorsArgs struct {
	Path      string          `json:"path"`
	Algorithm string          `json:"algorithm"`
	Quality   string          `json:"quality"`
	Region    *imaging.Region `json:"region,omitempty"`
}

func (s *Server) handleImageDominantColors(args json.RawMessage) (interface{}, error) {
	var a imageDominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Algorithm == "" {
		a.Algorithm = "median_cut"
	}
	if a.Quality == "" {
		a.Quality = "fair"
	}

	algorithm, err := swatch.ParseDominantAlgorithm(a.Algorithm)
	if err != nil {
		return nil, err
	}
	quality, err := swatch.ParseQuality(a.Quality)
	if err != nil {
		return nil, err
	}

	img, err := s.loadRegion(a.Path, a.Region)
	if err != nil {
		return nil, err
	}

	colors, err := s.extractor.DominantColors(img, quality, algorithm)
	if err != nil {
		return nil, err
	}
	return &DominantColorsResult{
		Algorithm: a.Algorithm,
		Quality:   a.Quality,
		Ordered:   algorithm == swatch.DominantMedianCut,
		Count:     len(colors),
		Colors:    imaging.FromSwatchSlice(colors),
	}, nil
}
