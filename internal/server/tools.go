package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// regionSchema describes the optional rectangular region accepted by the
// extraction tools.
func regionSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Optional region to restrict extraction to. Coordinates are 0-based; (x1,y1) inclusive, (x2,y2) exclusive.",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer"},
			"y1": map[string]interface{}{"type": "integer"},
			"x2": map[string]interface{}{"type": "integer"},
			"y2": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Pixel Sampling
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Sample colors at multiple pixel coordinates in a single call. Each point may carry an optional label.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"points": map[string]interface{}{
						"type":        "array",
						"description": "Points to sample",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string"},
							},
							"required": []string{"x", "y"},
						},
					},
				},
				"required": []string{"path", "points"},
			},
		},

		// Color Extraction
		{
			Name:        "image_average_color",
			Description: "Compute a single average color for an image. The area_average algorithm uses the filter engine and falls back to median_cut automatically when the transform is unavailable.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"algorithm": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"median_cut", "area_average"},
						"description": "Averaging strategy. Default median_cut",
						"default":     "median_cut",
					},
					"region": regionSchema(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dominant_colors",
			Description: "Extract an image's dominant colors. median_cut returns up to 5 colors ranked most-dominant first; cluster returns exactly 8 fully opaque colors in no particular order (the clusters are not ranked).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"algorithm": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"median_cut", "cluster"},
						"description": "Extraction strategy. Default median_cut",
						"default":     "median_cut",
					},
					"quality": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"low", "fair", "high", "best"},
						"description": "Sampling quality/performance tradeoff. Default fair",
						"default":     "fair",
					},
					"region": regionSchema(),
				},
				"required": []string{"path"},
			},
		},
	}
}
