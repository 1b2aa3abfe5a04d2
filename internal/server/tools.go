package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathSchema is the input schema shared by tools that only take an image path.
func pathSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Absolute path to the image file",
			},
		},
		"required": []string{"path"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded image is cached for subsequent feature calls.",
			InputSchema: pathSchema(),
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: pathSchema(),
		},

		// Feature Extraction
		{
			Name:        "image_extract_features",
			Description: "Compute the 30-value feature vector of an image (color statistics, texture, shape, dark ratio) after resizing it to 128x128. Returns the ordered vector, the same values keyed by name, and the layout version.",
			InputSchema: pathSchema(),
		},
		{
			Name:        "image_color_stats",
			Description: "Per-channel mean and population standard deviation in RGB, HSV (OpenCV 8-bit scale, H 0-179) and Lab (8-bit encoded) of the 128x128 working image.",
			InputSchema: pathSchema(),
		},
		{
			Name:        "image_texture",
			Description: "Texture descriptors of the 128x128 grayscale image: Laplacian variance, GLCM contrast, energy and homogeneity (16 levels, offset 1 to the right, symmetric) and histogram entropy in bits.",
			InputSchema: pathSchema(),
		},
		{
			Name:        "image_shape",
			Description: "Otsu-threshold the 128x128 grayscale image and describe the largest external contour: area, perimeter, circularity, solidity, aspect ratio, extent. All zero when no foreground is found.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"backend": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"native", "opencv"},
						"description": "Contour implementation (default: configured backend)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dark_ratio",
			Description: "Fraction of pixels in the 128x128 grayscale image with intensity below 50.",
			InputSchema: pathSchema(),
		},
		{
			Name:        "image_feature_layout",
			Description: "List the names of the feature vector values in order, with the layout version. Does not read an image.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
