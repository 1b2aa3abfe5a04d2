package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ironsheep/image-features/internal/detection"
	"github.com/ironsheep/image-features/internal/features"
	"github.com/ironsheep/image-features/internal/imaging"
)

// errMissingPath is returned by tools that need an image when no path is given.
var errMissingPath = errors.New("path is required")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_extract_features").
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

	start := time.Now()
	result, err := s.executeTool(context.Background(), params.Name, params.Arguments)
	if s.debug {
		log.Printf("tool %s finished in %s (err=%v)", params.Name, time.Since(start), err)
	}
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
// Each image tool handler:
//  1. Unmarshals arguments from JSON
//  2. Loads the image from cache
//  3. Prepares the 128x128 working rasters
//  4. Runs the requested feature stage(s)
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Feature Extraction
	case "image_extract_features":
		return s.handleExtractFeatures(ctx, args)
	case "image_color_stats":
		return s.handleColorStats(args)
	case "image_texture":
		return s.handleTexture(args)
	case "image_shape":
		return s.handleShape(args)
	case "image_dark_ratio":
		return s.handleDarkRatio(args)
	case "image_feature_layout":
		return s.handleFeatureLayout()

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

type imagePathArgs struct {
	Path string `json:"path"`
}

func parsePathArgs(args json.RawMessage) (imagePathArgs, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return a, err
	}
	if a.Path == "" {
		return a, errMissingPath
	}
	return a, nil
}

// prepare loads path through the cache and builds the working rasters.
func (s *Server) prepare(path string) (*imaging.Prepared, error) {
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	return imaging.Prepare(img)
}

// === Basic Image Information Handlers ===

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	a, err := parsePathArgs(args)
	if err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	a, err := parsePathArgs(args)
	if err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Feature Handlers ===

// FeaturesResult is the output of image_extract_features.
type FeaturesResult struct {
	Path          string             `json:"path"`
	LayoutVersion int                `json:"layout_version"`
	Vector        []float64          `json:"vector"`
	Named         map[string]float64 `json:"named"`
}

func (s *Server) handleExtractFeatures(ctx context.Context, args json.RawMessage) (interface{}, error) {
	a, err := parsePathArgs(args)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	v, err := s.extractor.Extract(ctx, img)
	if err != nil {
		return nil, err
	}

	return &FeaturesResult{
		Path:          a.Path,
		LayoutVersion: features.LayoutVersion,
		Vector:        v.Slice(),
		Named:         v.Named(),
	}, nil
}

func (s *Server) handleColorStats(args json.RawMessage) (interface{}, error) {
	a, err := parsePathArgs(args)
	if err != nil {
		return nil, err
	}
	p, err := s.prepare(a.Path)
	if err != nil {
		return nil, err
	}
	return features.ColorStats(p), nil
}

func (s *Server) handleTexture(args json.RawMessage) (interface{}, error) {
	a, err := parsePathArgs(args)
	if err != nil {
		return nil, err
	}
	p, err := s.prepare(a.Path)
	if err != nil {
		return nil, err
	}
	return features.Texture(p.Gray), nil
}

type imageShapeArgs struct {
	Path    string `json:"path"`
	Backend string `json:"backend"`
}

// ShapeResult is the output of image_shape.
type ShapeResult struct {
	Backend string `json:"backend"`
	detection.ShapeResult
}

func (s *Server) handleShape(args json.RawMessage) (interface{}, error) {
	var a imageShapeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errMissingPath
	}

	analyzer := s.shape
	if a.Backend != "" {
		var err error
		if analyzer, err = detection.NewAnalyzer(a.Backend); err != nil {
			return nil, err
		}
	}

	p, err := s.prepare(a.Path)
	if err != nil {
		return nil, err
	}
	res, err := analyzer.AnalyzeShape(p.Gray)
	if err != nil {
		return nil, err
	}

	backend := a.Backend
	if backend == "" {
		backend = backendName(s.shape)
	}
	return &ShapeResult{Backend: backend, ShapeResult: res}, nil
}

func backendName(a detection.Analyzer) string {
	if _, ok := a.(detection.OpenCVAnalyzer); ok {
		return detection.BackendOpenCV
	}
	return detection.BackendNative
}

func (s *Server) handleDarkRatio(args json.RawMessage) (interface{}, error) {
	a, err := parsePathArgs(args)
	if err != nil {
		return nil, err
	}
	p, err := s.prepare(a.Path)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"dark_ratio": features.DarkRatio(p.Gray),
		"threshold":  features.DarkThreshold,
	}, nil
}

func (s *Server) handleFeatureLayout() (interface{}, error) {
	return map[string]interface{}{
		"version": features.LayoutVersion,
		"length":  features.VectorLen,
		"names":   features.Layout(),
	}, nil
}
