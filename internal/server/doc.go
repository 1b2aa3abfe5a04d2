// Package server implements the MCP (Model Context Protocol) server for image
// feature extraction.
//
// This package provides a JSON-RPC 2.0 server that exposes the feature pipeline
// of package features through the MCP protocol. Every image tool loads the file
// through a shared cache and calls the pipeline in-process.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Feature Extraction:
//   - image_extract_features: Full 30-value vector, by position and by name
//   - image_color_stats: RGB/HSV/Lab channel means and standard deviations
//   - image_texture: Laplacian variance, GLCM statistics, entropy
//   - image_shape: Primary contour descriptors (optional backend override)
//   - image_dark_ratio: Fraction of near-black pixels
//   - image_feature_layout: Vector names and layout version
//
// # Image Caching
//
// Decoded source images are cached by path and reused across tool calls. The
// cache size comes from cache.maxEntries in the configuration; the oldest
// entry is evicted first. Derived 128x128 rasters are never cached.
//
// # Error Handling
//
// Errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32602 (malformed tools/call
//     params), -32601 (unknown method) or -32700 (unparseable request line)
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	cfg, err := config.Load(config.ResolvePath(""))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv, err := server.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
