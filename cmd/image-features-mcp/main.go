package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ironsheep/image-features/internal/config"
	"github.com/ironsheep/image-features/internal/detection"
	"github.com/ironsheep/image-features/internal/features"
	"github.com/ironsheep/image-features/internal/imaging"
	"github.com/ironsheep/image-features/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and --help before anything touches the config
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-features-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			fmt.Printf("  Feature layout: v%d (%d values)\n", features.LayoutVersion, features.VectorLen)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	fs := flag.NewFlagSet("image-features-mcp", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to the YAML config file")
	fs.Usage = printHelp
	_ = fs.Parse(os.Args[1:])

	// Configure logging to stderr (stdout is for MCP protocol and extract output)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load(config.ResolvePath(*configPath))
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if cfg.Debug() {
		log.Printf("Image Features MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Config: parallel=%t shapeBackend=%s cacheMaxEntries=%d",
			cfg.Extraction.Parallel, cfg.Extraction.ShapeBackend, cfg.Cache.MaxEntries)
	}

	if fs.NArg() > 0 {
		switch fs.Arg(0) {
		case "extract":
			if fs.NArg() != 2 {
				fmt.Fprintln(os.Stderr, "Usage: image-features-mcp [--config <path>] extract <image>")
				os.Exit(2)
			}
			if err := runExtract(cfg, fs.Arg(1), os.Stdout); err != nil {
				log.Fatalf("Extract failed: %v", err)
			}
			return
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", fs.Arg(0))
			printHelp()
			os.Exit(2)
		}
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Server setup failed: %v", err)
	}
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// runExtract decodes one image, computes its feature vector and writes it to w
// as indented JSON.
func runExtract(cfg *config.Config, path string, w io.Writer) error {
	shape, err := detection.NewAnalyzer(cfg.Extraction.ShapeBackend)
	if err != nil {
		return err
	}

	img, err := imaging.NewImageCache(1).Load(path)
	if err != nil {
		return err
	}

	extractor := features.NewExtractor(features.Options{
		Parallel: cfg.Extraction.Parallel,
		Shape:    shape,
	})
	v, err := extractor.Extract(context.Background(), img)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&server.FeaturesResult{
		Path:          path,
		LayoutVersion: features.LayoutVersion,
		Vector:        v.Slice(),
		Named:         v.Named(),
	})
}

func printHelp() {
	fmt.Println("image-features-mcp - image feature extraction over MCP")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  image-features-mcp [--config <path>]                 Run the MCP server on stdio")
	fmt.Println("  image-features-mcp [--config <path>] extract <image> Print the feature vector as JSON")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config <path>  YAML config file (default image-features.yaml)")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  IMAGE_FEATURES_CONFIG=<path>              Config file when --config is not given")
	fmt.Println("  IMAGE_FEATURES_LOG_LEVEL=debug            Enable debug logging")
	fmt.Println("  IMAGE_FEATURES_PARALLEL=false             Run feature stages sequentially")
	fmt.Println("  IMAGE_FEATURES_SHAPE_BACKEND=opencv       Use the OpenCV contour backend (gocv builds)")
	fmt.Println("  IMAGE_FEATURES_CACHE_MAX_ENTRIES=<n>      Decoded image cache size, 0 = unbounded")
	fmt.Println()
	fmt.Println("Variables may also be set in a .env file in the working directory.")
}
