package features

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/ironsheep/image-features/internal/detection"
	"github.com/ironsheep/image-features/internal/imaging"
)

// Options configures an Extractor.
type Options struct {
	// Parallel runs the four stages of one extraction concurrently.
	Parallel bool

	// Shape computes the shape descriptors. Nil selects the native analyzer.
	Shape detection.Analyzer
}

// DefaultOptions returns parallel extraction with the native shape analyzer.
func DefaultOptions() Options {
	return Options{Parallel: true, Shape: detection.NativeAnalyzer{}}
}

// Result holds the output of every stage of one extraction.
type Result struct {
	Color     ColorFeatures         `json:"color"`
	Texture   TextureFeatures       `json:"texture"`
	Shape     detection.ShapeResult `json:"shape"`
	DarkRatio float64               `json:"dark_ratio"`
}

// Vector assembles the result into the fixed feature layout.
func (r *Result) Vector() Vector {
	return Assemble(r.Color, r.Texture, r.Shape, r.DarkRatio)
}

// Extractor runs the feature pipeline.
type Extractor struct {
	opts Options
}

// NewExtractor creates an Extractor.
func NewExtractor(opts Options) *Extractor {
	if opts.Shape == nil {
		opts.Shape = detection.NativeAnalyzer{}
	}
	return &Extractor{opts: opts}
}

// Extract computes the feature vector of img.
//
// Precondition failures (nil or empty image) are returned before any stage
// runs and match imaging.ErrNilImage or imaging.ErrEmptyImage with errors.Is.
// A canceled context returns ctx.Err().
func (e *Extractor) Extract(ctx context.Context, img image.Image) (Vector, error) {
	res, err := e.Analyze(ctx, img)
	if err != nil {
		return Vector{}, err
	}
	return res.Vector(), nil
}

// Analyze prepares img and runs every stage, keeping the per-stage results.
func (e *Extractor) Analyze(ctx context.Context, img image.Image) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := imaging.Prepare(img)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare image: %w", err)
	}

	return e.AnalyzePrepared(ctx, p)
}

// AnalyzePrepared runs every stage over an already prepared image.
func (e *Extractor) AnalyzePrepared(ctx context.Context, p *imaging.Prepared) (*Result, error) {
	var (
		res      Result
		shapeErr error
	)

	stages := []func(){
		func() { res.Color = ColorStats(p) },
		func() { res.Texture = Texture(p.Gray) },
		func() { res.Shape, shapeErr = e.opts.Shape.AnalyzeShape(p.Gray) },
		func() { res.DarkRatio = DarkRatio(p.Gray) },
	}

	if e.opts.Parallel {
		var wg sync.WaitGroup
		for _, stage := range stages {
			wg.Add(1)
			go func() {
				defer wg.Done()
				stage()
			}()
		}
		wg.Wait()
	} else {
		for _, stage := range stages {
			stage()
		}
	}

	if shapeErr != nil {
		return nil, fmt.Errorf("shape analysis failed: %w", shapeErr)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &res, nil
}
