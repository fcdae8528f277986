package filter

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/kmbriggs/swatch-mcp/internal/swatch"
)

// TransformFunc executes one transform application.
type TransformFunc func(task swatch.Task) (swatch.Output, error)

// Engine is a registry of named transforms. It implements swatch.Engine.
//
// An Engine is immutable after construction and safe for concurrent use.
type Engine struct {
	transforms map[string]TransformFunc
}

// New returns an engine with the built-in transforms registered.
func New() *Engine {
	e := &Engine{transforms: make(map[string]TransformFunc)}
	e.register(swatch.TransformAreaAverage, areaAverage)
	e.register(swatch.TransformClusterColors, clusterColors)
	return e
}

func (e *Engine) register(name string, fn TransformFunc) {
	e.transforms[name] = fn
}

// Apply runs the named transform against the task.
//
// Unknown names report swatch.ErrFilterUnsupported; this is where partial
// platform support becomes observable, not before.
func (e *Engine) Apply(name string, task swatch.Task) (swatch.Output, error) {
	fn, ok := e.transforms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", swatch.ErrFilterUnsupported, name)
	}
	return fn(task)
}

// convertInput normalizes the task's image to a straight-alpha NRGBA raster
// covering the task extent. This is the engine's single input-conversion
// point; anything it cannot represent fails with swatch.ErrImageConversion.
func convertInput(task swatch.Task) (*image.NRGBA, error) {
	if task.Image == nil {
		return nil, fmt.Errorf("%w: no input image", swatch.ErrImageConversion)
	}

	extent := task.Extent.Intersect(task.Image.Bounds())
	if extent.Empty() {
		return nil, fmt.Errorf("%w: extent %v does not cover any pixels", swatch.ErrImageConversion, task.Extent)
	}

	src := image.NewNRGBA(extent)
	draw.Draw(src, extent, task.Image, extent.Min, draw.Src)
	return src, nil
}
