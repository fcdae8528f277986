package swatch

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"testing"
)

// testImage creates an in-memory image filled with a single color.
func testImage(width, height int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// stubOutput plays back a fixed byte strip as a transform output.
type stubOutput struct {
	pix    []byte
	extent image.Rectangle
}

func (o *stubOutput) Extent() image.Rectangle {
	return o.extent
}

func (o *stubOutput) Opaque() Output {
	dup := &stubOutput{pix: append([]byte(nil), o.pix...), extent: o.extent}
	for i := 3; i < len(dup.pix); i += 4 {
		dup.pix[i] = 255
	}
	return dup
}

func (o *stubOutput) Render(buf []byte, rowStride int, bounds image.Rectangle) error {
	if len(buf) < len(o.pix) {
		return fmt.Errorf("%w: stub render", ErrBufferTooSmall)
	}
	copy(buf, o.pix)
	return nil
}

// stubEngine records Apply calls and delegates to a configurable function.
type stubEngine struct {
	apply    func(name string, task Task) (Output, error)
	calls    []string
	lastTask Task
}

func (e *stubEngine) Apply(name string, task Task) (Output, error) {
	e.calls = append(e.calls, name)
	e.lastTask = task
	return e.apply(name, task)
}

// stubProvider returns a fixed palette and records how it was asked.
type stubProvider struct {
	colors          []Color
	err             error
	calls           int
	lastCount       int
	lastQuality     QualityLevel
	lastIgnoreWhite bool
}

func (p *stubProvider) Palette(img image.Image, count int, quality QualityLevel, ignoreWhite bool) ([]Color, error) {
	p.calls++
	p.lastCount = count
	p.lastQuality = quality
	p.lastIgnoreWhite = ignoreWhite
	return p.colors, p.err
}

func TestAverageColor_MedianCutPath(t *testing.T) {
	want := Color{R: 0.5, G: 0.25, B: 0.75, A: 1}
	engine := &stubEngine{apply: func(string, Task) (Output, error) {
		t.Fatal("engine should not be consulted on the median-cut path")
		return nil, nil
	}}
	provider := &stubProvider{colors: []Color{want}}
	e := NewExtractor(engine, provider)

	got, err := e.AverageColor(testImage(4, 4, color.NRGBA{255, 0, 0, 255}), AverageMedianCut)
	if err != nil {
		t.Fatalf("AverageColor failed: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	if provider.lastCount != 1 {
		t.Errorf("palette size requested: got %d, want 1", provider.lastCount)
	}
	if provider.lastIgnoreWhite {
		t.Error("white exclusion must be disabled for average color")
	}
}

func TestAverageColor_FilterPath(t *testing.T) {
	engine := &stubEngine{apply: func(name string, task Task) (Output, error) {
		if name != TransformAreaAverage {
			t.Errorf("transform: got %q, want %q", name, TransformAreaAverage)
		}
		return &stubOutput{
			pix:    []byte{128, 64, 32, 255},
			extent: image.Rect(0, 0, 1, 1),
		}, nil
	}}
	provider := &stubProvider{}
	e := NewExtractor(engine, provider)

	img := testImage(10, 10, color.NRGBA{128, 64, 32, 255})
	got, err := e.AverageColor(img, AverageAreaFilter)
	if err != nil {
		t.Fatalf("AverageColor failed: %v", err)
	}

	want := Color{R: 128.0 / 255, G: 64.0 / 255, B: 32.0 / 255, A: 1}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if provider.calls != 0 {
		t.Error("palette provider should not run when the filter path succeeds")
	}
	if engine.lastTask.Extent != img.Bounds() {
		t.Errorf("extent: got %v, want full image bounds %v", engine.lastTask.Extent, img.Bounds())
	}
}

func TestAverageColor_FallbackEquivalence(t *testing.T) {
	// An engine missing the area-average transform must make the filter
	// request behave exactly like a median-cut request on the same image.
	img := testImage(8, 8, color.NRGBA{10, 20, 30, 255})
	fallbackColor := Color{R: 10.0 / 255, G: 20.0 / 255, B: 30.0 / 255, A: 1}

	unsupported := &stubEngine{apply: func(name string, task Task) (Output, error) {
		return nil, fmt.Errorf("%w: %q", ErrFilterUnsupported, name)
	}}

	viaFilter := NewExtractor(unsupported, &stubProvider{colors: []Color{fallbackColor}})
	viaMedianCut := NewExtractor(unsupported, &stubProvider{colors: []Color{fallbackColor}})

	filterResult, err := viaFilter.AverageColor(img, AverageAreaFilter)
	if err != nil {
		t.Fatalf("fallback should succeed, got: %v", err)
	}
	medianResult, err := viaMedianCut.AverageColor(img, AverageMedianCut)
	if err != nil {
		t.Fatalf("median-cut path failed: %v", err)
	}

	if filterResult != medianResult {
		t.Errorf("fallback result %+v differs from median-cut result %+v", filterResult, medianResult)
	}
}

func TestAverageColor_UnsupportedNeverSurfaces(t *testing.T) {
	engine := &stubEngine{apply: func(string, Task) (Output, error) {
		return nil, ErrFilterUnsupported
	}}
	// Provider fails too: the call fails, but with the provider's error,
	// never the swallowed unsupported one.
	provider := &stubProvider{err: errors.New("palette backend down")}
	e := NewExtractor(engine, provider)

	_, err := e.AverageColor(testImage(2, 2, color.NRGBA{0, 0, 0, 255}), AverageAreaFilter)
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, ErrFilterUnsupported) {
		t.Errorf("ErrFilterUnsupported must not reach callers, got: %v", err)
	}
}

func TestAverageColor_OtherFilterErrorsTerminal(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"conversion failure", ErrImageConversion},
		{"arbitrary engine failure", errors.New("render device lost")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &stubEngine{apply: func(string, Task) (Output, error) {
				return nil, tt.err
			}}
			provider := &stubProvider{colors: []Color{{A: 1}}}
			e := NewExtractor(engine, provider)

			_, err := e.AverageColor(testImage(2, 2, color.NRGBA{0, 0, 0, 255}), AverageAreaFilter)
			if !errors.Is(err, tt.err) {
				t.Errorf("error kind not preserved: got %v, want %v", err, tt.err)
			}
			if provider.calls != 0 {
				t.Error("no fallback expected for terminal filter failures")
			}
		})
	}
}

func TestAverageColor_OutputMissing(t *testing.T) {
	engine := &stubEngine{apply: func(string, Task) (Output, error) {
		return nil, nil
	}}
	e := NewExtractor(engine, &stubProvider{})

	_, err := e.AverageColor(testImage(2, 2, color.NRGBA{0, 0, 0, 255}), AverageAreaFilter)
	if !errors.Is(err, ErrOutputMissing) {
		t.Errorf("expected ErrOutputMissing, got: %v", err)
	}
}

func TestAverageColor_EmptyPalette(t *testing.T) {
	e := NewExtractor(&stubEngine{}, &stubProvider{colors: nil})

	_, err := e.AverageColor(testImage(2, 2, color.NRGBA{0, 0, 0, 255}), AverageMedianCut)
	if !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("expected ErrEmptyPalette, got: %v", err)
	}
}

func TestDominantColors_MedianCutOrderPreserved(t *testing.T) {
	// Provider order is the dominance ranking; the extractor must never
	// re-sort it.
	ranked := []Color{
		{R: 0.9, A: 1},
		{G: 0.8, A: 1},
		{B: 0.7, A: 1},
		{R: 0.3, G: 0.3, A: 1},
		{B: 0.1, A: 1},
	}
	provider := &stubProvider{colors: ranked}
	e := NewExtractor(&stubEngine{}, provider)

	got, err := e.DominantColors(testImage(4, 4, color.NRGBA{0, 0, 0, 255}), QualityHigh, DominantMedianCut)
	if err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}

	if len(got) > 5 {
		t.Errorf("median-cut path returned %d colors, want at most 5", len(got))
	}
	for i := range ranked {
		if got[i] != ranked[i] {
			t.Errorf("color %d reordered: got %+v, want %+v", i, got[i], ranked[i])
		}
	}

	if provider.lastCount != 5 {
		t.Errorf("palette size requested: got %d, want 5", provider.lastCount)
	}
	if provider.lastQuality != QualityHigh {
		t.Errorf("quality hint: got %v, want %v", provider.lastQuality, QualityHigh)
	}
	if provider.lastIgnoreWhite {
		t.Error("white exclusion must be disabled for dominant colors")
	}
}

func TestDominantColors_MedianCutEmptyPalette(t *testing.T) {
	e := NewExtractor(&stubEngine{}, &stubProvider{})

	_, err := e.DominantColors(testImage(2, 2, color.NRGBA{0, 0, 0, 255}), QualityFair, DominantMedianCut)
	if !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("expected ErrEmptyPalette, got: %v", err)
	}
}

func TestDominantColors_ClusterPath(t *testing.T) {
	// Native cluster output carries weights in alpha; the extractor must
	// force opacity before decoding.
	pix := make([]byte, 8*4)
	for i := 0; i < 8; i++ {
		pix[i*4] = byte(i * 30)
		pix[i*4+3] = byte(i * 10) // partial alpha, must not survive
	}

	engine := &stubEngine{apply: func(name string, task Task) (Output, error) {
		if name != TransformClusterColors {
			t.Errorf("transform: got %q, want %q", name, TransformClusterColors)
		}
		return &stubOutput{pix: pix, extent: image.Rect(0, 0, 8, 1)}, nil
	}}
	e := NewExtractor(engine, &stubProvider{})

	colors, err := e.DominantColors(testImage(16, 16, color.NRGBA{200, 10, 10, 255}), QualityFair, DominantCluster)
	if err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}

	if len(colors) != 8 {
		t.Fatalf("cluster path returned %d colors, want exactly 8", len(colors))
	}
	for i, c := range colors {
		if c.A != 1.0 {
			t.Errorf("color %d alpha: got %f, want 1.0 (forced opaque)", i, c.A)
		}
	}

	task := engine.lastTask
	if task.Clusters != 8 {
		t.Errorf("cluster count: got %d, want 8", task.Clusters)
	}
	if task.Passes != QualityFair.Passes() {
		t.Errorf("passes: got %d, want %d", task.Passes, QualityFair.Passes())
	}
	if !task.Perceptual {
		t.Error("perceptual weighting must always be enabled")
	}
}

func TestDominantColors_ClusterBoundsInput(t *testing.T) {
	engine := &stubEngine{apply: func(name string, task Task) (Output, error) {
		return &stubOutput{pix: make([]byte, 8*4), extent: image.Rect(0, 0, 8, 1)}, nil
	}}
	e := NewExtractor(engine, &stubProvider{})

	// 100×100 = 10,000 px², over the low-quality ceiling of 1,000.
	img := testImage(100, 100, color.NRGBA{50, 50, 50, 255})
	if _, err := e.DominantColors(img, QualityLow, DominantCluster); err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}

	got := engine.lastTask.Image.Bounds()
	wantW, wantH := QualityLow.TargetSize(100, 100)
	if got.Dx() != wantW || got.Dy() != wantH {
		t.Errorf("clustering input: got %dx%d, want %dx%d", got.Dx(), got.Dy(), wantW, wantH)
	}
	if engine.lastTask.Extent != engine.lastTask.Image.Bounds() {
		t.Error("extent should cover the bounded image")
	}
}

func TestDominantColors_ClusterNoFallback(t *testing.T) {
	engine := &stubEngine{apply: func(string, Task) (Output, error) {
		return nil, ErrFilterUnsupported
	}}
	provider := &stubProvider{colors: []Color{{A: 1}}}
	e := NewExtractor(engine, provider)

	_, err := e.DominantColors(testImage(4, 4, color.NRGBA{0, 0, 0, 255}), QualityFair, DominantCluster)
	if !errors.Is(err, ErrFilterUnsupported) {
		t.Errorf("clustering failures are terminal, got: %v", err)
	}
	if provider.calls != 0 {
		t.Error("there is no fallback from clustering to median cut")
	}
}

func TestDominantColors_ClusterNilImage(t *testing.T) {
	e := NewExtractor(&stubEngine{}, &stubProvider{})

	_, err := e.DominantColors(nil, QualityFair, DominantCluster)
	if !errors.Is(err, ErrImageConversion) {
		t.Errorf("expected ErrImageConversion, got: %v", err)
	}
}

func TestParseAverageAlgorithm(t *testing.T) {
	tests := []struct {
		input   string
		want    AverageAlgorithm
		wantErr bool
	}{
		{"median_cut", AverageMedianCut, false},
		{"area_average", AverageAreaFilter, false},
		{"kmeans", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAverageAlgorithm(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseAverageAlgorithm(%q) should fail", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAverageAlgorithm(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDominantAlgorithm(t *testing.T) {
	tests := []struct {
		input   string
		want    DominantAlgorithm
		wantErr bool
	}{
		{"median_cut", DominantMedianCut, false},
		{"cluster", DominantCluster, false},
		{"histogram", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDominantAlgorithm(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDominantAlgorithm(%q) should fail", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDominantAlgorithm(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
