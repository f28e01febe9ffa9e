package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/particlefield/internal/field"
	"github.com/san-kum/particlefield/internal/sim"
)

func TestSVGOneCirclePerParticle(t *testing.T) {
	f := field.New(800, 600, field.DefaultParams(), rand.New(rand.NewSource(1)))
	s := NewSVGSurface(field.Color{A: 1})
	stats := f.Render(s)

	out := s.String()
	if n := strings.Count(out, "<circle"); n != f.Len() {
		t.Errorf("expected %d circles, got %d", f.Len(), n)
	}
	if n := strings.Count(out, "<line"); n != stats.Connections {
		t.Errorf("expected %d lines, got %d", stats.Connections, n)
	}
	if !strings.Contains(out, `width="800" height="600"`) {
		t.Error("document does not carry the surface size")
	}
	circles, lines := s.Counts()
	if circles != f.Len() || lines != stats.Connections {
		t.Errorf("counts %d/%d do not match the document", circles, lines)
	}
}

func TestSVGClearResets(t *testing.T) {
	s := NewSVGSurface(field.Color{})
	s.Clear(10, 10)
	s.FillCircle(1, 1, 1, field.White)
	s.Clear(20, 20)
	if strings.Contains(s.String(), "<circle") {
		t.Error("clear should discard earlier elements")
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("a single value cannot form a line")
	}
	out := SeriesToSVG([]float64{1, 4, 2, 8}, 300, 100, "#00ccff")
	if !strings.Contains(out, `stroke="#00ccff"`) || strings.Count(out, " L") != 3 {
		t.Errorf("unexpected path: %s", out)
	}
}

func TestRasterSurface(t *testing.T) {
	r := NewRasterSurface(40, 30, 2, field.Color{A: 1})
	img := r.Image()
	if img.Bounds().Dx() != 80 || img.Bounds().Dy() != 60 {
		t.Fatalf("expected an 80x60 backing image, got %v", img.Bounds())
	}
	r.Clear(40, 30)
	r.FillCircle(20, 15, 5, field.White)
	if c := img.RGBAAt(40, 30); c.R < 200 {
		t.Errorf("disc center not painted: %v", c)
	}
	if c := img.RGBAAt(2, 2); c.R != 0 || c.A != 255 {
		t.Errorf("background not painted: %v", c)
	}
}

func TestGIFRecorder(t *testing.T) {
	g := NewGIFRecorder(0)
	if err := g.Encode(&bytes.Buffer{}); !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(3, 3, color.White)
	g.Add(img)
	g.Add(image.NewPaletted(image.Rect(0, 0, 8, 8), color.Palette{color.Black, color.White}))

	var buf bytes.Buffer
	if err := g.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	decoded, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded.Image) != 2 || decoded.Delay[0] != 2 {
		t.Errorf("expected 2 frames with delay 2, got %d frames %v", len(decoded.Image), decoded.Delay)
	}

	path := filepath.Join(t.TempDir(), "out.gif")
	if err := g.Save(path); err != nil {
		t.Fatal(err)
	}
}

type fieldEffect struct{ *field.Field }

func (fieldEffect) Name() string             { return "field" }
func (e fieldEffect) Render(s field.Surface) { e.Field.Render(s) }

func TestFrameRecorder(t *testing.T) {
	surface := NewRasterSurface(64, 48, 1, field.Color{A: 1})
	rec := &FrameRecorder{GIF: NewGIFRecorder(3), Surface: surface, Every: 5}
	e := fieldEffect{field.New(0, 0, field.DefaultParams(), rand.New(rand.NewSource(2)))}

	loop, err := sim.NewLoop(e, surface, sim.Config{Width: 64, Height: 48})
	if err != nil {
		t.Fatal(err)
	}
	loop.AddObserver(rec)
	if _, err := loop.Run(context.Background(), 20); err != nil {
		t.Fatal(err)
	}
	if rec.GIF.Len() != 4 {
		t.Errorf("expected every 5th of 20 frames, got %d", rec.GIF.Len())
	}
}
