package gui

import (
	"errors"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/san-kum/particlefield/internal/field"
)

// ebitenSurface draws onto the screen image of the current Draw call,
// scaling logical units by the device scale factor.
type ebitenSurface struct {
	screen     *ebiten.Image
	background color.NRGBA
	k          float32
}

func (s *ebitenSurface) Clear(width, height float64) {
	s.screen.Fill(s.background)
}

func (s *ebitenSurface) FillRect(x, y, w, h float64, c field.Color) {
	k := s.k
	vector.DrawFilledRect(s.screen, float32(x)*k, float32(y)*k, float32(w)*k, float32(h)*k, c.NRGBA(), false)
}

func (s *ebitenSurface) FillCircle(x, y, r float64, c field.Color) {
	k := s.k
	vector.DrawFilledCircle(s.screen, float32(x)*k, float32(y)*k, float32(r)*k, c.NRGBA(), true)
}

func (s *ebitenSurface) StrokeLine(x0, y0, x1, y1, width float64, c field.Color) {
	k := s.k
	vector.StrokeLine(s.screen, float32(x0)*k, float32(y0)*k, float32(x1)*k, float32(y1)*k, float32(width)*k, c.NRGBA(), true)
}

type game struct {
	opts    Options
	surface *ebitenSurface
	host    *windowHost
	err     error
	last    time.Time
	// logical window size and device scale from the latest Layout call
	width, height int
	scale         float64
}

func newGame(opts Options) *game {
	return &game{
		opts:    opts,
		surface: &ebitenSurface{background: opts.Background.NRGBA(), k: 1},
	}
}

func (g *game) Update() error {
	if g.err != nil {
		return g.err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.host == nil {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.host.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.host.opts.ShowHUD = !g.host.opts.ShowHUD
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.surface.screen = screen
	surface := g.surface

	now := time.Now()
	if g.host == nil {
		g.host, g.err = newWindowHost(g.opts, surface, g.width, g.height, g.scale)
		if g.err != nil {
			return
		}
		g.last = now
	}
	dt := now.Sub(g.last)
	g.last = now

	// the screen is not cleared between frames, so an unfocused window
	// keeps showing its last image
	if g.host.present(g.width, g.height, ebiten.IsFocused(), dt) && g.host.opts.ShowHUD {
		g.drawHUD(screen)
	}
}

func (g *game) drawHUD(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, strings.Join(g.host.hudLines(), "\n"), 12, 12)

	h := screen.Bounds().Dy()
	pts := telemetryPoints(g.host.telemetry, 12, float64(h-80), 400, 60)
	accent := color.NRGBA{R: 125, G: 211, B: 252, A: 255}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		vector.StrokeLine(screen, float32(a[0]), float32(a[1]), float32(b[0]), float32(b[1]), 1, accent, false)
	}
}

// Layout renders at device resolution and keeps the effect in logical units.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	if scale <= 0 {
		scale = 1
	}
	g.scale = scale
	g.surface.k = float32(scale)
	g.width, g.height = outsideWidth, outsideHeight
	return int(float64(outsideWidth) * scale), int(float64(outsideHeight) * scale)
}

// RunEbiten opens a resizable ebiten window. The effect pauses while the
// window is unfocused.
func RunEbiten(opts Options) error {
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetScreenClearedEveryFrame(false)

	g := newGame(opts)
	err := ebiten.RunGame(g)
	if g.host != nil {
		g.host.close()
	}
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
