package gui

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/particlefield/internal/field"
)

var (
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColAccent  = rl.NewColor(125, 211, 252, 255)
)

func rlColor(c field.Color) rl.Color {
	n := c.NRGBA()
	return rl.NewColor(n.R, n.G, n.B, n.A)
}

// raylibSurface draws straight to the current raylib frame buffer.
type raylibSurface struct {
	background field.Color
}

func (s raylibSurface) Clear(width, height float64) {
	rl.ClearBackground(rlColor(s.background))
}

func (s raylibSurface) FillRect(x, y, w, h float64, c field.Color) {
	rl.DrawRectangleV(rl.NewVector2(float32(x), float32(y)), rl.NewVector2(float32(w), float32(h)), rlColor(c))
}

func (s raylibSurface) FillCircle(x, y, r float64, c field.Color) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), rlColor(c))
}

func (s raylibSurface) StrokeLine(x0, y0, x1, y1, width float64, c field.Color) {
	rl.DrawLineEx(rl.NewVector2(float32(x0), float32(y0)), rl.NewVector2(float32(x1), float32(y1)), float32(width), rlColor(c))
}

func initWindow(title string) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint | rl.FlagWindowHighdpi)
	rl.InitWindow(1280, 720, title)
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// RunRaylib opens a resizable raylib window. Minimising the window pauses
// the effect.
func RunRaylib(opts Options) error {
	initWindow(opts.Title)
	defer rl.CloseWindow()

	// with high-DPI enabled raylib draws in logical coordinates onto a
	// framebuffer at device resolution
	surface := raylibSurface{background: opts.Background}
	dpr := pixelRatio(rl.GetRenderWidth(), rl.GetScreenWidth(), float64(rl.GetWindowScaleDPI().X))
	opts.Logger.Debug("window scale", "dpr", dpr)

	rl.BeginDrawing()
	h, err := newWindowHost(opts, surface, rl.GetScreenWidth(), rl.GetScreenHeight(), dpr)
	rl.EndDrawing()
	if err != nil {
		return err
	}
	defer h.close()

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
			break
		}
		if rl.IsKeyPressed(rl.KeySpace) {
			h.togglePause()
		}
		if rl.IsKeyPressed(rl.KeyH) {
			h.opts.ShowHUD = !h.opts.ShowHUD
		}

		dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
		showing := !rl.IsWindowMinimized() && !rl.IsWindowHidden()

		rl.BeginDrawing()
		if h.present(rl.GetScreenWidth(), rl.GetScreenHeight(), showing, dt) && h.opts.ShowHUD {
			drawRaylibHUD(h)
		}
		rl.EndDrawing()
	}
	return nil
}

func drawRaylibHUD(h *windowHost) {
	for i, line := range h.hudLines() {
		col := ColText
		if i == 0 {
			col = ColAccent
		}
		rl.DrawText(line, 30, int32(30+i*22), 16, col)
	}

	pts := telemetryPoints(h.telemetry, 30, float64(rl.GetScreenHeight()-90), 400, 60)
	if pts == nil {
		return
	}
	strip := make([]rl.Vector2, len(pts))
	for i, p := range pts {
		strip[i] = rl.NewVector2(float32(p[0]), float32(p[1]))
	}
	rl.DrawLineStrip(strip, ColAccent)
	rl.DrawText(h.last.Elapsed.Round(time.Second).String(), 440, int32(rl.GetScreenHeight()-40), 14, ColTextDim)
}
