// Package gui hosts a field in a Raylib window.
package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/constellate/internal/anim"
	"github.com/san-kum/constellate/internal/field"
	"github.com/san-kum/constellate/internal/render"
	"go.uber.org/zap"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)    // Deep Black
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray (Subtle)
)

type App struct {
	Field     *field.Field
	Queue     *anim.FrameQueue
	Surface   *Surface
	TargetTex rl.RenderTexture2D
	ShowHUD   bool
}

// Attach implements field.Host. Only surfaces from NewSurface are accepted.
func (a *App) Attach(s render.Surface) error {
	gs, ok := s.(*Surface)
	if !ok {
		return fmt.Errorf("raylib window cannot hold %T", s)
	}
	a.Surface = gs
	return nil
}

// initWindow opens a window sized to the field, sets the target FPS and
// disables the default exit key so Q and the close button are the only ways
// out.
func initWindow(w, h, fps int) {
	rl.InitWindow(int32(w), int32(h), "constellate")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// Run mounts f in a Raylib window and blocks until the window closes. The
// field must be driven by q.
func Run(f *field.Field, q *anim.FrameQueue, fps int) error {
	a := &App{Field: f, Queue: q, ShowHUD: true}
	if err := f.Mount(a); err != nil {
		return err
	}
	if a.Surface == nil {
		return fmt.Errorf("gui: field is already mounted elsewhere")
	}

	w, h := a.Surface.Size()
	initWindow(w, h, fps)
	defer rl.CloseWindow()
	a.TargetTex = rl.LoadRenderTexture(int32(w), int32(h))
	defer rl.UnloadRenderTexture(a.TargetTex)

	a.RunLoop()
	f.Destroy()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Field.SetPaused(!a.Field.Paused())
	}
	if rl.IsKeyPressed(rl.KeyR) {
		seed := a.Field.Seed() + 1
		if err := a.Field.Reseed(seed); err != nil {
			a.Field.Logger().Warn("reseed failed", zap.Int64("seed", seed), zap.Error(err))
		}
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}

	mouse := rl.GetMousePosition()
	a.Surface.Track(float64(mouse.X), float64(mouse.Y), rl.IsCursorOnScreen())
	a.Queue.RunFrame()
}

func (a *App) Draw() {
	rl.BeginTextureMode(a.TargetTex)
	a.Surface.flush()
	rl.EndTextureMode()

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	// render textures are stored upside down
	src := rl.NewRectangle(0, 0, float32(a.TargetTex.Texture.Width), -float32(a.TargetTex.Texture.Height))
	rl.DrawTextureRec(a.TargetTex.Texture, src, rl.NewVector2(0, 0), rl.White)

	if a.ShowHUD {
		stats := a.Field.Stats()
		rl.DrawText(fmt.Sprintf("%d FPS  %d lines", rl.GetFPS(), stats.Lines), 10, 10, 16, ColText)
		if a.Field.Paused() {
			rl.DrawText("PAUSED", 10, 30, 16, ColText)
		}
		rl.DrawText("SPACE pause  R reseed  H hud  Q quit", 10, int32(a.TargetTex.Texture.Height)-24, 14, ColTextDim)
	}
	rl.EndDrawing()
}
