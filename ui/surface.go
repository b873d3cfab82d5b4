package ui

import "github.com/gdamore/tcell/v2"

// Surface is what the render loop redraws on every frame. Implementations draw
// the whole screen from scratch and must not block.
type Surface interface {
	Draw(screen tcell.Screen)
}

// SurfaceFunc adapts a plain function to Surface.
type SurfaceFunc func(screen tcell.Screen)

func (f SurfaceFunc) Draw(screen tcell.Screen) {
	f(screen)
}
