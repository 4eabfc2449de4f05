package game

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"

	"mcvox/internal/graphics"
)

// SetupInputHandlers routes window events into the input manager and camera.
func SetupInputHandlers(app *App) {
	window := app.window
	im := app.inputManager

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleMouseButtonEvent(button, action)
		if button == glfw.MouseButtonLeft {
			app.dragging = action == glfw.Press
			app.lastX, app.lastY = w.GetCursorPos()
		}
	})

	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if !app.dragging || app.session == nil {
			return
		}
		dx, dy := xpos-app.lastX, ypos-app.lastY
		app.lastX, app.lastY = xpos, ypos
		app.session.MoveCamera(func(c *graphics.Camera) {
			c.Orbit(float32(dx*dragSensitivity), float32(dy*dragSensitivity))
		})
	})

	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		if app.session != nil {
			factor := float32(math.Pow(zoomStep, yoff))
			app.session.MoveCamera(func(c *graphics.Camera) { c.Zoom(factor) })
		}
	})

	// Framebuffer size drives the GL viewport and aspect ratio.
	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		if app.session != nil {
			app.session.Renderer.UpdateViewport(fbWidth, fbHeight)
		}
	})

	window.SetFocusCallback(func(w *glfw.Window, focused bool) {
		if !focused {
			app.dragging = false
		}
	})

	window.SetRefreshCallback(func(w *glfw.Window) {
		if app.session != nil {
			app.session.RefreshRender()
		}
	})
}
