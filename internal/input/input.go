// Package input maps glfw keys and mouse buttons to viewer actions and tracks
// per-frame press and release edges.
package input

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical viewer action, not a physical key
type Action int

const (
	ActionOrbitLeft Action = iota
	ActionOrbitRight
	ActionOrbitUp
	ActionOrbitDown
	ActionZoomIn
	ActionZoomOut
	ActionPlaceBlock
	ActionRemoveBlock
	ActionNextBlock
	ActionToggleWireframe
	ActionToggleProfiling
	ActionRequeueAll
	ActionQuit
	ActionMouseLeft
	ActionMouseRight
	ActionModShift
	ActionCount // Sentinel value for array sizing
)

func (a Action) valid() bool { return a >= 0 && a < ActionCount }

// defaultKeys lists the bindings installed by NewInputManager. Several keys may
// drive one action.
var defaultKeys = []struct {
	key    glfw.Key
	action Action
}{
	{glfw.KeyA, ActionOrbitLeft}, {glfw.KeyLeft, ActionOrbitLeft},
	{glfw.KeyD, ActionOrbitRight}, {glfw.KeyRight, ActionOrbitRight},
	{glfw.KeyW, ActionOrbitUp}, {glfw.KeyUp, ActionOrbitUp},
	{glfw.KeyS, ActionOrbitDown}, {glfw.KeyDown, ActionOrbitDown},
	{glfw.KeyEqual, ActionZoomIn},
	{glfw.KeyMinus, ActionZoomOut},
	{glfw.KeyP, ActionPlaceBlock},
	{glfw.KeyX, ActionRemoveBlock},
	{glfw.KeyTab, ActionNextBlock},
	{glfw.KeyF, ActionToggleWireframe},
	{glfw.KeyV, ActionToggleProfiling},
	{glfw.KeyR, ActionRequeueAll},
	{glfw.KeyEscape, ActionQuit},
	{glfw.KeyLeftShift, ActionModShift}, {glfw.KeyRightShift, ActionModShift},
}

// InputManager holds the action state for one window. glfw delivers events
// on the main thread during PollEvents, and the frame loop reads state on the
// same thread, so no locking is done.
type InputManager struct {
	keys    map[glfw.Key][]Action
	buttons map[glfw.MouseButton][]Action

	held     [ActionCount]bool
	pressed  [ActionCount]bool
	released [ActionCount]bool
}

// NewInputManager returns a manager with the default viewer bindings.
func NewInputManager() *InputManager {
	im := &InputManager{
		keys:    make(map[glfw.Key][]Action),
		buttons: make(map[glfw.MouseButton][]Action),
	}
	for _, b := range defaultKeys {
		im.BindKey(b.key, b.action)
	}
	im.BindMouseButton(glfw.MouseButtonLeft, ActionMouseLeft)
	im.BindMouseButton(glfw.MouseButtonRight, ActionMouseRight)
	return im
}

// BindKey adds action to the actions triggered by key.
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	if action.valid() {
		im.keys[key] = append(im.keys[key], action)
	}
}

// UnbindKey removes all action bindings for a key
func (im *InputManager) UnbindKey(key glfw.Key) {
	delete(im.keys, key)
}

func (im *InputManager) BindMouseButton(button glfw.MouseButton, action Action) {
	if action.valid() {
		im.buttons[button] = append(im.buttons[button], action)
	}
}

func (im *InputManager) UnbindMouseButton(button glfw.MouseButton) {
	delete(im.buttons, button)
}

// HandleKeyEvent updates every action bound to key. Key repeat counts as held.
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.apply(im.keys[key], action == glfw.Press || action == glfw.Repeat)
}

func (im *InputManager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	im.apply(im.buttons[button], action == glfw.Press)
}

// apply records edges as events arrive so a press and release within one
// frame are both seen.
func (im *InputManager) apply(actions []Action, down bool) {
	for _, a := range actions {
		if down && !im.held[a] {
			im.pressed[a] = true
		}
		if !down && im.held[a] {
			im.released[a] = true
		}
		im.held[a] = down
	}
}

// PostUpdate clears the edge flags. Call it once at the end of each frame.
func (im *InputManager) PostUpdate() {
	im.pressed = [ActionCount]bool{}
	im.released = [ActionCount]bool{}
}

// IsActive reports whether the action is held.
func (im *InputManager) IsActive(action Action) bool {
	return action.valid() && im.held[action]
}

// JustPressed reports whether the action went down this frame.
func (im *InputManager) JustPressed(action Action) bool {
	return action.valid() && im.pressed[action]
}

func (im *InputManager) JustReleased(action Action) bool {
	return action.valid() && im.released[action]
}
