package ebitenview

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is a user command produced by a key or mouse binding.
type Action int

const (
	ActionNone Action = iota
	ActionTogglePlay
	ActionChangeSpeed
	ActionStepBackward
	ActionStepForward
	ActionPrevious
	ActionNext
	ActionSave
	ActionCopy
	ActionFit
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionTogglePlay:
		return "toggle-play"
	case ActionChangeSpeed:
		return "change-speed"
	case ActionStepBackward:
		return "step-backward"
	case ActionStepForward:
		return "step-forward"
	case ActionPrevious:
		return "previous"
	case ActionNext:
		return "next"
	case ActionSave:
		return "save"
	case ActionCopy:
		return "copy"
	case ActionFit:
		return "fit"
	default:
		return "none"
	}
}

type keyBinding struct {
	key    ebiten.Key
	action Action
	// repeat fires the action again while the key is held.
	repeat bool
}

var keyBindings = []keyBinding{
	{ebiten.KeySpace, ActionTogglePlay, false},
	{ebiten.KeyS, ActionChangeSpeed, false},
	{ebiten.KeyArrowLeft, ActionStepBackward, true},
	{ebiten.KeyA, ActionStepBackward, true},
	{ebiten.KeyArrowRight, ActionStepForward, true},
	{ebiten.KeyD, ActionStepForward, true},
	{ebiten.KeyComma, ActionPrevious, false},
	{ebiten.KeyQ, ActionPrevious, false},
	{ebiten.KeyPeriod, ActionNext, false},
	{ebiten.KeyE, ActionNext, false},
	{ebiten.KeyArrowUp, ActionSave, false},
	{ebiten.KeyW, ActionSave, false},
	{ebiten.KeyC, ActionCopy, false},
	{ebiten.KeyF, ActionFit, false},
}

// Key repeat timing in ticks (60 per second).
const (
	repeatDelay    = 24
	repeatInterval = 4
)

// repeating reports whether a key held for d ticks fires on this tick.
func repeating(d int) bool {
	if d == 1 {
		return true
	}
	return d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0
}

// wheelAction maps a vertical wheel offset to a step. Wheel up goes back.
func wheelAction(dy float64) Action {
	switch {
	case dy > 0:
		return ActionStepBackward
	case dy < 0:
		return ActionStepForward
	default:
		return ActionNone
	}
}

// pollActions collects the actions triggered during the current tick.
func pollActions() []Action {
	var actions []Action
	for _, b := range keyBindings {
		if b.repeat {
			if repeating(inpututil.KeyPressDuration(b.key)) {
				actions = append(actions, b.action)
			}
			continue
		}
		if inpututil.IsKeyJustPressed(b.key) {
			actions = append(actions, b.action)
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		actions = append(actions, ActionChangeSpeed)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		actions = append(actions, ActionSave)
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		actions = append(actions, wheelAction(dy))
	}
	return actions
}
