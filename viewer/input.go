package viewer

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/raidercore/ecs"
	"github.com/milk9111/raidercore/ecs/component"
)

const stickDeadzone = 0.4

type binding struct {
	button component.Button
	keys   []ebiten.Key
	pad    []ebiten.StandardGamepadButton
}

var bindings = []binding{
	{component.ButtonForward, []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}, []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftTop}},
	{component.ButtonBackward, []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}, []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftBottom}},
	{component.ButtonLeft, []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}, []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftLeft}},
	{component.ButtonRight, []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}, []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftRight}},
	{component.ButtonJump, []ebiten.Key{ebiten.KeySpace}, []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightBottom}},
	{component.ButtonAction, []ebiten.Key{ebiten.KeyE, ebiten.KeyControlLeft}, []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightLeft}},
	{component.ButtonRoll, []ebiten.Key{ebiten.KeyR}, []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightTop}},
	{component.ButtonWalk, []ebiten.Key{ebiten.KeyShiftLeft}, []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonFrontBottomRight}},
	{component.ButtonStepLeft, []ebiten.Key{ebiten.KeyQ}, []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonFrontTopLeft}},
	{component.ButtonStepRight, []ebiten.Key{ebiten.KeyC}, []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonFrontTopRight}},
}

// InputSystem latches the keyboard and the first gamepad into every Input
// component. It must run before the actor loop.
type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// Poll reads the devices once.
func (i *InputSystem) Poll() component.Button {
	var held component.Button
	for _, b := range bindings {
		for _, k := range b.keys {
			if ebiten.IsKeyPressed(k) {
				held |= b.button
			}
		}
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		for _, b := range bindings {
			for _, pb := range b.pad {
				if ebiten.IsStandardGamepadButtonPressed(id, pb) {
					held |= b.button
				}
			}
		}

		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Abs(lx) > stickDeadzone {
			if lx < 0 {
				held |= component.ButtonLeft
			} else {
				held |= component.ButtonRight
			}
		}
		if math.Abs(ly) > stickDeadzone {
			if ly < 0 {
				held |= component.ButtonForward
			} else {
				held |= component.ButtonBackward
			}
		}
	}
	return held
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	held := i.Poll()
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		input.Latch(held)
	})
}
