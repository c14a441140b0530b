package window

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/preset-visualizer/internal/input"
)

var keyMap = map[ebiten.Key]input.Key{
	ebiten.KeyA: input.KeyA,
	ebiten.KeyB: input.KeyB,
	ebiten.KeyC: input.KeyC,
	ebiten.KeyD: input.KeyD,
	ebiten.KeyE: input.KeyE,
	ebiten.KeyF: input.KeyF,
	ebiten.KeyG: input.KeyG,
	ebiten.KeyH: input.KeyH,
	ebiten.KeyI: input.KeyI,
	ebiten.KeyJ: input.KeyJ,
	ebiten.KeyK: input.KeyK,
	ebiten.KeyL: input.KeyL,
	ebiten.KeyM: input.KeyM,
	ebiten.KeyN: input.KeyN,
	ebiten.KeyO: input.KeyO,
	ebiten.KeyP: input.KeyP,
	ebiten.KeyQ: input.KeyQ,
	ebiten.KeyR: input.KeyR,
	ebiten.KeyS: input.KeyS,
	ebiten.KeyT: input.KeyT,
	ebiten.KeyU: input.KeyU,
	ebiten.KeyV: input.KeyV,
	ebiten.KeyW: input.KeyW,
	ebiten.KeyX: input.KeyX,
	ebiten.KeyY: input.KeyY,
	ebiten.KeyZ: input.KeyZ,

	ebiten.KeyEscape:     input.KeyEscape,
	ebiten.KeyBackspace:  input.KeyBackspace,
	ebiten.KeySpace:      input.KeySpace,
	ebiten.KeyEnter:      input.KeyEnter,
	ebiten.KeyTab:        input.KeyTab,
	ebiten.KeyArrowUp:    input.KeyArrowUp,
	ebiten.KeyArrowDown:  input.KeyArrowDown,
	ebiten.KeyArrowLeft:  input.KeyArrowLeft,
	ebiten.KeyArrowRight: input.KeyArrowRight,

	ebiten.KeyControlLeft:  input.KeyLCtrl,
	ebiten.KeyControlRight: input.KeyRCtrl,
	ebiten.KeyShiftLeft:    input.KeyLShift,
	ebiten.KeyShiftRight:   input.KeyRShift,
	ebiten.KeyAltLeft:      input.KeyLAlt,
	ebiten.KeyAltRight:     input.KeyRAlt,
	ebiten.KeyMetaLeft:     input.KeyLMeta,
	ebiten.KeyMetaRight:    input.KeyRMeta,
}

var modKeys = []struct {
	key ebiten.Key
	mod input.Mod
}{
	{ebiten.KeyShiftLeft, input.ModLShift},
	{ebiten.KeyShiftRight, input.ModRShift},
	{ebiten.KeyControlLeft, input.ModLCtrl},
	{ebiten.KeyControlRight, input.ModRCtrl},
	{ebiten.KeyAltLeft, input.ModLAlt},
	{ebiten.KeyAltRight, input.ModRAlt},
	{ebiten.KeyMetaLeft, input.ModLMeta},
	{ebiten.KeyMetaRight, input.ModRMeta},
}

var buttonMap = map[ebiten.StandardGamepadButton]input.ControllerButton{
	ebiten.StandardGamepadButtonRightBottom:   input.ButtonA,
	ebiten.StandardGamepadButtonRightRight:    input.ButtonB,
	ebiten.StandardGamepadButtonRightLeft:     input.ButtonX,
	ebiten.StandardGamepadButtonRightTop:      input.ButtonY,
	ebiten.StandardGamepadButtonCenterLeft:    input.ButtonBack,
	ebiten.StandardGamepadButtonCenterCenter:  input.ButtonGuide,
	ebiten.StandardGamepadButtonCenterRight:   input.ButtonStart,
	ebiten.StandardGamepadButtonFrontTopLeft:  input.ButtonLeftShoulder,
	ebiten.StandardGamepadButtonFrontTopRight: input.ButtonRightShoulder,
	ebiten.StandardGamepadButtonLeftTop:       input.ButtonDPadUp,
	ebiten.StandardGamepadButtonLeftBottom:    input.ButtonDPadDown,
	ebiten.StandardGamepadButtonLeftLeft:      input.ButtonDPadLeft,
	ebiten.StandardGamepadButtonLeftRight:     input.ButtonDPadRight,
}

func translateKey(k ebiten.Key) input.Key {
	if key, ok := keyMap[k]; ok {
		return key
	}
	return input.KeyUnknown
}

// currentMods reads the modifier mask from the live keyboard state.
func currentMods() input.Mod {
	var m input.Mod
	for _, mk := range modKeys {
		if ebiten.IsKeyPressed(mk.key) {
			m |= mk.mod
		}
	}
	return m
}
