package input

// Key is a backend-neutral key code.
type Key uint16

const (
	KeyUnknown Key = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	KeyEscape
	KeyBackspace
	KeySpace
	KeyEnter
	KeyTab
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight

	KeyLCtrl
	KeyRCtrl
	KeyLShift
	KeyRShift
	KeyLAlt
	KeyRAlt
	KeyLMeta
	KeyRMeta
)

// ControllerButton follows the standard gamepad layout.
type ControllerButton uint8

const (
	ButtonUnknown ControllerButton = iota
	ButtonA
	ButtonB
	ButtonX
	ButtonY
	ButtonBack
	ButtonGuide
	ButtonStart
	ButtonLeftShoulder
	ButtonRightShoulder
	ButtonDPadUp
	ButtonDPadDown
	ButtonDPadLeft
	ButtonDPadRight
)
