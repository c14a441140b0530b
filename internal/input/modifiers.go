package input

// Modifiers remembers which modifier keys are held. It is updated from
// every key event, press or release, and read by later key and mouse handlers.
type Modifiers struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Meta  bool
}

// Track records the new state of key when it is a modifier.
// Releasing a modifier always clears it, whether or not its press was seen.
func (m *Modifiers) Track(key Key, down bool) {
	switch key {
	case KeyLCtrl, KeyRCtrl:
		m.Ctrl = down
	case KeyLShift, KeyRShift:
		m.Shift = down
	case KeyLAlt, KeyRAlt:
		m.Alt = down
	case KeyLMeta, KeyRMeta:
		m.Meta = down
	}
}

// CommandHeld reports whether mask carries one of the modifiers gating
// command shortcuts: either meta key or left ctrl.
func CommandHeld(mask Mod) bool {
	return mask&(ModLMeta|ModRMeta|ModLCtrl) != 0
}
