package viz

import (
	"math/rand"
	"time"
)

// TouchType selects the waveform a touch adds.
type TouchType uint8

const (
	TouchRandom TouchType = iota
	TouchCircle
	TouchRing
	TouchBurst

	touchTypes = int(TouchBurst)
)

type touchWave struct {
	x, y     float64 // 0..1, origin bottom left
	kind     TouchType
	pressure int
	born     time.Time
}

func resolveTouch(kind TouchType, rng *rand.Rand) TouchType {
	if kind == TouchRandom || int(kind) > touchTypes {
		return TouchType(1 + rng.Intn(touchTypes))
	}
	return kind
}
