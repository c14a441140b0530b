package config

import "time"

const (
	WindowWidth  = 1024
	WindowHeight = 512
	WindowTitle  = "Preset Visualizer"

	VisualRingSize  = 8192
	PCMWindow       = 2048
	SampleRate      = 44100
	SmoothingFactor = 0.6
	SpectrumBands   = 64

	// Visualization parameters
	CircleCount     = 8
	WaveCount       = 12
	ParticleCount   = 50
	MaxRadius       = 200
	RotationSpeed   = 0.02
	ColorShiftSpeed = 0.01

	// Touch waveforms
	MaxTouches   = 16
	TouchLife    = 4 * time.Second
	ToastTimeout = 3 * time.Second

	// Overlay panel
	PanelX      = 12
	PanelY      = 12
	PanelWidth  = 360
	PanelHeight = 220
	BaseHeight  = 540 // drawable height at which the overlay font scale is 1
)
