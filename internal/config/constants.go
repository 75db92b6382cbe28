package config

// Physical constants in SI units.
const (
	G           = 6.67e-11       // m³ kg⁻¹ s⁻²
	SunMass     = 1.98892e30     // kg
	EarthMass   = 5.9742e24      // kg
	JupiterMass = 1.8986e27      // kg
	AU          = 1.495978707e11 // m
	Tick        = 1.0            // s
)

// Defaults applied to scenario files that leave a field out.
const (
	DefaultDt          = Tick
	DefaultDuration    = 3600.0
	DefaultSampleEvery = 1
	DefaultFrameRate   = 30
)
