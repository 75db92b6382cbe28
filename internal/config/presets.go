package config

import (
	"math"
	"sort"
)

var Presets = map[string]*Scenario{
	"solar": {
		Name: "solar", G: G, Dt: 3600, Duration: 12 * 365.25 * 86400,
		SampleEvery: 24, ViewRadius: 7 * AU,
		Bodies: []BodyConfig{
			{Name: "sun", Mass: SunMass, Color: "#ffcc00"},
			{Name: "earth", Mass: EarthMass, Pos: [2]float64{0, AU}, Vel: [2]float64{circular(SunMass, AU), 0}, Color: "#3399ff"},
			{Name: "jupiter", Mass: JupiterMass, Pos: [2]float64{0, 5.2 * AU}, Vel: [2]float64{circular(SunMass, 5.2*AU), 0}, Color: "#ff8844"},
		},
	},
	"earth-sun": {
		Name: "earth-sun", G: G, Dt: 600, Duration: 365.25 * 86400,
		SampleEvery: 144, ViewRadius: 1.5 * AU, AutoOrbit: true,
		Bodies: []BodyConfig{
			{Name: "sun", Mass: SunMass, Color: "#ffcc00"},
			{Name: "earth", Mass: EarthMass, Pos: [2]float64{AU, 0}, Color: "#3399ff"},
		},
	},
	"binary": {
		Name: "binary", G: 1, Dt: 0.001, Duration: 20,
		SampleEvery: 10, ViewRadius: 2,
		Bodies: []BodyConfig{
			{Name: "a", Mass: 1, Pos: [2]float64{-0.5, 0}, Vel: [2]float64{0, -0.7071067811865476}},
			{Name: "b", Mass: 1, Pos: [2]float64{0.5, 0}, Vel: [2]float64{0, 0.7071067811865476}},
		},
	},
	"unit-orbit": {
		Name: "unit-orbit", G: 1, Dt: 0.001, Duration: 2 * math.Pi,
		SampleEvery: 10, ViewRadius: 1.5, AutoOrbit: true,
		Bodies: []BodyConfig{
			{Name: "star", Mass: 1},
			{Name: "planet", Mass: 1e-6, Pos: [2]float64{1, 0}},
		},
	},
}

// circular is the circular orbit speed around mass m at radius r in SI
// units.
func circular(m, r float64) float64 {
	return math.Sqrt(G * m / r)
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Scenario {
	sc, ok := Presets[name]
	if !ok {
		return nil
	}
	return sc.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
