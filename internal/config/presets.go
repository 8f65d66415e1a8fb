package config

import "sort"

var Presets = map[string]*Config{
	"resume": {
		Scene: "resume", Theme: "cyberpunk", FPS: 60, LogLevel: "info",
		Sweep: SweepConfig{From: 0, To: 12700, Step: 50},
	},
	"resume-coarse": {
		Scene: "resume", Theme: "minimal", FPS: 30, LogLevel: "info",
		Sweep: SweepConfig{From: 0, To: 12700, Step: 250, Workers: 4},
	},
	"minimal": {
		Scene: "minimal", Theme: "minimal", FPS: 30, LogLevel: "info",
		Sweep: SweepConfig{From: 0, To: 4000, Step: 50},
	},
	"orbs": {
		Scene: "orbs", Theme: "ocean", FPS: 60, LogLevel: "info",
		Sweep: SweepConfig{From: 0, To: 1000, Step: 100},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
