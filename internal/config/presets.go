package config

// Presets are ready-made scenarios. Each starts from DefaultConfig so a
// preset only states what it changes.
var Presets = map[string]func() *Config{
	// Classic dam break: a dense block released in the lower-left corner.
	"dam-break": func() *Config {
		return DefaultConfig()
	},
	// Small drop released above the floor; mostly free fall, then splash.
	"droplet": func() *Config {
		cfg := DefaultConfig()
		cfg.Particles = 144
		cfg.Seed = SeedConfig{OriginX: 0.45, OriginY: 0.55}
		return cfg
	},
	// Tall resting column with stronger viscosity; settles instead of
	// sloshing.
	"column": func() *Config {
		cfg := DefaultConfig()
		cfg.Particles = 256
		cfg.Physics.Viscosity = 0.4
		cfg.Seed = SeedConfig{OriginX: 0.4, OriginY: 0.05}
		return cfg
	},
}

// PresetNames lists the presets in a stable order for help output.
func PresetNames() []string {
	return []string{"dam-break", "droplet", "column"}
}
