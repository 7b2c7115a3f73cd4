package config

import "sort"

var Presets = map[string]func(*Config){
	// 800x800 demo defaults
	"classic": func(c *Config) {},
	"dense": func(c *Config) {
		c.Field.Count = 220
		c.Field.Size = 1.5
		c.Field.MaxLine = 90
	},
	"sparse": func(c *Config) {
		c.Field.Count = 40
		c.Field.Size = 3
		c.Field.MaxLine = 260
		c.Field.LineWidth = 1.5
	},
	"swarm": func(c *Config) {
		c.Field.Count = 150
		c.Field.Color = "#4fc3f7"
		c.Field.MaxLine = 120
		c.Motion.AttractRadius = 320
		c.Motion.SpeedScale = 1.2
	},
}

// GetPreset returns a fresh config with the preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for k := range Presets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
