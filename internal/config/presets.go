package config

import "sort"

var Presets = map[string]*Config{
	"rule30": {
		Rule: "30", States: 2, Neighbors: 1, Width: 401, Generations: 200,
		Init: InitConfig{Mode: InitSingle},
	},
	"rule90": {
		Rule: "90", States: 2, Neighbors: 1, Width: 257, Generations: 128,
		Init: InitConfig{Mode: InitSingle},
	},
	"rule110": {
		Rule: "110", States: 2, Neighbors: 1, Width: 300, Generations: 300,
		Init: InitConfig{Mode: InitRandom},
	},
	"rule150": {
		Rule: "150", States: 2, Neighbors: 1, Width: 257, Generations: 128,
		Init: InitConfig{Mode: InitSingle},
	},
	"rule184": {
		Rule: "184", States: 2, Neighbors: 1, Width: 200, Generations: 200,
		Init: InitConfig{Mode: InitRandom},
	},
	"three-state": {
		Rule: "3916317193236", States: 3, Neighbors: 1, Width: 300, Generations: 300,
		Init: InitConfig{Mode: InitRandom},
	},
	"radius-two": {
		Rule: "1771476585", States: 2, Neighbors: 2, Width: 300, Generations: 200,
		Init: InitConfig{Mode: InitRandom},
	},
}

// GetPreset returns a copy of the named preset, or nil if it does not exist.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	if cfg.Output == "" {
		cfg.Output = name + ".png"
	}
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
