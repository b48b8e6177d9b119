package config

import "sort"

var Presets = map[string]*Config{
	"classic": {Backend: BackendTea, TickMS: 20, Spawn: "literal", LogLevel: DefaultLogLevel},
	"single":  {Backend: BackendTea, TickMS: 20, Spawn: "single", LogLevel: DefaultLogLevel},
	"drizzle": {Backend: BackendTea, TickMS: 60, Spawn: "single", LogLevel: DefaultLogLevel},
	"storm":   {Backend: BackendTcell, TickMS: 8, Spawn: "literal", LogLevel: DefaultLogLevel},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
