package integration

import (
	"fmt"
	"sort"
)

// Package integration provides generation presets for benchmark campaigns.
// A preset bundles the committee degrees to generate topology documents for,
// the port every node listens on, and where the address pool and the
// generated documents live, so operators can pick a campaign by name instead
// of repeating the same flags.
//
// Usage:
//   cfg := integration.DefaultPreset() // the full sweep used for published runs
//   cfg := integration.LitePreset()    // two small committees for smoke tests
//   cfg := integration.FullPreset()    // the default sweep plus one larger committee
//
// Each preset returns a PresetConfig that the launcher merges into its
// generation settings before CLI overrides are applied.

// PresetConfig captures what varies between benchmark campaigns.
type PresetConfig struct {
	Name     string // human-readable identifier (e.g., "lite", "full")
	Degrees  []int  // committee degrees d, each producing a committee of 3d+1 nodes
	Port     int    // port shared by the primary and every peer
	AddrList string // address pool file, one endpoint per line, line 0 is the primary
	OutDir   string // directory receiving config-deg<d>.toml documents
}

func DefaultPreset() PresetConfig {

	return PresetConfig{
		Name:     "default",
		Degrees:  []int{1, 3, 8, 13, 18, 23, 28, 33}, // committee sizes 4 to 100
		Port:     8000,                               // port baked into the remote start scripts
		AddrList: "./metadata/addr_list",             // written by the fleet provisioning step
		OutDir:   "scripts",                          // shipped to the hosts together with the start scripts
	}
}

// LitePreset returns a campaign of two small committees. A pool of 10 hosts is
// enough, which makes it the usual choice for checking a freshly provisioned
// fleet before paying for the full sweep.
func LitePreset() PresetConfig {
	cfg := DefaultPreset()    // start with the standard layout
	cfg.Name = "lite"         // set preset identifier for logging
	cfg.Degrees = []int{1, 3} // committees of 4 and 10 nodes
	return cfg
}

// FullPreset returns the default sweep extended by one committee of 115
// nodes. The address pool must hold at least 115 endpoints.
func FullPreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "full"
	cfg.Degrees = append(cfg.Degrees, 38) // 3*38+1 = 115 nodes
	return cfg
}

// PresetNames lists the names GetPresetByName accepts.
func PresetNames() []string {
	return []string{"default", "lite", "full"}
}

// GetPresetByName looks up a preset by its string identifier and returns the
// corresponding PresetConfig. Returns an error if the name is unrecognized.
//
// Example:
//
//	preset, err := integration.GetPresetByName("lite")
//	if err != nil {
//	    log.Fatal(err)
//	}
func GetPresetByName(name string) (PresetConfig, error) {
	switch name {
	case "lite":
		return LitePreset(), nil
	case "full":
		return FullPreset(), nil
	case "default", "":
		return DefaultPreset(), nil
	default:
		return PresetConfig{}, fmt.Errorf("unknown preset: %q (valid: lite, full, default)", name)
	}
}

// ApplyPreset merges a preset configuration into an existing config struct.
// Non-zero fields of the preset override the target; the degree list is
// copied so later edits of the target never leak into the preset.
func ApplyPreset(target *PresetConfig, preset PresetConfig) {
	if len(preset.Degrees) > 0 {
		target.Degrees = append([]int(nil), preset.Degrees...)
	}
	if preset.Port > 0 {
		target.Port = preset.Port
	}
	if preset.AddrList != "" {
		target.AddrList = preset.AddrList
	}
	if preset.OutDir != "" {
		target.OutDir = preset.OutDir
	}
	if preset.Name != "" {
		target.Name = preset.Name
	}
}

// MaxDegree is the largest degree of the preset, which fixes how many
// endpoints the address pool needs: 3*MaxDegree+1. It is -1 for an empty
// degree list.
func (p PresetConfig) MaxDegree() int {
	max := -1
	for _, d := range p.Degrees {
		if d > max {
			max = d
		}
	}
	return max
}

// RequiredEndpoints is the minimum address pool size for the preset.
func (p PresetConfig) RequiredEndpoints() int {
	if len(p.Degrees) == 0 {
		return 0
	}
	return 3*p.MaxDegree() + 1
}

// Validate rejects presets the generator cannot run: no degrees, negative or
// repeated degrees, or a port outside 1..65535.
func (p PresetConfig) Validate() error {
	if len(p.Degrees) == 0 {
		return fmt.Errorf("preset %q: no degrees", p.Name)
	}
	seen := append([]int(nil), p.Degrees...)
	sort.Ints(seen)
	for i, d := range seen {
		if d < 0 {
			return fmt.Errorf("preset %q: negative degree %d", p.Name, d)
		}
		if i > 0 && seen[i-1] == d {
			return fmt.Errorf("preset %q: degree %d listed twice", p.Name, d)
		}
	}
	if p.Port <= 0 || p.Port > 65535 {
		return fmt.Errorf("preset %q: port %d out of range", p.Name, p.Port)
	}
	return nil
}
