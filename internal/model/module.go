package model

import (
	"fmt"
	"strings"
)

// Module identifies one of the calculation modules. Each module has its own
// entry schema, derived measure and unit.
type Module string

const (
	ModuleSawnWood Module = "sawn_wood"     // Rectangular sawn stock, measured in CFT
	ModuleRoundLog Module = "round_log"     // Round logs, Hoppus CFT from girth
	ModuleBeading  Module = "beading_patti" // Profile stock sold by running feet
)

// Modules lists every module in menu order.
var Modules = []Module{ModuleSawnWood, ModuleRoundLog, ModuleBeading}

func (m Module) String() string {
	switch m {
	case ModuleSawnWood:
		return "Sawn Wood"
	case ModuleRoundLog:
		return "Round Log"
	case ModuleBeading:
		return "Beading/Patti"
	default:
		return string(m)
	}
}

// Unit returns the measure unit shown next to totals.
func (m Module) Unit() string {
	if m == ModuleBeading {
		return "RFT"
	}
	return "CFT"
}

// FileStem is the module name used in generated file names.
func (m Module) FileStem() string {
	switch m {
	case ModuleSawnWood:
		return "SawnWood"
	case ModuleRoundLog:
		return "RoundLog"
	case ModuleBeading:
		return "BeadingPatti"
	default:
		return string(m)
	}
}

// Grouped reports whether the module's report is grouped by grade and size.
func (m Module) Grouped() bool {
	return m == ModuleBeading
}

// Valid reports whether m is a known module.
func (m Module) Valid() bool {
	for _, known := range Modules {
		if m == known {
			return true
		}
	}
	return false
}

// ParseModule accepts the canonical module names and the short aliases used
// on the command line.
func ParseModule(s string) (Module, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sawn_wood", "sawn-wood", "sawnwood", "sawn", "wood":
		return ModuleSawnWood, nil
	case "round_log", "round-log", "roundlog", "log", "logs":
		return ModuleRoundLog, nil
	case "beading_patti", "beading-patti", "beading", "patti", "moulding":
		return ModuleBeading, nil
	default:
		return "", fmt.Errorf("unknown module %q", s)
	}
}
