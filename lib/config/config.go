/*package config parses tally config files. Files use the gcfg INI variant
with a single [tally] section; ExampleConfig shows every variable.*/
package config

import (
	"gopkg.in/gcfg.v1"
)

const ExampleConfig = `[tally]

#######################
# Required Parameters #
#######################

# Number of worker threads used by force kernels. Set to -1 to use every
# core on the node.
Threads = 4

#######################
# Optional Parameters #
#######################

# Newton selects whether interaction laws are applied once per pair with the
# full contribution (true) or once per side with half contributions (false).
# Default is true.
# Newton = true

# Output selection. GlobalEnergy and GlobalVirial accumulate system totals,
# AtomEnergy and AtomVirial accumulate per-atom arrays. The global totals
# default to on and the per-atom arrays to off.
# GlobalEnergy = true
# GlobalVirial = true
# AtomEnergy = false
# AtomVirial = false

# If set, reduced results are written to this file after the run.
# Checkpoint = path/to/state.tly`

// Tally holds the variables of a config file's [tally] section.
type Tally struct {
	Threads      int
	Newton       bool
	GlobalEnergy bool
	GlobalVirial bool
	AtomEnergy   bool
	AtomVirial   bool
	Checkpoint   string
}

type configFile struct {
	Tally Tally
}

func defaults() *configFile {
	return &configFile{Tally{
		Threads:      -1,
		Newton:       true,
		GlobalEnergy: true,
		GlobalVirial: true,
	}}
}

// Parse reads the config file fname, applying defaults to unset variables.
func Parse(fname string) (*Tally, error) {
	cfg := defaults()
	if err := gcfg.ReadFileInto(cfg, fname); err != nil {
		return nil, err
	}
	return &cfg.Tally, nil
}

// ParseString parses config text directly. Mainly useful for testing and
// for programs embedding tally that already manage their own files.
func ParseString(text string) (*Tally, error) {
	cfg := defaults()
	if err := gcfg.ReadStringInto(cfg, text); err != nil {
		return nil, err
	}
	return &cfg.Tally, nil
}
