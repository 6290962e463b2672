package launcher

import (
	"github.com/rony4d/go-mpss-bench/benchmark"
	"github.com/rony4d/go-mpss-bench/fleet"
	"github.com/rony4d/go-mpss-bench/integration"
	"github.com/rony4d/go-mpss-bench/plot"
)

// Defaults bundles the baseline configuration values the launcher uses
// before config files and flags override them.

type Defaults struct {
	Generate  GenerateDefaults
	Fleet     FleetDefaults
	Aggregate AggregateDefaults
	Logging   LoggingDefaults
	LogDir    string //	Local log root. fetch copies every node's run directory into it, aggregate reads one run per subdirectory and summarize writes its record there.
}

// GenerateDefaults drive topology document generation.

type GenerateDefaults struct {
	Preset   string //	Name of the generation preset (default, lite, full); the preset supplies the degree list and the remaining fields below unless flags override them.
	Port     int    //	Port every committee member listens on. The remote start scripts expect 8000.
	AddrList string //	Address pool file produced by provisioning: one host per line, the first line is the primary.
	OutDir   string //	Directory the config-deg<d>.toml documents are written to; it is shipped to the hosts next to the start scripts.
}

// FleetDefaults configure how the committee hosts are reached.
type FleetDefaults struct {
	SSHKey      string //	Private key passed to ssh/scp with -i. Can also come from MPSS_SSH_KEY.
	SSHUser     string //	Remote account on every host. Can also come from MPSS_SSH_USER.
	RemoteDir   string //	Remote directory holding the start scripts; run logs live in log-<config>/ below it.
	StopCommand string //	Shell command stop runs on every host. The default stops every running container.
	Parallelism int    //	Peers handled concurrently by start/stop/fetch after the primary; 1 keeps the classic sequential loop.
}

// AggregateDefaults configure result aggregation.
type AggregateDefaults struct {
	PlotDir       string  //	Directory receiving latency/onchain/offchain .dat tables and .png plots.
	BenchmarkFile string  //	Summary file read from every run directory (the record written by node 1).
	PlotSize      float64 //	Width and height of every plot in inches.
}

// LoggingDefaults controls log verbosity/format.
type LoggingDefaults struct {
	Verbosity int    //	Log level numeric (0=fatal, 1=error, 2=warn, 3=info, 4=debug, 5=trace).
	Format    string //	Log output format (text vs json).
	Color     bool   //	Whether to force ANSI color codes in text logs (helpful on terminals, best disabled when piping to files).
}

// DefaultConfig returns a fully populated Defaults instance.

func DefaultConfig() Defaults {
	preset := integration.DefaultPreset()
	return Defaults{
		Generate: GenerateDefaults{
			Preset:   preset.Name,
			Port:     preset.Port,
			AddrList: preset.AddrList,
			OutDir:   preset.OutDir,
		},
		Fleet: FleetDefaults{
			SSHKey:      fleet.DefaultKeyFile,
			SSHUser:     fleet.DefaultUser,
			RemoteDir:   fleet.DefaultRemoteDir,
			StopCommand: fleet.DefaultStopCommand,
			Parallelism: 1,
		},
		Aggregate: AggregateDefaults{
			PlotDir:       ".",
			BenchmarkFile: benchmark.DefaultFileName,
			PlotSize:      plot.DefaultSizeInches,
		},
		Logging: LoggingDefaults{
			Verbosity: 3,
			Format:    "text",
			Color:     false,
		},
		LogDir: "log",
	}
}
