// This file maps the CLI context and the optional TOML config file to the
// launcher Config.

package launcher

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-mpss-bench/integration"
)

// Config aggregates every setting the commands need.
type Config struct {
	Generate  GenerateConfig  `toml:"generate"`
	Fleet     FleetConfig     `toml:"fleet"`
	Aggregate AggregateConfig `toml:"aggregate"`
	Summarize SummarizeConfig `toml:"summarize"`
	Logging   LoggingConfig   `toml:"logging"`
	Sentry    SentryConfig    `toml:"sentry"`
	LogDir    string          `toml:"logdir"`
}

type GenerateConfig struct {
	Preset   string `toml:"preset"`
	Degrees  []int  `toml:"degrees"`
	Port     int    `toml:"port"`
	AddrList string `toml:"addrlist"`
	OutDir   string `toml:"outdir"`
}

type FleetConfig struct {
	Topology    string   `toml:"topology"`
	SSHKey      string   `toml:"ssh_key"`
	SSHUser     string   `toml:"ssh_user"`
	SSHOptions  []string `toml:"ssh_options"`
	RemoteDir   string   `toml:"remote_dir"`
	StopCommand string   `toml:"stop_cmd"`
	Parallelism int      `toml:"parallel"`
}

type AggregateConfig struct {
	PlotDir       string  `toml:"plot_dir"`
	BenchmarkFile string  `toml:"benchmark_file"`
	PlotSize      float64 `toml:"plot_size"`
}

type SummarizeConfig struct {
	Samples string `toml:"samples"`
	Degree  int    `toml:"degree"`
	Node    string `toml:"node"`
}

type LoggingConfig struct {
	Verbosity int    `toml:"verbosity"`
	Format    string `toml:"format"`
	Color     bool   `toml:"color"`
}

type SentryConfig struct {
	DSN string `toml:"dsn"`
}

// -----------------------------------------------------------------------------
// Default config + builders
// -----------------------------------------------------------------------------

//	defaultConfig creates a Config from the DefaultConfig values in
//	defaults.go, so both files stay in sync.

func defaultConfig() Config {
	d := DefaultConfig()
	return Config{
		Generate: GenerateConfig{
			Preset:   d.Generate.Preset,
			Port:     d.Generate.Port,
			AddrList: d.Generate.AddrList,
			OutDir:   d.Generate.OutDir,
		},
		Fleet: FleetConfig{
			SSHKey:      d.Fleet.SSHKey,
			SSHUser:     d.Fleet.SSHUser,
			RemoteDir:   d.Fleet.RemoteDir,
			StopCommand: d.Fleet.StopCommand,
			Parallelism: d.Fleet.Parallelism,
		},
		Aggregate: AggregateConfig{
			PlotDir:       d.Aggregate.PlotDir,
			BenchmarkFile: d.Aggregate.BenchmarkFile,
			PlotSize:      d.Aggregate.PlotSize,
		},
		Summarize: SummarizeConfig{
			Node: "1",
		},
		Logging: LoggingConfig{
			Verbosity: d.Logging.Verbosity,
			Format:    d.Logging.Format,
			Color:     d.Logging.Color,
		},
		LogDir: d.LogDir,
	}
}

// MakeAllConfigs merges defaults, the optional config file, the selected
// generation preset and finally CLI flag overrides into a single Config.

func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := defaultConfig()

	if file := stringFlag(ctx, "config"); file != "" {
		if err := loadConfigFile(file, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "failed to load config file %s", file)
		}
	}

	presetSet := isSet(ctx, "preset")
	if presetSet {
		cfg.Generate.Preset = stringFlag(ctx, "preset")
	}
	if err := applyPreset(&cfg.Generate, presetSet); err != nil {
		return Config{}, err
	}

	if err := applyCLIOverrides(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// -----------------------------------------------------------------------------
// Config-file / CLI wiring
// -----------------------------------------------------------------------------

func loadConfigFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return errors.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// applyPreset fills the degree list from the named preset when the preset was
// chosen on the command line or nothing else supplied degrees.
func applyPreset(gen *GenerateConfig, force bool) error {
	preset, err := integration.GetPresetByName(gen.Preset)
	if err != nil {
		return err
	}
	target := integration.PresetConfig{
		Name:     gen.Preset,
		Degrees:  gen.Degrees,
		Port:     gen.Port,
		AddrList: gen.AddrList,
		OutDir:   gen.OutDir,
	}
	if force || len(target.Degrees) == 0 {
		integration.ApplyPreset(&target, integration.PresetConfig{Name: preset.Name, Degrees: preset.Degrees})
	}
	gen.Preset = target.Name
	gen.Degrees = target.Degrees
	return nil
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) error {
	if isSet(ctx, "degrees") {
		degrees, err := parseDegrees(stringFlag(ctx, "degrees"))
		if err != nil {
			return err
		}
		cfg.Generate.Degrees = degrees
	}
	if isSet(ctx, "port") {
		cfg.Generate.Port = intFlag(ctx, "port")
	}
	if isSet(ctx, "addrlist") {
		cfg.Generate.AddrList = resolvePath(stringFlag(ctx, "addrlist"))
	}
	if isSet(ctx, "outdir") {
		cfg.Generate.OutDir = resolvePath(stringFlag(ctx, "outdir"))
	}

	if isSet(ctx, "topology") {
		cfg.Fleet.Topology = resolvePath(stringFlag(ctx, "topology"))
	}
	if isSet(ctx, "ssh.key") {
		cfg.Fleet.SSHKey = resolvePath(stringFlag(ctx, "ssh.key"))
	}
	if isSet(ctx, "ssh.user") {
		cfg.Fleet.SSHUser = stringFlag(ctx, "ssh.user")
	}
	if isSet(ctx, "ssh.option") {
		cfg.Fleet.SSHOptions = stringSliceFlag(ctx, "ssh.option")
	}
	if isSet(ctx, "remote.dir") {
		cfg.Fleet.RemoteDir = stringFlag(ctx, "remote.dir")
	}
	if isSet(ctx, "stop.cmd") {
		cfg.Fleet.StopCommand = stringFlag(ctx, "stop.cmd")
	}
	if isSet(ctx, "parallel") {
		cfg.Fleet.Parallelism = intFlag(ctx, "parallel")
	}
	if isSet(ctx, "logdir") {
		cfg.LogDir = resolvePath(stringFlag(ctx, "logdir"))
	}

	if isSet(ctx, "plot.dir") {
		cfg.Aggregate.PlotDir = resolvePath(stringFlag(ctx, "plot.dir"))
	}
	if isSet(ctx, "benchmark.file") {
		cfg.Aggregate.BenchmarkFile = stringFlag(ctx, "benchmark.file")
	}
	if isSet(ctx, "plot.size") {
		cfg.Aggregate.PlotSize = float64Flag(ctx, "plot.size")
	}

	if isSet(ctx, "samples") {
		cfg.Summarize.Samples = resolvePath(stringFlag(ctx, "samples"))
	}
	if isSet(ctx, "degree") {
		cfg.Summarize.Degree = intFlag(ctx, "degree")
	}
	if isSet(ctx, "node") {
		cfg.Summarize.Node = stringFlag(ctx, "node")
	}

	if isSet(ctx, "log.format") {
		cfg.Logging.Format = stringFlag(ctx, "log.format")
	}
	if isSet(ctx, "log.verbosity") {
		cfg.Logging.Verbosity = intFlag(ctx, "log.verbosity")
	}
	if isSet(ctx, "log.color") {
		cfg.Logging.Color = boolFlag(ctx, "log.color")
	}
	if isSet(ctx, "sentry.dsn") {
		cfg.Sentry.DSN = stringFlag(ctx, "sentry.dsn")
	}
	return nil
}

// -----------------------------------------------------------------------------
// Flag lookup
// -----------------------------------------------------------------------------

// Common flags are registered on the app and go before the command name;
// command flags go after it. Lookups try the command's own set first, then
// the global one.

func isSet(ctx *cli.Context, name string) bool {
	return ctx.IsSet(name) || ctx.GlobalIsSet(name)
}

func stringFlag(ctx *cli.Context, name string) string {
	if ctx.IsSet(name) {
		return ctx.String(name)
	}
	return ctx.GlobalString(name)
}

func intFlag(ctx *cli.Context, name string) int {
	if ctx.IsSet(name) {
		return ctx.Int(name)
	}
	return ctx.GlobalInt(name)
}

func boolFlag(ctx *cli.Context, name string) bool {
	if ctx.IsSet(name) {
		return ctx.Bool(name)
	}
	return ctx.GlobalBool(name)
}

func float64Flag(ctx *cli.Context, name string) float64 {
	if ctx.IsSet(name) {
		return ctx.Float64(name)
	}
	return ctx.GlobalFloat64(name)
}

func stringSliceFlag(ctx *cli.Context, name string) []string {
	if ctx.IsSet(name) {
		return ctx.StringSlice(name)
	}
	return ctx.GlobalStringSlice(name)
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func parseDegrees(raw string) ([]int, error) {
	var degrees []int
	for _, part := range splitCSV(raw) {
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid degree %q", part)
		}
		degrees = append(degrees, d)
	}
	if len(degrees) == 0 {
		return nil, errors.Errorf("no degrees in %q", raw)
	}
	return degrees, nil
}

func resolvePath(p string) string {
	if strings.HasPrefix(p, "~") {
		return filepath.Join(GuessHomeDir(), strings.TrimPrefix(p, "~"))
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GuessWorkDir(), p)
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func GuessWorkDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func GuessHomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}
