package launcher

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-mpss-bench/flags"
)

// helper to run MakeAllConfigs with a synthetic CLI context. group is the
// command flag group under test; the common flags are always registered.

func runConfigFromArgs(t *testing.T, group []cli.Flag, args []string) (Config, error) {

	t.Helper()

	app := cli.NewApp()

	app.HideHelp = true
	app.HideVersion = true

	app.Flags = append(app.Flags, flags.CommonFlags()...)
	app.Flags = append(app.Flags, group...)

	var (
		got    Config
		gotErr error
	)
	app.Action = func(c *cli.Context) error {
		got, gotErr = MakeAllConfigs(c)
		return nil
	}

	if err := app.Run(append([]string{"mpssbench"}, args...)); err != nil {
		t.Fatalf("app.Run failed: %v", err)
	}
	return got, gotErr
}

// TestMakeAllConfigs_flagOverrides verifies that the command-line flags
// override the corresponding fields of the aggregated Config.
//
// Each sub-test feeds custom CLI arguments into a synthetic app, invokes
// MakeAllConfigs, and checks the bits of the resulting struct that should
// have changed.
func TestMakeAllConfigs_flagOverrides(t *testing.T) {

	workDir := GuessWorkDir()

	tests := []struct {
		name  string                         // descriptive name for the scenario
		group []cli.Flag                     // command flags registered next to the common ones
		args  []string                       // CLI arguments to feed into MakeAllConfigs
		want  func(t *testing.T, cfg Config) // assertion helper examining the final config
	}{
		{
			name:  "defaults",
			group: flags.GenerateFlags(),
			want: func(t *testing.T, cfg Config) {
				if !reflect.DeepEqual(cfg.Generate.Degrees, []int{1, 3, 8, 13, 18, 23, 28, 33}) {
					t.Fatalf("Degrees = %v, want the default sweep", cfg.Generate.Degrees)
				}
				if cfg.Generate.Port != 8000 {
					t.Fatalf("Port = %d, want 8000", cfg.Generate.Port)
				}
				if cfg.Fleet.SSHKey != "mpss.pem" || cfg.Fleet.SSHUser != "ec2-user" {
					t.Fatalf("ssh = %q/%q, want mpss.pem/ec2-user", cfg.Fleet.SSHKey, cfg.Fleet.SSHUser)
				}
				if cfg.LogDir != "log" {
					t.Fatalf("LogDir = %q, want log", cfg.LogDir)
				}
				if cfg.Logging.Verbosity != 3 || cfg.Logging.Format != "text" {
					t.Fatalf("Logging = %+v, want verbosity 3 text", cfg.Logging)
				}
			},
		},
		{
			name:  "preset",
			group: flags.GenerateFlags(),
			args:  []string{"--preset", "lite"},
			want: func(t *testing.T, cfg Config) {
				if cfg.Generate.Preset != "lite" || !reflect.DeepEqual(cfg.Generate.Degrees, []int{1, 3}) {
					t.Fatalf("Generate = %+v, want lite degrees [1 3]", cfg.Generate)
				}
			},
		},
		{
			name:  "degrees override the preset",
			group: flags.GenerateFlags(),
			args:  []string{"--preset", "full", "--degrees", "2, 5", "--port", "9000", "--outdir", "out"},
			want: func(t *testing.T, cfg Config) {
				if !reflect.DeepEqual(cfg.Generate.Degrees, []int{2, 5}) {
					t.Fatalf("Degrees = %v, want [2 5]", cfg.Generate.Degrees)
				}
				if cfg.Generate.Port != 9000 {
					t.Fatalf("Port = %d, want 9000", cfg.Generate.Port)
				}
				// relative paths resolve against the working directory
				if cfg.Generate.OutDir != filepath.Join(workDir, "out") {
					t.Fatalf("OutDir = %q, want %q", cfg.Generate.OutDir, filepath.Join(workDir, "out"))
				}
			},
		},
		{
			name:  "fleet",
			group: flags.FleetFlags(),
			args: []string{
				"--topology", "scripts/config-deg1.toml",
				"--ssh.user", "ubuntu",
				"--ssh.option", "ConnectTimeout=10", "--ssh.option", "BatchMode=yes",
				"--parallel", "4",
				"--stop.cmd", "docker rm -f primary",
				"--logdir", "/var/mpss/log",
			},
			want: func(t *testing.T, cfg Config) {
				if cfg.Fleet.Topology != filepath.Join(workDir, "scripts/config-deg1.toml") {
					t.Fatalf("Topology = %q", cfg.Fleet.Topology)
				}
				if cfg.Fleet.SSHUser != "ubuntu" {
					t.Fatalf("SSHUser = %q, want ubuntu", cfg.Fleet.SSHUser)
				}
				if !reflect.DeepEqual(cfg.Fleet.SSHOptions, []string{"ConnectTimeout=10", "BatchMode=yes"}) {
					t.Fatalf("SSHOptions = %#v", cfg.Fleet.SSHOptions)
				}
				if cfg.Fleet.Parallelism != 4 {
					t.Fatalf("Parallelism = %d, want 4", cfg.Fleet.Parallelism)
				}
				if cfg.Fleet.StopCommand != "docker rm -f primary" {
					t.Fatalf("StopCommand = %q", cfg.Fleet.StopCommand)
				}
				if cfg.LogDir != "/var/mpss/log" {
					t.Fatalf("LogDir = %q, want /var/mpss/log", cfg.LogDir)
				}
			},
		},
		{
			name:  "aggregate and logging",
			group: flags.AggregateFlags(),
			args:  []string{"--plot.size", "6.5", "--benchmark.file", "0-benchmark.log", "--log.format", "json", "--log.verbosity", "5"},
			want: func(t *testing.T, cfg Config) {
				if cfg.Aggregate.PlotSize != 6.5 {
					t.Fatalf("PlotSize = %v, want 6.5", cfg.Aggregate.PlotSize)
				}
				if cfg.Aggregate.BenchmarkFile != "0-benchmark.log" {
					t.Fatalf("BenchmarkFile = %q", cfg.Aggregate.BenchmarkFile)
				}
				if cfg.Logging.Format != "json" || cfg.Logging.Verbosity != 5 {
					t.Fatalf("Logging = %+v, want json verbosity 5", cfg.Logging)
				}
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg, err := runConfigFromArgs(t, test.group, test.args) // build config using the test helper
			if err != nil {
				t.Fatalf("MakeAllConfigs: %v", err)
			}
			test.want(t, cfg)               // apply the scenario-specific assertions
			t.Logf("args = %#v", test.args) //	NOTE: this will only be printed if the test fails
		})
	}
}

func TestMakeAllConfigs_configFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mpss.toml")
	content := `
logdir = "/data/runs"

[generate]
degrees = [4, 9]
port = 9000

[fleet]
ssh_user = "admin"
parallel = 8

[logging]
verbosity = 1
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	group := append(flags.GenerateFlags(), flags.FleetFlags()...)
	cfg, err := runConfigFromArgs(t, group, []string{"--config", path, "--port", "9100"})
	if err != nil {
		t.Fatalf("MakeAllConfigs: %v", err)
	}

	if !reflect.DeepEqual(cfg.Generate.Degrees, []int{4, 9}) {
		t.Fatalf("Degrees = %v, want [4 9] from the file", cfg.Generate.Degrees)
	}
	if cfg.Generate.Port != 9100 {
		t.Fatalf("Port = %d, flag should win over the file", cfg.Generate.Port)
	}
	if cfg.Fleet.SSHUser != "admin" || cfg.Fleet.Parallelism != 8 {
		t.Fatalf("Fleet = %+v, want admin/8 from the file", cfg.Fleet)
	}
	if cfg.Fleet.SSHKey != "mpss.pem" {
		t.Fatalf("SSHKey = %q, unset keys keep their default", cfg.Fleet.SSHKey)
	}
	if cfg.LogDir != "/data/runs" || cfg.Logging.Verbosity != 1 {
		t.Fatalf("LogDir/Verbosity = %q/%d", cfg.LogDir, cfg.Logging.Verbosity)
	}

	// an explicit preset replaces the file's degrees
	cfg, err = runConfigFromArgs(t, group, []string{"--config", path, "--preset", "lite"})
	if err != nil {
		t.Fatalf("MakeAllConfigs: %v", err)
	}
	if !reflect.DeepEqual(cfg.Generate.Degrees, []int{1, 3}) {
		t.Fatalf("Degrees = %v, want lite [1 3]", cfg.Generate.Degrees)
	}
}

func TestMakeAllConfigs_envVars(t *testing.T) {
	t.Setenv("MPSS_SSH_USER", "envuser")

	cfg, err := runConfigFromArgs(t, flags.FleetFlags(), nil)
	if err != nil {
		t.Fatalf("MakeAllConfigs: %v", err)
	}
	if cfg.Fleet.SSHUser != "envuser" {
		t.Fatalf("SSHUser = %q, want envuser from MPSS_SSH_USER", cfg.Fleet.SSHUser)
	}

	cfg, err = runConfigFromArgs(t, flags.FleetFlags(), []string{"--ssh.user", "flaguser"})
	if err != nil {
		t.Fatalf("MakeAllConfigs: %v", err)
	}
	if cfg.Fleet.SSHUser != "flaguser" {
		t.Fatalf("SSHUser = %q, the flag should win over the environment", cfg.Fleet.SSHUser)
	}
}

func TestMakeAllConfigs_errors(t *testing.T) {
	unknown := filepath.Join(t.TempDir(), "unknown.toml")
	if err := os.WriteFile(unknown, []byte("[fleet]\nssh_usr = \"typo\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown preset", []string{"--preset", "archive"}, "unknown preset"},
		{"bad degree", []string{"--degrees", "1,x"}, "invalid degree"},
		{"empty degrees", []string{"--degrees", " , "}, "no degrees"},
		{"unknown config key", []string{"--config", unknown}, "fleet.ssh_usr"},
		{"missing config file", []string{"--config", filepath.Join(t.TempDir(), "nope.toml")}, "failed to load config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runConfigFromArgs(t, flags.GenerateFlags(), tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestEnvFileFromArgs(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"mpssbench", "ready"}, ".env"},
		{[]string{"mpssbench", "--envfile", "fleet.env", "ready"}, "fleet.env"},
		{[]string{"mpssbench", "-envfile=ci.env", "start"}, "ci.env"},
		{[]string{"mpssbench", "start", "envfile"}, ".env"},
	}
	for _, tt := range tests {
		if got := envFileFromArgs(tt.args); got != tt.want {
			t.Fatalf("envFileFromArgs(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}
