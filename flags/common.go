package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// CommonFlags returns the base set of CLI flags shared across commands.

func CommonFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "TOML configuration file; command-line flags override its values",
		},
		cli.StringFlag{
			Name:  "envfile",
			Usage: "Dotenv file loaded before flags are parsed (missing file is ignored)",
			Value: ".env",
		},
		cli.StringFlag{
			Name:  "log.format",
			Usage: "Log output format (text|json)",
			Value: "text",
		},
		cli.IntFlag{
			Name:  "log.verbosity",
			Usage: "Logging verbosity (0=fatal,1=error,2=warn,3=info,4=debug,5=trace)",
			Value: 3,
		},
		cli.BoolFlag{
			Name:  "log.color",
			Usage: "Enable colored log output",
		},
		cli.StringFlag{
			Name:   "sentry.dsn",
			Usage:  "Report error-level log entries to this Sentry DSN",
			EnvVar: "MPSS_SENTRY_DSN",
		},
	}
}
