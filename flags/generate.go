package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// GenerateFlags select which topology documents the generate command writes.

func GenerateFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "preset",
			Usage: "Generation preset (default|lite|full)",
			Value: "default",
		},
		cli.StringFlag{
			Name:  "degrees",
			Usage: "Comma-separated committee degrees, overrides the preset (committee size is 3d+1)",
		},
		cli.IntFlag{
			Name:  "port",
			Usage: "Port shared by every committee member",
			Value: 8000,
		},
		cli.StringFlag{
			Name:  "addrlist",
			Usage: "Address pool file, one endpoint per line, first line is the primary",
			Value: "./metadata/addr_list",
		},
		cli.StringFlag{
			Name:  "outdir",
			Usage: "Directory receiving the config-deg<d>.toml documents",
			Value: "scripts",
		},
	}
}
