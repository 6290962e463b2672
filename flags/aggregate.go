package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// AggregateFlags configure result aggregation and plotting.

func AggregateFlags() []cli.Flag {
	return []cli.Flag{
		LogDirFlag,
		cli.StringFlag{
			Name:  "plot.dir",
			Usage: "Directory receiving the .dat tables and .png plots",
			Value: ".",
		},
		cli.StringFlag{
			Name:  "benchmark.file",
			Usage: "Summary file read from every run directory",
			Value: "1-benchmark.log",
		},
		cli.Float64Flag{
			Name:  "plot.size",
			Usage: "Width and height of each plot in inches",
			Value: 4,
		},
	}
}

// SummarizeFlags configure turning raw epoch samples into a summary record.

func SummarizeFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "samples",
			Usage: "JSON-lines file with one {latency, onChain, offChain} sample per epoch",
		},
		cli.IntFlag{
			Name:  "degree",
			Usage: "Committee degree of the run (committee size is 3d+1)",
		},
		cli.StringFlag{
			Name:  "node",
			Usage: "Node name used in the summary file name",
			Value: "1",
		},
		LogDirFlag,
	}
}
