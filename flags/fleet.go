package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// LogDirFlag is the local log root: fetch copies run logs into it, aggregate
// reads one run per subdirectory and summarize writes its record there.
var LogDirFlag = cli.StringFlag{
	Name:  "logdir",
	Usage: "Local log root, one subdirectory per benchmark run",
	Value: "log",
}

// FleetFlags holds knobs for the commands that drive the remote committee
// (start, stop, follow, ready, fetch).

func FleetFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "topology",
			Usage: "Topology document of the committee to operate on",
		},
		cli.StringFlag{
			Name:   "ssh.key",
			Usage:  "Private key used for ssh and scp",
			Value:  "mpss.pem",
			EnvVar: "MPSS_SSH_KEY",
		},
		cli.StringFlag{
			Name:   "ssh.user",
			Usage:  "Remote user on every host",
			Value:  "ec2-user",
			EnvVar: "MPSS_SSH_USER",
		},
		cli.StringSliceFlag{
			Name:  "ssh.option",
			Usage: "Extra ssh/scp -o option, may be repeated (e.g. ConnectTimeout=10)",
		},
		cli.StringFlag{
			Name:  "remote.dir",
			Usage: "Remote directory holding the start scripts and run logs",
			Value: "/home/ec2-user/scripts",
		},
		cli.StringFlag{
			Name:  "stop.cmd",
			Usage: "Shell command run on every host by stop",
			Value: "docker ps -q | xargs -r docker stop",
		},
		LogDirFlag,
		cli.IntFlag{
			Name:  "parallel",
			Usage: "Number of peers handled concurrently (1 = sequential)",
			Value: 1,
		},
	}
}
