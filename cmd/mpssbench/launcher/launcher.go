package launcher

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-mpss-bench/flags"
)

// ErrNotReady is returned by the ready command while the primary is still
// running. The caller turns it into exit status 1 without printing an error.
var ErrNotReady = errors.New("primary still running")

// Launch loads the dotenv file, then parses args and runs the selected
// command.
func Launch(args []string) error {
	if err := loadEnvFile(envFileFromArgs(args)); err != nil {
		return err
	}
	return newApp().Run(args)
}

func newApp() *cli.App {
	app := flags.NewApp()
	app.Commands = commands()
	return app
}

// loadEnvFile exports the variables of path so EnvVar-backed flags see them.
// Variables already present in the environment win. A missing file is fine.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			return nil
		}
		return errors.Wrapf(err, "load env file %s", path)
	}
	return nil
}

// envFileFromArgs finds --envfile before flag parsing, which has to happen
// after the environment is populated.
func envFileFromArgs(args []string) string {
	path := ".env"
	for i := 1; i < len(args); i++ {
		arg := strings.TrimLeft(args[i], "-")
		if arg == args[i] {
			continue
		}
		switch {
		case strings.HasPrefix(arg, "envfile="):
			path = strings.TrimPrefix(arg, "envfile=")
		case arg == "envfile" && i+1 < len(args):
			path = args[i+1]
			i++
		}
	}
	return path
}
