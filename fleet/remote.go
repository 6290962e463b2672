package fleet

import (
	"fmt"
	"path"
)

// Remote process contract. Every fleet host carries a scripts directory with
// the docker start scripts; the primary always runs in a container named
// PrimaryContainer.
const (
	PrimaryContainer   = "primary"
	DefaultRemoteDir   = "/home/ec2-user/scripts"
	DefaultStopCommand = "docker ps -q | xargs -r docker stop"

	startPrimaryScript = "./scripts/start_primary_docker.sh"
	startNodeScript    = "./scripts/start_node_docker.sh"
)

func startPrimaryCommand(configName string) string {
	return fmt.Sprintf("%s -c %s", startPrimaryScript, configName)
}

func startNodeCommand(configName string, id int64) string {
	return fmt.Sprintf("%s -c %s -i %d", startNodeScript, configName, id)
}

func inspectRunningCommand(container string) string {
	return fmt.Sprintf(`docker inspect -f "{{ .State.Running }}" %s`, container)
}

func followLogsCommand(container string) string {
	return fmt.Sprintf("docker logs -f %s", container)
}

// remoteLogDir is where the containers of one topology write their logs.
func remoteLogDir(remoteDir, configName string) string {
	return path.Join(remoteDir, "log-"+configName) + "/"
}
