package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSSHExecutor_args(t *testing.T) {
	e := NewSSHExecutor("", "")
	assert.Equal(t, DefaultKeyFile, e.KeyFile)
	assert.Equal(t, DefaultUser, e.User)

	assert.Equal(t, []string{
		"-o", "StrictHostKeyChecking=no", "-i", "mpss.pem",
		"ec2-user@10.0.0.1", "docker logs -f primary",
	}, e.sshArgs("10.0.0.1", followLogsCommand(PrimaryContainer)))

	assert.Equal(t, []string{
		"-o", "StrictHostKeyChecking=no", "-i", "mpss.pem",
		"-r", "ec2-user@10.0.0.2:/home/ec2-user/scripts/log-config-deg1.toml/", "log",
	}, e.scpArgs("10.0.0.2", remoteLogDir(DefaultRemoteDir, "config-deg1.toml"), "log"))
}

func TestSSHExecutor_extraOptions(t *testing.T) {
	e := NewSSHExecutor("/keys/fleet.pem", "ubuntu")
	e.Options = []string{"ConnectTimeout=10"}

	assert.Equal(t, []string{
		"-o", "StrictHostKeyChecking=no", "-o", "ConnectTimeout=10", "-i", "/keys/fleet.pem",
		"ubuntu@h", "uptime",
	}, e.sshArgs("h", "uptime"))
}
