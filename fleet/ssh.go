package fleet

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

const (
	DefaultKeyFile = "mpss.pem"
	DefaultUser    = "ec2-user"
)

// SSHExecutor implements Executor by shelling out to the ssh and scp binaries.
type SSHExecutor struct {
	KeyFile string   // private key passed with -i
	User    string   // remote login
	Options []string // extra -o options, StrictHostKeyChecking=no is always set
}

// NewSSHExecutor returns an executor with the default key and user filled in
// for empty arguments.
func NewSSHExecutor(keyFile, user string) *SSHExecutor {
	if keyFile == "" {
		keyFile = DefaultKeyFile
	}
	if user == "" {
		user = DefaultUser
	}
	return &SSHExecutor{KeyFile: keyFile, User: user}
}

func (e *SSHExecutor) commonArgs() []string {
	args := []string{"-o", "StrictHostKeyChecking=no"}
	for _, opt := range e.Options {
		args = append(args, "-o", opt)
	}
	return append(args, "-i", e.KeyFile)
}

func (e *SSHExecutor) login(host string) string {
	return fmt.Sprintf("%s@%s", e.User, host)
}

func (e *SSHExecutor) sshArgs(host, command string) []string {
	return append(e.commonArgs(), e.login(host), command)
}

func (e *SSHExecutor) scpArgs(host, remotePath, localPath string) []string {
	return append(e.commonArgs(), "-r", fmt.Sprintf("%s:%s", e.login(host), remotePath), localPath)
}

// Run implements Executor.
func (e *SSHExecutor) Run(ctx context.Context, host, command string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "ssh", e.sshArgs(host, command)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stdout.String(), errors.Wrapf(err, "ssh %s %q: %s", host, command, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// Stream implements Executor.
func (e *SSHExecutor) Stream(ctx context.Context, host, command string, out io.Writer) error {
	cmd := exec.CommandContext(ctx, "ssh", e.sshArgs(host, command)...)
	cmd.Stdout = out
	cmd.Stderr = out
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrapf(err, "ssh %s %q", host, command)
	}
	return nil
}

// Copy implements Executor.
func (e *SSHExecutor) Copy(ctx context.Context, host, remotePath, localPath string) error {
	cmd := exec.CommandContext(ctx, "scp", e.scpArgs(host, remotePath, localPath)...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "scp %s:%s: %s", host, remotePath, strings.TrimSpace(string(output)))
	}
	return nil
}
