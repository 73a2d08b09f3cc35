// Package docker drives the compose stack the sites run behind. It is the
// "apply and reload" collaborator of the provisioning core: the core hands
// it nothing but restart and bring-up requests.
package docker

import (
	"fmt"

	"github.com/xedro98/glacier/internal/compose"
	"github.com/xedro98/glacier/internal/executor"
)

// Compose wraps docker compose invocations against one stack file.
type Compose struct {
	file string
	exec executor.CommandExecutor
}

// New creates a Compose runner for the stack under baseDir.
func New(baseDir string) *Compose {
	return &Compose{
		file: compose.Path(baseDir),
		exec: executor.NewSystemExecutor(),
	}
}

// NewWithExecutor creates a Compose runner with a custom executor (for testing).
func NewWithExecutor(baseDir string, exec executor.CommandExecutor) *Compose {
	return &Compose{
		file: compose.Path(baseDir),
		exec: exec,
	}
}

// Up brings the whole stack up, building images as needed.
func (c *Compose) Up() error {
	return c.run("up", "-d", "--build")
}

// Build rebuilds one service's image.
func (c *Compose) Build(service string) error {
	return c.run("build", service)
}

// Recreate restarts one service with a freshly built image.
func (c *Compose) Recreate(service string) error {
	return c.run("up", "-d", "--no-deps", service)
}

// Restart restarts one service in place.
func (c *Compose) Restart(service string) error {
	return c.run("restart", service)
}

// ReloadProxy restarts the nginx container so newly written site configs
// take effect.
func (c *Compose) ReloadProxy() error {
	return c.Restart("nginx")
}

func (c *Compose) run(args ...string) error {
	full := append([]string{"compose", "-f", c.file}, args...)
	output, err := c.exec.Execute("docker", full...)
	if err != nil {
		return fmt.Errorf("docker compose %s failed: %s", args[0], string(output))
	}
	return nil
}
