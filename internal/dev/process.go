package dev

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"

	"github.com/creack/pty"
)

// runFrontend runs the configured frontend dev command for the lifetime of
// ctx, relaying its output line by line with an [F] prefix. The command
// runs under a pty so tools that detect a terminal keep their colored
// output.
func (o *Orchestrator) runFrontend(ctx context.Context) error {
	o.reporter.Infof("starting frontend: %s", o.cfg.Dev.FrontendCmd)

	cmd := exec.Command("sh", "-c", o.cfg.Dev.FrontendCmd)
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("failed to start frontend command: %w", err)
	}

	go func() {
		<-ctx.Done()
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
		ptmx.Close()
	}()

	scanner := bufio.NewScanner(ptmx)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fmt.Printf("\x1b[35m[F]\x1b[0m %s\n", scanner.Text())
	}

	err = cmd.Wait()
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("frontend command exited: %w", err)
	}
	return nil
}
