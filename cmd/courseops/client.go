package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"time"

	"courseops/internal/api"
	"courseops/internal/config"
	"courseops/internal/github"
	"courseops/internal/tracker"
)

const (
	serverStartTimeout = 3 * time.Second
	serverPollInterval = 100 * time.Millisecond
)

// withTracker runs fn against the configured backend: the GitHub REST
// API when backend=github, otherwise the local server (started on
// demand). tokenFlag, when set, overrides the configured token.
func withTracker(cfg *config.Config, tokenFlag string, fn func(tracker.Tracker) error) error {
	if cfg.Backend == config.BackendGitHub {
		token := tokenFlag
		if token == "" {
			token = cfg.Token
		}
		client, err := github.NewClient("", cfg.Repo, token)
		if err != nil {
			return err
		}
		return fn(client)
	}

	return withClient(cfg, func(client *api.Client) error {
		return fn(api.NewRemote(client))
	})
}

// requireLocalBackend guards commands that only make sense against the
// local server, such as contributor upkeep and token administration.
func requireLocalBackend(cfg *config.Config, command string) error {
	if cfg.Backend == config.BackendGitHub {
		return fmt.Errorf("%s manages the local server and is not available with backend=github", command)
	}
	return nil
}

func withClient(cfg *config.Config, fn func(*api.Client) error) error {
	cleanup, err := ensureServer(cfg)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	client := api.NewClient(cfg.APIURL)
	return fn(client)
}

func ensureServer(cfg *config.Config) (func(), error) {
	client := api.NewClient(cfg.APIURL)
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	if err := client.Ping(ctx); err == nil {
		return nil, nil
	}

	cmd, err := startServerProcess(cfg)
	if err != nil {
		return nil, err
	}

	if err := waitForServer(client, serverStartTimeout); err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, err
	}

	cleanup := func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}

	return cleanup, nil
}

func startServerProcess(cfg *config.Config) (*exec.Cmd, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(exe, "srv")
	cmd.Env = append(os.Environ(),
		"COURSEOPS_DB="+cfg.DBPath,
		"COURSEOPS_API_URL="+cfg.APIURL,
	)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd, nil
}

func waitForServer(client *api.Client, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		err := client.Ping(ctx)
		cancel()
		if err == nil {
			return nil
		}
		if !isConnRefused(err) {
			// If port is in use but API is not ours, surface the error.
			return err
		}
		time.Sleep(serverPollInterval)
	}
	return errors.New("server did not start in time")
}

func isConnRefused(err error) bool {
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return true
	}
	return false
}
