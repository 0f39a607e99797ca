package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dungeon/internal/observe"
	"github.com/vovakirdan/tui-dungeon/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMetricsAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dungeon SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection plays its own dungeon. Saves are kept per SSH user
name; the run history is shared by everyone on the server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.dungeon/host_key

Examples:
  dungeon serve                           # Listen on :23234 with auto-generated key
  dungeon serve --ssh :2222               # Listen on port 2222
  dungeon serve --host-key ./my_host_key  # Use specific host key
  dungeon serve --db ./dungeon.db         # Use specific database
  dungeon serve --metrics :9464           # Expose Prometheus metrics at /metrics

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Prometheus /metrics address (disabled if empty)")
}

func runServe(_ *cobra.Command, _ []string) error {
	game, err := loadConfig()
	if err != nil {
		return err
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Game:        game,
	}

	if flagMetricsAddr != "" {
		stop, err := startMetrics(flagMetricsAddr)
		if err != nil {
			return err
		}
		defer stop()
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting dungeon SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}

// startMetrics installs the Prometheus-backed meter provider and serves it
// in the background. The returned func stops the endpoint.
func startMetrics(addr string) (func(), error) {
	provider, err := observe.InitProvider(context.Background(), observe.ProviderConfig{ServiceName: "dungeon-ssh"})
	if err != nil {
		return nil, fmt.Errorf("cannot start metrics: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := provider.Serve(ctx, addr); err != nil {
			fmt.Fprintf(os.Stderr, "metrics endpoint stopped: %v\n", err)
		}
	}()
	fmt.Printf("Serving metrics on %s/metrics\n", addr)

	return func() {
		cancel()
		<-done
		//nolint:errcheck // Best-effort flush on exit
		provider.Shutdown(context.Background())
	}, nil
}
