package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/nestlines/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKeyPath string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Stream the animation over SSH",
	Long: `Start an SSH server that shows the animation to every connecting client.

Each session gets its own simulation sized to the client's terminal and
is recorded in the run history with the SSH user name.

Connect with:
  ssh -p 23235 localhost

Examples:
  nestlines serve
  nestlines serve --ssh :2222
  nestlines serve --seed 42 --host-key /path/to/key`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKeyPath, "host-key", "", "Path to host key (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Idle connection timeout")
}

func runServe(cmd *cobra.Command, _ []string) {
	settings, err := loadSettings(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Runtime = settings.Runtime()
	cfg.Palette = settings.Palette
	cfg.DBPath = settings.Storage.Path
	cfg.Logger = newLogger()

	cfg.Address = flagSSHAddr
	if !cmd.Flags().Changed("ssh") && settings.SSH.Address != "" {
		cfg.Address = settings.SSH.Address
	}
	cfg.HostKeyPath = flagHostKeyPath
	if cfg.HostKeyPath == "" {
		cfg.HostKeyPath = settings.SSH.HostKey
	}
	cfg.IdleTimeout = flagIdleTimeout
	if !cmd.Flags().Changed("idle-timeout") && settings.SSH.IdleTimeout > 0 {
		cfg.IdleTimeout = settings.SSH.IdleTimeoutDuration()
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("nestlines SSH server starting on %s\n", server.Addr())
	fmt.Println("Connect with: ssh -p <port> localhost")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
