package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gzhole/veto/internal/config"
	"github.com/gzhole/veto/internal/daemon"
	"github.com/gzhole/veto/internal/logger"
	"github.com/gzhole/veto/internal/shim"
)

// daemonBackgroundEnvVar marks the re-exec'd child in "daemon start
// --background", distinguishing it from a plain foreground invocation.
const daemonBackgroundEnvVar = "VETO_DAEMON_CHILD"

var (
	daemonPort       int
	daemonBackground bool
	daemonShimBin    string
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "start or stop the session permission daemon",
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "start the permission daemon and materialise a session shim directory",
	Long: `start binds the daemon to 127.0.0.1, generates a session shim directory
shadowing every managed command, and prints the shell exports a caller
needs (VETO_PORT, VETO_SHIM_DIR, VETO_ACTIVE, and a PATH prefix) to route
that session's commands through it: eval "$(veto daemon start)".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv(daemonBackgroundEnvVar) == "1" {
			return runDaemonForeground(cmd)
		}
		if daemonBackground {
			return startDaemonBackground(cmd)
		}
		return runDaemonForeground(cmd)
	},
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "stop a daemon started with --background",
	RunE: func(cmd *cobra.Command, args []string) error {
		pidPath := filepath.Join(cfg.ConfigDir, "daemon.pid")
		pidBytes, err := os.ReadFile(pidPath)
		if err != nil {
			if os.IsNotExist(err) {
				return validationErrorf("daemon stop: no background daemon is recorded at %s", pidPath)
			}
			return fmt.Errorf("daemon stop: read pidfile: %w", err)
		}
		pid, err := strconv.Atoi(string(pidBytes))
		if err != nil {
			return validationErrorf("daemon stop: pidfile %s does not contain a pid: %w", pidPath, err)
		}

		proc, err := os.FindProcess(pid)
		if err != nil {
			return fmt.Errorf("daemon stop: find process %d: %w", pid, err)
		}
		if err := proc.Signal(syscall.SIGTERM); err != nil {
			return fmt.Errorf("daemon stop: signal %d: %w", pid, err)
		}

		_ = os.Remove(pidPath)
		_ = os.Remove(filepath.Join(cfg.ConfigDir, "daemon.port"))
		_ = shim.Cleanup(sessionShimDir(cfg))
		fmt.Printf("sent SIGTERM to daemon pid %d\n", pid)
		return nil
	},
}

func init() {
	daemonStartCmd.Flags().IntVar(&daemonPort, "port", 0, "fixed port to bind (default: OS-assigned)")
	daemonStartCmd.Flags().BoolVar(&daemonBackground, "background", false, "detach the daemon into the background and record its pid")
	daemonStartCmd.Flags().StringVar(&daemonShimBin, "shim-binary", "veto-shim", "path to the built veto-shim executable")
	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStopCmd)
}

func sessionShimDir(c *config.Config) string {
	return filepath.Join(c.ConfigDir, "shim")
}

// runDaemonForeground is shared by plain "daemon start" and the detached
// child spawned by "daemon start --background": both bind, print env
// exports once listening, then block until the process is signalled.
func runDaemonForeground(cmd *cobra.Command) error {
	policies, err := loadPolicies(cfg.PolicyPath)
	if err != nil {
		return err
	}

	audit, err := logger.New(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}

	shimBin, err := exec.LookPath(daemonShimBin)
	if err != nil {
		return validationErrorf("daemon start: could not resolve shim binary %q: %w", daemonShimBin, err)
	}
	shimDir := sessionShimDir(cfg)
	if err := shim.Generate(shimDir, shimBin); err != nil {
		return fmt.Errorf("daemon start: %w", err)
	}
	defer func() { _ = shim.Cleanup(shimDir) }()

	d := daemon.New(policies, audit)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port, done, err := d.Run(ctx, daemonPort)
	if err != nil {
		return fmt.Errorf("daemon start: %w", err)
	}

	if err := os.WriteFile(filepath.Join(cfg.ConfigDir, "daemon.port"), []byte(strconv.Itoa(port)), 0o600); err != nil {
		return fmt.Errorf("daemon start: record port: %w", err)
	}
	if err := os.WriteFile(filepath.Join(cfg.ConfigDir, "daemon.pid"), []byte(strconv.Itoa(os.Getpid())), 0o600); err != nil {
		return fmt.Errorf("daemon start: record pid: %w", err)
	}

	fmt.Printf("export %s=%d\n", shim.PortEnvVar, port)
	fmt.Printf("export %s=1\n", shim.ActiveEnvVar)
	fmt.Printf("export %s=%s\n", shim.ShimDirEnvVar, shimDir)
	fmt.Printf("export PATH=%s:$PATH\n", shimDir)

	snap := <-done
	fmt.Fprintf(os.Stderr, "veto daemon stopped: %d allowed, %d blocked\n", snap.Allowed, snap.Blocked)
	return nil
}

// startDaemonBackground re-execs the current binary with the same flags
// plus daemonBackgroundEnvVar set, detached into its own session so it
// outlives the parent's terminal, and prints the same exports the
// foreground path would once the child's pid/port files exist.
func startDaemonBackground(cmd *cobra.Command) error {
	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("daemon start --background: resolve self: %w", err)
	}

	logPath := filepath.Join(cfg.ConfigDir, "daemon.log")
	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("daemon start --background: open %s: %w", logPath, err)
	}
	defer func() { _ = logFile.Close() }()

	childArgs := []string{"daemon", "start", "--port", strconv.Itoa(daemonPort), "--shim-binary", daemonShimBin}
	child := exec.Command(self, childArgs...)
	child.Env = append(os.Environ(), daemonBackgroundEnvVar+"=1")
	child.Stdout = logFile
	child.Stderr = logFile
	child.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := child.Start(); err != nil {
		return fmt.Errorf("daemon start --background: spawn child: %w", err)
	}

	portPath := filepath.Join(cfg.ConfigDir, "daemon.port")
	port, err := waitForFile(portPath)
	if err != nil {
		return fmt.Errorf("daemon start --background: child never reported its port: %w", err)
	}

	fmt.Printf("export %s=%s\n", shim.PortEnvVar, port)
	fmt.Printf("export %s=1\n", shim.ActiveEnvVar)
	fmt.Printf("export %s=%s\n", shim.ShimDirEnvVar, sessionShimDir(cfg))
	fmt.Printf("export PATH=%s:$PATH\n", sessionShimDir(cfg))
	fmt.Fprintf(os.Stderr, "veto daemon started in background, pid %d, log %s\n", child.Process.Pid, logPath)
	return nil
}
