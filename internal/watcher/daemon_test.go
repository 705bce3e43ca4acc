//go:build unix

package watcher

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestIsDaemonRunning_NoPIDFile(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "watch.pid")

	running, err := IsDaemonRunning(pidFile)
	if err != nil {
		t.Fatalf("IsDaemonRunning: %v", err)
	}
	if running {
		t.Fatal("IsDaemonRunning = true, want false for missing PID file")
	}
}

func TestIsDaemonRunning_CurrentProcess(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "watch.pid")
	if err := os.WriteFile(pidFile, []byte(strconv.Itoa(os.Getpid())+"\n"), 0644); err != nil {
		t.Fatalf("write PID file: %v", err)
	}

	running, err := IsDaemonRunning(pidFile)
	if err != nil {
		t.Fatalf("IsDaemonRunning: %v", err)
	}
	if !running {
		t.Fatal("IsDaemonRunning = false, want true for the current process")
	}
}

func TestIsDaemonRunning_DeadProcessRemovesStalePIDFile(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "watch.pid")
	// A PID far above any plausible live process.
	if err := os.WriteFile(pidFile, []byte("999999\n"), 0644); err != nil {
		t.Fatalf("write PID file: %v", err)
	}

	running, err := IsDaemonRunning(pidFile)
	if err != nil {
		t.Fatalf("IsDaemonRunning: %v", err)
	}
	if running {
		t.Fatal("IsDaemonRunning = true, want false for dead process")
	}
	if _, err := os.Stat(pidFile); !os.IsNotExist(err) {
		t.Fatal("stale PID file was not removed")
	}
}

func TestIsDaemonRunning_InvalidPIDFile(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "watch.pid")
	if err := os.WriteFile(pidFile, []byte("not-a-number\n"), 0644); err != nil {
		t.Fatalf("write PID file: %v", err)
	}

	running, err := IsDaemonRunning(pidFile)
	if err != nil {
		t.Fatalf("IsDaemonRunning: %v", err)
	}
	if running {
		t.Fatal("IsDaemonRunning = true, want false for invalid PID file")
	}
}

func TestStopDaemon_NotRunning(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "watch.pid")
	if err := StopDaemon(pidFile); err == nil {
		t.Fatal("StopDaemon expected error for missing PID file, got nil")
	}
}

func TestStopDaemon_InvalidPIDFile(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "watch.pid")
	if err := os.WriteFile(pidFile, []byte("garbage\n"), 0644); err != nil {
		t.Fatalf("write PID file: %v", err)
	}
	if err := StopDaemon(pidFile); err == nil {
		t.Fatal("StopDaemon expected error for invalid PID file, got nil")
	}
}

func TestStartDaemon_AlreadyRunning(t *testing.T) {
	dir := t.TempDir()
	pidFile := filepath.Join(dir, "watch.pid")
	logFile := filepath.Join(dir, "watch.log")

	// Current process PID simulates a live daemon.
	if err := os.WriteFile(pidFile, []byte(strconv.Itoa(os.Getpid())+"\n"), 0644); err != nil {
		t.Fatalf("write PID file: %v", err)
	}

	err := StartDaemon(pidFile, logFile, []string{"watch", "--daemon-child"})
	if err == nil {
		t.Fatal("StartDaemon expected error when daemon already running, got nil")
	}
}

func TestStartDaemon_UnwritableLogFile(t *testing.T) {
	dir := t.TempDir()
	pidFile := filepath.Join(dir, "watch.pid")
	logFile := filepath.Join(dir, "missing-subdir", "watch.log")

	err := StartDaemon(pidFile, logFile, []string{"watch", "--daemon-child"})
	if err == nil {
		t.Fatal("StartDaemon expected error for unwritable log file, got nil")
	}
}

func TestRemovePIDFile_Missing(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "watch.pid")
	if err := RemovePIDFile(pidFile); err != nil {
		t.Fatalf("RemovePIDFile on missing file: %v", err)
	}
}
