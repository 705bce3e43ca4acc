//go:build windows

package watcher

import "errors"

var errDaemonUnsupported = errors.New("daemon mode is not supported on windows")

// StartDaemon is not supported on Windows; run the watch command in the
// foreground under a service manager instead.
func StartDaemon(pidFile, logFile string, childArgs []string) error {
	return errDaemonUnsupported
}

// StopDaemon is not supported on Windows.
func StopDaemon(pidFile string) error {
	return errDaemonUnsupported
}

// IsDaemonRunning always reports false on Windows.
func IsDaemonRunning(pidFile string) (bool, error) {
	return false, nil
}

// RemovePIDFile is a no-op on Windows.
func RemovePIDFile(pidFile string) error {
	return nil
}
