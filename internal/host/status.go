package host

import (
	"log/slog"
)

// InstallationStatus is a one-way progress signal sent to the editor while a
// language server is being provisioned.
type InstallationStatus int

const (
	StatusNone InstallationStatus = iota
	StatusCheckingForUpdate
	StatusDownloading
)

// String returns the status name.
func (s InstallationStatus) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusCheckingForUpdate:
		return "checking-for-update"
	case StatusDownloading:
		return "downloading"
	default:
		return "unknown"
	}
}

// StatusReporter receives installation status signals. Implementations must
// not block.
type StatusReporter interface {
	SetInstallationStatus(serverID string, status InstallationStatus)
}

// LogReporter reports status changes to a structured logger.
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter creates a reporter that logs at info level. A nil logger
// discards the signals.
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LogReporter{logger: logger}
}

// SetInstallationStatus implements StatusReporter.
func (r *LogReporter) SetInstallationStatus(serverID string, status InstallationStatus) {
	r.logger.Info("language server installation status", "server", serverID, "status", status.String())
}

// NopReporter discards status signals.
type NopReporter struct{}

// SetInstallationStatus implements StatusReporter.
func (NopReporter) SetInstallationStatus(string, InstallationStatus) {}
