package domain

import "fmt"

// ConfigError aborts a validator before any rule runs: missing source root,
// missing coverage report, empty convention table or an invalid config file.
type ConfigError struct {
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Msg, e.Err)
	}
	return "configuration error: " + e.Msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError formats a ConfigError without a wrapped cause.
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// ToolchainError carries a ToolchainFailure through an error return.
type ToolchainError struct {
	Failure ToolchainFailure
}

func (e *ToolchainError) Error() string {
	return fmt.Sprintf("%s: %q exited with code %d", e.Failure.Message, e.Failure.Command, e.Failure.ExitCode)
}
