package cli

import (
	"errors"
	"fmt"

	"github.com/yaklabco/gomarkup/internal/configloader"
)

// Exit codes for gomarkup.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates the command ran but failed, for example on an
	// unreadable file or a refused write.
	ExitFailure = 1

	// ExitUsage indicates invalid flags, arguments or configuration.
	ExitUsage = 2
)

// ErrUsage marks errors caused by how the command was invoked.
var ErrUsage = errors.New("invalid usage")

func usageError(err error) error {
	return fmt.Errorf("%w: %w", ErrUsage, err)
}

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validationErr *configloader.ValidationError
	switch {
	case errors.Is(err, ErrUsage),
		errors.Is(err, configloader.ErrConfigNotFound),
		errors.As(err, &validationErr):
		return ExitUsage
	default:
		return ExitFailure
	}
}
