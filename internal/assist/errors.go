package assist

import (
	"errors"
	"fmt"

	"github.com/dshills/logsweep/internal/credential"
)

var (
	// ErrMissingCredential means no API key was configured or supplied.
	ErrMissingCredential = credential.ErrMissing

	// ErrRemoteCall means the model request failed or returned an unusable response.
	ErrRemoteCall = errors.New("remote call failed")
)

// Op names a model-backed operation.
type Op string

const (
	OpSmartRemove  Op = "smart remove"
	OpAnalyzeLogs  Op = "analyze logs"
	OpGenerateLogs Op = "generate logs"
	OpCodeQuality  Op = "analyze code quality"
)

// OpError records which operation failed.
type OpError struct {
	Op  Op
	Err error
}

func (e *OpError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *OpError) Unwrap() error { return e.Err }

// wrap classifies err as a credential or remote failure of op.
func wrap(op Op, err error) error {
	var oe *OpError
	if errors.As(err, &oe) {
		return err
	}
	if errors.Is(err, ErrMissingCredential) || errors.Is(err, ErrRemoteCall) {
		return &OpError{Op: op, Err: err}
	}
	return &OpError{Op: op, Err: fmt.Errorf("%w: %w", ErrRemoteCall, err)}
}
