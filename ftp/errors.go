package ftp

import "fmt"

// Error represents a terminal outcome of an FTP operation that isn't a
// plain success. It implements the error interface so operations can be
// driven through ordinary Go error handling in the blocking wrappers
// (see future.go) while the callback-based core keeps using Result
// directly.
type Error struct {
	// Result is the client result this error carries.
	Result Result

	// Message is a human-readable detail (e.g. the path or opcode
	// involved). May be empty.
	Message string

	// Opcode is the request opcode active when the error occurred, or
	// OpNone if not applicable.
	Opcode Opcode
}

func (e *Error) Error() string {
	if e.Opcode != OpNone {
		return fmt.Sprintf("mavlink ftp: %s: %s (opcode: %s)", e.Result, e.Message, e.Opcode)
	}
	if e.Message != "" {
		return fmt.Sprintf("mavlink ftp: %s: %s", e.Result, e.Message)
	}
	return fmt.Sprintf("mavlink ftp: %s", e.Result)
}

// NewError creates an Error carrying the given result and message.
func NewError(result Result, message string) *Error {
	return &Error{Result: result, Message: message, Opcode: OpNone}
}

// NewOpcodeError creates an Error that also records which request opcode
// was active when the failure occurred, useful for ProtocolError cases.
func NewOpcodeError(result Result, message string, opcode Opcode) *Error {
	return &Error{Result: result, Message: message, Opcode: opcode}
}

// IsTimeout reports whether err is an *Error carrying ResultTimeout.
func IsTimeout(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Result == ResultTimeout
}

// IsBusy reports whether err is an *Error carrying ResultBusy.
func IsBusy(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Result == ResultBusy
}

// ResultOf extracts the Result carried by err, or ResultUnknown if err
// is not an *Error.
func ResultOf(err error) Result {
	if err == nil {
		return ResultSuccess
	}
	if e, ok := err.(*Error); ok {
		return e.Result
	}
	return ResultUnknown
}
