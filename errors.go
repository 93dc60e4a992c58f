package stomp

import "errors"

// Frame codec errors. These form the closed set of failure reasons Parse
// and NewFrame can return; callers match against them with errors.Is.
var (
	// ErrEmptyInput occurs when Parse is given a zero-length byte slice.
	ErrEmptyInput = errors.New("stomp: empty input")

	// ErrUnterminatedFrame occurs when no NUL terminator is found.
	ErrUnterminatedFrame = errors.New("stomp: frame missing NUL terminator")

	// ErrInvalidCommand occurs when the command line is not one of the
	// closed set of STOMP 1.2 commands.
	ErrInvalidCommand = errors.New("stomp: invalid command")

	// ErrNoHeader occurs when a header line has no colon separator.
	ErrNoHeader = errors.New("stomp: malformed header line")

	// ErrEmptyHeaderKey occurs when a header line's key is empty.
	ErrEmptyHeaderKey = errors.New("stomp: empty header key")

	// ErrInvalidHeaderValue occurs when a header value contains an
	// unrecognized or incomplete escape sequence.
	ErrInvalidHeaderValue = errors.New("stomp: invalid header value escape")

	// ErrMissingRequiredHeader occurs when a frame is missing a header
	// mandatory for its command.
	ErrMissingRequiredHeader = errors.New("stomp: missing required header")

	// ErrContentLengthMismatch occurs when a frame declares a
	// content-length that does not match its actual body length.
	ErrContentLengthMismatch = errors.New("stomp: content-length mismatch")

	// ErrJunkAfterBody occurs when bytes other than EOL heartbeat padding
	// follow the frame's NUL terminator.
	ErrJunkAfterBody = errors.New("stomp: unexpected data after frame body")

	// ErrDuplicateSubscription is not returned by any code path: Client
	// gives every Subscribe call a fresh id, even for a destination it is
	// already subscribed to.
	ErrDuplicateSubscription = errors.New("stomp: duplicate subscription")

	// ErrFrame occurs when Parse finds the command line or a header line
	// not terminated by LF before the NUL.
	ErrFrame = errors.New("stomp: invalid frame")
)
