package buttons

import "errors"

// Sentinel errors surfaced by the component model and the host shim. They are
// always wrapped with context at the raise site; callers discriminate with
// errors.Is.
var (
	// ErrInvalidComponentType is returned when a component kind cannot be
	// resolved from a string name, numeric code, or typed value.
	ErrInvalidComponentType = errors.New("invalid component type")

	// ErrInvalidHostVersion is returned by Attach when the installed
	// discordgo release is outside the supported range.
	ErrInvalidHostVersion = errors.New("unsupported host library version")

	// ErrInvalidHostHandle is returned by Attach when no usable session
	// handle is provided.
	ErrInvalidHostHandle = errors.New("invalid host session handle")

	// ErrAcknowledgementConflict is returned when an interaction whose token
	// is already consumed is acknowledged a second time.
	ErrAcknowledgementConflict = errors.New("interaction already acknowledged")

	// ErrStyleConstraint is returned when a component violates a platform
	// composition rule, e.g. a LINK button carrying a custom_id or an action
	// row mixing buttons with a select menu.
	ErrStyleConstraint = errors.New("component style constraint violated")
)
