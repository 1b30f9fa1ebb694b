package padapi

import "errors"

// Error taxonomy shared across packages. Errors are propagated as values
// and wrapped with context using fmt.Errorf and %w.
var (
	// ErrInvalidParameter indicates an out-of-range axis index, button
	// number, deadzone, saturation, range, scancode or force magnitude.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidMapper indicates an element mapper set that cannot form a
	// valid virtual controller layout.
	ErrInvalidMapper = errors.New("invalid mapper")

	// ErrInvalidMapperSyntax indicates a malformed mapper definition string.
	ErrInvalidMapperSyntax = errors.New("invalid mapper syntax")

	// ErrUnknownMapper indicates a mapper lookup by name that failed.
	ErrUnknownMapper = errors.New("unknown mapper")

	// ErrInvalidCoordinates indicates direction-vector construction with
	// inconsistent, zero or out-of-bounds values.
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrDeviceNotConnected indicates the physical controller is absent.
	ErrDeviceNotConnected = errors.New("device not connected")

	// ErrDeviceError indicates a transient polling failure, retried on the
	// next poll.
	ErrDeviceError = errors.New("device error")

	// ErrNotAcquired indicates an operation that requires the device to be
	// acquired while it is not.
	ErrNotAcquired = errors.New("device not acquired")

	// ErrUnsupported indicates a requested operation the controller layout
	// does not implement, such as force feedback without actuators.
	ErrUnsupported = errors.New("unsupported operation")
)
