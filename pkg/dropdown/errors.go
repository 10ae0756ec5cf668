package dropdown

import "errors"

var (
	// ErrDuplicateKey is returned when an option catalog repeats a key
	ErrDuplicateKey = errors.New("duplicate option key")

	// ErrInvalidViewport is returned for non-positive item extents or capacities
	ErrInvalidViewport = errors.New("invalid viewport")

	// ErrInvalidTransition marks an operation that the current state ignores,
	// such as a query change while closed or any event on a disabled widget.
	// Controller methods report these by returning false; hosts that answer
	// remote clients wrap this error.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrUnknownKey is returned when a host selects a key that is not in the catalog
	ErrUnknownKey = errors.New("unknown option key")
)
