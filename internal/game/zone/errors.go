package zone

import "errors"

var (
	// ErrInvalidModel wraps every zone model validation failure.
	ErrInvalidModel = errors.New("invalid zone model")
	// ErrDegenerateShape is returned by shape constructors for data that
	// would produce an always-false or always-true containment test.
	ErrDegenerateShape = errors.New("degenerate zone shape")
	// ErrDuplicateZone is returned by Manager.Load for repeated zone IDs.
	ErrDuplicateZone = errors.New("duplicate zone id")
)
