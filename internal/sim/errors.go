package sim

import "errors"

// Sentinel errors returned by the simulation. Callers match them with errors.Is.
var (
	ErrInvalidSpawnTable = errors.New("sim: invalid spawn table")
	ErrDuplicateID       = errors.New("sim: duplicate entity id")
	ErrInvalidTransition = errors.New("sim: invalid transition")
	ErrUnknownCategory   = errors.New("sim: unknown category")
	ErrUnknownMotion     = errors.New("sim: unknown motion")
	ErrUnknownOrigin     = errors.New("sim: unknown spawn origin")
	ErrUnknownPreset     = errors.New("sim: unknown difficulty preset")
)
