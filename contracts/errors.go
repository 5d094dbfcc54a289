package contracts

import "errors"

// Error kinds returned by the contracts. Each one names the precondition that
// failed; callers can match them with errors.Is.
var (
	ErrNotOwner                  = errors.New("caller is not the registry owner")
	ErrNotAuthorizedManufacturer = errors.New("caller is not an authorized manufacturer")
	ErrProductNotFound           = errors.New("product not found")
	ErrNotCurrentHolder          = errors.New("caller is not the current holder")
	ErrInvalidTransfer           = errors.New("transfer recipient must not be empty")
	ErrAlreadyInitialized        = errors.New("registry already initialized")
	ErrNotInitialized            = errors.New("registry not initialized")
)
