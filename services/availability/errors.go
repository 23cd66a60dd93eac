package availability

import "errors"

var (
	ErrNotFound = errors.New("availability not found")
	ErrNotOwner = errors.New("only the owner can modify this availability")
)
