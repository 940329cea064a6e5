package game

import "errors"

var (
	ErrGameNotFound = errors.New("game not found")
	ErrNotHost      = errors.New("not host")
	ErrInvalidState = errors.New("invalid status for action")
)
