package server

import (
	"fmt"
	"strings"
)

// ErrUnknownAccessory defines unknown accessory error.
type ErrUnknownAccessory struct {
	ID string
}

// Error formats output.
func (e *ErrUnknownAccessory) Error() string {
	return fmt.Sprintf("accessory %s is unknown", e.ID)
}

// ErrBadRequest defines generic server error.
type ErrBadRequest struct {
}

// Error formats output.
func (e *ErrBadRequest) Error() string {
	return "bad request"
}

// ErrUnknownPlatform defines configured, but not compiled-in platform error.
type ErrUnknownPlatform struct {
	Name  string
	Known []string
}

// Error formats output.
func (e *ErrUnknownPlatform) Error() string {
	if 0 == len(e.Known) {
		return fmt.Sprintf("platform %s is unknown, no platforms are compiled in", e.Name)
	}

	return fmt.Sprintf("platform %s is unknown, known platforms: %s", e.Name, strings.Join(e.Known, ", "))
}
