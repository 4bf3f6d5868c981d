package api

import "fmt"

// ErrDuplicateUUID defines an attempt to register already known accessory.
type ErrDuplicateUUID struct {
	UUID string
}

// Error formats output.
func (e *ErrDuplicateUUID) Error() string {
	return fmt.Sprintf("accessory %s is already registered", e.UUID)
}

// ErrUnknownAccessory defines an operation on not registered accessory.
type ErrUnknownAccessory struct {
	UUID string
}

// Error formats output.
func (e *ErrUnknownAccessory) Error() string {
	return fmt.Sprintf("accessory %s is not registered", e.UUID)
}
