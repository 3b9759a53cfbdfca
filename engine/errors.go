package engine

import (
	"errors"
	"log"
)

// Grid contract errors, wrapped at call sites and checked with errors.Is
var (
	ErrOutOfBounds  = errors.New("out of bounds")
	ErrCellOccupied = errors.New("cell occupied")
	ErrInvalidKind  = errors.New("invalid kind for operation")
	ErrNoPosition   = errors.New("entity has no position")
)

// Debug turns contract violations into panics, tests set it
var Debug bool

// ContractViolation reports a broken caller precondition
// Panics in debug builds, otherwise logs and lets the caller reject the operation
func ContractViolation(err error) {
	if Debug {
		panic(err)
	}
	log.Printf("[engine] contract violation: %v", err)
}
