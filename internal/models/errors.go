package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("Authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrNoValidFields   = errors.New("No valid fields to update")

	ErrInvalidDate = errors.New("Invalid date format")
	ErrInvalidTime = errors.New("Invalid time format")
	ErrPastDate    = errors.New("Cannot book appointments on past dates")
	ErrPastTime    = errors.New("Cannot book appointments at past times")
	ErrInvalidSlot = errors.New("Invalid time slot")
	ErrSlotTaken   = errors.New("Time slot is already booked")
)

type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "Missing required field: " + e.Field
}

func MissingField(name string) error {
	return &MissingFieldError{Field: name}
}

type InvalidStatusError struct {
	Allowed []string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("Invalid status. Status must be one of: %s", strings.Join(e.Allowed, ", "))
}
