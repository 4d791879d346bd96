// Package repository contains the MySQL persistence layer. Sentinel errors
// defined here are shared across repositories so handlers can map failure
// modes to HTTP statuses.
package repository

import "errors"

// ErrEventNotFound is returned when an event id does not exist.
var ErrEventNotFound = errors.New("event not found")

// ErrBookingNotFound is returned when a booking id does not exist.
var ErrBookingNotFound = errors.New("booking not found")

// ErrPaymentNotFound is returned when a payment id does not exist.
var ErrPaymentNotFound = errors.New("payment not found")

// ErrEmailExists is returned when registering with an email already in use.
var ErrEmailExists = errors.New("email already exists")
