package model

import (
	"errors"
	"strings"
	"time"
)

// ReservationStatus is the lifecycle state of a reservation. Any status may
// follow any other.
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCompleted, ReservationStatusCancelled:
		return true
	}
	return false
}

type Reservation struct {
	ID           int64             `json:"id,omitempty"`
	CustomerName string            `json:"customerName"`
	Phone        string            `json:"phone"`
	TableNumber  int               `json:"tableNumber"`
	Guests       int               `json:"guests"`
	Date         time.Time         `json:"date"`
	Status       ReservationStatus `json:"status"`
}

// ReservationCreateRequest is the input for creating a reservation.
type ReservationCreateRequest struct {
	CustomerName string
	Phone        string
	TableNumber  int
	Guests       int
	Date         time.Time
	Status       ReservationStatus
}

func (p ReservationCreateRequest) Validate() error {
	if strings.TrimSpace(p.CustomerName) == "" {
		return errors.New("customerName is required")
	}
	if strings.TrimSpace(p.Phone) == "" {
		return errors.New("phone is required")
	}
	if p.TableNumber <= 0 {
		return errors.New("tableNumber must be positive")
	}
	if p.Guests <= 0 {
		return errors.New("guests must be positive")
	}
	if p.Date.IsZero() {
		return errors.New("date is required")
	}
	if p.Status != "" && !p.Status.Valid() {
		return errors.New("status is invalid")
	}
	return nil
}
