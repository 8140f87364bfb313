package models

import "fmt"

type BookingID uint64

type ServiceCategoryID uint64

// BookingStatus is the lifecycle state of a booking, owned by the actor.
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "inProgress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingInProgress, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Active reports whether the booking still needs work.
func (s BookingStatus) Active() bool {
	return s == BookingPending || s == BookingConfirmed || s == BookingInProgress
}

// Booking represents a booking record held by the actor.
type Booking struct {
	ID            BookingID         `json:"id"`
	Status        BookingStatus     `json:"status"`
	Address       string            `json:"address"`
	PreferredTime Time              `json:"preferredTime"`
	AssignedStaff *Principal        `json:"assignedStaff,omitempty"`
	Category      ServiceCategoryID `json:"category"`
	CustomerID    Principal         `json:"customerId"`
	TimeSlot      string            `json:"timeSlot"`
}

// AssignedTo reports whether staff is the booking's assignee.
func (b Booking) AssignedTo(staff Principal) bool {
	return b.AssignedStaff != nil && *b.AssignedStaff == staff
}

// BookingRequest is submitted by a customer to create a booking.
type BookingRequest struct {
	ServiceCategory ServiceCategoryID `json:"serviceCategory"`
	Address         string            `json:"address"`
	PreferredTime   Time              `json:"preferredTime"`
	TimeSlot        string            `json:"timeSlot"`
}

func (r BookingRequest) Validate() error {
	if isBlank(r.Address) {
		return fmt.Errorf("address is required")
	}
	if isBlank(r.TimeSlot) {
		return fmt.Errorf("time slot is required")
	}
	return nil
}

// BookingResponse is the actor's acknowledgement of a booking request.
type BookingResponse struct {
	Message string `json:"message"`
}
