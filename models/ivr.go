package models

import (
	"fmt"
	"time"
)

type IVRTaskID uint64

// IVRTask is a phone-call task raised for a booking.
type IVRTask struct {
	ID        IVRTaskID `json:"id"`
	Status    string    `json:"status"`
	BookingID BookingID `json:"bookingId"`
	TaskType  string    `json:"taskType"`
}

// IVRBookingRequest is a booking captured over the phone.
type IVRBookingRequest struct {
	ServiceCategory ServiceCategoryID `json:"serviceCategory"`
	Address         string            `json:"address"`
	Mobile          string            `json:"mobile"`
	TimeSlot        string            `json:"timeSlot"`
}

func (r IVRBookingRequest) Validate() error {
	if isBlank(r.Address) {
		return fmt.Errorf("address is required")
	}
	if isBlank(r.Mobile) {
		return fmt.Errorf("mobile is required")
	}
	if isBlank(r.TimeSlot) {
		return fmt.Errorf("time slot is required")
	}
	return nil
}

// IVRSettings configures the telephony provider feeding phone bookings.
type IVRSettings struct {
	ProviderName      string    `bson:"providerName" json:"providerName"`
	IVRNumber         string    `bson:"ivrNumber" json:"ivrNumber"`
	WebhookSecretHash string    `bson:"webhookSecretHash" json:"-"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updatedAt"`
	UpdatedBy         Principal `bson:"updatedBy" json:"updatedBy"`
}

// HasWebhookSecret reports whether inbound webhooks can be authenticated.
func (s IVRSettings) HasWebhookSecret() bool {
	return s.WebhookSecretHash != ""
}
