package models

type PaymentID uint64

// Payment is a payment recorded against a booking.
type Payment struct {
	ID        PaymentID `json:"id"`
	Status    string    `json:"status"`
	Method    string    `json:"method"`
	BookingID BookingID `json:"bookingId"`
	Amount    uint64    `json:"amount"`
}

// Payment methods offered on the admin payments screen.
const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
	PaymentMethodUPI  = "upi"
)

// PaymentIntent is returned when a card payment needs client-side confirmation.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
	Currency     string `json:"currency"`
}
