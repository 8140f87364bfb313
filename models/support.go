package models

type SupportTicketID uint64

type FeedbackID uint64

// SupportTicket is a customer support request.
type SupportTicket struct {
	ID         SupportTicketID `json:"id"`
	Status     string          `json:"status"`
	Message    string          `json:"message"`
	CustomerID Principal       `json:"customerId"`
}

// Feedback is a customer's rating of a completed booking.
type Feedback struct {
	ID        FeedbackID `json:"id"`
	BookingID BookingID  `json:"bookingId"`
	Rating    uint64     `json:"rating"`
	Comments  string     `json:"comments"`
}
