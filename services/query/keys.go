package query

import "strings"

// Key is a logical resource name grouping related cached reads.
type Key string

const (
	KeyCurrentUserProfile Key = "currentUserProfile"
	KeyUserProfile        Key = "userProfile"
	KeyCallerRole         Key = "callerRole"
	KeyServiceCategories  Key = "serviceCategories"
	KeyAvailableTimeSlots Key = "availableTimeSlots"
	KeySubscriptionPlans  Key = "subscriptionPlans"
	KeyMyBookings         Key = "myBookings"
	KeyAllBookings        Key = "allBookings"
	KeyMySupportTickets   Key = "mySupportTickets"
	KeyAllSupportTickets  Key = "allSupportTickets"
	KeyAllFeedback        Key = "allFeedback"
	KeyAllPayments        Key = "allPayments"
	KeyIVRTasks           Key = "ivrTasks"
)

// Ref names one cached read: a resource key plus optional parameters.
type Ref struct {
	Key    Key
	Params []string
}

// Resource builds a Ref.
func Resource(key Key, params ...string) Ref {
	return Ref{Key: key, Params: params}
}

func (r Ref) String() string {
	if len(r.Params) == 0 {
		return string(r.Key)
	}
	return string(r.Key) + ":" + strings.Join(r.Params, ":")
}
