package views

import (
	"sort"
	"strconv"
	"time"

	"homeserve/models"
)

const unknownService = "Unknown Service"

// BookingRow is a booking as listed on a page.
type BookingRow struct {
	ID            models.BookingID         `json:"id"`
	Status        models.BookingStatus     `json:"status"`
	Category      models.ServiceCategoryID `json:"category"`
	CategoryName  string                   `json:"categoryName"`
	Address       string                   `json:"address"`
	TimeSlot      string                   `json:"timeSlot"`
	PreferredTime string                   `json:"preferredTime"`
	CustomerID    models.Principal         `json:"customerId"`
	AssignedStaff *models.Principal        `json:"assignedStaff,omitempty"`
}

// TimelineStep is one stage of the booking progress indicator.
type TimelineStep struct {
	Status   models.BookingStatus `json:"status"`
	Complete bool                 `json:"complete"`
	Current  bool                 `json:"current"`
}

// Amount is a whole-rupee amount with its display form.
type Amount struct {
	Value     uint64 `json:"value"`
	Formatted string `json:"formatted"`
}

var timelineOrder = []models.BookingStatus{
	models.BookingPending,
	models.BookingConfirmed,
	models.BookingInProgress,
	models.BookingCompleted,
}

// FormatTime renders a nanosecond timestamp as RFC3339, or "" when unset.
func FormatTime(t models.Time) string {
	if t == 0 {
		return ""
	}
	return t.AsTime().Format(time.RFC3339)
}

func FormatAmount(v uint64) Amount {
	return Amount{Value: v, Formatted: "₹" + strconv.FormatUint(v, 10)}
}

// Timeline marks every step up to the booking's status as complete. A
// cancelled booking completes none.
func Timeline(status models.BookingStatus) []TimelineStep {
	current := -1
	for i, s := range timelineOrder {
		if s == status {
			current = i
		}
	}
	steps := make([]TimelineStep, len(timelineOrder))
	for i, s := range timelineOrder {
		steps[i] = TimelineStep{Status: s, Complete: i <= current, Current: i == current}
	}
	return steps
}

func categoryNames(categories []models.ServiceCategory) map[models.ServiceCategoryID]string {
	names := make(map[models.ServiceCategoryID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}

func toRow(b models.Booking, names map[models.ServiceCategoryID]string) BookingRow {
	name, ok := names[b.Category]
	if !ok || name == "" {
		name = unknownService
	}
	return BookingRow{
		ID:            b.ID,
		Status:        b.Status,
		Category:      b.Category,
		CategoryName:  name,
		Address:       b.Address,
		TimeSlot:      b.TimeSlot,
		PreferredTime: FormatTime(b.PreferredTime),
		CustomerID:    b.CustomerID,
		AssignedStaff: b.AssignedStaff,
	}
}

func toRows(bookings []models.Booking, names map[models.ServiceCategoryID]string) []BookingRow {
	rows := make([]BookingRow, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, toRow(b, names))
	}
	return rows
}

func filterBookings(bookings []models.Booking, keep func(models.Booking) bool) []models.Booking {
	var out []models.Booking
	for _, b := range bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

// Upcoming keeps pending, confirmed and in-progress bookings.
func Upcoming(bookings []models.Booking) []models.Booking {
	return filterBookings(bookings, func(b models.Booking) bool { return b.Status.Active() })
}

// History keeps completed and cancelled bookings.
func History(bookings []models.Booking) []models.Booking {
	return filterBookings(bookings, func(b models.Booking) bool {
		return b.Status == models.BookingCompleted || b.Status == models.BookingCancelled
	})
}

// AssignedTo keeps bookings whose assignee is staff.
func AssignedTo(bookings []models.Booking, staff models.Principal) []models.Booking {
	return filterBookings(bookings, func(b models.Booking) bool { return b.AssignedTo(staff) })
}

// Scheduled keeps bookings the assignee is due to work on.
func Scheduled(bookings []models.Booking) []models.Booking {
	return filterBookings(bookings, func(b models.Booking) bool {
		return b.Status == models.BookingConfirmed || b.Status == models.BookingInProgress
	})
}

// Unassigned keeps pending bookings that have no staff yet.
func Unassigned(bookings []models.Booking) []models.Booking {
	return filterBookings(bookings, func(b models.Booking) bool {
		return b.AssignedStaff == nil && b.Status == models.BookingPending
	})
}

// StaffSet is the sorted set of principals assigned to any booking.
func StaffSet(bookings []models.Booking) []models.Principal {
	seen := make(map[models.Principal]struct{})
	for _, b := range bookings {
		if b.AssignedStaff != nil {
			seen[*b.AssignedStaff] = struct{}{}
		}
	}
	return sortedPrincipals(seen)
}

// CustomerSet is the sorted set of customers that placed a booking.
func CustomerSet(bookings []models.Booking) []models.Principal {
	seen := make(map[models.Principal]struct{})
	for _, b := range bookings {
		seen[b.CustomerID] = struct{}{}
	}
	return sortedPrincipals(seen)
}

func sortedPrincipals(set map[models.Principal]struct{}) []models.Principal {
	out := make([]models.Principal, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// StatusCounts counts bookings per status, with every known status present.
func StatusCounts(bookings []models.Booking) map[models.BookingStatus]int {
	counts := map[models.BookingStatus]int{
		models.BookingPending:    0,
		models.BookingConfirmed:  0,
		models.BookingInProgress: 0,
		models.BookingCompleted:  0,
		models.BookingCancelled:  0,
	}
	for _, b := range bookings {
		counts[b.Status]++
	}
	return counts
}

// Recent returns the n most recently created bookings, newest first.
// Booking ids are allocated in creation order.
func Recent(bookings []models.Booking, n int) []models.Booking {
	out := append([]models.Booking(nil), bookings...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func findBooking(bookings []models.Booking, rawID string) (models.Booking, bool) {
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		return models.Booking{}, false
	}
	for _, b := range bookings {
		if uint64(b.ID) == id {
			return b, true
		}
	}
	return models.Booking{}, false
}

// Transitions lists the statuses the assigned staff member can move a
// booking to. Finished bookings offer none.
func Transitions(status models.BookingStatus) []models.BookingStatus {
	switch status {
	case models.BookingCompleted, models.BookingCancelled:
		return []models.BookingStatus{}
	case models.BookingConfirmed:
		return []models.BookingStatus{models.BookingInProgress, models.BookingCancelled}
	case models.BookingInProgress:
		return []models.BookingStatus{models.BookingCompleted, models.BookingCancelled}
	}
	return []models.BookingStatus{models.BookingCancelled}
}

// TasksFor keeps the IVR tasks raised for one booking.
func TasksFor(tasks []models.IVRTask, booking models.BookingID) []models.IVRTask {
	out := []models.IVRTask{}
	for _, t := range tasks {
		if t.BookingID == booking {
			out = append(out, t)
		}
	}
	return out
}

func parseCategory(raw string) (models.ServiceCategoryID, bool) {
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return models.ServiceCategoryID(id), true
}
