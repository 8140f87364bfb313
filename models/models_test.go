package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserProfileValidate(t *testing.T) {
	valid := UserProfile{AppRole: AppRoleCustomer, Name: "Asha", MobileNumber: "+911234567890"}
	assert.NoError(t, valid.Validate())

	blank := valid
	blank.Name = "   "
	assert.Error(t, blank.Validate())

	noMobile := valid
	noMobile.MobileNumber = ""
	assert.Error(t, noMobile.Validate())

	badRole := valid
	badRole.AppRole = "owner"
	assert.Error(t, badRole.Validate())
}

func TestBookingStatusActive(t *testing.T) {
	assert.True(t, BookingPending.Active())
	assert.True(t, BookingInProgress.Active())
	assert.False(t, BookingCompleted.Active())
	assert.False(t, BookingCancelled.Active())
	assert.False(t, BookingStatus("lost").Valid())
}

func TestBookingAssignedTo(t *testing.T) {
	staff := Principal("staff-1")
	b := Booking{AssignedStaff: &staff}
	assert.True(t, b.AssignedTo("staff-1"))
	assert.False(t, b.AssignedTo("staff-2"))
	assert.False(t, Booking{}.AssignedTo("staff-1"))
}

func TestTimeConversion(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, now, FromTime(now).AsTime())
}

func TestBookingRequestValidate(t *testing.T) {
	assert.Error(t, BookingRequest{TimeSlot: "9-11"}.Validate())
	assert.Error(t, BookingRequest{Address: "12 MG Road"}.Validate())
	assert.NoError(t, BookingRequest{Address: "12 MG Road", TimeSlot: "9-11"}.Validate())
}
