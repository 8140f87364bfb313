package views

import (
	"context"

	"homeserve/models"
)

type StaffDashboardData struct {
	TotalAssigned int          `json:"totalAssigned"`
	ActiveCount   int          `json:"activeCount"`
	Active        []BookingRow `json:"active"`
}

type StaffJobsData struct {
	Jobs []BookingRow `json:"jobs"`
}

type StaffScheduleData struct {
	Schedule []BookingRow `json:"schedule"`
}

// JobDetailsData offers status changes only to the booking's assignee.
type JobDetailsData struct {
	Booking     BookingRow             `json:"booking"`
	Timeline    []TimelineStep         `json:"timeline"`
	CanUpdate   bool                   `json:"canUpdate"`
	Transitions []models.BookingStatus `json:"transitions"`
	IVRTasks    []models.IVRTask       `json:"ivrTasks"`
}

func staffDashboard(ctx context.Context, r *Resolver, req Request, _ map[string]string) (any, error) {
	bookings, names, err := bookingsWithNames(ctx, r.svc.GetAllBookings, r.svc.GetServiceCategories)
	if err != nil {
		return nil, err
	}
	mine := AssignedTo(bookings, req.Principal)
	active := Scheduled(mine)
	return StaffDashboardData{
		TotalAssigned: len(mine),
		ActiveCount:   len(active),
		Active:        toRows(active, names),
	}, nil
}

func staffJobs(ctx context.Context, r *Resolver, req Request, _ map[string]string) (any, error) {
	bookings, names, err := bookingsWithNames(ctx, r.svc.GetAllBookings, r.svc.GetServiceCategories)
	if err != nil {
		return nil, err
	}
	return StaffJobsData{Jobs: toRows(AssignedTo(bookings, req.Principal), names)}, nil
}

func staffSchedule(ctx context.Context, r *Resolver, req Request, _ map[string]string) (any, error) {
	bookings, names, err := bookingsWithNames(ctx, r.svc.GetAllBookings, r.svc.GetServiceCategories)
	if err != nil {
		return nil, err
	}
	return StaffScheduleData{Schedule: toRows(Scheduled(AssignedTo(bookings, req.Principal)), names)}, nil
}

func jobDetails(ctx context.Context, r *Resolver, req Request, params map[string]string) (any, error) {
	b, names, tasks, found, err := bookingWithTasks(ctx, r, r.svc.GetAllBookings, params["bookingId"])
	if err != nil || !found {
		return nil, err
	}
	data := JobDetailsData{
		Booking:     toRow(b, names),
		Timeline:    Timeline(b.Status),
		CanUpdate:   b.AssignedTo(req.Principal),
		Transitions: []models.BookingStatus{},
		IVRTasks:    tasks,
	}
	if data.CanUpdate {
		data.Transitions = Transitions(b.Status)
	}
	return data, nil
}
