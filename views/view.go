// Package views composes the data each marketplace page renders. It only
// filters and formats what the backend returns.
package views

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"homeserve/models"
	"homeserve/services/ivr"
	"homeserve/services/marketplace"
)

// View names.
const (
	Login               = "login"
	ProfileSetup        = "profileSetup"
	AccessDenied        = "accessDenied"
	NotFound            = "notFound"
	CustomerDashboard   = "customerDashboard"
	StaffDashboard      = "staffDashboard"
	AdminDashboard      = "adminDashboard"
	Catalog             = "catalog"
	BookService         = "bookService"
	BookingConfirmation = "bookingConfirmation"
	MyBookings          = "myBookings"
	BookingDetails      = "bookingDetails"
	CustomerSupport     = "customerSupport"
	Subscriptions       = "subscriptions"
	StaffJobs           = "staffJobs"
	StaffSchedule       = "staffSchedule"
	JobDetails          = "jobDetails"
	Users               = "users"
	Allocation          = "allocation"
	ManageServices      = "manageServices"
	Payments            = "payments"
	SupportAndFeedback  = "supportAndFeedback"
	IVRSettings         = "ivrSettings"
	IVRTasks            = "ivrTasks"
)

// View is the JSON document returned for a page.
type View struct {
	Name string `json:"view"`
	Path string `json:"path"`
	Data any    `json:"data,omitempty"`
}

// Request is a page request from an authenticated caller with a profile.
type Request struct {
	Path      string
	Query     url.Values
	Principal models.Principal
	Profile   models.UserProfile
}

type builder func(ctx context.Context, r *Resolver, req Request, params map[string]string) (any, error)

type route struct {
	pattern []string
	name    string
	roles   []models.AppRole
	build   builder
}

var (
	adminOnly = []models.AppRole{models.AppRoleAdmin}
	staffOnly = []models.AppRole{models.AppRoleStaff, models.AppRoleAdmin}
)

var routes = []route{
	{pattern: split("/customer/catalog"), name: Catalog, build: catalog},
	{pattern: split("/customer/book"), name: BookService, build: bookService},
	{pattern: split("/customer/booking-confirmation/:bookingId"), name: BookingConfirmation, build: bookingConfirmation},
	{pattern: split("/customer/bookings"), name: MyBookings, build: myBookings},
	{pattern: split("/customer/bookings/:bookingId"), name: BookingDetails, build: bookingDetails},
	{pattern: split("/customer/support"), name: CustomerSupport, build: customerSupport},
	{pattern: split("/customer/subscriptions"), name: Subscriptions, build: subscriptions},
	{pattern: split("/staff/jobs"), name: StaffJobs, roles: staffOnly, build: staffJobs},
	{pattern: split("/staff/schedule"), name: StaffSchedule, roles: staffOnly, build: staffSchedule},
	{pattern: split("/staff/jobs/:bookingId"), name: JobDetails, roles: staffOnly, build: jobDetails},
	{pattern: split("/admin/users"), name: Users, roles: adminOnly, build: users},
	{pattern: split("/admin/allocation"), name: Allocation, roles: adminOnly, build: allocation},
	{pattern: split("/admin/services"), name: ManageServices, roles: adminOnly, build: manageServices},
	{pattern: split("/admin/payments"), name: Payments, roles: adminOnly, build: payments},
	{pattern: split("/admin/support"), name: SupportAndFeedback, roles: adminOnly, build: supportAndFeedback},
	{pattern: split("/admin/ivr-settings"), name: IVRSettings, roles: adminOnly, build: ivrSettings},
	{pattern: split("/admin/ivr-tasks"), name: IVRTasks, roles: adminOnly, build: ivrTasks},
	{pattern: split("/access-denied"), name: AccessDenied},
	{pattern: split("/profile-setup"), name: ProfileSetup, build: profileSetup},
}

// Resolver maps page paths onto views.
type Resolver struct {
	svc      marketplace.Service
	settings *ivr.SettingsService
}

func NewResolver(svc marketplace.Service, settings *ivr.SettingsService) *Resolver {
	return &Resolver{svc: svc, settings: settings}
}

// Resolve builds the view for req.Path and the HTTP status to send with it.
// Backend failures are returned as errors for the caller to report.
func (r *Resolver) Resolve(ctx context.Context, req Request) (View, int, error) {
	segments := split(req.Path)
	if len(segments) == 0 {
		return r.dashboard(ctx, req)
	}

	for _, rt := range routes {
		params, ok := match(rt.pattern, segments)
		if !ok {
			continue
		}
		if !allowed(req.Profile.AppRole, rt.roles) {
			return View{Name: AccessDenied, Path: req.Path}, http.StatusForbidden, nil
		}
		v := View{Name: rt.name, Path: req.Path}
		if rt.build == nil {
			return v, http.StatusOK, nil
		}
		data, err := rt.build(ctx, r, req, params)
		if err != nil {
			return View{}, 0, err
		}
		if data == nil {
			return View{Name: NotFound, Path: req.Path}, http.StatusNotFound, nil
		}
		v.Data = data
		return v, http.StatusOK, nil
	}

	return View{Name: NotFound, Path: req.Path}, http.StatusNotFound, nil
}

func (r *Resolver) dashboard(ctx context.Context, req Request) (View, int, error) {
	var (
		name  string
		build builder
	)
	switch req.Profile.AppRole {
	case models.AppRoleAdmin:
		name, build = AdminDashboard, adminDashboard
	case models.AppRoleStaff:
		name, build = StaffDashboard, staffDashboard
	default:
		name, build = CustomerDashboard, customerDashboard
	}
	data, err := build(ctx, r, req, nil)
	if err != nil {
		return View{}, 0, err
	}
	return View{Name: name, Path: "/", Data: data}, http.StatusOK, nil
}

func split(path string) []string {
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func match(pattern, segments []string) (map[string]string, bool) {
	if len(pattern) != len(segments) {
		return nil, false
	}
	var params map[string]string
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if params == nil {
				params = make(map[string]string)
			}
			params[p[1:]] = segments[i]
			continue
		}
		if p != segments[i] {
			return nil, false
		}
	}
	return params, true
}

func allowed(role models.AppRole, roles []models.AppRole) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
