package handlers

import (
	"homeserve/services/marketplace"
	"homeserve/utils"
)

// HandlerBundle groups the endpoint handlers wired by the router, along with
// what the gating middleware needs.
type HandlerBundle struct {
	Issuer         *utils.TokenIssuer
	Svc            marketplace.Service
	EnableDevLogin bool

	Auth    *AuthHandler
	Health  *HealthHandler
	Profile *ProfileHandler
	Admin   *AdminHandler
	Catalog *CatalogHandler
	Booking *BookingHandler
	Support *SupportHandler
	Payment *PaymentHandler
	IVR     *IVRHandler
	View    *ViewHandler
}
