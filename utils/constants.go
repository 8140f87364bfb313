// File: utils/constants.go
package utils

import "time"

// Context keys set by the identity middleware.
const (
	CtxPrincipal = "principal"
	CtxProfile   = "profile"
	CtxLogger    = "logger"
	CtxRequestID = "requestID"
)

// DevTokenTTL is the lifetime of tokens minted by the dev login endpoint.
const DevTokenTTL = 12 * time.Hour
