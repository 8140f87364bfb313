package models

import "strings"

// VerificationRequest completes a mobile verification with the received code.
type VerificationRequest struct {
	VerificationCode string `json:"verificationCode"`
	MobileNumber     string `json:"mobileNumber"`
}

// MobileVerificationStatus is the actor's verdict on a mobile number.
type MobileVerificationStatus struct {
	Verified bool `json:"verified"`
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
