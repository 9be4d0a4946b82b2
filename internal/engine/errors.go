package engine

import "errors"

var (
	// ErrMissingTenant is returned when no tenant id was supplied.
	ErrMissingTenant = errors.New("tenant id is required")

	// ErrMissingMessage is returned when a chat turn has no message.
	ErrMissingMessage = errors.New("message is required")

	// ErrTenantNotFound is returned when neither a company profile nor
	// a chatbot is configured for the tenant.
	ErrTenantNotFound = errors.New("no chatbot configured for this tenant")
)
