package constants

// Shared header and route constants
const (
	HeaderAPIKey = "X-API-Key"

	APIRoute = "/api"
)
