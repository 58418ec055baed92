package constvars

import "net/http"

// HTTP status aliases kept so call sites read uniformly with the rest of the
// constants.
const (
	StatusOK                  = http.StatusOK
	StatusCreated             = http.StatusCreated
	StatusBadRequest          = http.StatusBadRequest
	StatusUnauthorized        = http.StatusUnauthorized
	StatusForbidden           = http.StatusForbidden
	StatusNotFound            = http.StatusNotFound
	StatusConflict            = http.StatusConflict
	StatusInternalServerError = http.StatusInternalServerError
	StatusGatewayTimeout      = http.StatusGatewayTimeout
)

const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderCacheControl  = "Cache-Control"

	MIMEApplicationJSON = "application/json"
	MIMETextEventStream = "text/event-stream"
)

const (
	ResponseUnknown = "unknown"
)

const (
	MongoCollectionAppointments  = "appointments"
	MongoCollectionDoctors       = "doctor_availability"
	MongoCollectionNotifications = "notifications"
	MongoCollectionCounters      = "counters"
)
