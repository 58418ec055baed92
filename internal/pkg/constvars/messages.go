package constvars

// Client-facing messages. These are returned verbatim in response envelopes,
// so keep them human-readable.
const (
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "Cannot process the request, please check your input"
	ErrClientNotAuthorized                 = "You are not authorized to perform this action"
	ErrClientNotLoggedIn                   = "Your session is invalid or has expired, please log in again"
	ErrClientServerLongRespond             = "The server took too long to respond, please try again"
	ErrClientAppointmentNotFound           = "Appointment not found"
	ErrClientDoctorNotFound                = "Doctor not found"
	ErrClientSlotFullyBooked               = "This time slot is fully booked, please choose another slot"
	ErrClientSlotInPast                    = "This time slot has already passed"
	ErrClientCancellationReasonRequired    = "A cancellation reason is required"
	ErrClientInvalidCancellationReason     = "The cancellation reason is not recognized"

	SuccessCreateAppointment = "Appointment booked successfully"
	SuccessGetAppointments   = "Appointments fetched successfully"
	SuccessGetAppointment    = "Appointment fetched successfully"
	SuccessGetSlots          = "Time slots fetched successfully"
	SuccessGetBookingCounts  = "Booking counts fetched successfully"
	SuccessTransition        = "Appointment updated successfully"
	SuccessGetNotifications  = "Notifications fetched successfully"
	SuccessMarkRead          = "Notification marked as read"
)

// Developer-facing messages, attached to CustomError.DevMessage and logged.
const (
	ErrDevInvalidRequestPayload      = "invalid request payload"
	ErrDevValidationFailed           = "request validation failed"
	ErrDevCannotParseJSON            = "cannot parse request body as JSON"
	ErrDevCannotMarshalJSON          = "cannot marshal value as JSON"
	ErrDevCannotParseDate            = "cannot parse date parameter"
	ErrDevURLParamIDValidationFailed = "url parameter '%s' failed validation"
	ErrDevAuthTokenMissing           = "authorization token is missing"
	ErrDevAuthTokenInvalid           = "authorization token is invalid"
	ErrDevAuthSigningMethod          = "unexpected jwt signing method"
	ErrDevRoleNotAllowed             = "role is not allowed for this operation"
	ErrDevMissingRequestID           = "request id not found in context"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded"
	ErrDevMongoFailedToFind          = "mongo: failed to find documents"
	ErrDevMongoFailedToInsert        = "mongo: failed to insert document"
	ErrDevMongoFailedToUpdate        = "mongo: failed to update document"
	ErrDevMongoFailedToCount         = "mongo: failed to count documents"
	ErrDevRedisFailedToSet           = "redis: failed to set key"
	ErrDevRedisFailedToGet           = "redis: failed to get key"
	ErrDevRedisFailedToDelete        = "redis: failed to delete key"
	ErrDevRedisFailedToPublish       = "redis: failed to publish message"
	ErrDevLockNotAcquired            = "lock could not be acquired"
	ErrDevLockNotOwned               = "lock not owned by this client"
	ErrDevAMQPFailedToPublish        = "amqp: failed to publish message"
)

// Roles as carried in JWT claims and checked by the lifecycle controller.
const (
	RolePatient      = "PATIENT"
	RoleDoctor       = "DOCTOR"
	RoleReceptionist = "RECEPTIONIST"
	RoleHospital     = "HOSPITAL"
	RoleAdmin        = "ADMIN"
)

// BroadcastChannel is the shared channel key for appointment change events.
// The name is inherited from the dashboards' cross-tab storage key.
const BroadcastChannel = "appointment-updated"

// AppointmentEventType is the type discriminator on broadcast payloads.
const AppointmentEventType = "appointment.changed"
