package booking

const (
	CodeMissingClientData      = "missing_client_data"
	CodeInvalidEmail           = "invalid_email"
	CodeMissingReservationData = "missing_reservation_data"
	CodeInvalidDateOrTime      = "invalid_date_or_time"
	CodeInvalidDuration        = "invalid_duration"
	CodeServiceNotFound        = "service_not_found"
	CodeStylistNotFound        = "stylist_not_found"
	CodeReservationNotFound    = "reservation_not_found"
	CodeSlotUnavailable        = "slot_unavailable"
	CodeOutsideWorkingHours    = "outside_working_hours"
	CodeInvalidState           = "invalid_state"
)
