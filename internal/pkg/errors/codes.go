package errors

import "net/http"

var (
	ErrStorage = New(
		"STORAGE_ERROR",
		"Persistence medium unavailable or write failed",
		http.StatusInternalServerError,
	)

	ErrLocationUnavailable = New(
		"LOCATION_UNAVAILABLE",
		"No location fix available",
		http.StatusServiceUnavailable,
	)

	ErrMalformedRecord = New(
		"MALFORMED_RECORD",
		"Record is missing a required or numeric field",
		http.StatusBadRequest,
	)

	ErrSyncFailure = New(
		"SYNC_FAILURE",
		"Remote acknowledgement rejected or not delivered",
		http.StatusBadGateway,
	)

	ErrInvalidSyncTransition = New(
		"INVALID_SYNC_TRANSITION",
		"Sync status transition is not allowed",
		http.StatusConflict,
	)

	ErrRecordNotFound = New(
		"RECORD_NOT_FOUND",
		"Record not found",
		http.StatusNotFound,
	)

	ErrInvalidCollection = New(
		"INVALID_COLLECTION",
		"Unknown or non-syncable collection",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidSettings = New(
		"INVALID_SETTINGS",
		"Settings are out of the allowed range",
		http.StatusBadRequest,
	)

	ErrInvalidCatalog = New(
		"INVALID_CATALOG",
		"Zone or boundary catalog is invalid",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
