package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidTravelMode = New(
		"INVALID_TRAVEL_MODE",
		"Travel mode must be one of walking, driving, cycling",
		http.StatusBadRequest,
	)

	ErrDatasetNotLoaded = New(
		"DATASET_NOT_LOADED",
		"Dataset is not loaded yet",
		http.StatusServiceUnavailable,
	)

	ErrRouteNotFound = New(
		"ROUTE_NOT_FOUND",
		"No route found between the given points",
		http.StatusNotFound,
	)

	ErrUpstreamUnavailable = New(
		"UPSTREAM_UNAVAILABLE",
		"Upstream service is unavailable",
		http.StatusBadGateway,
	)

	ErrRequestSuperseded = New(
		"REQUEST_SUPERSEDED",
		"Request was superseded by a newer one",
		http.StatusConflict,
	)

	// 499 - nginx-код для запроса, закрытого клиентом
	ErrRequestCancelled = New(
		"REQUEST_CANCELLED",
		"Request was cancelled",
		499,
	)

	ErrRequestTimeout = New(
		"REQUEST_TIMEOUT",
		"Request did not complete in time",
		http.StatusGatewayTimeout,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
