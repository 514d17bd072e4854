package apperr

import "net/http"

// HTTPStatus is the status written back to the platform for a failed webhook delivery.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	e := As(err)
	if e == nil {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindMissingRequiredHeader, KindTransportFailure:
		return http.StatusBadRequest
	case KindSignatureMismatch, KindNoHandlerRegistered:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// WriteStatus writes the status for err and nothing else; the platform ignores response bodies.
func WriteStatus(w http.ResponseWriter, err error) int {
	status := HTTPStatus(err)
	w.WriteHeader(status)
	return status
}
