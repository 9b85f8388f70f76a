package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-plan-it/internal/service"
	"github.com/MKhiriev/go-plan-it/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrSessionClosed:           http.StatusUnauthorized,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrUserNotFound:       http.StatusNotFound,
	store.ErrEventNotFound:      http.StatusNotFound,
	store.ErrNoOwner:            http.StatusBadRequest,
	store.ErrEventNotSaved:      http.StatusInternalServerError,
	store.ErrCalendarNotFound:   http.StatusBadGateway,
	store.ErrStoreUnavailable:   http.StatusBadGateway,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
