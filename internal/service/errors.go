package service

import (
	"errors"

	"backoffice/internal/organization"
	cErr "backoffice/internal/pkg/error"
)

// toAppError 把 organization 的錯誤轉成對外的 cErr
func toAppError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *cErr.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	var validationErr *organization.ValidationError
	if errors.As(err, &validationErr) {
		return cErr.ValidationFailed(validationErr.Error(), validationErr.Violations)
	}
	var networkErr *organization.NetworkError
	if errors.As(err, &networkErr) {
		return cErr.DatabaseError(networkErr.Error())
	}
	switch {
	case errors.Is(err, organization.ErrSubmitInFlight):
		return cErr.SubmitInFlight(err.Error())
	case errors.Is(err, organization.ErrSessionClosed):
		return cErr.SessionClosed(err.Error())
	case errors.Is(err, organization.ErrNotFound):
		return cErr.NotFound(err.Error())
	case errors.Is(err, organization.ErrCatalogNotReady):
		return cErr.ServiceUnavailable(err.Error())
	}
	return cErr.InternalServer(err.Error())
}
