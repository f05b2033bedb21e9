package routes

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"gitlab.com/ranfdev/updoot/internal/models"
)

type AppError interface {
	error
	Status() int
	Message() string
}

type ErrInternal struct {
	Cause error
}
type ErrUnavailable struct {
	Cause error
}
type ErrBadRequest struct {
	Cause error
}
type ErrUnauthorized struct{}
type ErrPermDenied struct {
	Cause error
}
type ErrNotFound struct {
	Thing string
	Cause error
}
type ErrConflict struct {
	Cause error
}

func (e *ErrInternal) Error() string { return fmt.Sprintf("internal: %v", e.Cause) }
func (e *ErrInternal) Status() int { return http.StatusInternalServerError }
func (e *ErrInternal) Message() string { return "Internal server error" }
func (e *ErrUnavailable) Error() string { return fmt.Sprintf("unavailable: %v", e.Cause) }
func (e *ErrUnavailable) Status() int { return http.StatusServiceUnavailable }
func (e *ErrUnavailable) Message() string { return "Service unavailable" }
func (e *ErrBadRequest) Error() string { return e.Cause.Error() }
func (e *ErrBadRequest) Status() int { return http.StatusBadRequest }
func (e *ErrBadRequest) Message() string { return e.Cause.Error() }
func (e *ErrUnauthorized) Error() string { return "not authenticated" }
func (e *ErrUnauthorized) Status() int { return http.StatusUnauthorized }
func (e *ErrUnauthorized) Message() string {
	return "You must be logged in to do this"
}
func (e *ErrPermDenied) Error() string { return e.Cause.Error() }
func (e *ErrPermDenied) Status() int { return http.StatusForbidden }
func (e *ErrPermDenied) Message() string { return "You don't have the permission to do this" }
func (e *ErrNotFound) Error() string { return fmt.Sprintf("%s: %v", e.Thing, e.Cause) }
func (e *ErrNotFound) Status() int { return http.StatusNotFound }
func (e *ErrNotFound) Message() string { return fmt.Sprintf("Can't find the %s", e.Thing) }
func (e *ErrConflict) Error() string { return e.Cause.Error() }
func (e *ErrConflict) Status() int { return http.StatusConflict }
func (e *ErrConflict) Message() string {
	return "Someone else changed this at the same time, try again"
}

// FromErr maps an error kind coming from the store to its HTTP error.
// thing names the resource in not found messages, unless the error
// names it itself.
func FromErr(err error, thing string) AppError {
	var notFound *models.NotFoundError
	if errors.As(err, &notFound) && notFound.Thing != "" {
		thing = notFound.Thing
	}
	switch {
	case errors.Is(err, models.ErrValidation):
		return &ErrBadRequest{Cause: err}
	case errors.Is(err, models.ErrNotFound):
		return &ErrNotFound{Thing: thing, Cause: err}
	case errors.Is(err, models.ErrPermDenied):
		return &ErrPermDenied{Cause: err}
	case errors.Is(err, models.ErrConflict):
		return &ErrConflict{Cause: err}
	}
	return &ErrInternal{Cause: err}
}

func (routes *Routes) AppHandler(handler func(w http.ResponseWriter, r *http.Request) AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := handler(w, r)
		if err == nil {
			return
		}
		routes.HandleErr(w, r, err)
	}
}
func (routes *Routes) HandleErr(w http.ResponseWriter, r *http.Request, err AppError) {
	log := hlog.FromRequest(r)
	event := log.Debug()
	if err.Status() >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.
		Str("request_id", middleware.GetReqID(r.Context())).
		Int("status", err.Status()).
		Err(err).
		Msg(err.Message())

	renderJSON(w, err.Status(), map[string]string{"error": err.Message()})
}
