package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pratik-mahalle/freelancehub/internal/api/middleware"
	"github.com/pratik-mahalle/freelancehub/internal/gateway"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/errors"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/utils"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/validator"
)

// requireUser returns the session user or writes a 401
func requireUser(w http.ResponseWriter, r *http.Request) (*gateway.User, bool) {
	user, ok := middleware.GetUser(r)
	if !ok {
		utils.WriteError(w, errors.Unauthenticated("Sign in to continue"))
		return nil, false
	}
	return user, true
}

// decodeAndValidate reads a JSON body into dst and runs struct validation
func decodeAndValidate(w http.ResponseWriter, r *http.Request, val *validator.Validator, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return false
	}
	if errs := val.Validate(dst); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return false
	}
	return true
}

// writeServiceError logs server-side failures and writes err to the client
func writeServiceError(w http.ResponseWriter, log *logger.Logger, err error, msg string) {
	status := http.StatusInternalServerError
	if appErr, ok := errors.As(err); ok {
		status = appErr.StatusCode
	}
	if status >= http.StatusInternalServerError {
		log.ErrorWithErr(err, msg)
	}
	utils.WriteAnyError(w, err)
}
