package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	appErrors "github.com/shopstack/storefront-platform/internal/errors"
	"github.com/shopstack/storefront-platform/internal/utils"
	"github.com/shopstack/storefront-platform/internal/utils/response"
)

// parseAndValidate decodes the JSON body into dest and runs struct
// validation. It writes the error response itself and reports whether the
// handler should continue.
func parseAndValidate(w http.ResponseWriter, r *http.Request, dest any, validate *validator.Validate) bool {
	if err := utils.DecodeJSONBody(r, dest); err != nil {
		response.Error(w, appErrors.BadRequestError("Invalid request body").WithError(err))

		return false
	}

	if err := utils.ValidateStruct(validate, dest); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)
		} else {
			response.Error(w, appErrors.BadRequestError("Invalid request").WithError(err))
		}

		return false
	}

	return true
}

// pathUUID parses a UUID path segment, writing a bad request response when it
// does not parse.
func pathUUID(w http.ResponseWriter, r *http.Request, segment string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(segment))
	if err != nil {
		response.Error(w, appErrors.BadRequestError("Invalid "+segment).WithError(err))

		return uuid.Nil, false
	}

	return id, true
}
