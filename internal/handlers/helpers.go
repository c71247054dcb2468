package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"asf-backend/internal/billing"
	"asf-backend/internal/logger"
	"asf-backend/internal/numbering"
	"asf-backend/internal/services"
	"asf-backend/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

// newValidator teaches validator to read decimal.Decimal as a float so
// numeric tags such as gt=0 work on money fields.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
// On failure the response is already written and false is returned.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if !decodeJSON(w, r, dst) {
		return false
	}
	if err := validate.Struct(dst); err != nil {
		utils.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": "Validation failed",
			"error":   err.Error(),
			"fields":  fieldErrors(err),
		})
		return false
	}
	return true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

func fieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		// drop the struct name prefix, keep the json path
		path := fe.Namespace()
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		out[path] = fe.Tag()
	}
	return out
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// writeServiceError maps service and core error kinds to a status code.
// action is used as the message for unexpected failures, e.g.
// "Error creating invoice".
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var (
		verr  *billing.ValidationError
		nf    *services.NotFoundError
		alloc *numbering.AllocationError
	)

	switch {
	case errors.As(err, &verr):
		utils.Error(w, http.StatusBadRequest, "Validation failed", err)
	case errors.As(err, &nf):
		utils.Message(w, http.StatusNotFound, nf.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.Message(w, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrInvalidInput):
		utils.Message(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), services.ErrInvalidInput.Error()+": "))
	case errors.Is(err, services.ErrEmailTaken):
		utils.Message(w, http.StatusBadRequest, "User with this email already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.Message(w, http.StatusUnauthorized, "Invalid password")
	case errors.Is(err, numbering.ErrUniquenessConflict):
		utils.Error(w, http.StatusConflict, "Identifier already issued, please retry", err)
	case errors.Is(err, services.ErrInUse):
		utils.Error(w, http.StatusConflict, "Record is still referenced by other records", err)
	case errors.As(err, &alloc):
		logger.WithContext(r.Context()).Error().Err(err).Msg(action)
		utils.Error(w, http.StatusServiceUnavailable, "Could not allocate identifier", err)
	default:
		logger.WithContext(r.Context()).Error().Err(err).Msg(action)
		utils.Error(w, http.StatusInternalServerError, action, err)
	}
}
