package utils

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/exceptions"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

var validate = validator.New()

// DecodeAndValidate parses a JSON request body into dst and runs struct
// validation. Validation failures never reach the repositories.
func DecodeAndValidate(body io.Reader, dst interface{}) error {
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	if err := validate.Struct(dst); err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}

// URLParamInt64 extracts a positive integer chi URL parameter.
func URLParamInt64(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, exceptions.ErrURLParamIDValidation(err, name)
	}
	return id, nil
}

// URLParamDate extracts a "YYYY-MM-DD" chi URL parameter.
func URLParamDate(r *http.Request, name string) (string, error) {
	raw := chi.URLParam(r, name)
	if _, err := time.Parse(models.DateLayout, raw); err != nil {
		return "", exceptions.ErrCannotParseDate(err)
	}
	return raw, nil
}

func GenerateRequestID() string {
	return uuid.NewString()
}
