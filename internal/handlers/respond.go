package handlers

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/stwalsh4118/icyapa/internal/errors"
	"github.com/stwalsh4118/icyapa/internal/services"
)

var registerFieldNames sync.Once

// useWireFieldNames makes validation details name fields the way clients
// send them (json or form tag) instead of by Go struct field.
func useWireFieldNames() {
	registerFieldNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
				if name != "" && name != "-" {
					return name
				}
			}
			return ""
		})
	})
}

// bindQuery binds query parameters into req, writing a 400 on failure.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		respondBindError(c, err, "Invalid query parameters")
		return false
	}
	return true
}

// bindJSON binds the request body into req, writing a 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return false
	}
	return true
}

func respondBindError(c *gin.Context, err error, message string) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		apierrors.ValidationError(c, validationErrors)
		return
	}
	apierrors.BadRequest(c, message, nil)
}

// respondError maps a service error onto the error envelope. Anything that
// is not a known domain error is logged and reported as a 500 with message.
func respondError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		apierrors.BadRequest(c, err.Error(), nil)
	case errors.Is(err, services.ErrZoneNotFound):
		apierrors.NotFound(c, "Zone not found")
	case errors.Is(err, services.ErrBuildingNotFound):
		apierrors.NotFound(c, "Building not found")
	case errors.Is(err, services.ErrBusinessNotFound):
		apierrors.NotFound(c, "Business not found")
	case errors.Is(err, services.ErrInvalidOperation),
		errors.Is(err, services.ErrBuildingHasBusinesses),
		errors.Is(err, services.ErrAlreadyClaimed),
		errors.Is(err, services.ErrDuplicateSlug),
		errors.Is(err, services.ErrDuplicateID):
		apierrors.Conflict(c, err.Error(), nil)
	default:
		apierrors.InternalServerError(c, message, err)
	}
}

// nonNil keeps empty lists serialising as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
