package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/icyapa/internal/logger"
	"github.com/stwalsh4118/icyapa/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestContext creates a test Gin context with a logger and request ID.
func setupTestContext() (*gin.Context, *httptest.ResponseRecorder, *bytes.Buffer) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/buildings/palm-plaza", nil)

	var logs bytes.Buffer
	c.Set(middleware.LoggerKey, logger.NewWithWriter("production", &logs))
	c.Set(middleware.RequestIDKey, "test-request-id")

	return c, w, &logs
}

func parseErrorResponse(t *testing.T, body *bytes.Buffer) ErrorResponse {
	t.Helper()
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(body.Bytes(), &response), "Failed to parse error response JSON")
	return response
}

// validationErrors runs the validator over v and returns its field errors.
func validationErrors(t *testing.T, v interface{}) validator.ValidationErrors {
	t.Helper()
	err := validator.New().Struct(v)
	require.Error(t, err)
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	return verrs
}

func TestNotFound(t *testing.T) {
	c, w, logs := setupTestContext()

	NotFound(c, "Building not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	response := parseErrorResponse(t, w.Body)
	assert.Equal(t, ErrNotFound, response.Error.Code)
	assert.Equal(t, "Building not found", response.Error.Message)
	assert.Equal(t, "test-request-id", response.Error.RequestID)
	assert.Nil(t, response.Error.Details)
	assert.True(t, c.IsAborted())
	assert.Contains(t, logs.String(), `"level":"warn"`)
}

func TestBadRequest(t *testing.T) {
	c, w, _ := setupTestContext()

	BadRequest(c, "Invalid request body", map[string]interface{}{"field": "categories"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := parseErrorResponse(t, w.Body)
	assert.Equal(t, ErrBadRequest, response.Error.Code)
	assert.Equal(t, "categories", response.Error.Details["field"])
}

func TestConflict(t *testing.T) {
	c, w, logs := setupTestContext()

	Conflict(c, "cannot merge a building into itself", map[string]interface{}{"source_id": "b-1"})

	assert.Equal(t, http.StatusConflict, w.Code)
	response := parseErrorResponse(t, w.Body)
	assert.Equal(t, ErrInvalidOperation, response.Error.Code)
	assert.Equal(t, "cannot merge a building into itself", response.Error.Message)
	assert.Equal(t, "b-1", response.Error.Details["source_id"])
	assert.Contains(t, logs.String(), "Invalid operation")
}

func TestInternalServerError(t *testing.T) {
	c, w, logs := setupTestContext()

	InternalServerError(c, "Failed to store business", errors.New("id generator exhausted"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	response := parseErrorResponse(t, w.Body)
	assert.Equal(t, ErrInternalServer, response.Error.Code)
	assert.Equal(t, "Failed to store business", response.Error.Message)
	assert.NotContains(t, w.Body.String(), "id generator exhausted", "cause is not exposed")
	assert.Contains(t, logs.String(), "id generator exhausted", "cause is logged")
}

func TestValidationError(t *testing.T) {
	type commentRequest struct {
		Comment string `validate:"required"`
		Email   string `validate:"omitempty,email"`
		Type    string `validate:"oneof=general correction"`
	}

	c, w, _ := setupTestContext()

	ValidationError(c, validationErrors(t, commentRequest{Email: "not-an-email", Type: "rant"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := parseErrorResponse(t, w.Body)
	assert.Equal(t, ErrValidation, response.Error.Code)
	assert.Equal(t, "Validation failed for one or more fields", response.Error.Message)
	assert.Equal(t, "test-request-id", response.Error.RequestID)
	assert.Equal(t, map[string]interface{}{
		"Comment": "This field is required",
		"Email":   "Must be a valid email address",
		"Type":    "Must be one of: general correction",
	}, response.Error.Details)
}

func TestFormatValidationError(t *testing.T) {
	type sample struct {
		Required   string   `validate:"required"`
		Min        string   `validate:"min=3"`
		Max        []string `validate:"max=2"`
		Len        string   `validate:"len=4"`
		Gt         int      `validate:"gt=0"`
		Gte        int      `validate:"gte=1"`
		Lt         int      `validate:"lt=10"`
		Lte        int      `validate:"lte=5"`
		URL        string   `validate:"url"`
		Latitude   float64  `validate:"latitude"`
		Longitude  float64  `validate:"longitude"`
		Unique     []string `validate:"unique"`
		BuildingID string   `validate:"required_without=NewName"`
		NewName    string
		Excluded   string `validate:"excluded_with=Required"`
		Other      string `validate:"alpha"`
	}

	verrs := validationErrors(t, sample{
		Min:       "ab",
		Max:       []string{"a", "b", "c"},
		Len:       "abc",
		Lt:        11,
		Lte:       6,
		URL:       "not a url",
		Latitude:  91,
		Longitude: 181,
		Unique:    []string{"Cafe", "Cafe"},
		Excluded:  "x",
		Other:     "123",
	})

	got := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		got[fe.Field()] = formatValidationError(fe)
	}

	assert.Equal(t, "This field is required", got["Required"])
	assert.Equal(t, "Value is too short or small (minimum: 3)", got["Min"])
	assert.Equal(t, "Value is too long or large (maximum: 2)", got["Max"])
	assert.Equal(t, "Must have length of 4", got["Len"])
	assert.Equal(t, "Must be greater than 0", got["Gt"])
	assert.Equal(t, "Must be greater than or equal to 1", got["Gte"])
	assert.Equal(t, "Must be less than 10", got["Lt"])
	assert.Equal(t, "Must be less than or equal to 5", got["Lte"])
	assert.Equal(t, "Must be a valid URL", got["URL"])
	assert.Equal(t, "Must be a valid latitude", got["Latitude"])
	assert.Equal(t, "Must be a valid longitude", got["Longitude"])
	assert.Equal(t, "Must not contain duplicates", got["Unique"])
	assert.Equal(t, "This field is required when NewName is not set", got["BuildingID"])
	assert.Equal(t, "Validation failed for tag: alpha", got["Other"])
	_, hasExcluded := got["Excluded"]
	assert.False(t, hasExcluded, "Required is empty so Excluded may be set")
}

func TestErrorResponseWithoutContext(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	NotFound(c, "Zone not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	response := parseErrorResponse(t, w.Body)
	assert.Equal(t, ErrNotFound, response.Error.Code)
	assert.Empty(t, response.Error.RequestID)
}

func TestErrorConstants(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", ErrNotFound)
	assert.Equal(t, "BAD_REQUEST", ErrBadRequest)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", ErrInternalServer)
	assert.Equal(t, "VALIDATION_ERROR", ErrValidation)
	assert.Equal(t, "INVALID_OPERATION", ErrInvalidOperation)
	assert.Equal(t, "DATABASE_CONNECTION_ERROR", ErrDatabaseConnection)
}
