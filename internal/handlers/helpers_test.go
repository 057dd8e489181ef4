package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	apierrors "github.com/stwalsh4118/icyapa/internal/errors"
	"github.com/stwalsh4118/icyapa/internal/id"
	"github.com/stwalsh4118/icyapa/internal/logger"
	"github.com/stwalsh4118/icyapa/internal/middleware"
	"github.com/stwalsh4118/icyapa/internal/repository"
	"github.com/stwalsh4118/icyapa/internal/seed"
	"github.com/stwalsh4118/icyapa/internal/services"
)

// testAPI is a router over a freshly seeded in-memory directory.
type testAPI struct {
	router *gin.Engine
	store  *repository.DirectoryStore
}

// freshIDs yields prefix-new-1, prefix-new-2, ... which never collide with
// the seeded records.
func freshIDs() id.Generator {
	next := 0
	return func(prefix string) (string, error) {
		next++
		return fmt.Sprintf("%s-new-%d", prefix, next), nil
	}
}

// setupTestAPI wires the full handler stack the way cmd/server does.
func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ds := seed.Default()
	clock := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	store := repository.NewDirectoryStore(ds,
		repository.WithClock(func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}),
		repository.WithIDGenerator(id.Sequence()),
	)
	ads := repository.NewAdCatalog(ds.Ads)
	log := logger.Nop()
	newID := freshIDs()

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))

	RegisterRoutes(router, Handlers{
		Health:     NewHealthHandler(nil, store, "test", "embedded"),
		Directory:  NewDirectoryHandler(services.NewDirectoryService(store, ads, log)),
		Submission: NewSubmissionHandler(services.NewSubmissionService(store, newID, log)),
		Admin:      NewAdminHandler(services.NewAdminService(store, newID, log)),
	})

	return &testAPI{router: router, store: store}
}

// do sends a request; body is JSON-encoded unless it is a string.
func (a *testAPI) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(middleware.RequestIDHeader, "req-test")

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apierrors.ErrorDetail {
	t.Helper()
	return decode[apierrors.ErrorResponse](t, w).Error
}
