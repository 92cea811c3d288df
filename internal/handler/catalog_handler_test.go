package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/citizen-portal/internal/models"
	appErrors "github.com/noah-isme/citizen-portal/pkg/errors"
	"github.com/noah-isme/citizen-portal/pkg/response"
)

func newTestContext(method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestCatalogHandlerListReturnsBareArray(t *testing.T) {
	handler := NewCatalogHandler(&catalogServiceMock{services: []models.Service{
		{ID: "passport", Name: "Passport", Extra: map[string]interface{}{"fee": "25"}},
	}})
	c, w := newTestContext(http.MethodGet, "/api/services", nil)

	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":"passport","name":"Passport","description":"","category":"","fee":"25"}]`, w.Body.String())
}

func TestCatalogHandlerGetMissingReturnsEmptyObject(t *testing.T) {
	handler := NewCatalogHandler(&catalogServiceMock{})
	c, w := newTestContext(http.MethodGet, "/api/service/nope", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	handler.Get(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestCatalogHandlerUpsertWithoutID(t *testing.T) {
	mock := &catalogServiceMock{}
	handler := NewCatalogHandler(mock)
	c, w := newTestContext(http.MethodPost, "/api/admin/services", []byte(`{"name":"Nameless","category":"Misc"}`))

	handler.Upsert(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body response.ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "id required", body.Error.Message)
	assert.Empty(t, mock.upserted)
}

func TestCatalogHandlerUpsertRejectsNonObject(t *testing.T) {
	handler := NewCatalogHandler(&catalogServiceMock{})
	c, w := newTestContext(http.MethodPost, "/api/admin/services", []byte(`[1,2]`))

	handler.Upsert(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogHandlerUpsertKeepsExtensionFields(t *testing.T) {
	mock := &catalogServiceMock{}
	handler := NewCatalogHandler(mock)
	c, w := newTestContext(http.MethodPost, "/api/admin/services", []byte(`{"id":"tax","name":"Tax","office":"North"}`))

	handler.Upsert(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	require.Len(t, mock.upserted, 1)
	assert.Equal(t, "North", mock.upserted[0].Extra["office"])
}

func TestCatalogHandlerDelete(t *testing.T) {
	mock := &catalogServiceMock{}
	handler := NewCatalogHandler(mock)
	c, w := newTestContext(http.MethodDelete, "/api/admin/services/ghost", nil)
	c.Params = gin.Params{{Key: "id", Value: "ghost"}}

	handler.Delete(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"deleted"}`, w.Body.String())
	assert.Equal(t, []string{"ghost"}, mock.deleted)
}

func TestCatalogHandlerStoreFailure(t *testing.T) {
	handler := NewCatalogHandler(&catalogServiceMock{err: appErrors.ErrStoreUnavailable.Because(errors.New("down"), "failed to list services")})
	c, w := newTestContext(http.MethodGet, "/api/services", nil)

	handler.List(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
