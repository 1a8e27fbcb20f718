package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-crm-api/internal/service"
	"github.com/noah-isme/academy-crm-api/internal/store"
)

type responseEnvelope struct {
	Data       json.RawMessage        `json:"data"`
	Error      map[string]interface{} `json:"error"`
	Pagination map[string]interface{} `json:"pagination"`
}

func newHandlerStore() *store.Store {
	return store.NewSeeded(store.Config{DefaultInvoiceAmount: 500000, InvoiceDueDay: 5})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func newStudentHandler() *StudentHandler {
	st := newHandlerStore()
	return NewStudentHandler(
		service.NewStudentService(st, nil, nil),
		nil,
		nil,
	)
}

func TestStudentHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newStudentHandler()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/students?status=Active", nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.EqualValues(t, 8, envelope.Pagination["total_count"])
}

func TestStudentHandlerGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newStudentHandler()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/students/5", nil)
	c.Params = gin.Params{{Key: "id", Value: "5"}}

	handler.Get(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Contains(t, string(envelope.Data), "Odil Ahmedov Jr.")
}

func TestStudentHandlerGetInvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newStudentHandler()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/students/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	handler.Get(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStudentHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newStudentHandler()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/students/999", nil)
	c.Params = gin.Params{{Key: "id", Value: "999"}}

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStudentHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newStudentHandler()

	body := `{"name":"Test Player","dob":"2015-03-10","group_id":2,"phone":"+998901112233","email":"player@example.com","status":"Active","joined_date":"2024-07-01"}`
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/students", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Contains(t, string(envelope.Data), `"id":11`)
}

func TestStudentHandlerCreateMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newStudentHandler()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/students", strings.NewReader("{"))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStudentHandlerReassign(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newStudentHandler()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/students/1/group", strings.NewReader(`{"group_id":4}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	handler.Reassign(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Contains(t, string(envelope.Data), "Goalkeepers")
}
