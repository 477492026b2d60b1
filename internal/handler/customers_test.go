package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/dto"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/middleware"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/service"
)

type stubCustomerService struct {
	created   *dto.CreateCustomerRequest
	createErr error
	byID      map[string]*dto.CustomerResponse
}

func newStubCustomerService() *stubCustomerService {
	return &stubCustomerService{byID: make(map[string]*dto.CustomerResponse)}
}

func (s *stubCustomerService) Create(_ context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = &req
	resp := &dto.CustomerResponse{
		ID:          uuid.NewString(),
		Name:        req.Name,
		ContactInfo: req.ContactInfo,
		Status:      req.Status,
		ShopID:      req.ShopID,
	}
	if resp.Status == "" {
		resp.Status = "active"
	}
	s.byID[resp.ID] = resp
	return resp, nil
}

func (s *stubCustomerService) GetByID(_ context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	if resp, ok := s.byID[id.String()]; ok {
		return resp, nil
	}
	return nil, service.ErrNotFound
}

func (s *stubCustomerService) List(_ context.Context) ([]dto.CustomerResponse, error) {
	return nil, nil
}

func (s *stubCustomerService) Search(_ context.Context, _ dto.CustomerFilter) ([]dto.CustomerResponse, error) {
	return nil, nil
}

func (s *stubCustomerService) Update(_ context.Context, id uuid.UUID, _ dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	return s.GetByID(context.Background(), id)
}

func (s *stubCustomerService) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.byID[id.String()]; !ok {
		return service.ErrNotFound
	}
	delete(s.byID, id.String())
	return nil
}

var _ service.CustomerService = (*stubCustomerService)(nil)

func customersTestRouter(svc *stubCustomerService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCustomersHandler(svc, nil)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.POST("/customers", h.Create)
	r.GET("/customers/:id", h.GetByID)
	r.DELETE("/customers/:id", h.Delete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCustomersCreate_Valid(t *testing.T) {
	svc := newStubCustomerService()
	r := customersTestRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/customers", gin.H{
		"name":         "Abu Khaled",
		"contact_info": "0599-000-000",
		"shop_id":      uuid.NewString(),
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp dto.CustomerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Abu Khaled", resp.Name)
	assert.Equal(t, "active", resp.Status)
	require.NotNil(t, svc.created)
}

func TestCustomersCreate_ValidationEnvelope(t *testing.T) {
	svc := newStubCustomerService()
	r := customersTestRouter(svc)

	// missing contact_info, shop_id not a uuid
	w := doJSON(t, r, http.MethodPost, "/customers", gin.H{
		"name":    "x",
		"shop_id": "not-a-uuid",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var env struct {
		Detail string            `json:"detail"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "Validation failed", env.Detail)
	assert.Equal(t, "required", env.Fields["ContactInfo"])
	assert.Equal(t, "uuid", env.Fields["ShopID"])
	assert.Nil(t, svc.created, "invalid payload must not reach the service")
}

func TestCustomersCreate_MalformedJSON(t *testing.T) {
	svc := newStubCustomerService()
	r := customersTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewBufferString(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid JSON")
}

// Uniqueness violations and other driver faults must surface as a generic
// 500, never as a 400 echoing the raw error.
func TestCustomersCreate_OpaqueErrorHiddenBehind500(t *testing.T) {
	svc := newStubCustomerService()
	svc.createErr = errors.New(`ERROR: duplicate key value violates unique constraint "idx_customers_name" (SQLSTATE 23505)`)
	r := customersTestRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/customers", gin.H{
		"name":         "Abu Khaled",
		"contact_info": "0599-000-000",
		"shop_id":      uuid.NewString(),
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "duplicate key")
	assert.NotContains(t, w.Body.String(), "SQLSTATE")
	assert.Contains(t, w.Body.String(), "Internal Server Error")
}

func TestCustomersGetByID_InvalidID(t *testing.T) {
	r := customersTestRouter(newStubCustomerService())

	w := doJSON(t, r, http.MethodGet, "/customers/not-a-uuid", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid ID")
}

func TestCustomersGetByID_NotFoundMapsTo404(t *testing.T) {
	r := customersTestRouter(newStubCustomerService())

	w := doJSON(t, r, http.MethodGet, "/customers/"+uuid.NewString(), nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Not found")
}

func TestCustomersDelete_SuccessEnvelope(t *testing.T) {
	svc := newStubCustomerService()
	r := customersTestRouter(svc)

	created, err := svc.Create(context.Background(), dto.CreateCustomerRequest{
		Name: "n", ContactInfo: "c", ShopID: uuid.NewString(),
	})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodDelete, "/customers/"+created.ID, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true}`, w.Body.String())
}
