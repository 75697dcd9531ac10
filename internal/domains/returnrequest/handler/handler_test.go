package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ITGlobers/return-app-pmi-poc/internal/domains/returnrequest/model"
	"github.com/ITGlobers/return-app-pmi-poc/internal/domains/returnrequest/service"
	"github.com/ITGlobers/return-app-pmi-poc/internal/shared/middleware"
)

// stubService lets each test script the service layer.
type stubService struct {
	createIndependent func(service.Caller, model.CreateReturnRequestInput) (*model.ReturnRequestCreated, error)
	createOrderBound  func(service.Caller, string, model.CreateReturnRequestInput) (*model.ReturnRequestCreated, error)
	get               func(string) (*model.ReturnRequest, error)
	listProducts      func(string, string) ([]model.ProductSummary, error)
	updateStatus      func(service.Caller, string, model.UpdateStatusInput) (*model.ReturnRequest, error)
	resolve           func(service.Caller, string, model.VerifyItemsInput) (*model.ReturnRequest, error)
}

func (s *stubService) CreateIndependentReturnRequest(_ context.Context, caller service.Caller, input model.CreateReturnRequestInput) (*model.ReturnRequestCreated, error) {
	return s.createIndependent(caller, input)
}

func (s *stubService) CreateOrderBoundReturnRequest(_ context.Context, caller service.Caller, orderID string, input model.CreateReturnRequestInput) (*model.ReturnRequestCreated, error) {
	return s.createOrderBound(caller, orderID, input)
}

func (s *stubService) GetReturnRequest(_ context.Context, id string) (*model.ReturnRequest, error) {
	return s.get(id)
}

func (s *stubService) ListEligibleProducts(_ context.Context, email, search string) ([]model.ProductSummary, error) {
	return s.listProducts(email, search)
}

func (s *stubService) UpdateReturnRequestStatus(_ context.Context, caller service.Caller, id string, input model.UpdateStatusInput) (*model.ReturnRequest, error) {
	return s.updateStatus(caller, id, input)
}

func (s *stubService) ResolveVerification(_ context.Context, caller service.Caller, id string, input model.VerifyItemsInput) (*model.ReturnRequest, error) {
	return s.resolve(caller, id, input)
}

// setCaller simulates the auth middleware for a given identity.
func setCaller(id, email, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxCallerID, id)
		c.Set(middleware.CtxCallerEmail, email)
		c.Set(middleware.CtxCallerRole, role)
		c.Next()
	}
}

func setupRouter(svc service.ReturnRequestService, callerRole string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	api := router.Group("/api/v1")
	api.Use(setCaller("user-1", "buyer@example.com", callerRole))
	NewReturnRequestHandler(svc).RegisterRoutes(api)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateIndependentHandler(t *testing.T) {
	svc := &stubService{
		createIndependent: func(caller service.Caller, input model.CreateReturnRequestInput) (*model.ReturnRequestCreated, error) {
			assert.Equal(t, "user-1", caller.ID)
			assert.Equal(t, "buyer@example.com", caller.Email)
			assert.Equal(t, "en", input.Locale)
			return &model.ReturnRequestCreated{ReturnRequestID: "doc-1"}, nil
		},
	}
	router := setupRouter(svc, middleware.RoleStoreUser)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/return-requests/independent", map[string]interface{}{
		"locale": "en",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"returnRequestId":"doc-1"`)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestCreateIndependentHandlerRejectsBadJSON(t *testing.T) {
	router := setupRouter(&stubService{}, middleware.RoleStoreUser)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/return-requests/independent", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderBoundHandlerPassesOrderID(t *testing.T) {
	svc := &stubService{
		createOrderBound: func(_ service.Caller, orderID string, _ model.CreateReturnRequestInput) (*model.ReturnRequestCreated, error) {
			assert.Equal(t, "900", orderID)
			return &model.ReturnRequestCreated{ReturnRequestID: "doc-2"}, nil
		},
	}
	router := setupRouter(svc, middleware.RoleStoreUser)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/orders/900/return-requests", map[string]interface{}{"locale": "en"})

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestErrorKindMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"input error", model.NewInputError(model.ErrCodeMissingSkuID, "missing sku"), http.StatusBadRequest, model.ErrCodeMissingSkuID},
		{"policy error", model.NewPolicyError(model.ErrCodePickupPointsDisabled, "disabled"), http.StatusUnprocessableEntity, model.ErrCodePickupPointsDisabled},
		{"not found", model.NewNotFoundError("doc-9"), http.StatusNotFound, model.ErrCodeRequestNotFound},
		{"conflict", model.NewConflictError("doc-9"), http.StatusConflict, model.ErrCodeStatusConflict},
		{"upstream", model.NewUpstreamError("oms down", nil), http.StatusBadGateway, model.ErrCodeUpstreamFailure},
		{"configuration", model.NewConfigurationError("no settings", nil), http.StatusInternalServerError, model.ErrCodeSettingsMissing},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubService{
				createIndependent: func(service.Caller, model.CreateReturnRequestInput) (*model.ReturnRequestCreated, error) {
					return nil, tc.err
				},
			}
			router := setupRouter(svc, middleware.RoleStoreUser)

			rec := doJSON(t, router, http.MethodPost, "/api/v1/return-requests/independent", map[string]interface{}{"locale": "en"})

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.wantCode)
		})
	}
}

func TestGetReturnRequestHandler(t *testing.T) {
	svc := &stubService{
		get: func(id string) (*model.ReturnRequest, error) {
			assert.Equal(t, "doc-1", id)
			return &model.ReturnRequest{ID: "doc-1", SequenceNumber: "IND-00001", Status: model.StatusNew}, nil
		},
	}
	router := setupRouter(svc, middleware.RoleStoreUser)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/return-requests/doc-1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sequenceNumber":"IND-00001"`)
}

func TestListEligibleProductsDefaultsToCallerEmail(t *testing.T) {
	svc := &stubService{
		listProducts: func(email, search string) ([]model.ProductSummary, error) {
			assert.Equal(t, "buyer@example.com", email)
			assert.Equal(t, "sweater", search)
			return []model.ProductSummary{}, nil
		},
	}
	router := setupRouter(svc, middleware.RoleStoreUser)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/return-requests/eligible-products?search=sweater", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateStatusHandler(t *testing.T) {
	svc := &stubService{
		updateStatus: func(caller service.Caller, id string, input model.UpdateStatusInput) (*model.ReturnRequest, error) {
			assert.Equal(t, "doc-1", id)
			assert.Equal(t, "processing", input.Status)
			return &model.ReturnRequest{ID: id, Status: model.StatusProcessing}, nil
		},
	}
	router := setupRouter(svc, middleware.RoleStoreUser)

	rec := doJSON(t, router, http.MethodPatch, "/api/v1/return-requests/doc-1/status", map[string]interface{}{
		"status": "processing",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"processing"`)
}

func TestResolveVerificationRequiresAdmin(t *testing.T) {
	svc := &stubService{
		resolve: func(_ service.Caller, id string, _ model.VerifyItemsInput) (*model.ReturnRequest, error) {
			return &model.ReturnRequest{ID: id, Status: model.StatusPackageVerified}, nil
		},
	}

	body := map[string]interface{}{
		"items": []map[string]interface{}{{"skuId": "55", "approved": true}},
	}

	storeRouter := setupRouter(svc, middleware.RoleStoreUser)
	rec := doJSON(t, storeRouter, http.MethodPatch, "/api/v1/admin/return-requests/doc-1/verification", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminRouter := setupRouter(svc, middleware.RoleAdminUser)
	rec = doJSON(t, adminRouter, http.MethodPatch, "/api/v1/admin/return-requests/doc-1/verification", body)
	assert.Equal(t, http.StatusOK, rec.Code)
}
