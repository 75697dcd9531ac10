package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ITGlobers/return-app-pmi-poc/internal/domains/returnrequest/model"
	"github.com/ITGlobers/return-app-pmi-poc/internal/domains/returnrequest/service"
	"github.com/ITGlobers/return-app-pmi-poc/internal/shared/middleware"
	"github.com/ITGlobers/return-app-pmi-poc/internal/shared/response"
	"github.com/ITGlobers/return-app-pmi-poc/pkg/logger"
)

// =====================================================
// RETURN REQUEST HANDLER
// =====================================================

type ReturnRequestHandler struct {
	service service.ReturnRequestService
}

func NewReturnRequestHandler(svc service.ReturnRequestService) *ReturnRequestHandler {
	return &ReturnRequestHandler{service: svc}
}

// RegisterRoutes registers all return request routes
func (h *ReturnRequestHandler) RegisterRoutes(router *gin.RouterGroup) {
	requests := router.Group("/return-requests")
	{
		requests.POST("/independent", h.CreateIndependent)             // POST /v1/return-requests/independent
		requests.GET("/eligible-products", h.ListEligibleProducts)     // GET  /v1/return-requests/eligible-products?email=&search=
		requests.GET("/:id", h.GetReturnRequest)                       // GET  /v1/return-requests/:id
		requests.PATCH("/:id/status", h.UpdateStatus)                  // PATCH /v1/return-requests/:id/status
	}

	router.POST("/orders/:orderId/return-requests", h.CreateOrderBound)

	admin := router.Group("/admin/return-requests", middleware.RequireAdmin())
	{
		admin.PATCH("/:id/verification", h.ResolveVerification) // PATCH /v1/admin/return-requests/:id/verification
	}
}

// =====================================================
// CREATE
// =====================================================

func (h *ReturnRequestHandler) CreateIndependent(c *gin.Context) {
	var input model.CreateReturnRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	created, err := h.service.CreateIndependentReturnRequest(c.Request.Context(), callerFrom(c), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created)
}

func (h *ReturnRequestHandler) CreateOrderBound(c *gin.Context) {
	orderID := c.Param("orderId")

	var input model.CreateReturnRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	created, err := h.service.CreateOrderBoundReturnRequest(c.Request.Context(), callerFrom(c), orderID, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// =====================================================
// READ
// =====================================================

func (h *ReturnRequestHandler) GetReturnRequest(c *gin.Context) {
	request, err := h.service.GetReturnRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, request)
}

func (h *ReturnRequestHandler) ListEligibleProducts(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		// Store users default to their own purchase history
		email = c.GetString(middleware.CtxCallerEmail)
	}

	products, err := h.service.ListEligibleProducts(c.Request.Context(), email, c.Query("search"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, products)
}

// =====================================================
// STATUS
// =====================================================

func (h *ReturnRequestHandler) UpdateStatus(c *gin.Context) {
	var input model.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	request, err := h.service.UpdateReturnRequestStatus(c.Request.Context(), callerFrom(c), c.Param("id"), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, request)
}

func (h *ReturnRequestHandler) ResolveVerification(c *gin.Context) {
	var input model.VerifyItemsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	request, err := h.service.ResolveVerification(c.Request.Context(), callerFrom(c), c.Param("id"), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, request)
}

// =====================================================
// ERROR MAPPING
// =====================================================

// respondError maps the domain error taxonomy onto HTTP. Input and policy
// errors carry their precise message; upstream failures return a generic
// retry-later message while the diagnostic detail goes to the log.
func (h *ReturnRequestHandler) respondError(c *gin.Context, err error) {
	var domainErr *model.ReturnError
	if errors.As(err, &domainErr) {
		switch domainErr.Kind {
		case model.KindInput:
			response.ErrorResponse(c, http.StatusBadRequest, domainErr.Code, domainErr.Message)
		case model.KindPolicy:
			response.ErrorResponse(c, http.StatusUnprocessableEntity, domainErr.Code, domainErr.Message)
		case model.KindNotFound:
			response.ErrorResponse(c, http.StatusNotFound, domainErr.Code, domainErr.Message)
		case model.KindConflict:
			response.ErrorResponse(c, http.StatusConflict, domainErr.Code, domainErr.Message)
		case model.KindConfiguration:
			logger.Error("return app misconfiguration", err)
			response.ErrorResponse(c, http.StatusInternalServerError, domainErr.Code, domainErr.Message)
		case model.KindUpstream:
			logger.Error("upstream failure in return request flow", err)
			response.ErrorResponse(c, http.StatusBadGateway, domainErr.Code, domainErr.Message)
		default:
			logger.Error("unclassified return request error", err)
			response.InternalServerError(c, "Internal server error")
		}
		return
	}

	logger.Error("unexpected return request error", err)
	response.InternalServerError(c, "Internal server error")
}

func callerFrom(c *gin.Context) service.Caller {
	return service.Caller{
		ID:    c.GetString(middleware.CtxCallerID),
		Email: c.GetString(middleware.CtxCallerEmail),
		Role:  c.GetString(middleware.CtxCallerRole),
	}
}
