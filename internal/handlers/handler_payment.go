package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	portssvc "github.com/SscSPs/customer_payment_service/internal/core/ports/services"
	"github.com/SscSPs/customer_payment_service/internal/dto"
	"github.com/SscSPs/customer_payment_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests for payments and customer-centric views.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{
		paymentService: ps,
	}
}

// actingUser returns the authenticated subject, or the system user when auth is disabled.
func actingUser(c *gin.Context) string {
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		return userID
	}
	return domain.SystemUser
}

func bindIdempotencyKey(c *gin.Context) (string, bool) {
	var h dto.IdempotencyHeader
	if err := c.ShouldBindHeader(&h); err != nil {
		writeBindError(c, "Idempotency-Key header", err)
		return "", false
	}
	return h.Key, true
}

// createPayment godoc
// @Summary Record a single-contract payment
// @Description Records a payment against one contract. Rejects repeats of an identical payment made the same day.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   Idempotency-Key header string false "Client token; a retry with the same token returns the original payment"
// @Param   payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error, invalid amount or contract not active"
// @Failure 404 {object} dto.ErrorResponse "Customer or contract not found"
// @Failure 409 {object} dto.ErrorResponse "Duplicate payment"
// @Failure 503 {object} dto.ErrorResponse "Concurrent write conflict, resubmit"
// @Failure 500 {object} dto.ErrorResponse "Internal error or dependent service unavailable"
// @Security BearerAuth
// @Router / [post]
func (h *paymentHandler) createPayment(c *gin.Context) {
	key, ok := bindIdempotencyKey(c)
	if !ok {
		return
	}

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, "request body", err)
		return
	}

	userID := actingUser(c)
	payment, err := h.paymentService.CreatePayment(c.Request.Context(), req, key, userID)
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Payment recorded", slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(*payment))
}

// createMultiContractPayment godoc
// @Summary Record a payment split across contracts
// @Description Records one payment allocated to one or more contracts of the same customer. All lines are recorded or none.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   Idempotency-Key header string false "Client token; a retry with the same token returns the original payment"
// @Param   payment body dto.CreateMultiContractPaymentRequest true "Payment and its allocations"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error, invalid amount or contract not active"
// @Failure 404 {object} dto.ErrorResponse "Customer or contract not found"
// @Failure 409 {object} dto.ErrorResponse "Idempotency key already used"
// @Failure 503 {object} dto.ErrorResponse "Concurrent write conflict, resubmit"
// @Failure 500 {object} dto.ErrorResponse "Internal error or dependent service unavailable"
// @Security BearerAuth
// @Router /multiple-contracts [post]
func (h *paymentHandler) createMultiContractPayment(c *gin.Context) {
	key, ok := bindIdempotencyKey(c)
	if !ok {
		return
	}

	var req dto.CreateMultiContractPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, "request body", err)
		return
	}

	userID := actingUser(c)
	payment, err := h.paymentService.CreateMultiContractPayment(c.Request.Context(), req, key, userID)
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Multi-contract payment recorded",
		slog.String("payment_id", payment.PaymentID), slog.Int("lines", len(payment.Allocations)))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(*payment))
}

// listPayments godoc
// @Summary List payments
// @Description Lists payments newest first using token pagination
// @Tags payments
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} dto.ErrorResponse "Failed to list payments"
// @Security BearerAuth
// @Router / [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		writeBindError(c, "query parameters", err)
		return
	}

	resp, err := h.paymentService.ListPayments(c.Request.Context(), params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getPayment godoc
// @Summary Get a payment
// @Tags payments
// @Produce  json
// @Param   id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve payment"
// @Security BearerAuth
// @Router /payment/{id} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	payment, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(*payment))
}

// listPaymentAllocations godoc
// @Summary List the contract lines of a payment
// @Tags payments
// @Produce  json
// @Param   id path string true "Payment ID"
// @Success 200 {array} dto.AllocationResponse
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Security BearerAuth
// @Router /payment/{id}/contract-payments [get]
func (h *paymentHandler) listPaymentAllocations(c *gin.Context) {
	lines, err := h.paymentService.ListAllocationsByPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAllocationResponses(lines))
}

// listCustomerPayments godoc
// @Summary List a customer's payments
// @Tags customers
// @Produce  json
// @Param   customerId path int true "Customer ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Security BearerAuth
// @Router /customer/{customerId} [get]
func (h *paymentHandler) listCustomerPayments(c *gin.Context) {
	customerID, ok := int64Param(c, "customerId")
	if !ok {
		return
	}
	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		writeBindError(c, "query parameters", err)
		return
	}

	resp, err := h.paymentService.ListPaymentsByCustomer(c.Request.Context(), customerID, params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listActiveContracts godoc
// @Summary List a customer's open contracts with balances
// @Description Returns PENDING and ACTIVE contracts with total paid and total due
// @Tags customers
// @Produce  json
// @Param   customerId path int true "Customer ID"
// @Success 200 {array} dto.ContractBalanceResponse
// @Failure 500 {object} dto.ErrorResponse "Contract service unavailable"
// @Security BearerAuth
// @Router /customer/{customerId}/active-contracts [get]
func (h *paymentHandler) listActiveContracts(c *gin.Context) {
	customerID, ok := int64Param(c, "customerId")
	if !ok {
		return
	}

	balances, err := h.paymentService.ListActiveContractsByCustomer(c.Request.Context(), customerID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToContractBalanceResponses(balances))
}
