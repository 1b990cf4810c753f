package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/customer_payment_service/internal/core/ports/services"
	"github.com/SscSPs/customer_payment_service/internal/dto"
	"github.com/gin-gonic/gin"
)

// contractHandler serves the contract-centric views of the ledger.
type contractHandler struct {
	paymentService portssvc.PaymentSvcFacade
	balances       portssvc.BalanceResolverSvc
}

func newContractHandler(ps portssvc.PaymentSvcFacade, bs portssvc.BalanceResolverSvc) *contractHandler {
	return &contractHandler{paymentService: ps, balances: bs}
}

// listContractPayments godoc
// @Summary List payments touching a contract
// @Tags contracts
// @Produce  json
// @Param   contractId path int true "Contract ID"
// @Success 200 {array} dto.PaymentResponse
// @Failure 404 {object} dto.ErrorResponse "Contract not found"
// @Security BearerAuth
// @Router /contract/{contractId} [get]
func (h *contractHandler) listContractPayments(c *gin.Context) {
	contractID, ok := int64Param(c, "contractId")
	if !ok {
		return
	}

	payments, err := h.paymentService.ListPaymentsByContract(c.Request.Context(), contractID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponses(payments))
}

// getPaymentInfo godoc
// @Summary Get a contract's payment summary
// @Description Total value, total paid, total due and the customer's display name
// @Tags contracts
// @Produce  json
// @Param   contractId path int true "Contract ID"
// @Success 200 {object} dto.ContractPaymentInfoResponse
// @Failure 404 {object} dto.ErrorResponse "Contract not found"
// @Failure 500 {object} dto.ErrorResponse "Contract service unavailable"
// @Security BearerAuth
// @Router /contract/{contractId}/payment-info [get]
func (h *contractHandler) getPaymentInfo(c *gin.Context) {
	contractID, ok := int64Param(c, "contractId")
	if !ok {
		return
	}

	info, err := h.paymentService.GetContractPaymentInfo(c.Request.Context(), contractID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToContractPaymentInfoResponse(*info))
}

// getTotalPaid godoc
// @Summary Get the amount paid against a contract
// @Tags contracts
// @Produce  json
// @Param   contractId path int true "Contract ID"
// @Success 200 {object} dto.AmountResponse
// @Security BearerAuth
// @Router /contract/{contractId}/total-paid [get]
func (h *contractHandler) getTotalPaid(c *gin.Context) {
	contractID, ok := int64Param(c, "contractId")
	if !ok {
		return
	}

	total, err := h.balances.TotalPaid(c.Request.Context(), contractID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AmountResponse{ContractID: contractID, Amount: total})
}

// getRemainingAmount godoc
// @Summary Get the amount still due on a contract
// @Tags contracts
// @Produce  json
// @Param   contractId path int true "Contract ID"
// @Success 200 {object} dto.AmountResponse
// @Failure 404 {object} dto.ErrorResponse "Contract not found"
// @Failure 500 {object} dto.ErrorResponse "Contract service unavailable"
// @Security BearerAuth
// @Router /contract/{contractId}/remaining-amount [get]
func (h *contractHandler) getRemainingAmount(c *gin.Context) {
	contractID, ok := int64Param(c, "contractId")
	if !ok {
		return
	}

	remaining, err := h.balances.Remaining(c.Request.Context(), contractID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AmountResponse{ContractID: contractID, Amount: remaining})
}

// listContractAllocations godoc
// @Summary List the payment lines recorded against a contract
// @Tags contracts
// @Produce  json
// @Param   contractId path int true "Contract ID"
// @Success 200 {array} dto.AllocationResponse
// @Failure 404 {object} dto.ErrorResponse "Contract not found"
// @Security BearerAuth
// @Router /contract/{contractId}/contract-payments [get]
func (h *contractHandler) listContractAllocations(c *gin.Context) {
	contractID, ok := int64Param(c, "contractId")
	if !ok {
		return
	}

	lines, err := h.paymentService.ListAllocationsByContract(c.Request.Context(), contractID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAllocationResponses(lines))
}
