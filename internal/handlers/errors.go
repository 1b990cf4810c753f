package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/customer_payment_service/internal/apperrors"
	"github.com/SscSPs/customer_payment_service/internal/dto"
	"github.com/SscSPs/customer_payment_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// writeError classifies err and writes the {code, message} body.
// 4xx are logged at warn, everything else at error.
func writeError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code, status := apperrors.Classify(err)

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.Int("code", code), slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.Int("code", code), slog.String("error", err.Error()))
	}

	c.AbortWithStatusJSON(status, dto.ErrorResponse{Code: code, Message: errorMessage(err, status)})
}

// errorMessage hides internals of 5xx failures except the transient conflict, which the
// client is expected to act on.
func errorMessage(err error, status int) string {
	switch {
	case errors.Is(err, apperrors.ErrTransient):
		return apperrors.ErrTransient.Error()
	case errors.Is(err, apperrors.ErrUnavailable):
		return apperrors.ErrUnavailable.Error()
	case status >= http.StatusInternalServerError:
		return "Internal server error"
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Err == nil {
		return appErr.Message
	}
	return err.Error()
}

// writeBindError reports a malformed body, header or query as a validation failure.
func writeBindError(c *gin.Context, what string, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    apperrors.CodeValidation,
		Message: "Invalid " + what + ": " + err.Error(),
	})
}

// int64Param reads a positive numeric path parameter, writing a validation error when it is not one.
func int64Param(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeBindError(c, "path parameter "+name, errors.New("must be a positive integer, got "+strconv.Quote(raw)))
		return 0, false
	}
	return id, true
}
