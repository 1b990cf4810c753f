package handlers

import (
	"sync"

	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidationsOnce sync.Once

// registerValidations adds the custom binding tags used by the request DTOs to gin's validator.
func registerValidations() {
	registerValidationsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("paymentmethod", validatePaymentMethod)
	})
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	return domain.PaymentMethod(fl.Field().Int()).IsValid()
}
