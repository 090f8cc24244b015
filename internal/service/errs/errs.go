package errs

import (
	"errors"
	"fmt"
)

// Code is a stable machine-readable identifier for a business error,
// suitable for API mapping by the transport layer.
type Code string

const (
	CodeValidation           Code = "VALIDATION_ERROR"
	CodeInvalidAddress       Code = "INVALID_ADDRESS"
	CodeInsufficientStock    Code = "INSUFFICIENT_STOCK"
	CodeIllegalTransition    Code = "ILLEGAL_TRANSITION"
	CodeProductNotFound      Code = "PRODUCT_NOT_FOUND"
	CodeOrderNotFound        Code = "ORDER_NOT_FOUND"
	CodeDiscountExceedsTotal Code = "DISCOUNT_EXCEEDS_TOTAL"
)

// BusinessError is a recoverable, user-presentable failure of a business
// rule. Anything that is not a BusinessError is treated as an
// infrastructure error and reported to callers as retryable.
type BusinessError struct {
	Code    Code
	Message string
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New creates a BusinessError with the given code and message.
func New(code Code, format string, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewInsufficientStock reports a failed stock reservation for a product.
func NewInsufficientStock(productID int64, requested, available int) *BusinessError {
	return New(
		CodeInsufficientStock,
		"product %d has insufficient stock: requested %d, available %d",
		productID, requested, available,
	)
}

// NewIllegalTransition reports a rejected order status transition.
func NewIllegalTransition(from, to string) *BusinessError {
	return New(CodeIllegalTransition, "illegal status transition from %s to %s", from, to)
}

// NewOrderNotFound reports an unknown order id.
func NewOrderNotFound(orderID int64) *BusinessError {
	return New(CodeOrderNotFound, "order %d not found", orderID)
}

// NewProductNotFound reports an unknown or inactive product id.
func NewProductNotFound(productID int64) *BusinessError {
	return New(CodeProductNotFound, "product %d not found or not available", productID)
}

// IsBusiness reports whether err (or anything it wraps) is a BusinessError.
func IsBusiness(err error) bool {
	var be *BusinessError
	return errors.As(err, &be)
}

// CodeOf extracts the business error code from err, or "" if err is not a
// business error.
func CodeOf(err error) Code {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}

	return ""
}
