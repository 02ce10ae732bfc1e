package handler

import (
	"errors"
	"net/http"

	customError "github.com/cashly/loan-engine/pkg/errors"
	"github.com/cashly/loan-engine/pkg/response"
)

// writeError maps a service error onto an HTTP status, passing the
// business message through for display.
func writeError(w http.ResponseWriter, err error) {
	var businessErr *customError.BusinessError
	if !errors.As(err, &businessErr) {
		response.InternalServerError(w, "Алдаа гарлаа", err)
		return
	}

	switch businessErr.Code {
	case customError.ErrCodeLoanNotFound,
		customError.ErrCodeUserNotFound,
		customError.ErrCodeWalletNotFound:
		response.NotFound(w, businessErr.Message)
	case customError.ErrCodeInvalidAmount,
		customError.ErrCodeInvalidLoanTerm,
		customError.ErrCodeValidationFailed:
		response.BadRequest(w, businessErr.Message, nil)
	case customError.ErrCodeLoanNotRepayable,
		customError.ErrCodeLoanNotExtendable,
		customError.ErrCodeExtensionLimit,
		customError.ErrCodeLoanNotPending,
		customError.ErrCodeInsufficientBalance:
		response.UnprocessableEntity(w, businessErr.Message, nil)
	case customError.ErrCodePhoneAlreadyTaken:
		response.Conflict(w, businessErr.Message)
	case customError.ErrCodeInvalidCredentials:
		response.Unauthorized(w, businessErr.Message)
	default:
		response.InternalServerError(w, "Алдаа гарлаа", businessErr)
	}
}
