package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/cashly/loan-engine/internal/domain"
	"github.com/cashly/loan-engine/pkg/response"
)

// LoanHandler exposes the loan endpoints the mobile client calls.
type LoanHandler struct {
	service   LoanService
	validator *validator.Validate
}

func NewLoanHandler(service LoanService) *LoanHandler {
	return &LoanHandler{
		service:   service,
		validator: validator.New(),
	}
}

// Apply handles POST /loan/apply
func (h *LoanHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Нэвтрэх шаардлагатай")
		return
	}

	var request domain.ApplyLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Хүсэлт буруу байна", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Хүсэлт буруу байна", err)
		return
	}

	loan, err := h.service.Apply(r.Context(), userID, &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, domain.LoanResponse{Loan: loan})
}

// MyLoans handles GET /loan/my-loans
func (h *LoanHandler) MyLoans(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Нэвтрэх шаардлагатай")
		return
	}

	loans, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, domain.LoanListResponse{Loans: loans})
}

// ActiveLoans handles GET /loan/active-loans
func (h *LoanHandler) ActiveLoans(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Нэвтрэх шаардлагатай")
		return
	}

	loans, err := h.service.ListActiveByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, domain.LoanListResponse{Loans: loans})
}

// Get handles GET /loan/{loanId}
func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	loanID, err := loanIDFromPath(r)
	if err != nil {
		response.BadRequest(w, "Зээлийн дугаар буруу байна", err)
		return
	}

	loan, err := h.service.Get(r.Context(), loanID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, domain.LoanResponse{Loan: loan})
}

// Extend handles POST /loan/extend/{loanId}
func (h *LoanHandler) Extend(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Нэвтрэх шаардлагатай")
		return
	}

	loanID, err := loanIDFromPath(r)
	if err != nil {
		response.BadRequest(w, "Зээлийн дугаар буруу байна", err)
		return
	}

	loan, err := h.service.Extend(r.Context(), userID, loanID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.SuccessMessage(w, "Зээл амжилттай сунгагдлаа", domain.LoanResponse{Loan: loan})
}

// Repay handles POST /loan/repay/{loanId}
func (h *LoanHandler) Repay(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Нэвтрэх шаардлагатай")
		return
	}

	loanID, err := loanIDFromPath(r)
	if err != nil {
		response.BadRequest(w, "Зээлийн дугаар буруу байна", err)
		return
	}

	var request domain.RepayLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Хүсэлт буруу байна", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Хүсэлт буруу байна", err)
		return
	}

	loan, err := h.service.Repay(r.Context(), userID, loanID, request.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	response.SuccessMessage(w, "Төлбөр амжилттай төлөгдлөө", domain.LoanResponse{Loan: loan})
}

// Approve handles POST /loan/{loanId}/approve (underwriting side).
func (h *LoanHandler) Approve(w http.ResponseWriter, r *http.Request) {
	loanID, err := loanIDFromPath(r)
	if err != nil {
		response.BadRequest(w, "Зээлийн дугаар буруу байна", err)
		return
	}

	loan, err := h.service.Approve(r.Context(), loanID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, domain.LoanResponse{Loan: loan})
}

// Reject handles POST /loan/{loanId}/reject (underwriting side).
func (h *LoanHandler) Reject(w http.ResponseWriter, r *http.Request) {
	loanID, err := loanIDFromPath(r)
	if err != nil {
		response.BadRequest(w, "Зээлийн дугаар буруу байна", err)
		return
	}

	loan, err := h.service.Reject(r.Context(), loanID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, domain.LoanResponse{Loan: loan})
}

func loanIDFromPath(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)["loanId"])
}
