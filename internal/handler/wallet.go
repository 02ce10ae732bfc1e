package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/cashly/loan-engine/internal/domain"
	"github.com/cashly/loan-engine/pkg/response"
)

// WalletHandler exposes the wallet and transaction history endpoints.
type WalletHandler struct {
	service   WalletService
	validator *validator.Validate
}

func NewWalletHandler(service WalletService) *WalletHandler {
	return &WalletHandler{
		service:   service,
		validator: validator.New(),
	}
}

// Balance handles GET /wallet/balance
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Нэвтрэх шаардлагатай")
		return
	}

	wallet, err := h.service.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, domain.WalletResponse{
		Wallet:           wallet,
		AvailableBalance: wallet.AvailableBalance(),
	})
}

// Deposit handles POST /wallet/deposit
func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Нэвтрэх шаардлагатай")
		return
	}

	var request domain.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Хүсэлт буруу байна", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Хүсэлт буруу байна", err)
		return
	}

	wallet, err := h.service.Deposit(r.Context(), userID, request.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	response.SuccessMessage(w, "Цэнэглэлт амжилттай", domain.WalletResponse{
		Wallet:           wallet,
		AvailableBalance: wallet.AvailableBalance(),
	})
}

// Withdraw handles POST /wallet/request-withdrawal
func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Нэвтрэх шаардлагатай")
		return
	}

	var request domain.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Хүсэлт буруу байна", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Хүсэлт буруу байна", err)
		return
	}

	wallet, err := h.service.Withdraw(r.Context(), userID, &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.SuccessMessage(w, "Таталтын хүсэлт илгээгдлээ", domain.WalletResponse{
		Wallet:           wallet,
		AvailableBalance: wallet.AvailableBalance(),
	})
}

// Transactions handles GET /transaction/history
func (h *WalletHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Нэвтрэх шаардлагатай")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	txns, err := h.service.Transactions(r.Context(), userID, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, domain.TransactionListResponse{Transactions: txns})
}
