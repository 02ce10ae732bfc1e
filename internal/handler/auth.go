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

// AuthHandler exposes registration, login, profile and KYC endpoints.
type AuthHandler struct {
	service   AuthService
	validator *validator.Validate
}

func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{
		service:   service,
		validator: validator.New(),
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var request domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Хүсэлт буруу байна", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Хүсэлт буруу байна", err)
		return
	}

	auth, err := h.service.Register(r.Context(), &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, auth)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var request domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Хүсэлт буруу байна", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Хүсэлт буруу байна", err)
		return
	}

	auth, err := h.service.Login(r.Context(), &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, auth)
}

// Profile handles GET /user/profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Нэвтрэх шаардлагатай")
		return
	}

	user, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, domain.ProfileResponse{User: user})
}

// SubmitKYC handles POST /user/submit-kyc
func (h *AuthHandler) SubmitKYC(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Нэвтрэх шаардлагатай")
		return
	}

	var request domain.SubmitKYCRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Хүсэлт буруу байна", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Хүсэлт буруу байна", err)
		return
	}

	if err := h.service.SubmitKYC(r.Context(), userID, &request); err != nil {
		writeError(w, err)
		return
	}

	response.SuccessMessage(w, "Хувийн мэдээлэл амжилттай илгээгдлээ", nil)
}

// ApproveKYC handles POST /user/{userId}/approve-kyc (underwriting side).
func (h *AuthHandler) ApproveKYC(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["userId"])
	if err != nil {
		response.BadRequest(w, "Хэрэглэгчийн дугаар буруу байна", err)
		return
	}

	if err := h.service.ApproveKYC(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}

	response.SuccessMessage(w, "Хэрэглэгч баталгаажлаа", nil)
}
