package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cashly/loan-engine/internal/config"
	"github.com/cashly/loan-engine/internal/domain"
	"github.com/cashly/loan-engine/internal/repository"
	customError "github.com/cashly/loan-engine/pkg/errors"
	"github.com/cashly/loan-engine/pkg/validate"
)

// AuthService handles registration, login and the KYC state of a user.
type AuthService struct {
	userRepo   repository.UserRepository
	walletRepo repository.WalletRepository
	config     *config.Config
}

func NewAuthService(
	userRepo repository.UserRepository,
	walletRepo repository.WalletRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		walletRepo: walletRepo,
		config:     cfg,
	}
}

// Register creates a user with an empty wallet. New accounts start
// without KYC and without credit; the credit limit is granted on KYC
// approval.
func (s *AuthService) Register(ctx context.Context, request *domain.RegisterRequest) (*domain.AuthResponse, error) {
	if !validate.Phone(request.Phone) {
		return nil, customError.WrapValidationFailed("Утасны дугаар буруу байна (8 орон)")
	}
	if !validate.Name(request.Name) {
		return nil, customError.WrapValidationFailed("Нэр багадаа 2 тэмдэгттэй байх ёстой")
	}
	if !validate.Password(request.Password) {
		return nil, customError.WrapValidationFailed("Нууц үг багадаа 6 тэмдэгттэй байх ёстой")
	}
	if !validate.PasswordMatch(request.Password, request.ConfirmPassword) {
		return nil, customError.WrapValidationFailed("Нууц үг таарахгүй байна")
	}

	phone := normalizePhone(request.Phone)

	if _, err := s.userRepo.GetByPhone(ctx, phone); err == nil {
		return nil, customError.WrapPhoneAlreadyTaken(phone)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, customError.WrapValidationFailed("Нууц үг боловсруулахад алдаа гарлаа")
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Phone:        phone,
		Name:         request.Name,
		PasswordHash: string(hash),
		KYCStatus:    domain.KYCStatusNotSubmitted,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	wallet := &domain.Wallet{
		ID:        uuid.New(),
		UserID:    user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResponse{Token: token, User: user}, nil
}

// Login checks credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, request *domain.LoginRequest) (*domain.AuthResponse, error) {
	user, err := s.userRepo.GetByPhone(ctx, normalizePhone(request.Phone))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapInvalidCredentials()
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		return nil, customError.WrapInvalidCredentials()
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResponse{Token: token, User: user}, nil
}

// Profile returns the user record.
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapUserNotFound(userID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return user, nil
}

// SubmitKYC validates the KYC form, stores the register number on the
// user and puts them into review.
func (s *AuthService) SubmitKYC(ctx context.Context, userID uuid.UUID, request *domain.SubmitKYCRequest) error {
	if !validate.Register(request.RegisterNumber) {
		return customError.WrapValidationFailed("Регистрийн дугаар буруу байна (Жишээ: УБ12345678)")
	}
	if request.AccountNumber != "" && !validate.AccountNumber(request.AccountNumber) {
		return customError.WrapValidationFailed("Дансны дугаар буруу байна")
	}
	if !validate.Base64Image(request.IDCardFrontBase64) ||
		!validate.Base64Image(request.IDCardBackBase64) ||
		!validate.Base64Image(request.SelfieBase64) {
		return customError.WrapValidationFailed("Бичиг баримтын зураг буруу байна")
	}

	if _, err := s.Profile(ctx, userID); err != nil {
		return err
	}

	registerNumber := strings.ToUpper(request.RegisterNumber)
	if err := s.userRepo.UpdateKYC(ctx, userID, registerNumber, domain.KYCStatusPending); err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}

// ApproveKYC marks the user verified and grants the starting credit
// limit. Driven by an out-of-band underwriting decision.
func (s *AuthService) ApproveKYC(ctx context.Context, userID uuid.UUID) error {
	if err := s.userRepo.UpdateKYCStatus(ctx, userID, domain.KYCStatusApproved); err != nil {
		return customError.WrapDatabaseError(err)
	}

	if err := s.userRepo.UpdateCreditLimit(ctx, userID, s.config.Business.DefaultCreditLimit); err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.config.GetTokenTTL())),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", customError.NewBusinessError(customError.ErrCodeValidationFailed, "could not issue token", err)
	}
	return signed, nil
}

func normalizePhone(phone string) string {
	var b []byte
	for i := 0; i < len(phone); i++ {
		if phone[i] >= '0' && phone[i] <= '9' {
			b = append(b, phone[i])
		}
	}
	return string(b)
}
