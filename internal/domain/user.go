package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	KYCStatusNotSubmitted = "not_submitted"
	KYCStatusPending      = "pending"
	KYCStatusApproved     = "approved"
	KYCStatusRejected     = "rejected"
)

// User is a borrower account. CreditLimit is set by underwriting after
// KYC approval; zero means no credit has been extended yet.
type User struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Phone          string    `json:"phone" db:"phone"`
	Name           string    `json:"name" db:"name"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	RegisterNumber string    `json:"registerNumber" db:"register_number"`
	CreditLimit    int64     `json:"creditLimit" db:"credit_limit"`
	KYCStatus      string    `json:"kycStatus" db:"kyc_status"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

type RegisterRequest struct {
	Phone           string `json:"phone" validate:"required"`
	Name            string `json:"name" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type LoginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// SubmitKYCRequest mirrors the KYC form payload the mobile client
// submits. Images arrive base64-encoded.
type SubmitKYCRequest struct {
	Education         string             `json:"education"`
	EmploymentStatus  string             `json:"employmentStatus"`
	CompanyName       string             `json:"companyName"`
	Position          string             `json:"position"`
	MonthlyIncome     int64              `json:"monthlyIncome"`
	City              string             `json:"city"`
	District          string             `json:"district"`
	Khoroo            string             `json:"khoroo"`
	Building          string             `json:"building"`
	Apartment         string             `json:"apartment"`
	FullAddress       string             `json:"fullAddress"`
	BankName          string             `json:"bankName"`
	AccountNumber     string             `json:"accountNumber"`
	AccountName       string             `json:"accountName"`
	EmergencyContacts []EmergencyContact `json:"emergencyContacts"`
	RegisterNumber    string             `json:"registerNumber" validate:"required"`
	IDCardFrontBase64 string             `json:"idCardFrontBase64" validate:"required"`
	IDCardBackBase64  string             `json:"idCardBackBase64" validate:"required"`
	SelfieBase64      string             `json:"selfieBase64" validate:"required"`
}

type EmergencyContact struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Relation    string `json:"relation"`
}

type ProfileResponse struct {
	User *User `json:"user"`
}
