// Package validate holds the form-level predicates shared by the API
// handlers. All checks are pure; the composite loan amount check
// returns an advisory message instead of an error.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cashly/loan-engine/internal/policy"
	"github.com/cashly/loan-engine/pkg/format"
)

var (
	phoneRegex    = regexp.MustCompile(`^[0-9]{8}$`)
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	registerRegex = regexp.MustCompile(`^[А-ЯӨҮ]{2}[0-9]{8}$`)
)

// Result is the outcome of a composite check, carrying a display
// message when invalid.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// Phone checks for an 8-digit subscriber number, ignoring separators.
func Phone(phone string) bool {
	if phone == "" {
		return false
	}
	return phoneRegex.MatchString(stripNonDigits(phone))
}

// Password requires at least 6 characters; no character classes.
func Password(password string) bool {
	return len(password) >= 6
}

// Name requires at least 2 characters after trimming.
func Name(name string) bool {
	return len([]rune(strings.TrimSpace(name))) >= 2
}

// Email does a basic shape check only.
func Email(email string) bool {
	if email == "" {
		return false
	}
	return emailRegex.MatchString(email)
}

// Register checks a citizen register number: two Cyrillic letters
// followed by 8 digits, e.g. УБ12345678. Lowercase input is accepted.
func Register(register string) bool {
	if register == "" {
		return false
	}
	return registerRegex.MatchString(strings.ToUpper(register))
}

// Base64Image checks that an uploaded document is a data-URI encoded
// image, the shape the mobile client produces from the camera roll.
func Base64Image(data string) bool {
	if data == "" {
		return false
	}
	return strings.HasPrefix(data, "data:image/")
}

// AccountNumber checks a bank account number: 8 to 20 digits after
// stripping separators.
func AccountNumber(accountNumber string) bool {
	if accountNumber == "" {
		return false
	}
	cleaned := stripNonDigits(accountNumber)
	return len(cleaned) >= 8 && len(cleaned) <= 20
}

// Amount checks that an amount falls within [min, max].
func Amount(amount, min, max int64) bool {
	return amount >= min && amount <= max
}

// LoanTerm checks the term against the offered durations.
func LoanTerm(term int) bool {
	return policy.ValidTerm(term)
}

// PasswordMatch requires two non-empty, identical passwords.
func PasswordMatch(password, confirm string) bool {
	if password == "" || confirm == "" {
		return false
	}
	return password == confirm
}

// LoanAmount checks a requested principal against the borrower's
// credit limit. Checks run in a fixed order and the first failure wins:
// missing amount, below minimum, no credit extended, over the limit.
// The UI shows exactly one message per attempt, so the order matters.
func LoanAmount(amount, creditLimit int64) Result {
	if amount <= 0 {
		return Result{Valid: false, Message: "Дүн оруулна уу"}
	}

	if amount < policy.MinLoanAmount {
		return Result{Valid: false, Message: "Хамгийн бага зээл 10,000₮"}
	}

	if creditLimit == 0 {
		return Result{Valid: false, Message: "Зээлийн эрх тогтоогдоогүй байна"}
	}

	if amount > creditLimit {
		return Result{
			Valid:   false,
			Message: fmt.Sprintf("Зээлийн эрх хүрэлцэхгүй (%s₮)", format.Money(float64(creditLimit), false)),
		}
	}

	return Result{Valid: true}
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
