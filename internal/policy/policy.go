package policy

import (
	"github.com/shopspring/decimal"
)

// Lending policy constants
const (
	// MinLoanAmount is the smallest principal a borrower may request.
	MinLoanAmount int64 = 10000

	// MaxExtensions caps how many times a single loan can be extended.
	MaxExtensions = 4

	// NonExtendableTerm is the loan term (days) that can never be extended.
	NonExtendableTerm = 14
)

// Supported loan terms in days.
const (
	TermShort  = 14
	TermMedium = 21
	TermLong   = 90
)

var (
	rateShort   = decimal.NewFromFloat(1.8)
	rateDefault = decimal.NewFromFloat(2.4)

	hundred = decimal.NewFromInt(100)
)

// Quote is the projected cost of a loan for a principal/term pair.
type Quote struct {
	Principal      int64           `json:"principal"`
	Term           int             `json:"term"`
	Rate           decimal.Decimal `json:"rate"`
	InterestAmount int64           `json:"interestAmount"`
	TotalAmount    int64           `json:"totalAmount"`
}

// ValidTerm reports whether term is one of the offered loan durations.
func ValidTerm(term int) bool {
	switch term {
	case TermShort, TermMedium, TermLong:
		return true
	}
	return false
}

// RateForTerm maps a loan term to its interest rate in percent.
// Unknown terms get the default rate; callers that only accept offered
// terms should check ValidTerm first.
func RateForTerm(term int) decimal.Decimal {
	if term == TermShort {
		return rateShort
	}
	return rateDefault
}

// ComputeQuote calculates interest and total repayment for a principal
// and term. Interest is rounded to the nearest whole tögrög, ties away
// from zero. A zero principal yields a zero quote.
func ComputeQuote(principal int64, term int) Quote {
	rate := RateForTerm(term)

	interest := decimal.NewFromInt(principal).
		Mul(rate).
		Div(hundred).
		Round(0).
		IntPart()

	return Quote{
		Principal:      principal,
		Term:           term,
		Rate:           rate,
		InterestAmount: interest,
		TotalAmount:    principal + interest,
	}
}

// Extendable reports whether a loan with the given term and extension
// history may be extended again. 14-day loans are never extendable.
func Extendable(term, extensionCount int) bool {
	return term != NonExtendableTerm && extensionCount < MaxExtensions
}
