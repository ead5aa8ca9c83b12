package domain

import (
	"errors"
	"strings"
	"time"
)

// Method identifies the remote transactions endpoint a payment goes to.
type Method string

const (
	MethodGopay      Method = "gopay"
	MethodBank       Method = "bank"
	MethodCreditCard Method = "creditcard"
)

var ErrUnknownMethod = errors.New("unknown payment method")

// ParseMethod accepts the method names used in routes, case-insensitively.
func ParseMethod(raw string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gopay":
		return MethodGopay, nil
	case "bank":
		return MethodBank, nil
	case "creditcard", "credit-card", "credit_card":
		return MethodCreditCard, nil
	default:
		return "", ErrUnknownMethod
	}
}

type Orderer struct {
	FamilyName  string `json:"familyName"`
	PhoneNumber string `json:"phoneNumber"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
}

type Passenger struct {
	Title          string `json:"title"`
	FullName       string `json:"fullName"`
	DOB            string `json:"dob"`
	ValidityPeriod string `json:"validityPeriod"`
	FamilyName     string `json:"familyName"`
	Citizenship    string `json:"citizenship"`
	Passport       string `json:"passport"`
	IssuingCountry string `json:"issuingCountry"`
}

// PaymentRequest is forwarded to the backend as-is, token included.
type PaymentRequest struct {
	Token      string      `json:"token"`
	FlightID   string      `json:"flightId"`
	Orderer    Orderer     `json:"orderer"`
	Passengers []Passenger `json:"passengers"`
}

type TransactionStatusQuery struct {
	TransactionID string `json:"transactionId"`
	Token         string `json:"token"`
}

// PaymentEvent records the outcome of one submission. It never carries the
// token or passenger details.
type PaymentEvent struct {
	ID         string    `json:"id"`
	Method     Method    `json:"method"`
	FlightID   string    `json:"flightId"`
	OK         bool      `json:"ok"`
	Message    string    `json:"message,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
