package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMethod(t *testing.T) {
	cases := map[string]Method{
		"gopay":        MethodGopay,
		" GoPay ":      MethodGopay,
		"bank":         MethodBank,
		"creditcard":   MethodCreditCard,
		"credit-card":  MethodCreditCard,
		"CREDIT_CARD":  MethodCreditCard,
	}
	for input, expected := range cases {
		got, err := ParseMethod(input)
		if err != nil {
			t.Fatalf("ParseMethod(%q) unexpected error: %v", input, err)
		}
		if got != expected {
			t.Fatalf("ParseMethod(%q) expected %q got %q", input, expected, got)
		}
	}

	if _, err := ParseMethod("paypal"); !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("expected ErrUnknownMethod, got %v", err)
	}
}

func TestPaymentRequestJSONFieldNames(t *testing.T) {
	req := PaymentRequest{
		Token:    "tkn",
		FlightID: "f-1",
		Orderer:  Orderer{FamilyName: "Potter", PhoneNumber: "+62 812", FullName: "Harry", Email: "harry@hogwarts.edu"},
		Passengers: []Passenger{{
			Title: "Mr", FullName: "Harry", DOB: "1980-07-31", ValidityPeriod: "2030-01-01",
			FamilyName: "Potter", Citizenship: "UK", Passport: "P123", IssuingCountry: "UK",
		}},
	}

	encoded, err := json.Marshal(req)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"token":"tkn",
		"flightId":"f-1",
		"orderer":{"familyName":"Potter","phoneNumber":"+62 812","fullName":"Harry","email":"harry@hogwarts.edu"},
		"passengers":[{"title":"Mr","fullName":"Harry","dob":"1980-07-31","validityPeriod":"2030-01-01",
			"familyName":"Potter","citizenship":"UK","passport":"P123","issuingCountry":"UK"}]
	}`, string(encoded))
}
