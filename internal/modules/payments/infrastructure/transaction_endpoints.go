package infrastructure

import (
	"net/url"
	"strconv"
	"strings"

	"skyflyBff/internal/modules/payments/domain"
)

type queryBuilder func(req domain.PaymentRequest) url.Values

type transactionEndpoint struct {
	path  string
	query queryBuilder
}

// Gopay bookings are always submitted as a single adult.
var transactionEndpoints = map[domain.Method]transactionEndpoint{
	domain.MethodGopay: {
		path:  "/transactions/gopay",
		query: passengerCountQuery(1, 0, 0),
	},
	domain.MethodBank: {
		path:  "/transactions/bank",
		query: flightQuery,
	},
	domain.MethodCreditCard: {
		path:  "/transactions/creditcard",
		query: flightQuery,
	},
}

const statusPathPrefix = "/transactions/status/"

func flightQuery(req domain.PaymentRequest) url.Values {
	values := url.Values{}
	values.Set("flightId", req.FlightID)
	return values
}

func passengerCountQuery(adult, child, baby int) queryBuilder {
	counts := map[string]string{
		"adult": strconv.Itoa(adult),
		"child": strconv.Itoa(child),
		"baby":  strconv.Itoa(baby),
	}
	return func(req domain.PaymentRequest) url.Values {
		values := flightQuery(req)
		for key, value := range counts {
			values.Set(key, value)
		}
		return values
	}
}

func statusPath(transactionID string) string {
	return statusPathPrefix + url.PathEscape(strings.TrimSpace(transactionID))
}

