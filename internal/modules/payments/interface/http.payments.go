package transport

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"skyflyBff/internal/modules/payments/application/port"
	"skyflyBff/internal/modules/payments/application/usecase"
	"skyflyBff/internal/modules/payments/domain"
	"skyflyBff/internal/shared/auth"
	"skyflyBff/internal/shared/httputil"
	"skyflyBff/internal/shared/logging"
)

var errInvalidBody = errors.New("invalid request body")

var paymentErrors = httputil.NewErrorMapper().
	WithMapping(domain.ErrUnknownMethod, http.StatusNotFound, "unknown payment method").
	WithMapping(port.ErrMissingTransaction, http.StatusBadRequest, "missing transaction id").
	WithMapping(errInvalidBody, http.StatusBadRequest, "invalid request body")

// NewPaymentHTTPHandler exposes POST /api/payments/:method. Remote failures
// are answered with 200 and the normalized failure object.
func NewPaymentHTTPHandler(submitUC *usecase.SubmitPaymentUseCase, checker auth.CredentialChecker) echo.HandlerFunc {
	return func(c echo.Context) error {
		method, err := domain.ParseMethod(c.Param("method"))
		if err != nil {
			slog.Warn("payment http: unknown method", slog.String("method", c.Param("method")))
			return paymentErrors.Respond(c, err)
		}

		var req domain.PaymentRequest
		if err := c.Bind(&req); err != nil {
			slog.Warn("payment http: invalid request body", slog.String("method", string(method)), slog.Any("error", err))
			return paymentErrors.Respond(c, errInvalidBody)
		}
		req.Token = strings.TrimSpace(req.Token)
		if req.Token == "" {
			req.Token = auth.ExtractToken(c.Request(), "")
		}
		if err := checker.Check(req.Token); err != nil {
			slog.Warn("payment http: rejected credentials", slog.String("method", string(method)), logging.TokenAttr(req.Token), slog.Any("error", err))
			return paymentErrors.Respond(c, err)
		}

		result := submitUC.Execute(c.Request().Context(), method, req)
		return httputil.RespondResult(c, result)
	}
}

// NewTransactionStatusHTTPHandler exposes GET /api/transactions/:transactionId/status.
// A failed lookup has no body and is answered with 204.
func NewTransactionStatusHTTPHandler(statusUC *usecase.TransactionStatusUseCase, checker auth.CredentialChecker) echo.HandlerFunc {
	return func(c echo.Context) error {
		transactionID := strings.TrimSpace(c.Param("transactionId"))
		if transactionID == "" {
			return paymentErrors.Respond(c, port.ErrMissingTransaction)
		}
		token := auth.ExtractToken(c.Request(), "token")
		if err := checker.Check(token); err != nil {
			slog.Warn("transaction status http: rejected credentials", slog.String("transactionId", transactionID), logging.TokenAttr(token), slog.Any("error", err))
			return paymentErrors.Respond(c, err)
		}

		result, ok := statusUC.Execute(c.Request().Context(), domain.TransactionStatusQuery{TransactionID: transactionID, Token: token})
		if !ok {
			return c.NoContent(http.StatusNoContent)
		}
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, result.Body())
	}
}
