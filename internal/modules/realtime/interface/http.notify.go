package transport

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"skyflyBff/internal/modules/realtime/application/usecase"
	"skyflyBff/internal/modules/realtime/domain"
	"skyflyBff/internal/shared/auth"
)

// NotifySecretHeader carries the webhook secret. A bearer token is accepted
// when the header is absent.
const NotifySecretHeader = "X-Notify-Secret"

// NotifyResponse acknowledges a pushed status update.
type NotifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Topic   string `json:"topic"`
}

// NewStatusNotifyHTTPHandler exposes POST /api/transactions/notify, used by
// the backend to push status changes to watching clients.
func NewStatusNotifyHTTPHandler(broadcastUC *usecase.BroadcastUseCase, connectUC *usecase.ConnectTransactionUseCase, checker auth.CredentialChecker) echo.HandlerFunc {
	return func(c echo.Context) error {
		secret := strings.TrimSpace(c.Request().Header.Get(NotifySecretHeader))
		if secret == "" {
			secret = auth.ExtractBearerToken(c.Request())
		}
		if err := checker.Check(secret); err != nil {
			slog.Warn("notify http: caller rejected", slog.String("ip", c.RealIP()), slog.Any("error", err))
			return realtimeErrors.Respond(c, err)
		}

		var update domain.StatusUpdate
		if err := c.Bind(&update); err != nil {
			slog.Warn("notify http: invalid request body", slog.Any("error", err))
			return realtimeErrors.Respond(c, errInvalidNotifyBody)
		}

		msg, err := broadcastUC.PublishStatus(c.Request().Context(), update)
		if err != nil {
			return realtimeErrors.Respond(c, err)
		}
		if connectUC != nil {
			connectUC.Remember(msg)
		}

		return c.JSON(http.StatusOK, NotifyResponse{
			Success: true,
			Message: "status broadcasted",
			Topic:   msg.Topic,
		})
	}
}
