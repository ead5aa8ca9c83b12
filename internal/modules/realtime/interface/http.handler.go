package transport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"skyflyBff/internal/modules/realtime/application/usecase"
	"skyflyBff/internal/modules/realtime/domain"
	"skyflyBff/internal/modules/realtime/infrastructure"
	"skyflyBff/internal/shared/auth"
	"skyflyBff/internal/shared/httputil"
	"skyflyBff/internal/shared/logging"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

var errInvalidNotifyBody = errors.New("invalid request body")

var realtimeErrors = httputil.NewErrorMapper().
	WithMapping(domain.ErrMissingTransaction, http.StatusBadRequest, "missing transaction id").
	WithMapping(errInvalidNotifyBody, http.StatusBadRequest, "invalid request body")

// NewTransactionWebsocketHandler exposes /ws/transactions/:transactionId[/:token].
// The token may also come from the token query parameter, the Authorization
// header or the token cookie.
func NewTransactionWebsocketHandler(hub *infrastructure.Hub, connectUC *usecase.ConnectTransactionUseCase, sendBuffer int) echo.HandlerFunc {
	return func(c echo.Context) error {
		transactionID := strings.TrimSpace(c.Param("transactionId"))
		token := strings.TrimSpace(c.Param("token"))
		if token == "" {
			token = auth.ExtractToken(c.Request(), "token")
		}
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		peerIP := c.RealIP()

		ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
		defer cancel()

		output, err := connectUC.Execute(ctx, usecase.ConnectTransactionInput{Token: token, TransactionID: transactionID})
		if err != nil {
			slog.Warn("ws handler connect rejected", slog.String("transactionId", transactionID), slog.String("ip", peerIP), slog.String("reqID", requestID), logging.TokenAttr(token), slog.Any("error", err))
			return realtimeErrors.Respond(c, err)
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("ws handler upgrade failed", slog.String("transactionId", transactionID), slog.String("ip", peerIP), slog.Any("error", err))
			return err
		}

		sessionID := uuid.NewString()
		client := infrastructure.NewClient(hub, conn, sessionID, transactionID, token, sendBuffer, connectUC.Refresh)
		hub.AttachClient(client, output.Topics)

		go client.WritePump()
		go client.ReadPump()

		client.SendDomainMessage(&domain.Message{
			Topic:  domain.TopicSystemConnected,
			Entity: domain.SystemEntity,
			Action: domain.ActionConnected,
			Metadata: map[string]string{
				"sessionId":     sessionID,
				"transactionId": transactionID,
			},
			Data: map[string]any{
				"allowedTopics": output.Topics,
			},
			Timestamp: time.Now().UTC(),
		})
		if output.Snapshot != nil {
			client.SendDomainMessage(output.Snapshot)
		}

		slog.Info("ws connected", slog.String("transactionId", transactionID), slog.String("sessionId", sessionID), slog.Bool("snapshot", output.Snapshot != nil), slog.String("ip", peerIP), slog.String("reqID", requestID))
		return nil
	}
}
