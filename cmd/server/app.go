package main

import (
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/labstack/echo/v4"

	"skyflyBff/internal/config"
	"skyflyBff/internal/modules/payments/application/port"
	paymentsusecase "skyflyBff/internal/modules/payments/application/usecase"
	paymentsinfra "skyflyBff/internal/modules/payments/infrastructure"
	payments "skyflyBff/internal/modules/payments/interface"
	profileinfra "skyflyBff/internal/modules/profile/infrastructure"
	profile "skyflyBff/internal/modules/profile/interface"
	"skyflyBff/internal/modules/realtime/application/handler"
	realtimeusecase "skyflyBff/internal/modules/realtime/application/usecase"
	"skyflyBff/internal/modules/realtime/infrastructure"
	realtime "skyflyBff/internal/modules/realtime/interface"
	"skyflyBff/internal/platform/broker"
	"skyflyBff/internal/platform/queue"
	"skyflyBff/internal/shared/auth"
)

// app holds the wired components served by the echo instance.
type app struct {
	cfg      *config.Config
	checker  auth.CredentialChecker
	notifier auth.CredentialChecker
	hub      *infrastructure.Hub
	registry *infrastructure.HandlerRegistry

	submitUC    *paymentsusecase.SubmitPaymentUseCase
	statusUC    *paymentsusecase.TransactionStatusUseCase
	profiles    *profileinfra.ProfileHTTPClient
	broadcastUC *realtimeusecase.BroadcastUseCase
	connectUC   *realtimeusecase.ConnectTransactionUseCase
}

func newApp(cfg *config.Config, publisher port.EventPublisher) *app {
	checker := auth.NewTokenChecker(cfg.Security.JWTSecret)
	transactions := paymentsinfra.NewTransactionsHTTPClient(cfg.REST.BaseURL, cfg.REST.Timeout, nil)
	statusUC := paymentsusecase.NewTransactionStatusUseCase(transactions)

	hub := infrastructure.NewHub()
	broadcastUC := realtimeusecase.NewBroadcastUseCase(hub)
	connectUC := realtimeusecase.NewConnectTransactionUseCase(checker, statusUC)

	registry := infrastructure.NewHandlerRegistry()
	if cfg.Kafka.StatusTopic != "" {
		registry.Register(handler.NewTransactionStatusHandler(cfg.Kafka.StatusTopic, broadcastUC, connectUC))
	}

	return &app{
		cfg:         cfg,
		checker:     checker,
		notifier:    auth.NewSharedSecretChecker(cfg.Security.NotifySecret),
		hub:         hub,
		registry:    registry,
		submitUC:    paymentsusecase.NewSubmitPaymentUseCase(transactions, publisher),
		statusUC:    statusUC,
		profiles:    profileinfra.NewProfileHTTPClient(cfg.REST.BaseURL, cfg.REST.ProfilePath, cfg.REST.Timeout, nil),
		broadcastUC: broadcastUC,
		connectUC:   connectUC,
	}
}

func (a *app) routes(e *echo.Echo) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")
	api.POST("/payments/:method", payments.NewPaymentHTTPHandler(a.submitUC, a.checker))
	api.GET("/transactions/:transactionId/status", payments.NewTransactionStatusHTTPHandler(a.statusUC, a.checker))
	api.POST("/transactions/notify", realtime.NewStatusNotifyHTTPHandler(a.broadcastUC, a.connectUC, a.notifier))
	api.GET("/account/profile", profile.NewProfileFormHTTPHandler(a.profiles, a.checker))
	api.PUT("/account/profile", profile.NewEditProfileHTTPHandler(a.profiles, a.checker))

	wsHandler := realtime.NewTransactionWebsocketHandler(a.hub, a.connectUC, a.cfg.Websocket.SendBuffer)
	e.GET("/ws/transactions/:transactionId/:token", wsHandler)
	e.GET("/ws/transactions/:transactionId", wsHandler)
}

// newEventPublisher prefers Kafka, then SQS, and otherwise drops events.
func newEventPublisher(cfg *config.Config) (port.EventPublisher, func()) {
	switch {
	case len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.EventsTopic != "":
		publisher := broker.NewKafkaEventPublisher(cfg.Kafka.Brokers, cfg.Kafka.EventsTopic)
		slog.Info("payment events go to kafka", slog.String("topic", cfg.Kafka.EventsTopic))
		return publisher, func() {
			if err := publisher.Close(); err != nil {
				slog.Warn("kafka writer close failed", slog.Any("error", err))
			}
		}
	case cfg.Queue.EventsQueue != "":
		sess, err := session.NewSession()
		if err != nil {
			slog.Error("aws session failed, payment events disabled", slog.Any("error", err))
			return queue.NopPublisher{}, func() {}
		}
		slog.Info("payment events go to sqs", slog.String("queue", cfg.Queue.EventsQueue))
		return queue.NewSQSEventPublisher(sqs.New(sess), cfg.Queue.EventsQueue), func() {}
	default:
		slog.Info("payment events disabled")
		return queue.NopPublisher{}, func() {}
	}
}
