package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"

	"skyflyBff/internal/config"
	"skyflyBff/internal/modules/payments/application/port"
	"skyflyBff/internal/modules/payments/application/usecase"
	"skyflyBff/internal/modules/payments/domain"
	"skyflyBff/internal/modules/payments/infrastructure"
	"skyflyBff/internal/platform/queue"
	"skyflyBff/internal/platform/rest"
	"skyflyBff/internal/shared/auth"
	"skyflyBff/internal/shared/httputil"
	"skyflyBff/internal/shared/logging"
)

type Handler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

type PaymentSubmitter interface {
	Execute(ctx context.Context, method domain.Method, req domain.PaymentRequest) rest.Result
}

type StatusQuerier interface {
	Execute(ctx context.Context, query domain.TransactionStatusQuery) (rest.Result, bool)
}

var errInvalidBody = errors.New("invalid request body")

var lambdaErrors = httputil.NewErrorMapper().
	WithMapping(domain.ErrUnknownMethod, http.StatusNotFound, "unknown payment method").
	WithMapping(port.ErrMissingTransaction, http.StatusBadRequest, "missing transaction id").
	WithMapping(errInvalidBody, http.StatusBadRequest, "invalid request body")

// Adapter serves POST /payments/{method} and GET /transactions/{transactionId}/status.
func Adapter(submitter PaymentSubmitter, status StatusQuerier, checker auth.CredentialChecker) Handler {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		if transactionID := strings.TrimSpace(req.PathParameters["transactionId"]); transactionID != "" {
			token := tokenFromHeaders(req.Headers)
			if err := checker.Check(token); err != nil {
				return lambdaErrors.RespondError(err), nil
			}
			result, ok := status.Execute(ctx, domain.TransactionStatusQuery{TransactionID: transactionID, Token: token})
			if !ok {
				return events.APIGatewayProxyResponse{StatusCode: http.StatusNoContent}, nil
			}
			return httputil.Respond(http.StatusOK, string(result.Body())), nil
		}

		method, err := domain.ParseMethod(req.PathParameters["method"])
		if err != nil {
			return lambdaErrors.RespondError(err), nil
		}

		request := domain.PaymentRequest{}
		if err := json.Unmarshal([]byte(req.Body), &request); err != nil {
			return lambdaErrors.RespondError(fmt.Errorf("%w: %v", errInvalidBody, err)), nil
		}
		request.Token = strings.TrimSpace(request.Token)
		if request.Token == "" {
			request.Token = tokenFromHeaders(req.Headers)
		}
		if err := checker.Check(request.Token); err != nil {
			return lambdaErrors.RespondError(err), nil
		}

		return httputil.RespondResultEvent(submitter.Execute(ctx, method, request)), nil
	}
}

// tokenFromHeaders reads the bearer token or the token cookie. API Gateway
// does not normalize header case.
func tokenFromHeaders(headers map[string]string) string {
	header := http.Header{}
	for key, value := range headers {
		header.Add(key, value)
	}
	return auth.ExtractToken(&http.Request{Header: header}, "")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	slog.SetDefault(logging.New(os.Stdout, logging.Config{Level: cfg.Logging.Level, Format: "json"}))

	var publisher port.EventPublisher = queue.NopPublisher{}
	if cfg.Queue.EventsQueue != "" {
		publisher = queue.NewSQSEventPublisher(sqs.New(session.New()), cfg.Queue.EventsQueue)
	}

	transactions := infrastructure.NewTransactionsHTTPClient(cfg.REST.BaseURL, cfg.REST.Timeout, nil)
	lambda.Start(Adapter(
		usecase.NewSubmitPaymentUseCase(transactions, publisher),
		usecase.NewTransactionStatusUseCase(transactions),
		auth.NewTokenChecker(cfg.Security.JWTSecret),
	))
}
