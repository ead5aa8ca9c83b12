package infrastructure

import (
	"context"
	"net/http"
	"strings"
	"time"

	"skyflyBff/internal/modules/payments/application/port"
	"skyflyBff/internal/modules/payments/domain"
	"skyflyBff/internal/platform/rest"
)

// TransactionsHTTPClient implements TransactionsGateway against the remote
// transactions API. It performs exactly one request per call and no logging.
type TransactionsHTTPClient struct {
	rest *rest.Client
}

func NewTransactionsHTTPClient(baseURL string, timeout time.Duration, client *http.Client) *TransactionsHTTPClient {
	return &TransactionsHTTPClient{rest: rest.NewClient(baseURL, timeout, client)}
}

func (c *TransactionsHTTPClient) Pay(ctx context.Context, method domain.Method, req domain.PaymentRequest) rest.Result {
	endpoint, ok := transactionEndpoints[method]
	if !ok {
		return rest.Err(rest.UnexpectedErrorMessage)
	}
	return c.rest.Forward(ctx, rest.Call{
		Method: http.MethodPost,
		Path:   endpoint.path,
		Query:  endpoint.query(req),
		Body:   req,
		Token:  req.Token,
	})
}

func (c *TransactionsHTTPClient) PaymentGopay(ctx context.Context, req domain.PaymentRequest) rest.Result {
	return c.Pay(ctx, domain.MethodGopay, req)
}

func (c *TransactionsHTTPClient) PaymentBank(ctx context.Context, req domain.PaymentRequest) rest.Result {
	return c.Pay(ctx, domain.MethodBank, req)
}

func (c *TransactionsHTTPClient) PaymentCreditCard(ctx context.Context, req domain.PaymentRequest) rest.Result {
	return c.Pay(ctx, domain.MethodCreditCard, req)
}

func (c *TransactionsHTTPClient) Status(ctx context.Context, query domain.TransactionStatusQuery) ([]byte, error) {
	if strings.TrimSpace(query.TransactionID) == "" {
		return nil, port.ErrMissingTransaction
	}
	return c.rest.Send(ctx, rest.Call{
		Method: http.MethodGet,
		Path:   statusPath(query.TransactionID),
		Token:  query.Token,
	})
}

var _ port.TransactionsGateway = (*TransactionsHTTPClient)(nil)
