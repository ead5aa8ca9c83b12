package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"skyflyBff/internal/platform/rest"
)

// Respond builds an API Gateway proxy response with a JSON body.
func Respond(statusCode int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: body,
	}
}

// RespondError maps err and renders it as a normalized failure object.
func (m *ErrorMapper) RespondError(err error) events.APIGatewayProxyResponse {
	info := m.Map(err)
	body, _ := json.Marshal(rest.Failure{Status: false, Message: info.Message})
	return Respond(info.Status, string(body))
}

// RespondResultEvent relays the remote body unchanged, or renders the
// normalized failure, with status 200.
func RespondResultEvent(result rest.Result) events.APIGatewayProxyResponse {
	if result.IsOk() {
		return Respond(http.StatusOK, string(result.Body()))
	}
	body, _ := json.Marshal(result.Failure())
	return Respond(http.StatusOK, string(body))
}
