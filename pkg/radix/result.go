package radix

import (
	"encoding/json"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
)

// ResultKind classifies the outcome of one gateway exchange.
type ResultKind int

const (
	ResultOK ResultKind = iota
	// ResultTransportFailure: no response received or the request could not be built. Status is 0.
	ResultTransportFailure
	// ResultGatewayError: the gateway answered with a non-2xx status.
	ResultGatewayError
)

func (k ResultKind) String() string {
	switch k {
	case ResultOK:
		return "ok"
	case ResultTransportFailure:
		return "transport_failure"
	case ResultGatewayError:
		return "gateway_error"
	default:
		return "unknown"
	}
}

// ApiResult is the normalized outcome of one gateway call. Failures never surface as Go errors
// from this package; they are folded into Status and Message.
type ApiResult struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// ErrorResponse is the error body returned by the gateway on non-2xx responses.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id"`
}

var emptyBody = json.RawMessage(`{}`)

// IsOK reports a plain 200 response, the only status the gateway uses for success.
func (r ApiResult) IsOK() bool {
	return r.Status == http.StatusOK
}

func (r ApiResult) IsSuccess() bool {
	return r.Status >= 200 && r.Status < 300
}

func (r ApiResult) Kind() ResultKind {
	switch {
	case r.Status == 0:
		return ResultTransportFailure
	case r.IsSuccess():
		return ResultOK
	default:
		return ResultGatewayError
	}
}

// Decode unmarshals the response body into out.
func (r ApiResult) Decode(out any) error {
	if len(r.Data) == 0 {
		return errors.New("empty response body")
	}
	if err := sonic.Unmarshal(r.Data, out); err != nil {
		return errors.Wrap(err, "decode gateway response")
	}
	return nil
}

// responseData keeps a JSON body as is. Anything else (proxy HTML pages, plain text)
// is stored as a JSON string so the result stays serializable.
func responseData(body []byte) json.RawMessage {
	if len(body) == 0 {
		return emptyBody
	}
	if sonic.Valid(body) {
		return body
	}
	quoted, err := sonic.Marshal(string(body))
	if err != nil {
		return emptyBody
	}
	return quoted
}

func successResult(status int, body []byte) ApiResult {
	return ApiResult{
		Status:  status,
		Message: http.StatusText(status),
		Data:    responseData(body),
	}
}

func gatewayErrorResult(status int, body []byte) ApiResult {
	data := responseData(body)
	var errResp ErrorResponse
	_ = sonic.Unmarshal(data, &errResp)
	return ApiResult{
		Status:  status,
		Message: "Radix API error. " + errResp.Message,
		Data:    data,
	}
}

func noResponseResult(err error) ApiResult {
	return ApiResult{
		Status:  0,
		Message: "No response received from the server. " + err.Error(),
		Data:    emptyBody,
	}
}

func requestErrorResult(err error) ApiResult {
	return ApiResult{
		Status:  0,
		Message: "API request error. " + err.Error(),
		Data:    emptyBody,
	}
}
