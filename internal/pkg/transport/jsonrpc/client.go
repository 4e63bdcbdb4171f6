// Package jsonrpc provides a generic JSON-RPC 2.0 client implementation over HTTP.
// It is used both for EVM nodes (eth_* methods) and for EIP-1193 wallet
// providers exposed over HTTP (wallet_* methods).
package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
)

// ErrProviderReturnedError indicates that the remote JSON-RPC server returned an error response.
var ErrProviderReturnedError = errors.New("provider error")

// Error is the error object of a JSON-RPC 2.0 response. Wallets and nodes
// often put a more specific, human-readable reason in Data (e.g.
// {"message": "insufficient funds for gas * price + value"}).
type Error struct {
	Code    int             `json:"code"`           // Error code defined by the JSON-RPC spec, EIP-1193 or the server
	Message string          `json:"message"`        // Human-readable error message
	Data    json.RawMessage `json:"data,omitempty"` // Optional provider-specific payload
}

// Error formats the error as "provider error: [code] - message".
func (e *Error) Error() string {
	return fmt.Sprintf("%s: [%d] - %s", ErrProviderReturnedError, e.Code, e.Message)
}

// Is makes errors.Is(err, ErrProviderReturnedError) hold for every *Error.
func (e *Error) Is(target error) bool {
	return target == ErrProviderReturnedError
}

// ProviderMessage returns the most specific message the provider supplied:
// data.message when present, otherwise the top-level message.
func (e *Error) ProviderMessage() (string, bool) {
	var data struct {
		Message string `json:"message"`
	}
	if len(e.Data) > 0 && json.Unmarshal(e.Data, &data) == nil && data.Message != "" {
		return data.Message, true
	}

	return e.Message, e.Message != ""
}

// response represents a standard JSON-RPC 2.0 response.
type response struct {
	JsonRPC string          `json:"jsonrpc"` // JSON-RPC protocol version (usually "2.0")
	Error   *Error          `json:"error"`   // Set when the call failed
	Result  json.RawMessage `json:"result"`  // Raw result payload returned by the server
}

// Err returns the response error object, or nil when the call succeeded.
func (r response) Err() error {
	if r.Error == nil {
		return nil
	}

	return r.Error
}

// Client defines the interface for a generic JSON-RPC client.
// It can be used to abstract the underlying implementation and facilitate mocking or testing.
type Client interface {
	// Fetch sends a JSON-RPC request with the given method name and parameters.
	// It returns the raw JSON result or an error if the request or response fails.
	Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error)
}

// client sends JSON-RPC requests to the configured endpoint using a
// retrying HTTP client.
type client struct {
	providerEndpoint string                // The URL of the remote JSON-RPC server
	httpClient       *retryablehttp.Client // The HTTP client used to perform requests
}

// Compile-time assertion that client implements the Client interface.
var _ Client = (*client)(nil)

// Fetch sends a JSON-RPC request to the remote server with the given method and parameters.
// It returns the raw result as a json.RawMessage or an error if the request or server fails.
// The `id` field in the request is generated as a UUID string. A nil params
// list is sent as an empty array, as required by most EVM nodes.
func (c *client) Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	if params == nil {
		params = []any{}
	}

	body, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      uuid.NewString(),
		"method":  method,
		"params":  params,
	})
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.providerEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var data response
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding %s response (status %d): %w", method, res.StatusCode, err)
	}

	return data.Result, data.Err()
}

// Call performs Fetch and decodes the result into T. A JSON null result
// decodes to the zero value of T.
func Call[T any](ctx context.Context, c Client, method string, params ...any) (T, error) {
	var result T

	raw, err := c.Fetch(ctx, method, params...)
	if err != nil {
		return result, err
	}

	if len(raw) == 0 {
		return result, nil
	}

	if err := json.Unmarshal(raw, &result); err != nil {
		return result, fmt.Errorf("decoding %s result: %w", method, err)
	}

	return result, nil
}

// NewClient constructs and returns a Client that will send JSON-RPC requests
// to the specified provider endpoint using the given HTTP client.
//
// httpClient: the retrying HTTP client to use, usually built by transport/http.NewClient.
// providerEndpoint: the URL of the JSON-RPC server.
func NewClient(httpClient *retryablehttp.Client, providerEndpoint string) *client {
	return &client{
		providerEndpoint: providerEndpoint,
		httpClient:       httpClient,
	}
}
