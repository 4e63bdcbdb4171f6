package jsonrpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	transporthttp "github.com/gabapcia/silkroad/internal/pkg/transport/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient builds a client with fast retries against the given URL.
func newTestClient(url string) *client {
	return NewClient(transporthttp.NewClient(
		transporthttp.WithTimeout(time.Second),
		transporthttp.WithRetryWaitMin(time.Millisecond),
		transporthttp.WithRetryWaitMax(2*time.Millisecond),
		transporthttp.WithRetryMax(0),
	), url)
}

func TestResponse_Err(t *testing.T) {
	t.Run("returns nil when Error field is nil", func(t *testing.T) {
		resp := response{JsonRPC: "2.0"}

		assert.NoError(t, resp.Err(), "Err() should return nil when Error field is nil")
	})

	t.Run("returns formatted error when Error field is present", func(t *testing.T) {
		expectedCode := -32601
		expectedMsg := "method not found"

		resp := response{
			JsonRPC: "2.0",
			Error:   &Error{Code: expectedCode, Message: expectedMsg},
		}

		err := resp.Err()

		assert.Error(t, err, "Err() should return an error when Error field is present")
		assert.ErrorIs(t, err, ErrProviderReturnedError, "Err() should match ErrProviderReturnedError")
		assert.Contains(t, err.Error(), fmt.Sprintf("[%d]", expectedCode), "error message should include code")
		assert.Contains(t, err.Error(), expectedMsg, "error message should include message")
	})
}

func TestError_ProviderMessage(t *testing.T) {
	t.Run("returns nested data message", func(t *testing.T) {
		e := &Error{
			Code:    -32000,
			Message: "execution reverted",
			Data:    json.RawMessage(`{"message":"insufficient funds"}`),
		}

		msg, ok := e.ProviderMessage()
		assert.True(t, ok)
		assert.Equal(t, "insufficient funds", msg)
	})

	t.Run("falls back to top-level message without data", func(t *testing.T) {
		msg, ok := (&Error{Code: 4001, Message: "User denied"}).ProviderMessage()
		assert.True(t, ok)
		assert.Equal(t, "User denied", msg)
	})

	t.Run("data is not an object", func(t *testing.T) {
		msg, ok := (&Error{Message: "execution reverted", Data: json.RawMessage(`"0x08c379a0"`)}).ProviderMessage()
		assert.True(t, ok)
		assert.Equal(t, "execution reverted", msg)
	})

	t.Run("nothing supplied", func(t *testing.T) {
		_, ok := (&Error{Data: json.RawMessage(`{"code":3}`)}).ProviderMessage()
		assert.False(t, ok)
	})
}

func TestClient_Fetch(t *testing.T) {
	t.Run("successful response with result", func(t *testing.T) {
		expected := map[string]any{"hello": "world"}
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"jsonrpc": "2.0",
				"result":  expected,
				"id":      "1",
			})
		}))
		defer mockServer.Close()

		c := newTestClient(mockServer.URL)

		result, err := c.Fetch(t.Context(), "dummy_method")
		require.NoError(t, err)

		var actual map[string]any
		require.NoError(t, json.Unmarshal(result, &actual))
		assert.Equal(t, expected, actual)
	})

	t.Run("sends a well formed request", func(t *testing.T) {
		var got map[string]any
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "result": "0x1", "id": got["id"]})
		}))
		defer mockServer.Close()

		c := newTestClient(mockServer.URL)

		_, err := c.Fetch(t.Context(), "eth_blockNumber")
		require.NoError(t, err)

		assert.Equal(t, "2.0", got["jsonrpc"])
		assert.Equal(t, "eth_blockNumber", got["method"])
		assert.Equal(t, []any{}, got["params"])
		assert.NotEmpty(t, got["id"])
	})

	t.Run("response with JSON-RPC error", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"jsonrpc": "2.0",
				"error": map[string]any{
					"code":    4902,
					"message": "Unrecognized chain ID",
					"data":    map[string]any{"message": "add it first"},
				},
				"id": "1",
			})
		}))
		defer mockServer.Close()

		c := newTestClient(mockServer.URL)

		result, err := c.Fetch(t.Context(), "wallet_switchEthereumChain")
		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrProviderReturnedError)

		var rpcErr *Error
		require.True(t, errors.As(err, &rpcErr))
		assert.Equal(t, 4902, rpcErr.Code)

		msg, ok := rpcErr.ProviderMessage()
		assert.True(t, ok)
		assert.Equal(t, "add it first", msg)
	})

	t.Run("malformed JSON response", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("this is not json"))
		}))
		defer mockServer.Close()

		c := newTestClient(mockServer.URL)

		result, err := c.Fetch(t.Context(), "bad_json")
		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "invalid character")
	})

	t.Run("network error when server is down", func(t *testing.T) {
		mockServer := httptest.NewServer(nil)
		mockServer.Close()

		c := newTestClient(mockServer.URL)

		result, err := c.Fetch(t.Context(), "network_failure")
		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestCall(t *testing.T) {
	serve := func(t *testing.T, result any) *httptest.Server {
		t.Helper()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "result": result, "id": "1"})
		}))
		t.Cleanup(server.Close)
		return server
	}

	t.Run("decodes typed result", func(t *testing.T) {
		c := newTestClient(serve(t, "0xabc").URL)

		hash, err := Call[string](t.Context(), c, "eth_sendRawTransaction", "0x02")
		require.NoError(t, err)
		assert.Equal(t, "0xabc", hash)
	})

	t.Run("null result decodes to zero value", func(t *testing.T) {
		c := newTestClient(serve(t, nil).URL)

		receipt, err := Call[*struct{ Status string }](t.Context(), c, "eth_getTransactionReceipt", "0xabc")
		require.NoError(t, err)
		assert.Nil(t, receipt)
	})

	t.Run("type mismatch is reported", func(t *testing.T) {
		c := newTestClient(serve(t, map[string]any{"a": 1}).URL)

		_, err := Call[string](t.Context(), c, "eth_chainId")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decoding eth_chainId result")
	})
}

func TestNewClient(t *testing.T) {
	httpClient := transporthttp.NewClient()

	c := NewClient(httpClient, "http://localhost:8545")

	assert.Equal(t, "http://localhost:8545", c.providerEndpoint)
	assert.Same(t, httpClient, c.httpClient)
}
