package nanoban

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-market-cache/internal/apierror"
	"go-market-cache/internal/config"
)

const nanoAddr = "nano_3t6k35gi95xu6tergt6p69ck76ogmitsa8mnijtpxm9fkcm736xtoncuohr3"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("nano", config.NodeConfig{URL: server.URL, Timeout: 5 * time.Second}, zaptest.NewLogger(t))
}

func TestClient_AccountsBalances(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var req accountsBalancesRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "accounts_balances", req.Action)
		assert.Equal(t, []string{nanoAddr}, req.Accounts)

		_, _ = w.Write([]byte(`{"balances": {"` + nanoAddr + `": {
			"balance": "1000000000000000000000000000000",
			"pending": "0",
			"receivable": "500000000000000000000000000000"}}}`))
	})

	balances, err := client.AccountsBalances(context.Background(), []string{nanoAddr})
	require.NoError(t, err)
	require.Contains(t, balances, nanoAddr)
	assert.Equal(t, "1000000000000000000000000000000", balances[nanoAddr].Balance)
}

func TestClient_AccountsBalances_NodeErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"balances": {}, "errors": {"nano_bad": "Bad account number"}}`))
	})

	_, err := client.AccountsBalances(context.Background(), []string{"nano_bad"})
	require.Error(t, err)

	var upstreamErr *apierror.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Contains(t, upstreamErr.Message, "Bad account number")
}

func TestClient_AccountsBalances_EmptySkipsRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	balances, err := client.AccountsBalances(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, balances)
}

func TestRawToUnits(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		nano     bool
		expected float64
	}{
		{"one nano", "1000000000000000000000000000000", true, 1},
		{"one ban", "100000000000000000000000000000", false, 1},
		{"fractional nano", "1500000000000000000000000000000", true, 1.5},
		{"same raw as ban", "1000000000000000000000000000000", false, 10},
		{"zero", "0", true, 0},
		{"empty", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RawToUnits(tt.raw, tt.nano)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}

	_, err := RawToUnits("12abc", true)
	assert.Error(t, err)
}

func TestAddressKinds(t *testing.T) {
	assert.True(t, IsNano(nanoAddr))
	assert.True(t, IsNano("xrb_1abc"))
	assert.False(t, IsNano("ban_1abc"))
}
