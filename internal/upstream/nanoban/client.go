// Package nanoban talks to Nano-protocol node RPC endpoints (Nano and Banano).
package nanoban

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"go-market-cache/internal/apierror"
	"go-market-cache/internal/config"
	"go-market-cache/internal/interfaces"
	"go-market-cache/internal/upstream"
)

const actionAccountsBalances = "accounts_balances"

var (
	nanoRawPerUnit = new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(30), nil))
	banRawPerUnit  = new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(29), nil))
)

var _ interfaces.NodeRPC = (*Client)(nil)

// Client is a node RPC client
type Client struct {
	url       string
	requester *upstream.Requester
}

func NewClient(name string, cfg config.NodeConfig, logger *zap.Logger) *Client {
	return &Client{
		url:       cfg.URL,
		requester: upstream.NewRequester(name, cfg.Timeout, logger),
	}
}

type accountsBalancesRequest struct {
	Action   string   `json:"action"`
	Accounts []string `json:"accounts"`
}

type accountsBalancesResponse struct {
	Balances map[string]interfaces.NodeBalance `json:"balances"`
	Errors   map[string]string                 `json:"errors,omitempty"`
	Error    string                            `json:"error,omitempty"`
}

// AccountsBalances returns raw balances keyed by account address
func (c *Client) AccountsBalances(ctx context.Context, accounts []string) (map[string]interfaces.NodeBalance, error) {
	if len(accounts) == 0 {
		return map[string]interfaces.NodeBalance{}, nil
	}

	payload, err := json.Marshal(accountsBalancesRequest{Action: actionAccountsBalances, Accounts: accounts})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.requester.Do(req, actionAccountsBalances)
	if err != nil {
		return nil, err
	}

	var resp accountsBalancesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse %s response: %w", c.requester.Provider(), err)
	}

	if resp.Error != "" || len(resp.Errors) > 0 {
		msg := resp.Error
		if msg == "" {
			raw, _ := json.Marshal(resp.Errors)
			msg = string(raw)
		}
		return nil, &apierror.UpstreamError{
			Provider:   c.requester.Provider(),
			StatusCode: http.StatusOK,
			Message:    msg,
		}
	}

	if resp.Balances == nil {
		resp.Balances = map[string]interfaces.NodeBalance{}
	}
	return resp.Balances, nil
}

// IsNano reports whether address is a Nano account
func IsNano(address string) bool {
	return strings.HasPrefix(address, "nano_") || strings.HasPrefix(address, "xrb_")
}

// RawToUnits converts a raw integer amount to whole NANO (10^30 raw) or BAN (10^29 raw).
// An empty amount is zero.
func RawToUnits(raw string, nano bool) (float64, error) {
	if raw == "" {
		return 0, nil
	}

	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return 0, fmt.Errorf("invalid raw amount %q", raw)
	}

	divisor := banRawPerUnit
	if nano {
		divisor = nanoRawPerUnit
	}

	units, _ := new(big.Float).Quo(new(big.Float).SetInt(amount), divisor).Float64()
	return units, nil
}
