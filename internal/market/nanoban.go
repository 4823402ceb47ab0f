package market

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go-market-cache/internal/apierror"
	"go-market-cache/internal/interfaces"
	"go-market-cache/internal/models"
	"go-market-cache/internal/upstream/nanoban"
)

// NanoBanService serves Nano and Banano account balances
type NanoBanService struct {
	nano   interfaces.NodeRPC
	banano interfaces.NodeRPC
	logger *zap.Logger
}

func NewNanoBanService(nano, banano interfaces.NodeRPC, logger *zap.Logger) *NanoBanService {
	return &NanoBanService{nano: nano, banano: banano, logger: logger}
}

// GetBalances queries both networks concurrently and returns balances in
// request order. An account missing from its node's reply fails the call.
func (s *NanoBanService) GetBalances(ctx context.Context, in BalancesInput) ([]models.AccountBalance, error) {
	var nanoAddrs, banAddrs []string
	for _, acc := range in.Accounts {
		if nanoban.IsNano(acc.Address) {
			nanoAddrs = append(nanoAddrs, acc.Address)
		} else {
			banAddrs = append(banAddrs, acc.Address)
		}
	}

	var nanoBalances, banBalances map[string]interfaces.NodeBalance
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		nanoBalances, err = s.nano.AccountsBalances(gctx, nanoAddrs)
		return err
	})
	g.Go(func() error {
		var err error
		banBalances, err = s.banano.AccountsBalances(gctx, banAddrs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]models.AccountBalance, 0, len(in.Accounts))
	for _, acc := range in.Accounts {
		isNano := nanoban.IsNano(acc.Address)
		balances := banBalances
		if isNano {
			balances = nanoBalances
		}

		raw, ok := balances[acc.Address]
		if !ok {
			return nil, apierror.Internal("Failed to fetch NANO balances", fmt.Errorf("no balance for %s", acc.Address))
		}

		balance, err := toAccountBalance(acc, raw, isNano)
		if err != nil {
			return nil, apierror.Internal("Failed to parse NANO balances", err)
		}
		results = append(results, balance)
	}
	return results, nil
}

func toAccountBalance(acc AccountInput, raw interfaces.NodeBalance, isNano bool) (models.AccountBalance, error) {
	balance, err := nanoban.RawToUnits(raw.Balance, isNano)
	if err != nil {
		return models.AccountBalance{}, err
	}
	pending, err := nanoban.RawToUnits(raw.Pending, isNano)
	if err != nil {
		return models.AccountBalance{}, err
	}
	receivable, err := nanoban.RawToUnits(raw.Receivable, isNano)
	if err != nil {
		return models.AccountBalance{}, err
	}

	return models.AccountBalance{
		Address:    acc.Address,
		Balance:    balance,
		Pending:    pending,
		Receivable: receivable,
		IsMine:     acc.IsMine,
	}, nil
}
