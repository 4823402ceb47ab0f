package market

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"go-market-cache/internal/apierror"
	"go-market-cache/internal/interfaces"
	"go-market-cache/internal/interfaces/mock"
)

const (
	testNanoAddr = "nano_1111111111111111111111111111111111111111111111111111hifc8npp"
	testBanAddr  = "ban_1111111111111111111111111111111111111111111111111111hifc8npp"
)

func TestNanoBanService_GetBalances(t *testing.T) {
	ctrl := gomock.NewController(t)
	nano := mock.NewMockNodeRPC(ctrl)
	banano := mock.NewMockNodeRPC(ctrl)
	svc := NewNanoBanService(nano, banano, zaptest.NewLogger(t))

	nano.EXPECT().AccountsBalances(gomock.Any(), []string{testNanoAddr}).Return(map[string]interfaces.NodeBalance{
		testNanoAddr: {Balance: "2000000000000000000000000000000", Pending: "0", Receivable: "1000000000000000000000000000000"},
	}, nil)
	banano.EXPECT().AccountsBalances(gomock.Any(), []string{testBanAddr}).Return(map[string]interfaces.NodeBalance{
		testBanAddr: {Balance: "1000000000000000000000000000000", Pending: "0", Receivable: "0"},
	}, nil)

	balances, err := svc.GetBalances(context.Background(), BalancesInput{Accounts: []AccountInput{
		{Address: testBanAddr, IsMine: true},
		{Address: testNanoAddr},
	}})
	require.NoError(t, err)
	require.Len(t, balances, 2)

	assert.Equal(t, testBanAddr, balances[0].Address)
	assert.InDelta(t, 10.0, balances[0].Balance, 1e-9)
	assert.True(t, balances[0].IsMine)

	assert.Equal(t, testNanoAddr, balances[1].Address)
	assert.InDelta(t, 2.0, balances[1].Balance, 1e-9)
	assert.InDelta(t, 1.0, balances[1].Receivable, 1e-9)
	assert.False(t, balances[1].IsMine)
}

func TestNanoBanService_MissingAccountFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	nano := mock.NewMockNodeRPC(ctrl)
	banano := mock.NewMockNodeRPC(ctrl)
	svc := NewNanoBanService(nano, banano, zaptest.NewLogger(t))

	nano.EXPECT().AccountsBalances(gomock.Any(), []string{testNanoAddr}).Return(map[string]interfaces.NodeBalance{}, nil)
	banano.EXPECT().AccountsBalances(gomock.Any(), gomock.Nil()).Return(map[string]interfaces.NodeBalance{}, nil)

	_, err := svc.GetBalances(context.Background(), BalancesInput{Accounts: []AccountInput{{Address: testNanoAddr}}})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeInternal, apierror.From(err).Code)
}

func TestNanoBanService_NodeFailureFailsAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	nano := mock.NewMockNodeRPC(ctrl)
	banano := mock.NewMockNodeRPC(ctrl)
	svc := NewNanoBanService(nano, banano, zaptest.NewLogger(t))

	nano.EXPECT().AccountsBalances(gomock.Any(), gomock.Any()).Return(map[string]interfaces.NodeBalance{}, nil)
	banano.EXPECT().AccountsBalances(gomock.Any(), gomock.Any()).Return(nil, errors.New("node down"))

	_, err := svc.GetBalances(context.Background(), BalancesInput{Accounts: []AccountInput{{Address: testBanAddr}}})
	assert.Error(t, err)
}
