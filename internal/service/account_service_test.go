package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-engine/internal/domain"
	"github.com/carson-networks/ledger-engine/internal/operator/actions"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	return m.Called(ctx, action).Error(0)
}

// -- CreateAccount tests --

func TestCreateAccount_Success(t *testing.T) {
	env := newTestEnv(t)

	a, err := env.svc.Account.CreateAccount(context.Background(), AccountCreate{
		Username:       "alice",
		Password:       "secret",
		Name:           "Alice Smith",
		InitialBalance: dec("100.00"),
	})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, a.Number, domain.MinAccountNo)
	assert.LessOrEqual(t, a.Number, domain.MaxAccountNo)
	assert.True(t, a.Balance.Equal(dec("100")))
	assert.NotContains(t, a.PasswordHash, "secret")

	found, err := env.svc.Account.FindByAccountNo(context.Background(), a.Number)
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", found.Name)
}

func TestCreateAccount_DuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	env.open(t, "alice", "0")

	_, err := env.svc.Account.CreateAccount(context.Background(), AccountCreate{Username: "alice", Password: "x"})

	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
	assert.Len(t, env.store.ListAccounts(), 1)
}

func TestCreateAccount_UniqueNumbers(t *testing.T) {
	env := newTestEnv(t)

	seen := make(map[int64]bool)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		a := env.open(t, name, "0")
		assert.False(t, seen[a.Number])
		seen[a.Number] = true
	}
}

func TestCreateAccount_LogsWithoutSecrets(t *testing.T) {
	env := newTestEnv(t)

	env.open(t, "alice", "1")

	entry := env.hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "AccountService.CreateAccount.Complete", entry.Message)
	assert.Equal(t, "alice", entry.Data["username"])
	for _, v := range entry.Data {
		assert.NotEqual(t, "pw-alice", v)
	}
}

func TestCreateAccount_ProcessorError(t *testing.T) {
	env := newTestEnv(t)
	proc := &mockProcessor{}
	boom := errors.New("queue closed")
	proc.On("Process", mock.Anything, mock.AnythingOfType("*actions.CreateAccount")).Return(boom)
	svc := NewAccountService(env.store, proc, logrus.New(), nil, env.clock.Now)

	a, err := svc.CreateAccount(context.Background(), AccountCreate{Username: "alice", Password: "x"})

	assert.Nil(t, a)
	assert.ErrorIs(t, err, boom)
	proc.AssertExpectations(t)
}

// -- Authenticate tests --

func TestAuthenticate_Success(t *testing.T) {
	env := newTestEnv(t)
	created := env.open(t, "alice", "5")

	a, err := env.svc.Account.Authenticate(context.Background(), "alice", "pw-alice")

	require.NoError(t, err)
	assert.Equal(t, created.Number, a.Number)
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Account.Authenticate(context.Background(), "ghost", "x")

	assert.ErrorIs(t, err, domain.ErrUnknownUser)
}

func TestAuthenticate_WrongPasswordThreeTimes(t *testing.T) {
	env := newTestEnv(t)
	created := env.open(t, "alice", "5")

	for i := 0; i < 3; i++ {
		_, err := env.svc.Account.Authenticate(context.Background(), "alice", "wrong")
		assert.ErrorIs(t, err, domain.ErrAuthFailed)
	}

	current, err := env.svc.Account.FindByAccountNo(context.Background(), created.Number)
	require.NoError(t, err)
	assert.Equal(t, created, current)
}

// -- FindByAccountNo / Balance tests --

func TestFindByAccountNo_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Account.FindByAccountNo(context.Background(), 123456)

	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestBalance_RefreshesStaleHandle(t *testing.T) {
	env := newTestEnv(t)
	a := env.open(t, "alice", "10")
	stale := a.Clone()
	require.NoError(t, env.svc.Transaction.Credit(context.Background(), a, dec("5")))

	balance, err := env.svc.Account.Balance(context.Background(), stale)

	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("15")))
	assert.True(t, stale.Balance.Equal(dec("15")))
}

// -- ChangePassword tests --

func TestChangePassword_Success(t *testing.T) {
	env := newTestEnv(t)
	a := env.open(t, "alice", "0")

	require.NoError(t, env.svc.Account.ChangePassword(context.Background(), a, "pw-alice", "new-secret"))

	_, err := env.svc.Account.Authenticate(context.Background(), "alice", "pw-alice")
	assert.ErrorIs(t, err, domain.ErrAuthFailed)
	_, err = env.svc.Account.Authenticate(context.Background(), "alice", "new-secret")
	assert.NoError(t, err)
	assert.True(t, a.VerifyPassword("new-secret"), "handle refreshed")
}

func TestChangePassword_Failures(t *testing.T) {
	env := newTestEnv(t)
	a := env.open(t, "alice", "0")

	assert.ErrorIs(t, env.svc.Account.ChangePassword(context.Background(), a, "wrong", "x"), domain.ErrAuthFailed)
	assert.ErrorIs(t, env.svc.Account.ChangePassword(context.Background(), a, "pw-alice", ""), domain.ErrInvalidPassword)
	assert.True(t, a.VerifyPassword("pw-alice"))
}

// -- CloseAccount tests --

func TestCloseAccount_ZeroBalance(t *testing.T) {
	env := newTestEnv(t)
	a := env.open(t, "alice", "0.00")

	require.NoError(t, env.svc.Account.CloseAccount(context.Background(), a))

	_, err := env.svc.Account.FindByAccountNo(context.Background(), a.Number)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	_, err = env.svc.Account.Authenticate(context.Background(), "alice", "pw-alice")
	assert.ErrorIs(t, err, domain.ErrUnknownUser)

	records, err := env.svc.Statement.MiniStatement(context.Background(), a)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.TransactionTypeClosure, records[0].Type)
	assert.True(t, records[0].Amount.IsZero())
	assert.True(t, records[0].ResultingBalance.IsZero())
}

func TestCloseAccount_NonZeroBalance(t *testing.T) {
	env := newTestEnv(t)
	a := env.open(t, "alice", "0.01")

	err := env.svc.Account.CloseAccount(context.Background(), a)

	assert.ErrorIs(t, err, domain.ErrNonZeroBalance)
	_, err = env.svc.Account.FindByAccountNo(context.Background(), a.Number)
	assert.NoError(t, err)
}

func TestCloseAccount_UsernameReusable(t *testing.T) {
	env := newTestEnv(t)
	a := env.open(t, "alice", "0")
	require.NoError(t, env.svc.Account.CloseAccount(context.Background(), a))

	b := env.open(t, "alice", "0")

	assert.NotEqual(t, a.Number, b.Number, "closed numbers are not reused")
	assert.True(t, decimal.Zero.Equal(b.Balance))
}
