package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-engine/internal/domain"
)

func writeFixture(t *testing.T, accounts, journal []string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	accountsPath := filepath.Join(dir, "accounts.txt")
	journalPath := filepath.Join(dir, "transactions.txt")
	require.NoError(t, os.WriteFile(accountsPath, []byte(strings.Join(accounts, "\n")+"\n"), 0o600))
	require.NoError(t, os.WriteFile(journalPath, []byte(strings.Join(journal, "\n")+"\n"), 0o600))
	return openTestEnv(t, accountsPath, journalPath)
}

var fixtureAccounts = []string{
	"#account_no,username,password_hash,name,balance",
	"111111,alice,x,Alice,96.00",
	"222222,bob,x,Bob,5.00",
}

var fixtureJournal = []string{
	"111111,credit,100.00,100.00,2025-01-30 10:00:00",
	"111111,debit,20.00,80.00,2025-02-01 00:00:00",
	"222222,credit,5.00,5.00,2025-02-03 08:00:00",
	"111111,credit,25.50,105.50,2025-02-14 12:30:00",
	"111111,debit,10.50,95.00,2025-02-28 23:59:59",
	"111111,credit,1.00,96.00,2025-03-01 00:00:00",
}

func account(no int64) *domain.Account {
	return &domain.Account{Number: no}
}

// -- MiniStatement tests --

func TestMiniStatement_NoHistory(t *testing.T) {
	env := newTestEnv(t)
	a := env.open(t, "alice", "10")

	records, err := env.svc.Statement.MiniStatement(context.Background(), a)

	assert.Nil(t, records)
	assert.ErrorIs(t, err, domain.ErrNoHistory)
}

func TestMiniStatement_LastTenOldestFirst(t *testing.T) {
	env := newTestEnv(t)
	a := env.open(t, "alice", "0")
	for i := 1; i <= 13; i++ {
		require.NoError(t, env.svc.Transaction.Credit(context.Background(), a, dec("1")))
	}

	records, err := env.svc.Statement.MiniStatement(context.Background(), a)

	require.NoError(t, err)
	require.Len(t, records, 10)
	assert.True(t, records[0].ResultingBalance.Equal(dec("4")))
	assert.True(t, records[9].ResultingBalance.Equal(dec("13")))
	for i := 1; i < len(records); i++ {
		assert.False(t, records[i].Timestamp.Before(records[i-1].Timestamp))
	}
}

func TestMiniStatement_ConfiguredSize(t *testing.T) {
	env := writeFixture(t, fixtureAccounts, fixtureJournal)
	svc := NewStatementService(env.store, env.svc.Statement.logger, 2)

	records, err := svc.MiniStatement(context.Background(), account(111111))

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].ResultingBalance.Equal(dec("95")))
	assert.True(t, records[1].ResultingBalance.Equal(dec("96")))
}

func TestMiniStatement_OnlyOwnRecords(t *testing.T) {
	env := writeFixture(t, fixtureAccounts, fixtureJournal)

	records, err := env.svc.Statement.MiniStatement(context.Background(), account(222222))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(222222), records[0].AccountNo)
}

// -- MonthlyStatement tests --

func TestMonthlyStatement_OpeningFromFirstDebit(t *testing.T) {
	env := writeFixture(t, fixtureAccounts, fixtureJournal)

	st, err := env.svc.Statement.MonthlyStatement(context.Background(), account(111111), time.February, 2025)

	require.NoError(t, err)
	require.Len(t, st.Records, 3)
	assert.True(t, st.OpeningBalance.Equal(dec("100")))
	assert.True(t, st.ClosingBalance.Equal(dec("95")))
	assert.True(t, st.TotalCredits.Equal(dec("25.50")))
	assert.True(t, st.TotalDebits.Equal(dec("30.50")))

	sum := st.OpeningBalance
	for _, r := range st.Records {
		sum = sum.Add(r.SignedAmount())
	}
	assert.True(t, sum.Equal(st.ClosingBalance))
}

func TestMonthlyStatement_OpeningFromFirstCredit(t *testing.T) {
	env := writeFixture(t, fixtureAccounts, fixtureJournal)

	st, err := env.svc.Statement.MonthlyStatement(context.Background(), account(111111), time.January, 2025)

	require.NoError(t, err)
	assert.True(t, st.OpeningBalance.IsZero())
	assert.True(t, st.ClosingBalance.Equal(dec("100")))
}

func TestMonthlyStatement_ClosureOpensAtZero(t *testing.T) {
	env := writeFixture(t, fixtureAccounts[:1], []string{
		"333333,debit,5.00,0.00,2025-04-01 09:00:00",
		"333333,closure,0.00,0.00,2025-05-02 09:00:00",
	})

	st, err := env.svc.Statement.MonthlyStatement(context.Background(), account(333333), time.May, 2025)

	require.NoError(t, err)
	assert.True(t, st.OpeningBalance.IsZero())
	assert.True(t, st.ClosingBalance.IsZero())
	require.Len(t, st.Records, 1)
}

func TestMonthlyStatement_NoActivity(t *testing.T) {
	env := writeFixture(t, fixtureAccounts, fixtureJournal)

	st, err := env.svc.Statement.MonthlyStatement(context.Background(), account(111111), time.February, 2024)

	assert.Nil(t, st)
	assert.ErrorIs(t, err, domain.ErrNoActivity)
}

func TestMonthlyStatement_InvalidMonth(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Statement.MonthlyStatement(context.Background(), account(111111), time.Month(13), 2025)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	_, err = env.svc.Statement.MonthlyStatement(context.Background(), account(111111), time.Month(0), 2025)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestMonthlyStatement_CorruptJournal(t *testing.T) {
	env := newTestEnv(t)
	a := env.open(t, "alice", "1")
	require.NoError(t, env.svc.Transaction.Credit(context.Background(), a, dec("1")))
	f, err := os.OpenFile(env.paths[1], os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString("garbage\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = env.svc.Statement.MonthlyStatement(context.Background(), a, time.March, 2025)

	assert.ErrorIs(t, err, domain.ErrCorruptRecord)
}
