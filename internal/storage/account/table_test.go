package account

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-engine/internal/domain"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accounts.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func makeAccount(number int64, username, balance string) *domain.Account {
	return &domain.Account{
		Number:       number,
		Username:     username,
		PasswordHash: "hash-" + username,
		Name:         "Name " + username,
		Balance:      decimal.RequireFromString(balance),
	}
}

// -- Load tests --

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	table := NewTable(filepath.Join(t.TempDir(), "nope.txt"))

	set, err := table.Load()

	assert.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestLoad_SkipsCommentsAndBlankLines(t *testing.T) {
	path := writeFile(t, Header+"\n\n"+
		"123456,alice,abc,Alice,100.0\n"+
		"# a note\n"+
		"   \n"+
		"654321,bob,def,Bob,0\n")

	set, err := NewTable(path).Load()
	require.NoError(t, err)

	assert.Equal(t, 2, set.Len())
	alice, ok := set.GetByUsername("alice")
	require.True(t, ok)
	assert.Equal(t, int64(123456), alice.Number)
	assert.True(t, alice.Balance.Equal(decimal.RequireFromString("100")))

	all := set.All()
	assert.Equal(t, int64(123456), all[0].Number, "file order preserved")
	assert.Equal(t, int64(654321), all[1].Number)
}

func TestLoad_CorruptLines(t *testing.T) {
	lines := []string{
		"123456,alice,abc,Alice\n",
		"123456,alice,abc,Alice,Smith,100\n",
		"12x456,alice,abc,Alice,100\n",
		"123456,alice,abc,Alice,lots\n",
		"123456,alice,abc,Alice,-1\n",
		"123456,,abc,Alice,1\n",
		"123456,alice,abc,Alice,1\n123456,bob,abc,Bob,1\n",
		"123456,alice,abc,Alice,1\n654321,alice,abc,Alice,1\n",
	}
	for _, content := range lines {
		_, err := NewTable(writeFile(t, content)).Load()
		assert.ErrorIs(t, err, domain.ErrCorruptRecord, content)
	}
}

func TestLoad_ReportsLineNumber(t *testing.T) {
	path := writeFile(t, Header+"\n123456,alice,abc,Alice,1\nbroken\n")

	_, err := NewTable(path).Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), path+":3:")
}

// -- Save tests --

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	table := NewTable(filepath.Join(dir, "accounts.txt"))

	set := NewSet()
	require.NoError(t, set.Insert(makeAccount(123456, "alice", "120.5")))
	require.NoError(t, set.Insert(makeAccount(654321, "bob", "0")))

	require.NoError(t, table.Save(set))

	data, err := os.ReadFile(table.Path())
	require.NoError(t, err)
	assert.Equal(t, Header+"\n"+
		"123456,alice,hash-alice,Name alice,120.50\n"+
		"654321,bob,hash-bob,Name bob,0.00\n", string(data))

	loaded, err := table.Load()
	require.NoError(t, err)
	require.Equal(t, set.Len(), loaded.Len())
	for i, want := range set.All() {
		got := loaded.All()[i]
		assert.Equal(t, want.Number, got.Number)
		assert.Equal(t, want.Username, got.Username)
		assert.Equal(t, want.PasswordHash, got.PasswordHash)
		assert.Equal(t, want.Name, got.Name)
		assert.True(t, want.Balance.Equal(got.Balance))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestSave_OverwritesPreviousContent(t *testing.T) {
	table := NewTable(filepath.Join(t.TempDir(), "accounts.txt"))

	set := NewSet()
	require.NoError(t, set.Insert(makeAccount(123456, "alice", "1")))
	require.NoError(t, set.Insert(makeAccount(654321, "bob", "2")))
	require.NoError(t, table.Save(set))

	set.Delete(123456)
	require.NoError(t, table.Save(set))

	loaded, err := table.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
	assert.False(t, loaded.Contains(123456))
}

func TestSave_MissingDirectory(t *testing.T) {
	table := NewTable(filepath.Join(t.TempDir(), "missing", "accounts.txt"))

	err := table.Save(NewSet())

	assert.Error(t, err)
}
