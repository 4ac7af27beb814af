package account

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-engine/internal/domain"
)

// Header is the comment line written at the top of every snapshot file.
const Header = "#account_no,username,password_hash,name,balance"

const fieldCount = 5

// Set is an ordered collection of accounts indexed by number and username.
// It hands out copies so callers never alias stored state.
type Set struct {
	order      []int64
	byNumber   map[int64]*domain.Account
	byUsername map[string]int64
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{
		byNumber:   make(map[int64]*domain.Account),
		byUsername: make(map[string]int64),
	}
}

func (s *Set) Len() int {
	return len(s.order)
}

// Get returns a copy of the account with the given number.
func (s *Set) Get(number int64) (*domain.Account, bool) {
	a, ok := s.byNumber[number]
	if !ok {
		return nil, false
	}
	return a.Clone(), true
}

// GetByUsername returns a copy of the account with the given username.
func (s *Set) GetByUsername(username string) (*domain.Account, bool) {
	number, ok := s.byUsername[username]
	if !ok {
		return nil, false
	}
	return s.Get(number)
}

// Contains reports whether an account with the number is present.
func (s *Set) Contains(number int64) bool {
	_, ok := s.byNumber[number]
	return ok
}

// Insert adds a new account at the end of the set.
func (s *Set) Insert(a *domain.Account) error {
	if _, exists := s.byNumber[a.Number]; exists {
		return fmt.Errorf("account %d already exists", a.Number)
	}
	if _, exists := s.byUsername[a.Username]; exists {
		return domain.ErrDuplicateUsername
	}
	s.order = append(s.order, a.Number)
	s.byNumber[a.Number] = a.Clone()
	s.byUsername[a.Username] = a.Number
	return nil
}

// Update replaces the stored copy of an existing account. Username is immutable.
func (s *Set) Update(a *domain.Account) error {
	existing, ok := s.byNumber[a.Number]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if existing.Username != a.Username {
		return fmt.Errorf("account %d: username is immutable", a.Number)
	}
	s.byNumber[a.Number] = a.Clone()
	return nil
}

// Delete removes the account and reports whether it was present.
func (s *Set) Delete(number int64) bool {
	a, ok := s.byNumber[number]
	if !ok {
		return false
	}
	delete(s.byNumber, number)
	delete(s.byUsername, a.Username)
	for i, n := range s.order {
		if n == number {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// All returns copies of every account in insertion order.
func (s *Set) All() []*domain.Account {
	out := make([]*domain.Account, 0, len(s.order))
	for _, n := range s.order {
		out = append(out, s.byNumber[n].Clone())
	}
	return out
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	c := &Set{
		order:      append([]int64(nil), s.order...),
		byNumber:   make(map[int64]*domain.Account, len(s.byNumber)),
		byUsername: make(map[string]int64, len(s.byUsername)),
	}
	for n, a := range s.byNumber {
		c.byNumber[n] = a.Clone()
	}
	for u, n := range s.byUsername {
		c.byUsername[u] = n
	}
	return c
}

func encodeAccount(a *domain.Account) string {
	return strings.Join([]string{
		strconv.FormatInt(a.Number, 10),
		a.Username,
		a.PasswordHash,
		a.Name,
		domain.FormatAmount(a.Balance),
	}, ",")
}

func decodeAccount(line string) (*domain.Account, error) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), ",")
	if len(fields) != fieldCount {
		return nil, fmt.Errorf("%w: expected %d fields, got %d", domain.ErrCorruptRecord, fieldCount, len(fields))
	}

	number, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
	if err != nil || number <= 0 {
		return nil, fmt.Errorf("%w: bad account number %q", domain.ErrCorruptRecord, fields[0])
	}
	if fields[1] == "" {
		return nil, fmt.Errorf("%w: empty username", domain.ErrCorruptRecord)
	}
	balance, err := decimal.NewFromString(strings.TrimSpace(fields[4]))
	if err != nil {
		return nil, fmt.Errorf("%w: bad balance %q", domain.ErrCorruptRecord, fields[4])
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("%w: negative balance %q", domain.ErrCorruptRecord, fields[4])
	}

	return &domain.Account{
		Number:       number,
		Username:     fields[1],
		PasswordHash: fields[2],
		Name:         fields[3],
		Balance:      balance,
	}, nil
}
