package transaction

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"strings"
	"sync"

	"github.com/carson-networks/ledger-engine/internal/domain"
)

// FileMode keeps the journal private to the owner.
const FileMode fs.FileMode = 0o600

// Journal is the append-only transaction log. Lines are never rewritten.
type Journal struct {
	path string
	mu   sync.Mutex
}

func NewJournal(path string) *Journal {
	return &Journal{path: path}
}

func (j *Journal) Path() string {
	return j.path
}

// Append writes the records in a single write and syncs the file.
func (j *Journal) Append(records ...domain.Transaction) error {
	if len(records) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, r := range records {
		buf.WriteString(r.String())
		buf.WriteByte('\n')
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, FileMode)
	if err != nil {
		return err
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Scan lazily yields matching records in file order. Each call re-reads the
// file from the start; a missing journal yields nothing. A malformed line
// yields one error and ends the sequence.
func (j *Journal) Scan(match Predicate) iter.Seq2[domain.Transaction, error] {
	return func(yield func(domain.Transaction, error) bool) {
		f, err := os.Open(j.path)
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		if err != nil {
			yield(domain.Transaction{}, err)
			return
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		lineNo := 0
		for scanner.Scan() {
			lineNo++
			line := scanner.Text()
			if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
				continue
			}

			record, err := domain.ParseTransaction(line)
			if err != nil {
				yield(domain.Transaction{}, fmt.Errorf("%s:%d: %w", j.path, lineNo, err))
				return
			}
			if match != nil && !match(record) {
				continue
			}
			if !yield(record, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(domain.Transaction{}, err)
		}
	}
}

// Collect drains a scan into a slice.
func Collect(seq iter.Seq2[domain.Transaction, error]) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for record, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}
