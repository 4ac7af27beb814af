package account

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/carson-networks/ledger-engine/internal/domain"
)

// Table is the account snapshot file. It is rewritten in full on every save.
type Table struct {
	path string
}

func NewTable(path string) *Table {
	return &Table{path: path}
}

func (t *Table) Path() string {
	return t.path
}

// Load parses the snapshot file. Blank lines and '#' comments are skipped;
// a missing file is an empty set.
func (t *Table) Load() (*Set, error) {
	set := NewSet()

	f, err := os.Open(t.path)
	if errors.Is(err, fs.ErrNotExist) {
		return set, nil
	}
	if err != nil {
		return nil, err
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

		a, err := decodeAccount(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", t.path, lineNo, err)
		}
		if err := set.Insert(a); err != nil {
			return nil, fmt.Errorf("%s:%d: %w: %v", t.path, lineNo, domain.ErrCorruptRecord, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return set, nil
}

// Save atomically replaces the snapshot file: write a temp file, fsync, rename.
func (t *Table) Save(set *Set) error {
	dir := filepath.Dir(t.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(t.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	w := bufio.NewWriter(tmp)
	if _, err := w.WriteString(Header + "\n"); err != nil {
		_ = tmp.Close()
		return err
	}
	for _, a := range set.All() {
		if _, err := w.WriteString(encodeAccount(a) + "\n"); err != nil {
			_ = tmp.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, t.path); err != nil {
		return err
	}
	tmpName = ""

	syncDir(dir)
	return nil
}

// syncDir makes the rename durable where the platform allows it.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
