package expenses

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spendwise-dev/spendwise/internal/model"
)

// FileName is the expense table file inside a data directory.
const FileName = "expenses.csv"

// Service provides append and query access to expenses.csv. Writes are
// append-only: existing rows are never rewritten.
type Service struct {
	dataDir string
}

// NewService creates an expense Service rooted at a data directory.
func NewService(dataDir string) *Service {
	return &Service{dataDir: dataDir}
}

func (s *Service) path() string {
	return filepath.Join(s.dataDir, FileName)
}

// Ensure creates expenses.csv with a header row if it is absent or empty.
func (s *Service) Ensure() error {
	info, err := os.Stat(s.path())
	if err == nil && info.Size() > 0 {
		return nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat expenses table: %w", err)
	}

	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	f, err := os.Create(s.path())
	if err != nil {
		return fmt.Errorf("creating expenses table: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	return nil
}

// Add validates an expense and appends it to the table, writing the header
// first when the file is new.
func (s *Service) Add(e model.Expense) error {
	if verrs := ValidateExpense(e); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return fmt.Errorf("invalid expense: %s", strings.Join(msgs, "; "))
	}

	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	isNew := false
	if info, err := os.Stat(s.path()); errors.Is(err, fs.ErrNotExist) || (err == nil && info.Size() == 0) {
		isNew = true
	}

	f, err := os.OpenFile(s.path(), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening expenses table: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendExpenses(f, []model.Expense{e}); err != nil {
		return fmt.Errorf("appending expense: %w", err)
	}
	return nil
}

// All reads every expense record in insertion order. A missing file reads
// as an empty table.
func (s *Service) All() ([]model.Expense, error) {
	f, err := os.Open(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening expenses table: %w", err)
	}
	defer f.Close()

	expenses, err := ReadExpenses(f)
	if err != nil {
		return nil, fmt.Errorf("reading expenses table: %w", err)
	}
	return expenses, nil
}

// ListForUser returns the user's expenses in insertion order. Users with no
// expenses get an empty slice, not an error. Usernames match exactly; there
// is no referential check against the credential table.
func (s *Service) ListForUser(username string) ([]model.Expense, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}

	var result []model.Expense
	for _, e := range all {
		if e.Username == username {
			result = append(result, e)
		}
	}
	return result, nil
}
