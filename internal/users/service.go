package users

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/bcrypt"

	"github.com/spendwise-dev/spendwise/internal/model"
)

// FileName is the credential table file inside a data directory.
const FileName = "users.csv"

// ErrDuplicateUser is returned when registering a username that is taken.
var ErrDuplicateUser = errors.New("username already registered")

// ErrEmptyCredentials is returned when username or password is blank.
var ErrEmptyCredentials = errors.New("username and password must not be empty")

// Service provides registration and authentication over users.csv.
type Service struct {
	dataDir string
}

// NewService creates a credential Service rooted at a data directory.
func NewService(dataDir string) *Service {
	return &Service{dataDir: dataDir}
}

func (s *Service) path() string {
	return filepath.Join(s.dataDir, FileName)
}

// Ensure creates users.csv with a header row if it is absent or empty.
func (s *Service) Ensure() error {
	info, err := os.Stat(s.path())
	if err == nil && info.Size() > 0 {
		return nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat users table: %w", err)
	}

	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	f, err := os.Create(s.path())
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	return nil
}

// All reads every user record. A missing file reads as an empty table.
func (s *Service) All() ([]model.User, error) {
	f, err := os.Open(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening users table: %w", err)
	}
	defer f.Close()

	users, err := ReadUsers(f)
	if err != nil {
		return nil, fmt.Errorf("reading users table: %w", err)
	}
	return users, nil
}

// Exists reports whether a username is registered.
func (s *Service) Exists(username string) (bool, error) {
	users, err := s.All()
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

// Register hashes the password with a per-user random salt (bcrypt) and
// appends a new row. Returns ErrDuplicateUser without side effect when the
// username is taken.
func (s *Service) Register(username, password string) error {
	if username == "" || password == "" {
		return ErrEmptyCredentials
	}

	taken, err := s.Exists(username)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	if err := s.Ensure(); err != nil {
		return err
	}

	f, err := os.OpenFile(s.path(), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening users table: %w", err)
	}
	defer f.Close()

	if err := AppendUsers(f, []model.User{{Username: username, PasswordHash: string(hash)}}); err != nil {
		return fmt.Errorf("appending user: %w", err)
	}
	return nil
}

// Authenticate reports whether the username/password pair matches a stored
// record. Unknown usernames and wrong passwords both return false.
func (s *Service) Authenticate(username, password string) (bool, error) {
	users, err := s.All()
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.Username != username {
			continue
		}
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil, nil
	}
	return false, nil
}
