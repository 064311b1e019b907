package users

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/spendwise-dev/spendwise/internal/model"
)

// Header is the CSV header for users.csv.
const Header = "username,password_hash"

const (
	numFields = 2
	colUser   = 0
	colHash   = 1
)

// ReadUsers reads users.csv.
func ReadUsers(r io.Reader) ([]model.User, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading users CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var users []model.User
	for i, rec := range records[1:] {
		u, err := UnmarshalUser(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		users = append(users, u)
	}
	return users, nil
}

// WriteUsers writes users.csv (including header).
func WriteUsers(w io.Writer, users []model.User) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, u := range users {
		if err := cw.Write(MarshalUser(u)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// AppendUsers appends rows to an existing users.csv writer (no header).
func AppendUsers(w io.Writer, users []model.User) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, u := range users {
		if err := cw.Write(MarshalUser(u)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// MarshalUser converts a User to a CSV row.
func MarshalUser(u model.User) []string {
	row := make([]string, numFields)
	row[colUser] = u.Username
	row[colHash] = u.PasswordHash
	return row
}

// UnmarshalUser converts a CSV row to a User.
func UnmarshalUser(record []string) (model.User, error) {
	if len(record) != numFields {
		return model.User{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	if record[colUser] == "" {
		return model.User{}, fmt.Errorf("empty username")
	}
	return model.User{
		Username:     record[colUser],
		PasswordHash: record[colHash],
	}, nil
}
