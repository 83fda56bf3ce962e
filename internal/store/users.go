// Package store persists registered users in a single JSON file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ErrUserNotFound is returned when no record matches the lookup email.
var ErrUserNotFound = errors.New("user not found")

// User is one registration record.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Organization string    `json:"organization"`
	Role         string    `json:"role,omitempty"`
	IntendedUse  string    `json:"intendedUse,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	LastAccessAt time.Time `json:"lastAccessAt"`
	AccessCount  int       `json:"accessCount"`
	Domain       string    `json:"domain"`
	AutoApproved bool      `json:"autoApproved"`
	Status       string    `json:"status"`
	SessionToken string    `json:"sessionToken,omitempty"`
}

// userFile is the on-disk document shape.
type userFile struct {
	Users       []User    `json:"users"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// UserStore reads and writes the user file. Writes replace the whole
// document through a temp-file rename; the mutex serializes callers in
// this process only, so concurrent processes are last-write-wins.
type UserStore struct {
	path string
	mu   sync.Mutex
}

// NewUserStore creates a store backed by the given file path. The file
// is created on first write; a missing file reads as an empty list.
func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

// Path returns the backing file path.
func (s *UserStore) Path() string {
	return s.path
}

// Load returns all registered users. A missing file is an empty list,
// not an error.
func (s *UserStore) Load() ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc.Users, nil
}

// FindByEmail looks up a user by email, case-insensitively. Returns
// ErrUserNotFound when no record matches.
func (s *UserStore) FindByEmail(email string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return User{}, err
	}
	needle := strings.ToLower(strings.TrimSpace(email))
	for _, u := range doc.Users {
		if strings.ToLower(u.Email) == needle {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

// Upsert inserts or replaces the record matching user.Email
// (case-insensitively) and rewrites the file.
func (s *UserStore) Upsert(user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	needle := strings.ToLower(user.Email)
	replaced := false
	for i, u := range doc.Users {
		if strings.ToLower(u.Email) == needle {
			doc.Users[i] = user
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Users = append(doc.Users, user)
	}
	doc.LastUpdated = time.Now().UTC()

	return s.write(doc)
}

// Count returns the number of registered users.
func (s *UserStore) Count() (int, error) {
	users, err := s.Load()
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

func (s *UserStore) read() (userFile, error) {
	doc := userFile{Users: []User{}}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("failed to read user store %s: %w", s.path, err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("failed to parse user store %s: %w", s.path, err)
	}
	if doc.Users == nil {
		doc.Users = []User{}
	}
	return doc, nil
}

func (s *UserStore) write(doc userFile) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user store: %w", err)
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write user store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace user store: %w", err)
	}
	return nil
}
