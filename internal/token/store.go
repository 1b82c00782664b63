// Package token persists the Todoist API token and prompts for it when absent.
package token

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Store reads and writes the API token file. The file holds the token as
// plain text and is only readable and writable by its owner.
type Store struct {
	path string
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the token file path.
func (s *Store) Path() string {
	return s.path
}

// Stored returns the persisted token. A missing, empty or unreadable file
// all count as no token: the file only caches what the user typed, and the
// caller can always prompt again.
func (s *Store) Stored() (string, bool) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.WithFields(log.Fields{
				"path":  s.path,
				"cause": err,
			}).Debug("Could not read token file, treating as absent")
		}
		return "", false
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", false
	}
	return token, true
}

// Save writes the token, creating the parent directory with mode 0700 if
// needed. The file mode is forced to 0600 even if the file already existed
// with looser permissions.
func (s *Store) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	if err := os.Chmod(s.path, 0600); err != nil {
		return fmt.Errorf("restrict token permissions: %w", err)
	}
	return nil
}

// Clear deletes the token file. It reports whether a token was removed;
// clearing an absent token is not an error.
func (s *Store) Clear() (bool, error) {
	err := os.Remove(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("remove token: %w", err)
}

// GetOrPrompt returns the stored token, or prompts for a new one and saves it.
func (s *Store) GetOrPrompt(p *Prompter) (string, error) {
	if token, ok := s.Stored(); ok {
		return token, nil
	}
	return s.PromptAndSave(p)
}

// PromptAndSave always prompts, overwriting any stored token on success.
func (s *Store) PromptAndSave(p *Prompter) (string, error) {
	token, err := p.Prompt()
	if err != nil {
		return "", err
	}
	if err := s.Save(token); err != nil {
		return "", err
	}
	p.println("Token saved successfully!")
	return token, nil
}
