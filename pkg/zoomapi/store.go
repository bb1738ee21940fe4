package zoomapi

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenStore persists token records across process restarts. Implementations
// must treat unreadable or unparsable records as absent: the durable cache is
// an optimization, never a source of truth.
type TokenStore interface {
	// Load returns the stored record for the account, or ok=false when no
	// usable record exists.
	Load(accountID string) (rec TokenRecord, ok bool)

	// Save stores the record for the account. Errors are reported so callers
	// can log them, but callers must not fail on a Save error.
	Save(accountID string, rec TokenRecord) error

	// Delete removes the stored record for the account so a revoked token
	// cannot resurface. Deleting an absent record is not an error.
	Delete(accountID string) error
}

// FileTokenStore keeps one JSON file per account under Dir.
type FileTokenStore struct {
	Dir string
}

// NewFileTokenStore creates a store rooted at dir, defaulting to the system
// temp directory.
func NewFileTokenStore(dir string) *FileTokenStore {
	if dir == "" {
		dir = os.TempDir()
	}
	return &FileTokenStore{Dir: dir}
}

// path returns the cache file path for an account. The account id is
// sanitized so it cannot escape Dir.
func (s *FileTokenStore) path(accountID string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, accountID)
	return filepath.Join(s.Dir, "zoom_token_"+safe+".json")
}

// Load reads the cached record. Any read or parse failure is a cache miss.
func (s *FileTokenStore) Load(accountID string) (TokenRecord, bool) {
	data, err := os.ReadFile(s.path(accountID))
	if err != nil {
		return TokenRecord{}, false
	}

	var rec TokenRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return TokenRecord{}, false
	}
	if rec.AccessToken == "" {
		return TokenRecord{}, false
	}
	return rec, true
}

// Save writes the record with owner-only permissions.
func (s *FileTokenStore) Save(accountID string, rec TokenRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding token record: %w", err)
	}
	if err := os.WriteFile(s.path(accountID), data, 0o600); err != nil {
		return fmt.Errorf("writing token cache: %w", err)
	}
	return nil
}

// Delete removes the cache file for an account.
func (s *FileTokenStore) Delete(accountID string) error {
	if err := os.Remove(s.path(accountID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token cache: %w", err)
	}
	return nil
}

// Verify interface compliance.
var _ TokenStore = (*FileTokenStore)(nil)
