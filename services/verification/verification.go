package verification

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"
)

const (
	// CodeTTL is how long a minted code stays valid.
	CodeTTL = 15 * time.Minute
	// MaxRequests caps accepted code requests per email within one window.
	MaxRequests = 5
)

var (
	ErrTooManyRequests = errors.New("too many verification requests for this email")
	ErrNotRequested    = errors.New("verification code expired or never requested")
	ErrCodeMismatch    = errors.New("invalid verification code")
	ErrNotVerified     = errors.New("email not verified")
)

// Record is a pending email-verification challenge. Payload keeps the
// fields submitted with the request so the final write does not need a full
// re-submission.
type Record struct {
	Code      string
	Payload   []byte
	ExpiresAt time.Time
	Attempts  int
	Verified  bool
}

// Service is the process-lifetime ledger of pending challenges, keyed by
// lower-cased email address. All access goes through the mutex; entries for
// one email must never be mutated between a check and its write.
type Service struct {
	mu      sync.Mutex
	records map[string]*Record

	now func() time.Time
}

func NewService() *Service {
	return &Service{
		records: make(map[string]*Record),
		now:     time.Now,
	}
}

// GenerateCode generates a random 6-digit numeric code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// NormalizeEmail is the ledger key derivation: trimmed, lower-cased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Request mints a new code for email, retaining payload for the eventual
// gated write. A repeated request overwrites the previous record, extends
// the expiry and carries the accepted-request count forward; once that count
// reaches MaxRequests further requests are rejected until the window
// expires.
func (s *Service) Request(email string, payload []byte) (*Record, error) {
	key := NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	attempts := 1
	if prev, ok := s.records[key]; ok {
		if s.now().After(prev.ExpiresAt) {
			delete(s.records, key)
		} else {
			if prev.Attempts >= MaxRequests {
				return nil, ErrTooManyRequests
			}
			attempts = prev.Attempts + 1
		}
	}

	code, err := GenerateCode()
	if err != nil {
		return nil, err
	}

	rec := &Record{
		Code:      code,
		Payload:   payload,
		ExpiresAt: s.now().Add(CodeTTL),
		Attempts:  attempts,
	}
	s.records[key] = rec
	return rec, nil
}

// Confirm checks code against the pending record for email and flips the
// verified flag in place. The record is kept so the subsequent gated write
// can consume it.
func (s *Service) Confirm(email, code string) error {
	key := NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok {
		return ErrNotRequested
	}
	if s.now().After(rec.ExpiresAt) {
		delete(s.records, key)
		return ErrNotRequested
	}
	if rec.Code != code {
		return ErrCodeMismatch
	}
	rec.Verified = true
	return nil
}

// Verified returns the pending record for email when it is unexpired and
// confirmed, without consuming it. The gated write checks this before
// persisting and calls Consume once the write has succeeded.
func (s *Service) Verified(email string) (*Record, error) {
	key := NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok {
		return nil, ErrNotVerified
	}
	if s.now().After(rec.ExpiresAt) {
		delete(s.records, key)
		return nil, ErrNotVerified
	}
	if !rec.Verified {
		return nil, ErrNotVerified
	}
	return rec, nil
}

// Consume returns the verified record for email and deletes it, enforcing
// one-time use. A second call for the same email fails until a fresh
// request/confirm cycle completes.
func (s *Service) Consume(email string) (*Record, error) {
	key := NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok {
		return nil, ErrNotVerified
	}
	if s.now().After(rec.ExpiresAt) {
		delete(s.records, key)
		return nil, ErrNotVerified
	}
	if !rec.Verified {
		return nil, ErrNotVerified
	}
	delete(s.records, key)
	return rec, nil
}

// Sweep drops expired entries. Abandoned challenges otherwise expire lazily
// on their next access.
func (s *Service) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, rec := range s.records {
		if s.now().After(rec.ExpiresAt) {
			delete(s.records, key)
			removed++
		}
	}
	return removed
}
