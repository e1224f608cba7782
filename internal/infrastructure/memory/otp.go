package memory

import (
	"context"
	"sync"

	"github.com/flexibill/internal/domain"
)

// OTPStore keeps the latest code per mobile number in process memory.
// Records never expire and are never evicted unless Expire is called.
// Concurrent writers for the same number resolve last-write-wins.
type OTPStore struct {
	mu    sync.RWMutex
	codes map[string]string
	gen   domain.OTPCodeGenerator
}

func NewOTPStore(gen domain.OTPCodeGenerator) *OTPStore {
	if gen == nil {
		gen = domain.FixedOTPCode
	}
	return &OTPStore{codes: make(map[string]string), gen: gen}
}

func (s *OTPStore) Put(_ context.Context, mobileNumber string) (string, error) {
	code := s.gen(mobileNumber)
	s.mu.Lock()
	s.codes[mobileNumber] = code
	s.mu.Unlock()
	return code, nil
}

func (s *OTPStore) Peek(_ context.Context, mobileNumber string) (string, bool, error) {
	s.mu.RLock()
	code, ok := s.codes[mobileNumber]
	s.mu.RUnlock()
	return code, ok, nil
}

func (s *OTPStore) Expire(_ context.Context, mobileNumber string) error {
	s.mu.Lock()
	delete(s.codes, mobileNumber)
	s.mu.Unlock()
	return nil
}
