package verification

import (
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(start time.Time) (*Service, *time.Time) {
	clock := start
	svc := NewService()
	svc.now = func() time.Time { return clock }
	return svc, &clock
}

func TestGenerateCode(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "rider@example.com", NormalizeEmail("  Rider@Example.COM "))
}

func TestRequestConfirmConsume(t *testing.T) {
	svc, _ := newTestService(time.Now())

	rec, err := svc.Request("Rider@Example.com", []byte(`{"name":"Rider"}`))
	require.NoError(t, err)
	require.Len(t, rec.Code, 6)
	assert.Equal(t, 1, rec.Attempts)
	assert.False(t, rec.Verified)

	// Key normalization: confirm with a differently-cased address.
	require.NoError(t, svc.Confirm("rider@example.com", rec.Code))

	got, err := svc.Verified("rider@example.com")
	require.NoError(t, err)
	assert.True(t, got.Verified)
	assert.Equal(t, []byte(`{"name":"Rider"}`), got.Payload)

	consumed, err := svc.Consume("rider@example.com")
	require.NoError(t, err)
	assert.Equal(t, rec.Code, consumed.Code)

	// One-time use: the record is gone now.
	_, err = svc.Consume("rider@example.com")
	assert.ErrorIs(t, err, ErrNotVerified)
	_, err = svc.Verified("rider@example.com")
	assert.ErrorIs(t, err, ErrNotVerified)
}

func TestConfirmWrongCode(t *testing.T) {
	svc, _ := newTestService(time.Now())

	rec, err := svc.Request("rider@example.com", nil)
	require.NoError(t, err)

	wrong := "000000"
	if rec.Code == wrong {
		wrong = "000001"
	}
	assert.ErrorIs(t, svc.Confirm("rider@example.com", wrong), ErrCodeMismatch)

	// A wrong code does not invalidate the challenge.
	assert.NoError(t, svc.Confirm("rider@example.com", rec.Code))
}

func TestConfirmNeverRequested(t *testing.T) {
	svc, _ := newTestService(time.Now())
	assert.ErrorIs(t, svc.Confirm("nobody@example.com", "123456"), ErrNotRequested)
}

func TestExpiry(t *testing.T) {
	svc, clock := newTestService(time.Now())

	rec, err := svc.Request("rider@example.com", nil)
	require.NoError(t, err)

	*clock = clock.Add(CodeTTL + time.Second)

	// Expired records report "not requested", distinct from a wrong code.
	assert.ErrorIs(t, svc.Confirm("rider@example.com", rec.Code), ErrNotRequested)

	// The expired entry was dropped; a new request starts a fresh window.
	fresh, err := svc.Request("rider@example.com", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.Attempts)
}

func TestExpiredVerifiedRecordFailsGate(t *testing.T) {
	svc, clock := newTestService(time.Now())

	rec, err := svc.Request("rider@example.com", nil)
	require.NoError(t, err)
	require.NoError(t, svc.Confirm("rider@example.com", rec.Code))

	*clock = clock.Add(CodeTTL + time.Second)

	_, err = svc.Verified("rider@example.com")
	assert.ErrorIs(t, err, ErrNotVerified)
}

func TestRateLimit(t *testing.T) {
	svc, _ := newTestService(time.Now())

	for i := 1; i <= MaxRequests; i++ {
		rec, err := svc.Request("rider@example.com", nil)
		require.NoError(t, err, "request %d should be accepted", i)
		assert.Equal(t, i, rec.Attempts)
	}

	_, err := svc.Request("rider@example.com", nil)
	assert.ErrorIs(t, err, ErrTooManyRequests)

	// Other emails are unaffected.
	_, err = svc.Request("other@example.com", nil)
	assert.NoError(t, err)
}

func TestRateLimitResetsAfterExpiry(t *testing.T) {
	svc, clock := newTestService(time.Now())

	for i := 0; i < MaxRequests; i++ {
		_, err := svc.Request("rider@example.com", nil)
		require.NoError(t, err)
	}
	_, err := svc.Request("rider@example.com", nil)
	require.ErrorIs(t, err, ErrTooManyRequests)

	*clock = clock.Add(CodeTTL + time.Second)

	rec, err := svc.Request("rider@example.com", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Attempts)
}

func TestRepeatedRequestOverwritesCode(t *testing.T) {
	svc, clock := newTestService(time.Now())

	first, err := svc.Request("rider@example.com", []byte("one"))
	require.NoError(t, err)

	*clock = clock.Add(time.Minute)

	second, err := svc.Request("rider@example.com", []byte("two"))
	require.NoError(t, err)
	assert.Equal(t, 2, second.Attempts)
	assert.Equal(t, []byte("two"), second.Payload)
	assert.True(t, second.ExpiresAt.After(first.ExpiresAt))

	// Only the latest code is accepted.
	if first.Code != second.Code {
		assert.ErrorIs(t, svc.Confirm("rider@example.com", first.Code), ErrCodeMismatch)
	}
	assert.NoError(t, svc.Confirm("rider@example.com", second.Code))
}

func TestSweep(t *testing.T) {
	svc, clock := newTestService(time.Now())

	for i := 0; i < 3; i++ {
		_, err := svc.Request(fmt.Sprintf("rider%d@example.com", i), nil)
		require.NoError(t, err)
	}
	*clock = clock.Add(CodeTTL + time.Second)
	_, err := svc.Request("late@example.com", nil)
	require.NoError(t, err)

	assert.Equal(t, 3, svc.Sweep())
	assert.Equal(t, 0, svc.Sweep())
}

func TestConcurrentAccess(t *testing.T) {
	svc, _ := newTestService(time.Now())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			email := fmt.Sprintf("rider%d@example.com", n)
			rec, err := svc.Request(email, nil)
			if err != nil {
				t.Errorf("request: %v", err)
				return
			}
			if err := svc.Confirm(email, rec.Code); err != nil {
				t.Errorf("confirm: %v", err)
				return
			}
			if _, err := svc.Consume(email); err != nil {
				t.Errorf("consume: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, svc.Sweep())
}
