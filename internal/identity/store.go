package identity

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// MaxOTPAttempts is the number of wrong guesses after which a live code is discarded.
const MaxOTPAttempts = 5

// OTPStore holds issued codes keyed by normalized Aadhar number.
type OTPStore interface {
	// Issue stores code for ttl. It returns ErrCooldown when a code was issued within cooldown.
	Issue(ctx context.Context, key, code string, ttl, cooldown time.Duration) error
	// Consume reports whether code matches the live code. The code is deleted on match
	// and after MaxOTPAttempts wrong guesses.
	Consume(ctx context.Context, key, code string) (bool, error)
}

type memoryEntry struct {
	code      string
	expiresAt time.Time
	issuedAt  time.Time
	attempts  int
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() OTPStore {
	return &memoryStore{entries: map[string]memoryEntry{}, now: time.Now}
}

func (s *memoryStore) Issue(ctx context.Context, key, code string, ttl, cooldown time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if e, ok := s.entries[key]; ok && cooldown > 0 && now.Sub(e.issuedAt) < cooldown {
		return ErrCooldown
	}
	s.sweep(now, cooldown)
	s.entries[key] = memoryEntry{code: code, expiresAt: now.Add(ttl), issuedAt: now}
	return nil
}

// sweep drops entries that are both expired and past cooldown. Caller holds mu.
func (s *memoryStore) sweep(now time.Time, cooldown time.Duration) {
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) && now.Sub(e.issuedAt) >= cooldown {
			delete(s.entries, k)
		}
	}
}

func (s *memoryStore) Consume(ctx context.Context, key, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || e.code == "" {
		return false, nil
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return false, nil
	}
	if codesEqual(e.code, code) {
		delete(s.entries, key)
		return true, nil
	}
	e.attempts++
	if e.attempts >= MaxOTPAttempts {
		// Keep issuedAt so the cooldown still applies to the next Issue.
		e.code = ""
	}
	s.entries[key] = e
	return false, nil
}

type redisStore struct {
	rdb    goredis.Cmdable
	prefix string
}

// NewRedisStore keeps codes under <prefix>:code:<key>, cooldown markers under
// <prefix>:last:<key> and wrong-guess counters under <prefix>:tries:<key>.
func NewRedisStore(rdb goredis.Cmdable, prefix string) OTPStore {
	if prefix == "" {
		prefix = "otp"
	}
	return &redisStore{rdb: rdb, prefix: prefix}
}

func (s *redisStore) codeKey(key string) string  { return s.prefix + ":code:" + key }
func (s *redisStore) lastKey(key string) string  { return s.prefix + ":last:" + key }
func (s *redisStore) triesKey(key string) string { return s.prefix + ":tries:" + key }

func (s *redisStore) Issue(ctx context.Context, key, code string, ttl, cooldown time.Duration) error {
	if cooldown > 0 {
		ok, err := s.rdb.SetNX(ctx, s.lastKey(key), "1", cooldown).Result()
		if err != nil {
			return err
		}
		if !ok {
			return ErrCooldown
		}
	}
	_, err := s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, s.codeKey(key), code, ttl)
		pipe.Del(ctx, s.triesKey(key))
		return nil
	})
	return err
}

// consumeScript compares and deletes in one step so concurrent verifies cannot both match.
// KEYS: code, tries. ARGV: candidate, max attempts.
var consumeScript = goredis.NewScript(`
local live = redis.call("get", KEYS[1])
if not live then
	return 0
end
if live == ARGV[1] then
	redis.call("del", KEYS[1], KEYS[2])
	return 1
end
local n = redis.call("incr", KEYS[2])
if n == 1 then
	local ttl = redis.call("pttl", KEYS[1])
	if ttl > 0 then
		redis.call("pexpire", KEYS[2], ttl)
	end
end
if n >= tonumber(ARGV[2]) then
	redis.call("del", KEYS[1], KEYS[2])
end
return 0
`)

func (s *redisStore) Consume(ctx context.Context, key, code string) (bool, error) {
	if code == "" {
		return false, nil
	}
	n, err := consumeScript.Run(ctx, s.rdb, []string{s.codeKey(key), s.triesKey(key)}, code, MaxOTPAttempts).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func codesEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
