package gate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	keyPrefix   = "videoClickCount"
	carrySuffix = ".carry"

	// CarryTTL bounds how long after a click the next render skips the
	// reset policy.
	CarryTTL = time.Minute
)

// Store is the durable per-browser key-value substrate. Implementations must
// not fail loudly: a missing or blocked store behaves like an empty one.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

// ExpiringStore is a Store that can bound the lifetime of a single value.
type ExpiringStore interface {
	Store
	SetFor(key, value string, ttl time.Duration)
}

type Policy int

const (
	// PolicyResetTerminal re-gates a fresh visit once the previous cycle unlocked.
	PolicyResetTerminal Policy = iota
	// PolicyKeep never resets; an unlocked page stays unlocked.
	PolicyKeep
	// PolicyResetAlways gates every page load from zero.
	PolicyResetAlways
)

func (p Policy) String() string {
	switch p {
	case PolicyKeep:
		return "keep"
	case PolicyResetAlways:
		return "always"
	default:
		return "terminal"
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "terminal":
		return PolicyResetTerminal, nil
	case "keep", "never":
		return PolicyKeep, nil
	case "always", "session":
		return PolicyResetAlways, nil
	default:
		return PolicyResetTerminal, fmt.Errorf("unknown gate reset policy %q", s)
	}
}

// KeyFor scopes the click count to a page so unlocking one page does not
// unlock another.
func KeyFor(slug string) string {
	if slug == "" {
		return keyPrefix
	}
	return keyPrefix + ":" + slug
}

type Persistence struct {
	store  Store
	policy Policy
	now    func() time.Time
}

func NewPersistence(store Store, policy Policy) *Persistence {
	return &Persistence{store: store, policy: policy, now: time.Now}
}

// Load reads the stored count for a page. Absent, unparseable or negative
// values read as zero.
func (p *Persistence) Load(pageKey string, device DeviceClass) ClickState {
	state := ClickState{Device: device}
	if p.store == nil {
		return state
	}
	raw, ok := p.store.Get(pageKey)
	if !ok {
		return state
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return state
	}
	state.Count = n
	return state
}

// Save persists the count together with a one-shot carry marker, so the page
// render that follows a click keeps the count the click produced. Only a
// load without a recent click is subject to the reset policy.
func (p *Persistence) Save(pageKey string, s ClickState) {
	if p.store == nil {
		return
	}
	p.store.Set(pageKey, strconv.Itoa(s.Count))

	stamp := strconv.FormatInt(p.now().Unix(), 10)
	if es, ok := p.store.(ExpiringStore); ok {
		es.SetFor(pageKey+carrySuffix, stamp, CarryTTL)
		return
	}
	p.store.Set(pageKey+carrySuffix, stamp)
}

// carried consumes the carry marker and reports whether it was still fresh.
func (p *Persistence) carried(pageKey string) bool {
	raw, ok := p.store.Get(pageKey + carrySuffix)
	if !ok {
		return false
	}
	p.store.Remove(pageKey + carrySuffix)

	stamp, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return false
	}
	age := p.now().Sub(time.Unix(stamp, 0))
	return age >= -CarryTTL && age <= CarryTTL
}

// MaybeReset applies the reset policy to a freshly loaded state and consumes
// the carry marker left by Save.
func (p *Persistence) MaybeReset(pageKey string, s ClickState) ClickState {
	if p.store != nil && p.carried(pageKey) {
		return s
	}
	reset := false
	switch p.policy {
	case PolicyResetAlways:
		reset = s.Count != 0
	case PolicyResetTerminal:
		reset = s.Terminal()
	}
	if !reset {
		return s
	}
	if p.store != nil {
		p.store.Remove(pageKey)
	}
	return ClickState{Device: s.Device}
}

// Restore is Load followed by MaybeReset.
func (p *Persistence) Restore(pageKey string, device DeviceClass) ClickState {
	return p.MaybeReset(pageKey, p.Load(pageKey, device))
}
