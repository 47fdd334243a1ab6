package registry

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrKeySpaceExhausted is returned when more composite keys are requested than remain free.
var ErrKeySpaceExhausted = errors.New("key space exhausted")

// Sequence hands out dense ids starting at 1.
type Sequence struct {
	last int
}

func (s *Sequence) Next() int {
	s.last++
	return s.last
}

// Last returns the highest id issued so far, or 0.
func (s *Sequence) Last() int {
	return s.last
}

// EmailRegistry tracks every address issued during a run, across all entity types.
type EmailRegistry struct {
	used map[string]struct{}
}

func NewEmailRegistry() *EmailRegistry {
	return &EmailRegistry{used: make(map[string]struct{})}
}

// Claim returns local@domain if unused, otherwise retries with an increasing
// numeric suffix on the local part and a freshly drawn domain.
func (r *EmailRegistry) Claim(local string, domain func() string) string {
	email := local + "@" + domain()
	for counter := 1; r.Has(email); counter++ {
		email = fmt.Sprintf("%s%d@%s", local, counter, domain())
	}
	r.used[email] = struct{}{}
	return email
}

func (r *EmailRegistry) Has(email string) bool {
	_, ok := r.used[email]
	return ok
}

func (r *EmailRegistry) Len() int {
	return len(r.used)
}

// PriceBook remembers the unit price (in cents) generated for each service.
type PriceBook struct {
	prices map[int]int64
}

func NewPriceBook() *PriceBook {
	return &PriceBook{prices: make(map[int]int64)}
}

func (p *PriceBook) Set(serviceID int, cents int64) {
	p.prices[serviceID] = cents
}

func (p *PriceBook) Get(serviceID int) (int64, bool) {
	cents, ok := p.prices[serviceID]
	return cents, ok
}

// maxMisses bounds consecutive rejected draws before Draw switches to probing.
const maxMisses = 64

// KeySpace allocates unique composite keys from a mixed-radix space.
// Components are 0-based; dims[i] is the size of component i.
type KeySpace struct {
	dims []int
	size uint64
	used map[uint64]struct{}
}

func NewKeySpace(dims ...int) (*KeySpace, error) {
	if len(dims) == 0 {
		return nil, fmt.Errorf("key space needs at least one dimension")
	}
	size := uint64(1)
	for i, d := range dims {
		if d <= 0 {
			return nil, fmt.Errorf("key space dimension %d has non-positive size %d", i, d)
		}
		if size > ^uint64(0)/uint64(d) {
			return nil, fmt.Errorf("key space too large")
		}
		size *= uint64(d)
	}
	return &KeySpace{
		dims: append([]int(nil), dims...),
		size: size,
		used: make(map[uint64]struct{}),
	}, nil
}

func (k *KeySpace) Size() uint64 {
	return k.size
}

func (k *KeySpace) Len() int {
	return len(k.used)
}

func (k *KeySpace) Remaining() uint64 {
	return k.size - uint64(len(k.used))
}

// Reserve checks up front that n more keys can be drawn.
func (k *KeySpace) Reserve(n int) error {
	if n < 0 {
		return fmt.Errorf("cannot reserve %d keys", n)
	}
	if uint64(n) > k.Remaining() {
		return fmt.Errorf("%w: requested %d keys, %d of %d free", ErrKeySpaceExhausted, n, k.Remaining(), k.size)
	}
	return nil
}

// Draw returns a key not returned before. It samples uniformly and, after
// maxMisses consecutive collisions, probes linearly from the last sample.
func (k *KeySpace) Draw(rng *rand.Rand) ([]int, error) {
	if k.Remaining() == 0 {
		return nil, fmt.Errorf("%w: all %d keys issued", ErrKeySpaceExhausted, k.size)
	}

	var idx uint64
	for misses := 0; ; misses++ {
		idx = k.sample(rng)
		if _, taken := k.used[idx]; !taken {
			break
		}
		if misses >= maxMisses {
			for {
				idx = (idx + 1) % k.size
				if _, taken := k.used[idx]; !taken {
					break
				}
			}
			break
		}
	}

	k.used[idx] = struct{}{}
	return k.decode(idx), nil
}

// Contains reports whether key has already been issued.
func (k *KeySpace) Contains(key ...int) bool {
	idx, ok := k.encode(key)
	if !ok {
		return false
	}
	_, taken := k.used[idx]
	return taken
}

func (k *KeySpace) sample(rng *rand.Rand) uint64 {
	var idx uint64
	for _, d := range k.dims {
		idx = idx*uint64(d) + uint64(rng.Intn(d))
	}
	return idx
}

func (k *KeySpace) encode(key []int) (uint64, bool) {
	if len(key) != len(k.dims) {
		return 0, false
	}
	var idx uint64
	for i, d := range k.dims {
		if key[i] < 0 || key[i] >= d {
			return 0, false
		}
		idx = idx*uint64(d) + uint64(key[i])
	}
	return idx, true
}

func (k *KeySpace) decode(idx uint64) []int {
	key := make([]int, len(k.dims))
	for i := len(k.dims) - 1; i >= 0; i-- {
		d := uint64(k.dims[i])
		key[i] = int(idx % d)
		idx /= d
	}
	return key
}
