// Package accnum allocates caller-facing account numbers: the current
// four-digit year followed by six random digits. The random space is only
// 900k values per year, so collisions are detected against the store and
// retried with a fresh draw.
package accnum

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/adanna/bankcore/internal/errs"
)

// maxAttempts bounds collision retries. Hitting the bound means the number
// space for the year is close to exhausted, which is a deployment problem,
// not a caller error.
const maxAttempts = 8

// Exists is the single store dependency the generator needs.
type Exists interface {
	ExistsByNumber(ctx context.Context, accountNumber string) (bool, error)
}

// Generator produces unique account numbers backed by an existence check.
type Generator struct {
	store Exists

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// New constructs a Generator seeded from the wall clock.
func New(store Exists) *Generator {
	return &Generator{
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
}

// Generate returns an unused account number or ErrNumberSpaceExhausted after
// the retry budget is spent.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	year := strconv.Itoa(g.now().Year())
	for i := 0; i < maxAttempts; i++ {
		g.mu.Lock()
		suffix := 100000 + g.rng.Intn(900000)
		g.mu.Unlock()
		candidate := year + strconv.Itoa(suffix)
		taken, err := g.store.ExistsByNumber(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", errs.ErrNumberSpaceExhausted
}
