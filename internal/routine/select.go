package routine

import (
	"math/rand/v2"

	"github.com/Iron-Ham/limber/internal/catalog"
	"github.com/Iron-Ham/limber/internal/errors"
)

// Selector chooses the exercises for a session.
type Selector func(length int, c catalog.Catalog) ([]catalog.Exercise, error)

// SelectRoutine shuffles a private copy of c and returns its first length
// exercises. Every call draws independently, and the result never contains
// two exercises with the same identity as long as c is valid.
func SelectRoutine(length int, c catalog.Catalog) ([]catalog.Exercise, error) {
	if length < 1 {
		return nil, errors.NewConfigurationError("routine length must be at least 1", errors.ErrLengthNotAllowed).
			WithLength(length)
	}
	if length > len(c) {
		return nil, errors.NewConfigurationError("not enough exercises in catalog", errors.ErrCatalogTooSmall).
			WithLength(length).
			WithCatalogSize(len(c))
	}

	pool := c.Clone()
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool[:length:length], nil
}

// FixedSelector returns a Selector that always picks the first length
// exercises in catalog order.
func FixedSelector() Selector {
	return func(length int, c catalog.Catalog) ([]catalog.Exercise, error) {
		if length < 1 || length > len(c) {
			return SelectRoutine(length, c)
		}
		out := make([]catalog.Exercise, length)
		copy(out, c[:length])
		return out, nil
	}
}
