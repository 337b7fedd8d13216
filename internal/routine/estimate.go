package routine

import (
	"fmt"
	"time"

	"github.com/Iron-Ham/limber/internal/catalog"
)

// Estimate is the expected running time of a routine of a given length.
type Estimate struct {
	Min time.Duration
	Max time.Duration
}

// EstimateDuration bounds how long a routine of length exercises drawn from
// c will take at durations d, depending on how many of the picks turn out
// to be bilateral.
func EstimateDuration(length int, c catalog.Catalog, d Durations) Estimate {
	if length < 1 {
		return Estimate{}
	}
	bilateral := c.BilateralCount()
	single := len(c) - bilateral

	fewest := max(0, length-single)
	most := min(length, bilateral)

	return Estimate{
		Min: routineLength(length+fewest, d),
		Max: routineLength(length+most, d),
	}
}

// routineLength is warmup plus sides stretches with a rest between each.
func routineLength(sides int, d Durations) time.Duration {
	secs := d.Warmup + sides*d.Stretch + (sides-1)*d.Rest
	return time.Duration(secs) * time.Second
}

// String renders the estimate in whole minutes, e.g. "7-13 min".
func (e Estimate) String() string {
	lo := int(e.Min.Round(time.Minute) / time.Minute)
	hi := int(e.Max.Round(time.Minute) / time.Minute)
	if lo == hi {
		return fmt.Sprintf("%d min", lo)
	}
	return fmt.Sprintf("%d-%d min", lo, hi)
}
