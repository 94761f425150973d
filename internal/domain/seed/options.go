// Package seed generates the synthetic payroll dataset. Output is fully
// determined by Options: every value comes from one seeded PRNG (plus a
// seeded fake-data source) consumed in a fixed order, from cyclic
// enumeration of a vocabulary, or from index arithmetic.
package seed

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultRows is the row count used for every table.
	DefaultRows = 25
	// DefaultSeed fixes the PRNG for benchmark runs.
	DefaultSeed uint64 = 424242
)

var (
	baseTime      = time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	processedTime = time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)
)

var ErrInvalidOptions = errors.New("seed: invalid options")

// Options controls a generation run.
type Options struct {
	Rows int
	Seed uint64
}

// DefaultOptions returns the benchmark configuration.
func DefaultOptions() Options {
	return Options{Rows: DefaultRows, Seed: DefaultSeed}
}

func (o Options) validate() error {
	if o.Rows < 1 {
		return fmt.Errorf("%w: rows must be >= 1, got %d", ErrInvalidOptions, o.Rows)
	}
	return nil
}
