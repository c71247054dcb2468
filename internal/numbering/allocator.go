// Package numbering derives human-facing sequential identifiers such as
// invoice numbers and employee ids from the most recently stored record.
//
// There is no in-process counter: every allocation reads storage, so several
// server instances can issue numbers. Two concurrent allocations may compute
// the same value; the unique constraint in storage rejects the second write
// with a ConflictError and the caller allocates again.
package numbering

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// RecentIDReader lists external ids newest first, ordered by creation time
// with the storage insertion order breaking ties. Records without an id are
// skipped. offset counts from the newest record.
type RecentIDReader interface {
	RecentExternalIDs(ctx context.Context, offset, limit int) ([]string, error)
}

// Pattern describes one identifier series.
type Pattern struct {
	// Collection names the series in errors and logs.
	Collection string
	Prefix     string
	// Suffix must capture the trailing integer in group 1.
	Suffix *regexp.Regexp
	Start  int64
	// Width zero-pads the number; 0 disables padding.
	Width int
	// Lookback is how many records are read per page while searching
	// back for the newest one in the series.
	Lookback int
}

// InvoicePattern issues ASF/P/25-26/013, ASF/P/25-26/014, ...
func InvoicePattern(prefix string, start int64, width, lookback int) Pattern {
	return Pattern{
		Collection: "invoices",
		Prefix:     prefix,
		Suffix:     regexp.MustCompile(`/(\d+)$`),
		Start:      start,
		Width:      width,
		Lookback:   lookback,
	}
}

// EmployeePattern issues EMP1001, EMP1002, ...
func EmployeePattern(prefix string, start int64, lookback int) Pattern {
	return Pattern{
		Collection: "manpower",
		Prefix:     prefix,
		Suffix:     regexp.MustCompile(regexp.QuoteMeta(prefix) + `(\d+)$`),
		Start:      start,
		Lookback:   lookback,
	}
}

// Format renders n in this pattern.
func (p Pattern) Format(n int64) string {
	return fmt.Sprintf("%s%0*d", p.Prefix, p.Width, n)
}

// Next parses id and returns the number after it. ok is false when id does
// not belong to the series.
func (p Pattern) Next(id string) (next int64, ok bool, err error) {
	m := p.Suffix.FindStringSubmatch(id)
	if m == nil {
		return 0, false, nil
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse %q: %w", id, err)
	}
	if n == math.MaxInt64 {
		return 0, false, fmt.Errorf("parse %q: series exhausted", id)
	}
	return n + 1, true, nil
}

// Allocate returns the identifier following the newest record in the
// series, or the pattern's start value when no record belongs to it.
// Records outside the series are skipped however many there are.
func Allocate(ctx context.Context, r RecentIDReader, p Pattern) (string, error) {
	limit := p.Lookback
	if limit < 1 {
		limit = 1
	}

	for offset := 0; ; offset += limit {
		ids, err := r.RecentExternalIDs(ctx, offset, limit)
		if err != nil {
			return "", &AllocationError{Collection: p.Collection, Err: err}
		}

		for _, id := range ids {
			next, ok, err := p.Next(id)
			if err != nil {
				return "", &AllocationError{Collection: p.Collection, Err: err}
			}
			if ok {
				return p.Format(next), nil
			}
		}
		if len(ids) < limit {
			return p.Format(p.Start), nil
		}
	}
}
