package filters

import (
	"strings"
	"time"

	"github.com/nikmy/datamaps/pkg/errors"
)

const dateLayout = "2006-01-02"

type dateBound struct {
	day   time.Time
	after bool
}

// parseDate reads "2024-05-01;after" or "2024-05-01;before".
func parseDate(value string) (dateBound, error) {
	day, dir, ok := strings.Cut(value, ";")
	if !ok {
		return dateBound{}, errors.Errorf("date filter %q has no direction", value)
	}

	t, err := time.Parse(dateLayout, day)
	if err != nil {
		return dateBound{}, errors.WrapFailf(err, "parse date %q", day)
	}

	switch dir {
	case "after":
		return dateBound{day: t, after: true}, nil
	case "before":
		return dateBound{day: t}, nil
	default:
		return dateBound{}, errors.Errorf("unknown date direction %q", dir)
	}
}

// contains compares calendar days, both bounds inclusive.
func (b dateBound) contains(t time.Time) bool {
	y, m, d := t.UTC().Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	if b.after {
		return !day.Before(b.day)
	}
	return !day.After(b.day)
}

// matchDate treats the bounds of one key as a range: all must hold.
func matchDate(values []string, date *time.Time) bool {
	if date == nil {
		return false
	}

	for _, v := range values {
		bound, err := parseDate(v)
		if err != nil || !bound.contains(*date) {
			return false
		}
	}
	return true
}
