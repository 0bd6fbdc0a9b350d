package filters

import (
	"slices"
	"strings"
	"time"

	"github.com/nikmy/datamaps/internal/repo/models"
	"github.com/nikmy/datamaps/pkg/errors"
)

type Key string

const (
	Priority   Key = "priority"
	State      Key = "state"
	StateGroup Key = "state_group"
	Labels     Key = "labels"
	Assignees  Key = "assignees"
	Mentions   Key = "mentions"
	CreatedBy  Key = "created_by"
	StartDate  Key = "start_date"
	TargetDate Key = "target_date"
)

var Keys = [...]Key{Priority, State, StateGroup, Labels, Assignees, Mentions, CreatedBy, StartDate, TargetDate}

// Action tells whether an update applied or removed a filter value.
type Action int

const (
	Applied Action = iota
	Removed
)

func (a Action) String() string {
	if a == Removed {
		return "filter_removed"
	}
	return "filter_applied"
}

// Subject is anything issue-like the filters can look at.
type Subject interface {
	Priority() string
	StateID() string
	StateGroup() string
	LabelIDs() []string
	AssigneeIDs() []string
	MentionIDs() []string
	CreatedBy() string
	StartDate() *time.Time
	TargetDate() *time.Time
}

// Filters holds applied values per key. Values of one key
// are alternatives, different keys must all hold. A nil Filters
// matches everything but panics on Toggle and Merge, build it
// with New or FromQuery.
type Filters map[Key][]string

func New() Filters {
	return make(Filters)
}

// Toggle is a click on a single dropdown option.
func (f Filters) Toggle(key Key, value string) Action {
	values := f[key]
	if idx := slices.Index(values, value); idx >= 0 {
		f.set(key, slices.Delete(values, idx, idx+1))
		return Removed
	}

	f[key] = append(values, value)
	return Applied
}

// Merge adds every value that is not applied yet.
func (f Filters) Merge(key Key, values []string) Action {
	for _, v := range values {
		if !slices.Contains(f[key], v) {
			f[key] = append(f[key], v)
		}
	}
	return Applied
}

func (f Filters) Remove(key Key, value string) {
	values := f[key]
	if idx := slices.Index(values, value); idx >= 0 {
		f.set(key, slices.Delete(values, idx, idx+1))
	}
}

func (f Filters) Clear() {
	for k := range f {
		delete(f, k)
	}
}

// Count is the number of applied values over all keys.
func (f Filters) Count() int {
	n := 0
	for _, values := range f {
		n += len(values)
	}
	return n
}

func (f Filters) set(key Key, values []string) {
	if len(values) == 0 {
		delete(f, key)
		return
	}
	f[key] = values
}

// FromQuery reads comma-separated values of every known key.
func FromQuery(lookup func(key string) string) (Filters, error) {
	f := New()

	for _, key := range Keys {
		raw := lookup(string(key))
		if raw == "" {
			continue
		}

		var values []string
		for _, v := range strings.Split(raw, ",") {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}

			err := validate(key, v)
			if err != nil {
				return nil, errors.WrapFailf(err, "parse %s filter", key)
			}
			values = append(values, v)
		}

		f.Merge(key, values)
	}

	return f, nil
}

func validate(key Key, value string) error {
	switch key {
	case Priority:
		if !slices.Contains(models.Priorities[:], models.Priority(value)) {
			return errors.Errorf("unknown priority %q", value)
		}
	case StateGroup:
		if !slices.Contains(models.StateGroups[:], models.StateGroup(value)) {
			return errors.Errorf("unknown state group %q", value)
		}
	case StartDate, TargetDate:
		_, err := parseDate(value)
		return err
	}
	return nil
}

func (f Filters) Match(s Subject) bool {
	for key, values := range f {
		if len(values) == 0 {
			continue
		}

		if !matchKey(key, values, s) {
			return false
		}
	}
	return true
}

func matchKey(key Key, values []string, s Subject) bool {
	switch key {
	case Priority:
		return slices.Contains(values, s.Priority())
	case State:
		return slices.Contains(values, s.StateID())
	case StateGroup:
		return slices.Contains(values, s.StateGroup())
	case Labels:
		return intersects(values, s.LabelIDs())
	case Assignees:
		return intersects(values, s.AssigneeIDs())
	case Mentions:
		return intersects(values, s.MentionIDs())
	case CreatedBy:
		return slices.Contains(values, s.CreatedBy())
	case StartDate:
		return matchDate(values, s.StartDate())
	case TargetDate:
		return matchDate(values, s.TargetDate())
	default:
		return true
	}
}

func intersects(want []string, have []string) bool {
	for _, v := range have {
		if slices.Contains(want, v) {
			return true
		}
	}
	return false
}

// Apply returns the items that match f, keeping their order.
func Apply[T Subject](items []T, f Filters) []T {
	matched := make([]T, 0, len(items))
	for _, item := range items {
		if f.Match(item) {
			matched = append(matched, item)
		}
	}
	return matched
}
