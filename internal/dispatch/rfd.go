// Package dispatch implements the RFD (ready-for-delivery) urgency
// classifier used to prioritize dispatch worklists.
//
// Classification is time-relative, so every entry point takes an explicit
// "now" instead of reading the clock. That keeps the classifier a
// deterministic pure function: the same inputs always yield the same tier.
package dispatch

import (
	"sort"
	"time"

	"github.com/yonigrin7234/moveboss-pro-sub007/internal/domain"
)

// Urgency is a load's dispatch-priority tier. Higher values are more urgent;
// the numeric order doubles as the sort key for worklists.
type Urgency int

const (
	UrgencyNone Urgency = iota
	UrgencyTBD
	UrgencyApproaching
	UrgencyUrgent
	UrgencyCritical
)

// String returns the wire name of the tier.
func (u Urgency) String() string {
	switch u {
	case UrgencyCritical:
		return "critical"
	case UrgencyUrgent:
		return "urgent"
	case UrgencyApproaching:
		return "approaching"
	case UrgencyTBD:
		return "tbd"
	default:
		return "none"
	}
}

// Label returns the badge text shown next to a load in the dispatch UI.
func (u Urgency) Label() string {
	switch u {
	case UrgencyCritical:
		return "Ready now"
	case UrgencyUrgent:
		return "Ready in 48h"
	case UrgencyApproaching:
		return "Ready this week"
	case UrgencyTBD:
		return "Date TBD"
	default:
		return ""
	}
}

// MarshalJSON encodes the tier by its wire name.
func (u Urgency) MarshalJSON() ([]byte, error) {
	return []byte(`"` + u.String() + `"`), nil
}

// Classify buckets one load by its RFD fields. Tiers are checked in priority
// order and the first match wins:
//
//  1. tbd — the date is explicitly TBD, or no date is set.
//  2. critical — the RFD day is today or already past, and the load is
//     unassigned.
//  3. urgent — the RFD day is within the next 2 days, unassigned.
//  4. approaching — the RFD day is within the next 7 days, unassigned.
//  5. none — everything else.
//
// Assignment always suppresses urgency: once a load is on a trip, dispatch
// has acted, so even an overdue date classifies as none. All comparisons are
// date-only in now's location; the 2-day and 7-day windows include their
// endpoints.
func Classify(rfd *time.Time, tbd bool, assigned bool, now time.Time) Urgency {
	if tbd || rfd == nil {
		return UrgencyTBD
	}
	if assigned {
		return UrgencyNone
	}

	today := dateOnly(now)
	day := dateOnly(rfd.In(now.Location()))

	switch {
	case !day.After(today):
		return UrgencyCritical
	case !day.After(today.AddDate(0, 0, 2)):
		return UrgencyUrgent
	case !day.After(today.AddDate(0, 0, 7)):
		return UrgencyApproaching
	default:
		return UrgencyNone
	}
}

// ClassifyLoad is Classify applied to a load record.
func ClassifyLoad(load domain.Load, now time.Time) Urgency {
	return Classify(load.RFDDate, load.RFDDateTBD, load.Assigned(), now)
}

// CountByUrgency tallies loads per tier for dashboard counts. Every tier is
// present in the result, including zero counts.
func CountByUrgency(loads []domain.Load, now time.Time) map[Urgency]int {
	counts := map[Urgency]int{
		UrgencyNone:        0,
		UrgencyTBD:         0,
		UrgencyApproaching: 0,
		UrgencyUrgent:      0,
		UrgencyCritical:    0,
	}
	for _, l := range loads {
		counts[ClassifyLoad(l, now)]++
	}
	return counts
}

// LoadsNeedingAttention filters to the critical and urgent tiers — the
// dispatch worklist. Critical loads sort first, then urgent; within a tier,
// earliest RFD first. Always returns a non-nil slice.
func LoadsNeedingAttention(loads []domain.Load, now time.Time) []domain.Load {
	out := []domain.Load{}
	for _, l := range loads {
		switch ClassifyLoad(l, now) {
		case UrgencyCritical, UrgencyUrgent:
			out = append(out, l)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		ui, uj := ClassifyLoad(out[i], now), ClassifyLoad(out[j], now)
		if ui != uj {
			return ui > uj
		}
		return out[i].RFDDate.Before(*out[j].RFDDate)
	})

	return out
}

// dateOnly truncates t to midnight in its own location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
