package content

import "github.com/goliatone/go-publisher/internal/domain"

// Eligible filters the pool down to items that can be scheduled: draft
// status, no publish timestamps, and a matching target when a filter is
// active. Pool order is preserved. A nil or empty pool yields an empty
// result; the pool may not be hydrated yet when this runs.
func Eligible(pool []*Item, target domain.Identifier) []*Item {
	out := make([]*Item, 0, len(pool))
	for _, item := range pool {
		if !IsEligible(item, target) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// IsEligible evaluates the scheduling invariant for a single item.
func IsEligible(item *Item, target domain.Identifier) bool {
	if item == nil {
		return false
	}
	if item.NormalizedStatus() != domain.StatusDraft {
		return false
	}
	if item.ScheduledAt != nil || item.PublishedAt != nil {
		return false
	}
	if !target.IsZero() && !domain.Equal(item.TargetID, target) {
		return false
	}
	return true
}
