package service

import (
	"context"
	"fmt"
	"time"

	"github.com/yonigrin7234/moveboss-pro-sub007/internal/dispatch"
	"github.com/yonigrin7234/moveboss-pro-sub007/internal/repo"
)

// DispatchService produces the urgency worklist and counts dispatchers work
// from. Classification happens in memory against an injected clock so the
// boundary semantics are owned by one place, the dispatch package.
type DispatchService struct {
	loads repo.LoadRepo
	now   func() time.Time
}

// NewDispatchService constructs a DispatchService backed by the loads repo.
func NewDispatchService(loads repo.LoadRepo) *DispatchService {
	return &DispatchService{loads: loads, now: time.Now}
}

// WithClock overrides the service clock. Test hook.
func (s *DispatchService) WithClock(now func() time.Time) *DispatchService {
	s.now = now
	return s
}

// WorklistEntry is one row of the dispatch attention list.
type WorklistEntry struct {
	LoadID       string `json:"load_id"`
	CustomerName string `json:"customer_name"`
	RFDDate      string `json:"rfd_date,omitempty"` // "2006-01-02"
	Urgency      string `json:"urgency"`
	Badge        string `json:"badge"`
}

// Worklist returns the loads needing attention (critical ∪ urgent), most
// urgent first. Always returns a non-nil slice.
func (s *DispatchService) Worklist(ctx context.Context) ([]WorklistEntry, error) {
	loads, err := s.loads.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DispatchService.Worklist: %w", err)
	}

	now := s.now()
	entries := []WorklistEntry{}
	for _, l := range dispatch.LoadsNeedingAttention(loads, now) {
		tier := dispatch.ClassifyLoad(l, now)
		entry := WorklistEntry{
			LoadID:       l.ID.String(),
			CustomerName: l.CustomerName,
			Urgency:      tier.String(),
			Badge:        tier.Label(),
		}
		if l.RFDDate != nil {
			entry.RFDDate = l.RFDDate.Format("2006-01-02")
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// UrgencyCounts tallies all loads per urgency tier for the dashboard.
func (s *DispatchService) UrgencyCounts(ctx context.Context) (map[string]int, error) {
	loads, err := s.loads.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DispatchService.UrgencyCounts: %w", err)
	}

	counts := make(map[string]int, 5)
	for tier, n := range dispatch.CountByUrgency(loads, s.now()) {
		counts[tier.String()] = n
	}
	return counts, nil
}
