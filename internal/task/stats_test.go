package task

import (
	"testing"
	"time"
)

func daysAgo(n int) string {
	return time.Now().AddDate(0, 0, -n).Format(TimeLayout)
}

func TestStatisticsEmpty(t *testing.T) {
	s := Statistics(List{})
	if s.Total != 0 || s.Completed != 0 || s.Pending != 0 || s.CompletionRate != 0 {
		t.Errorf("empty list stats: %+v", s)
	}
	if len(s.ByPriority) != 3 {
		t.Errorf("priority map should carry all buckets, got %v", s.ByPriority)
	}
}

func TestStatistics(t *testing.T) {
	l := List{
		{ID: 1, Text: "a", Priority: PriorityHigh, CreatedAt: daysAgo(10)},
		{ID: 2, Text: "b", Priority: PriorityHigh, Completed: true, CreatedAt: daysAgo(4)},
		{ID: 3, Text: "c", Priority: PriorityMedium, CreatedAt: daysAgo(1)},
		{ID: 4, Text: "d", Priority: PriorityLow, Completed: true, CreatedAt: "bad-date"},
	}

	s := Statistics(l)
	if s.Total != 4 || s.Completed != 2 || s.Pending != 2 {
		t.Errorf("counts: %+v", s)
	}
	if s.CompletionRate != 50 {
		t.Errorf("completion rate: got %v, want 50", s.CompletionRate)
	}
	if s.ByPriority[PriorityHigh] != 2 || s.ByPriority[PriorityMedium] != 1 || s.ByPriority[PriorityLow] != 1 {
		t.Errorf("priority counts: %v", s.ByPriority)
	}
	// The bad-date task is excluded from age figures: (10+4+1)/3 = 5.0.
	if s.AvgAgeDays != 5 {
		t.Errorf("avg age: got %v, want 5", s.AvgAgeDays)
	}
	if s.OldestPendingDays != 10 {
		t.Errorf("oldest pending: got %d, want 10", s.OldestPendingDays)
	}
	if s.HighPriorityPending != 1 {
		t.Errorf("high pending: got %d, want 1", s.HighPriorityPending)
	}
}

func TestStatisticsCompletionRateRounding(t *testing.T) {
	l := List{
		{ID: 1, Text: "a", Priority: PriorityLow, Completed: true, CreatedAt: Now()},
		{ID: 2, Text: "b", Priority: PriorityLow, CreatedAt: Now()},
		{ID: 3, Text: "c", Priority: PriorityLow, CreatedAt: Now()},
	}
	if got := Statistics(l).CompletionRate; got != 33.33 {
		t.Errorf("got %v, want 33.33", got)
	}
}

func TestProductivityScore(t *testing.T) {
	tests := []struct {
		name string
		l    List
		want float64
	}{
		{"empty", List{}, 0},
		{"none done", List{{Priority: PriorityHigh}}, 0},
		{"all done", List{
			{Priority: PriorityHigh, Completed: true},
			{Priority: PriorityLow, Completed: true},
		}, 100},
		// high(3) done out of high(3)+low(1) = 75.
		{"weighted", List{
			{Priority: PriorityHigh, Completed: true},
			{Priority: PriorityLow},
		}, 75},
		// low(1) done out of 4 = 25: finishing the low task is worth less.
		{"weighted inverse", List{
			{Priority: PriorityHigh},
			{Priority: PriorityLow, Completed: true},
		}, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProductivityScore(tt.l); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
