package task

import "math"

// Stats summarizes a task list.
type Stats struct {
	Total               int
	Completed           int
	Pending             int
	CompletionRate      float64 // percentage, rounded to 2 decimals
	ByPriority          map[Priority]int
	AvgAgeDays          float64 // rounded to 1 decimal
	OldestPendingDays   int
	HighPriorityPending int
}

// Statistics computes summary statistics over the list. Tasks whose
// created_at cannot be parsed are excluded from the age figures.
func Statistics(l List) Stats {
	s := Stats{
		ByPriority: map[Priority]int{
			PriorityLow:    0,
			PriorityMedium: 0,
			PriorityHigh:   0,
		},
	}
	if len(l) == 0 {
		return s
	}

	s.Total = len(l)
	ageSum, ageCount := 0, 0
	for _, t := range l {
		if t.Completed {
			s.Completed++
		}
		if _, ok := s.ByPriority[t.Priority]; ok {
			s.ByPriority[t.Priority]++
		}
		if age := t.Age(); age >= 0 {
			ageSum += age
			ageCount++
			if !t.Completed && age > s.OldestPendingDays {
				s.OldestPendingDays = age
			}
		}
		if !t.Completed && t.Priority == PriorityHigh {
			s.HighPriorityPending++
		}
	}
	s.Pending = s.Total - s.Completed
	s.CompletionRate = round(float64(s.Completed)/float64(s.Total)*100, 2)
	if ageCount > 0 {
		s.AvgAgeDays = round(float64(ageSum)/float64(ageCount), 1)
	}
	return s
}

// ProductivityScore rates the list 0-100 by priority-weighted completion:
// finishing a high-priority task counts three times as much as a low one.
func ProductivityScore(l List) float64 {
	if len(l) == 0 {
		return 0
	}
	score, max := 0, 0
	for _, t := range l {
		w := t.Priority.Weight()
		max += w
		if t.Completed {
			score += w
		}
	}
	if max == 0 {
		return 0
	}
	return round(float64(score)/float64(max)*100, 2)
}

func round(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
