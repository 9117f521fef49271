package services

import "eventlens-backend/domain/events"

// StatsAggregator computes summary statistics over a normalized result set.
type StatsAggregator struct{}

// NewStatsAggregator creates a new stats aggregator
func NewStatsAggregator() *StatsAggregator {
	return &StatsAggregator{}
}

// Summarize computes counts, average tone, the most frequent label and
// total fatalities. An empty input yields a zeroed summary rather than a
// division by zero; label ties break in first-seen order.
func (s *StatsAggregator) Summarize(records []events.EventRecord) events.StatsSummary {
	summary := events.StatsSummary{
		TotalEvents: len(records),
		SentimentCounts: map[string]int{
			string(events.SentimentPositive): 0,
			string(events.SentimentNeutral):  0,
			string(events.SentimentNegative): 0,
		},
	}

	if len(records) == 0 {
		return summary
	}

	var toneSum float64
	labelCounts := make(map[string]int)
	labelOrder := make([]string, 0)

	for _, record := range records {
		summary.SentimentCounts[string(record.Sentiment)]++
		toneSum += record.Tone
		summary.TotalFatalities += record.Fatalities

		if record.Label != "" {
			if _, seen := labelCounts[record.Label]; !seen {
				labelOrder = append(labelOrder, record.Label)
			}
			labelCounts[record.Label]++
		}
	}

	summary.AvgTone = toneSum / float64(len(records))

	best := 0
	for _, label := range labelOrder {
		if labelCounts[label] > best {
			best = labelCounts[label]
			summary.MostFrequentLabel = label
		}
	}

	return summary
}
