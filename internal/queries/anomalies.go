package queries

import (
	"context"
	"math"
)

// AnomalyThreshold flags a day when |z| exceeds it.
const AnomalyThreshold = 2.0

// DailyCost is one day of the credit series with its anomaly annotation.
type DailyCost struct {
	Date    string  `json:"date"`
	Credits float64 `json:"credits"`
	Cost    float64 `json:"cost"`
	ZScore  float64 `json:"z_score"`
	Anomaly bool    `json:"anomaly"`
}

// CostAnomalies fetches the daily credit series and flags days whose spend
// deviates from the window mean by more than AnomalyThreshold standard
// deviations, z = (daily - mean) / stddev.
func (s *Service) CostAnomalies(ctx context.Context, days int, creditCost float64) ([]DailyCost, error) {
	table, err := s.DailyCredits(ctx, days)
	if err != nil {
		return nil, err
	}

	series := make([]DailyCost, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		credits := table.Float(i, "DAILY_CREDITS")
		series = append(series, DailyCost{
			Date:    table.String(i, "COST_DATE"),
			Credits: credits,
			Cost:    credits * creditCost,
		})
	}

	return FlagAnomalies(series), nil
}

// FlagAnomalies annotates each entry with its Z-score over the whole
// series. With fewer than two points, or zero variance, nothing is flagged.
func FlagAnomalies(series []DailyCost) []DailyCost {
	if len(series) < 2 {
		return series
	}

	var sum float64
	for _, d := range series {
		sum += d.Cost
	}
	mean := sum / float64(len(series))

	var sqDiff float64
	for _, d := range series {
		diff := d.Cost - mean
		sqDiff += diff * diff
	}
	stddev := math.Sqrt(sqDiff / float64(len(series)-1))
	if stddev == 0 {
		return series
	}

	for i := range series {
		z := (series[i].Cost - mean) / stddev
		series[i].ZScore = z
		series[i].Anomaly = math.Abs(z) > AnomalyThreshold
	}

	return series
}
