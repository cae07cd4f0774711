package settings

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/pradeepsavadi/snowflake-observability/pkg/config"
	"github.com/pradeepsavadi/snowflake-observability/pkg/logger"
)

// Settings are the user-adjustable dashboard parameters. They scope one
// interactive session; the store persists them between sessions in the
// packaged deployment.
type Settings struct {
	CreditCost          float64 `json:"credit_cost"`
	StorageCostPerTB    float64 `json:"storage_cost_per_tb"`
	LookbackDays        int     `json:"time_period"`
	AlertCostSpikePct   float64 `json:"alert_cost_spike_pct"`
	AlertQueryTimeSec   int     `json:"alert_query_time_sec"`
	AlertFailureRatePct float64 `json:"alert_failure_rate_pct"`
	AlertFreshnessHours int     `json:"alert_freshness_hours"`
}

// Defaults come from the server configuration so operators can pre-seed
// their own cost assumptions.
func Defaults(cfg config.DashboardConfig) Settings {
	return Settings{
		CreditCost:          cfg.CreditCost,
		StorageCostPerTB:    cfg.StorageCostPerTB,
		LookbackDays:        cfg.DefaultLookbackDays,
		AlertCostSpikePct:   cfg.AlertCostSpikePct,
		AlertQueryTimeSec:   cfg.AlertQueryTimeSec,
		AlertFailureRatePct: cfg.AlertFailureRatePct,
		AlertFreshnessHours: cfg.AlertFreshnessHours,
	}
}

const (
	keyCreditCost          = "credit_cost"
	keyStorageCostPerTB    = "storage_cost_per_tb"
	keyLookbackDays        = "time_period"
	keyAlertCostSpikePct   = "alert_cost_spike_pct"
	keyAlertQueryTimeSec   = "alert_query_time_sec"
	keyAlertFailureRatePct = "alert_failure_rate_pct"
	keyAlertFreshnessHours = "alert_freshness_hours"
)

// Load overlays stored values on the defaults. Unknown keys and values that
// fail to parse are ignored, keeping the default.
func Load(ctx context.Context, store *Store, defaults Settings) (Settings, error) {
	out := defaults

	rows, err := store.List(ctx)
	if err != nil {
		return defaults, err
	}

	for _, row := range rows {
		switch row.Key {
		case keyCreditCost:
			parseFloat(row, &out.CreditCost)
		case keyStorageCostPerTB:
			parseFloat(row, &out.StorageCostPerTB)
		case keyLookbackDays:
			parseInt(row, &out.LookbackDays)
		case keyAlertCostSpikePct:
			parseFloat(row, &out.AlertCostSpikePct)
		case keyAlertQueryTimeSec:
			parseInt(row, &out.AlertQueryTimeSec)
		case keyAlertFailureRatePct:
			parseFloat(row, &out.AlertFailureRatePct)
		case keyAlertFreshnessHours:
			parseInt(row, &out.AlertFreshnessHours)
		}
	}

	return out, nil
}

// Save writes every settings key. Each write is an independent
// last-write-wins upsert.
func Save(ctx context.Context, store *Store, s Settings, updatedBy string) error {
	rows := []Setting{
		{Key: keyCreditCost, Value: formatFloat(s.CreditCost), Description: "Snowflake credit cost in dollars", UpdatedBy: updatedBy},
		{Key: keyStorageCostPerTB, Value: formatFloat(s.StorageCostPerTB), Description: "Storage cost per TB per month", UpdatedBy: updatedBy},
		{Key: keyLookbackDays, Value: strconv.Itoa(s.LookbackDays), Description: "Analysis period in days", UpdatedBy: updatedBy},
		{Key: keyAlertCostSpikePct, Value: formatFloat(s.AlertCostSpikePct), Description: "Cost spike alert threshold (%)", UpdatedBy: updatedBy},
		{Key: keyAlertQueryTimeSec, Value: strconv.Itoa(s.AlertQueryTimeSec), Description: "Long query alert threshold (seconds)", UpdatedBy: updatedBy},
		{Key: keyAlertFailureRatePct, Value: formatFloat(s.AlertFailureRatePct), Description: "Query failure rate alert threshold (%)", UpdatedBy: updatedBy},
		{Key: keyAlertFreshnessHours, Value: strconv.Itoa(s.AlertFreshnessHours), Description: "Data freshness alert threshold (hours)", UpdatedBy: updatedBy},
	}

	var errs error
	for _, row := range rows {
		if err := store.Upsert(ctx, row); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

func parseFloat(row Setting, dst *float64) {
	v, err := strconv.ParseFloat(row.Value, 64)
	if err != nil {
		logger.Warn("Ignoring unparsable setting", zap.String("key", row.Key), zap.String("value", row.Value))
		return
	}
	*dst = v
}

func parseInt(row Setting, dst *int) {
	v, err := strconv.Atoi(row.Value)
	if err != nil {
		logger.Warn("Ignoring unparsable setting", zap.String("key", row.Key), zap.String("value", row.Value))
		return
	}
	*dst = v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
