package database

import (
	"database/sql"
	"fmt"

	"rsi-alert-bot/internal/types"
)

const (
	DefaultOversoldThreshold   = 30
	DefaultOverboughtThreshold = 70
)

// GetThresholds returns the configured RSI thresholds, or the defaults
// (30/70) when nothing has been persisted yet.
func GetThresholds() (types.Thresholds, error) {
	t := types.Thresholds{
		Oversold:   DefaultOversoldThreshold,
		Overbought: DefaultOverboughtThreshold,
	}

	query := `SELECT rsi_oversold_threshold, rsi_overbought_threshold FROM settings WHERE id = 1;`
	err := DB.QueryRow(query).Scan(&t.Oversold, &t.Overbought)
	if err == sql.ErrNoRows {
		return t, nil
	}
	if err != nil {
		return t, fmt.Errorf("failed to load settings: %w", err)
	}
	return t, nil
}

// SetThresholds persists new RSI thresholds. Requires oversold < overbought,
// both within [0, 100].
func SetThresholds(oversold, overbought float64) error {
	if oversold < 0 || overbought > 100 || oversold >= overbought {
		return fmt.Errorf("invalid thresholds: oversold=%v overbought=%v", oversold, overbought)
	}

	query := `
	INSERT INTO settings (id, rsi_oversold_threshold, rsi_overbought_threshold, updated_at)
	VALUES (1, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
		rsi_oversold_threshold = excluded.rsi_oversold_threshold,
		rsi_overbought_threshold = excluded.rsi_overbought_threshold,
		updated_at = CURRENT_TIMESTAMP;`

	if _, err := DB.Exec(query, oversold, overbought); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
