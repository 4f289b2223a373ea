package database

import (
	"fmt"

	"rsi-alert-bot/internal/types"
)

// InsertAlert saves a triggered alert to the database.
func InsertAlert(userID int64, symbol string, rsiValue float64, alertType string) error {
	query := `
	INSERT INTO alerts (user_id, symbol, rsi_value, alert_type)
	VALUES (?, ?, ?, ?);`

	if _, err := DB.Exec(query, userID, symbol, rsiValue, alertType); err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}
	return nil
}

// GetRecentAlertsByUser fetches the most recent alerts triggered for a user,
// newest first.
func GetRecentAlertsByUser(userID int64, limit int) ([]types.Alert, error) {
	query := `
	SELECT id, user_id, symbol, rsi_value, alert_type, triggered_at
	FROM alerts
	WHERE user_id = ?
	ORDER BY triggered_at DESC, id DESC
	LIMIT ?;`

	rows, err := DB.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts for user %d: %w", userID, err)
	}
	defer rows.Close()

	var alerts []types.Alert
	for rows.Next() {
		var a types.Alert
		if err := rows.Scan(&a.ID, &a.UserID, &a.Symbol, &a.RSIValue, &a.AlertType, &a.TriggeredAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}
