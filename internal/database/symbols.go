package database

import (
	"fmt"
)

// AddUserSymbol starts tracking a symbol for a user. Adding a symbol that
// is already tracked is a no-op.
func AddUserSymbol(userID int64, symbol string) error {
	query := `INSERT OR IGNORE INTO user_symbols (user_id, symbol) VALUES (?, ?);`
	if _, err := DB.Exec(query, userID, symbol); err != nil {
		return fmt.Errorf("failed to add symbol %s for user %d: %w", symbol, userID, err)
	}
	return nil
}

// RemoveUserSymbol stops tracking a symbol for a user. Returns whether a
// subscription was actually removed.
func RemoveUserSymbol(userID int64, symbol string) (bool, error) {
	res, err := DB.Exec(`DELETE FROM user_symbols WHERE user_id = ? AND symbol = ?;`, userID, symbol)
	if err != nil {
		return false, fmt.Errorf("failed to remove symbol %s for user %d: %w", symbol, userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

// GetUserSymbols lists the symbols a single user tracks.
func GetUserSymbols(userID int64) ([]string, error) {
	rows, err := DB.Query(`SELECT symbol FROM user_symbols WHERE user_id = ? ORDER BY symbol;`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query symbols for user %d: %w", userID, err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		symbols = append(symbols, s)
	}
	return symbols, rows.Err()
}

// GetTrackedSymbols returns the distinct set of symbols tracked by any user.
// This is the desired subscription set for the market data stream.
func GetTrackedSymbols() ([]string, error) {
	rows, err := DB.Query(`SELECT DISTINCT symbol FROM user_symbols ORDER BY symbol;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracked symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		symbols = append(symbols, s)
	}
	return symbols, rows.Err()
}
