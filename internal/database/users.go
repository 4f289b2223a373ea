package database

import (
	"fmt"

	"rsi-alert-bot/internal/types"

	_ "modernc.org/sqlite"
)

// GetOrCreateUser returns the internal user ID for a telegram chat,
// registering the user on first contact.
func GetOrCreateUser(telegramID int64) (int64, error) {
	var id int64
	err := DB.QueryRow(`SELECT id FROM users WHERE telegram_id = ?;`, telegramID).Scan(&id)
	if err == nil {
		return id, nil
	}

	res, err := DB.Exec(`INSERT INTO users (telegram_id) VALUES (?);`, telegramID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return res.LastInsertId()
}

// GetUsersForSymbol returns every user currently tracking the given symbol.
func GetUsersForSymbol(symbol string) ([]types.User, error) {
	query := `
	SELECT u.id, u.telegram_id
	FROM users u
	JOIN user_symbols us ON us.user_id = u.id
	WHERE us.symbol = ?;`

	rows, err := DB.Query(query, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query users for symbol %s: %w", symbol, err)
	}
	defer rows.Close()

	var users []types.User
	for rows.Next() {
		var u types.User
		if err := rows.Scan(&u.ID, &u.TelegramID); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
