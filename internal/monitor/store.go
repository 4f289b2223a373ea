package monitor

import (
	"rsi-alert-bot/internal/database"
	"rsi-alert-bot/internal/types"
)

// DatabaseStore adapts the database package to the monitor's Store
// interface.
type DatabaseStore struct{}

func (DatabaseStore) TrackedSymbols() ([]string, error) {
	return database.GetTrackedSymbols()
}

func (DatabaseStore) Thresholds() (types.Thresholds, error) {
	return database.GetThresholds()
}

func (DatabaseStore) Recipients(symbol string) ([]Recipient, error) {
	users, err := database.GetUsersForSymbol(symbol)
	if err != nil {
		return nil, err
	}

	recipients := make([]Recipient, 0, len(users))
	for _, u := range users {
		recipients = append(recipients, Recipient{
			UserID: u.ID,
			ChatID: u.TelegramID,
		})
	}
	return recipients, nil
}

func (DatabaseStore) SaveAlert(event AlertEvent) error {
	return database.InsertAlert(event.Recipient.UserID, event.Symbol, event.RSIValue, string(event.Kind))
}
