package types

type User struct {
	ID         int64  `json:"id"`
	TelegramID int64  `json:"telegram_id"`
	CreatedAt  string `json:"created_at"`
}

type Alert struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	Symbol      string  `json:"symbol"`
	RSIValue    float64 `json:"rsi_value"`
	AlertType   string  `json:"alert_type"` // "oversold" or "overbought"
	TriggeredAt string  `json:"triggered_at"`
}

type Thresholds struct {
	Oversold   float64 `json:"oversold"`
	Overbought float64 `json:"overbought"`
}
