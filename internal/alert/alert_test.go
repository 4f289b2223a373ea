package alert

import (
	"strings"
	"testing"
	"time"

	"rsi-alert-bot/internal/monitor"
)

func TestFormatMessage(t *testing.T) {
	event := monitor.AlertEvent{
		Symbol:    "BTCUSDT",
		RSIValue:  24.5678,
		Kind:      monitor.Oversold,
		Recipient: monitor.Recipient{UserID: 1, ChatID: 42},
		Time:      time.Now(),
	}

	text := FormatMessage(event)
	if !strings.Contains(text, "BTCUSDT") {
		t.Errorf("message missing symbol: %q", text)
	}
	if !strings.Contains(text, "24\\.57") {
		t.Errorf("message missing escaped RSI value: %q", text)
	}
	if !strings.Contains(text, "📉") {
		t.Errorf("oversold message missing down emoji: %q", text)
	}
	if !strings.Contains(text, "oversold") {
		t.Errorf("message missing condition: %q", text)
	}

	event.Kind = monitor.Overbought
	text = FormatMessage(event)
	if !strings.Contains(text, "📈") {
		t.Errorf("overbought message missing up emoji: %q", text)
	}
	if !strings.Contains(text, "selling") {
		t.Errorf("message missing action: %q", text)
	}
}
