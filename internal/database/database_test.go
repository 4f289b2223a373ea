package database

import (
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	if err := InitDB(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() {
		CloseDB()
	})
}

func TestGetOrCreateUserIsIdempotent(t *testing.T) {
	setupTestDB(t)

	first, err := GetOrCreateUser(12345)
	if err != nil {
		t.Fatalf("GetOrCreateUser: %v", err)
	}
	second, err := GetOrCreateUser(12345)
	if err != nil {
		t.Fatalf("GetOrCreateUser: %v", err)
	}
	if first != second {
		t.Errorf("got two user IDs for the same telegram ID: %d and %d", first, second)
	}

	other, err := GetOrCreateUser(67890)
	if err != nil {
		t.Fatalf("GetOrCreateUser: %v", err)
	}
	if other == first {
		t.Errorf("distinct telegram IDs share user ID %d", first)
	}
}

func TestUserSymbolRoundTrip(t *testing.T) {
	setupTestDB(t)

	userID, err := GetOrCreateUser(111)
	if err != nil {
		t.Fatalf("GetOrCreateUser: %v", err)
	}

	if err := AddUserSymbol(userID, "BTCUSDT"); err != nil {
		t.Fatalf("AddUserSymbol: %v", err)
	}
	if err := AddUserSymbol(userID, "BTCUSDT"); err != nil {
		t.Fatalf("AddUserSymbol (duplicate): %v", err)
	}
	if err := AddUserSymbol(userID, "ETHUSDT"); err != nil {
		t.Fatalf("AddUserSymbol: %v", err)
	}

	symbols, err := GetUserSymbols(userID)
	if err != nil {
		t.Fatalf("GetUserSymbols: %v", err)
	}
	if len(symbols) != 2 || symbols[0] != "BTCUSDT" || symbols[1] != "ETHUSDT" {
		t.Errorf("GetUserSymbols = %v, want [BTCUSDT ETHUSDT]", symbols)
	}

	removed, err := RemoveUserSymbol(userID, "BTCUSDT")
	if err != nil {
		t.Fatalf("RemoveUserSymbol: %v", err)
	}
	if !removed {
		t.Error("RemoveUserSymbol reported nothing removed for a tracked symbol")
	}

	removed, err = RemoveUserSymbol(userID, "BTCUSDT")
	if err != nil {
		t.Fatalf("RemoveUserSymbol: %v", err)
	}
	if removed {
		t.Error("RemoveUserSymbol reported a removal for an untracked symbol")
	}
}

func TestGetTrackedSymbolsIsDistinct(t *testing.T) {
	setupTestDB(t)

	alice, _ := GetOrCreateUser(1)
	bob, _ := GetOrCreateUser(2)

	for _, pair := range []struct {
		userID int64
		symbol string
	}{
		{alice, "BTCUSDT"},
		{alice, "ETHUSDT"},
		{bob, "BTCUSDT"},
	} {
		if err := AddUserSymbol(pair.userID, pair.symbol); err != nil {
			t.Fatalf("AddUserSymbol(%d, %s): %v", pair.userID, pair.symbol, err)
		}
	}

	symbols, err := GetTrackedSymbols()
	if err != nil {
		t.Fatalf("GetTrackedSymbols: %v", err)
	}
	if len(symbols) != 2 || symbols[0] != "BTCUSDT" || symbols[1] != "ETHUSDT" {
		t.Errorf("GetTrackedSymbols = %v, want [BTCUSDT ETHUSDT]", symbols)
	}
}

func TestGetUsersForSymbol(t *testing.T) {
	setupTestDB(t)

	alice, _ := GetOrCreateUser(100)
	bob, _ := GetOrCreateUser(200)

	AddUserSymbol(alice, "BTCUSDT")
	AddUserSymbol(bob, "BTCUSDT")
	AddUserSymbol(bob, "ETHUSDT")

	users, err := GetUsersForSymbol("BTCUSDT")
	if err != nil {
		t.Fatalf("GetUsersForSymbol: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users for BTCUSDT, want 2", len(users))
	}

	users, err = GetUsersForSymbol("ETHUSDT")
	if err != nil {
		t.Fatalf("GetUsersForSymbol: %v", err)
	}
	if len(users) != 1 || users[0].TelegramID != 200 {
		t.Errorf("got %v for ETHUSDT, want only telegram ID 200", users)
	}
}

func TestThresholdDefaults(t *testing.T) {
	setupTestDB(t)

	thresholds, err := GetThresholds()
	if err != nil {
		t.Fatalf("GetThresholds: %v", err)
	}
	if thresholds.Oversold != 30 || thresholds.Overbought != 70 {
		t.Errorf("defaults = %v/%v, want 30/70", thresholds.Oversold, thresholds.Overbought)
	}
}

func TestSetThresholds(t *testing.T) {
	setupTestDB(t)

	if err := SetThresholds(25, 75); err != nil {
		t.Fatalf("SetThresholds: %v", err)
	}
	thresholds, err := GetThresholds()
	if err != nil {
		t.Fatalf("GetThresholds: %v", err)
	}
	if thresholds.Oversold != 25 || thresholds.Overbought != 75 {
		t.Errorf("thresholds = %v/%v, want 25/75", thresholds.Oversold, thresholds.Overbought)
	}

	// Upsert path.
	if err := SetThresholds(20, 80); err != nil {
		t.Fatalf("SetThresholds (update): %v", err)
	}
	thresholds, _ = GetThresholds()
	if thresholds.Oversold != 20 || thresholds.Overbought != 80 {
		t.Errorf("thresholds after update = %v/%v, want 20/80", thresholds.Oversold, thresholds.Overbought)
	}
}

func TestSetThresholdsRejectsInvalid(t *testing.T) {
	setupTestDB(t)

	cases := []struct {
		name       string
		oversold   float64
		overbought float64
	}{
		{"negative oversold", -1, 70},
		{"overbought above 100", 30, 101},
		{"inverted", 70, 30},
		{"equal", 50, 50},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := SetThresholds(c.oversold, c.overbought); err == nil {
				t.Errorf("SetThresholds(%v, %v) accepted invalid input", c.oversold, c.overbought)
			}
		})
	}
}

func TestAlertHistory(t *testing.T) {
	setupTestDB(t)

	userID, _ := GetOrCreateUser(42)

	for i := 0; i < 5; i++ {
		if err := InsertAlert(userID, "BTCUSDT", 25.5, "oversold"); err != nil {
			t.Fatalf("InsertAlert: %v", err)
		}
	}

	alerts, err := GetRecentAlertsByUser(userID, 3)
	if err != nil {
		t.Fatalf("GetRecentAlertsByUser: %v", err)
	}
	if len(alerts) != 3 {
		t.Fatalf("got %d alerts, want 3", len(alerts))
	}
	for _, a := range alerts {
		if a.Symbol != "BTCUSDT" || a.AlertType != "oversold" || a.RSIValue != 25.5 {
			t.Errorf("unexpected alert row: %+v", a)
		}
	}
}

func TestMetricsRoundTrip(t *testing.T) {
	setupTestDB(t)

	if err := SaveMetric("ticks_processed", "", "", 42); err != nil {
		t.Fatalf("SaveMetric: %v", err)
	}
	value, err := GetMetric("ticks_processed")
	if err != nil {
		t.Fatalf("GetMetric: %v", err)
	}
	if value != 42 {
		t.Errorf("GetMetric = %v, want 42", value)
	}

	// Missing metrics default to zero.
	value, err = GetMetric("never_saved")
	if err != nil {
		t.Fatalf("GetMetric: %v", err)
	}
	if value != 0 {
		t.Errorf("GetMetric for missing metric = %v, want 0", value)
	}

	if err := SaveMetricWithLabels("alerts_sent", "kind", "oversold", 7); err != nil {
		t.Fatalf("SaveMetricWithLabels: %v", err)
	}
	labeled, err := GetMetricsWithLabels("alerts_sent")
	if err != nil {
		t.Fatalf("GetMetricsWithLabels: %v", err)
	}
	if labeled["kind"]["oversold"] != 7 {
		t.Errorf("GetMetricsWithLabels = %v, want kind/oversold = 7", labeled)
	}
}
