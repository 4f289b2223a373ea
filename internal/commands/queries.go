package commands

import (
	"rsi-alert-bot/config"
	"rsi-alert-bot/internal/binance"
)

var binanceClient *binance.Client

func init() {
	binanceClient = binance.NewClient(config.GetString("binance_api_url"))
}

func klineInterval() string {
	return config.GetString("kline_interval")
}
