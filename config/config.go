package config

import (
	"github.com/spf13/viper"
	"sync"
)

var once sync.Once

func InitConfig() {
	once.Do(func() {
		viper.AutomaticEnv()

		viper.BindEnv("telegram_bot_token", "TELEGRAM_BOT_TOKEN")
		viper.BindEnv("database_path", "DATABASE_PATH")
		viper.BindEnv("metrics_port", "METRICS_PORT")
		viper.BindEnv("binance_ws_url", "BINANCE_WS_URL")
		viper.BindEnv("binance_api_url", "BINANCE_API_URL")
		viper.BindEnv("kline_interval", "KLINE_INTERVAL")
		viper.BindEnv("debug", "DEBUG")
		viper.BindEnv("lang", "LANG")

		viper.SetDefault("database_path", "/app/data/bot.db")
		viper.SetDefault("metrics_port", 9090)
		viper.SetDefault("binance_ws_url", "wss://stream.binance.com:9443/ws")
		viper.SetDefault("binance_api_url", "https://api.binance.com/api/v3")
		viper.SetDefault("kline_interval", "1h")
		viper.SetDefault("debug", false)
		viper.SetDefault("lang", "en")
	})
}

func GetString(key string) string {
	InitConfig()
	return viper.GetString(key)
}

func GetInt(key string) int {
	InitConfig()
	return viper.GetInt(key)
}

func GetBool(key string) bool {
	InitConfig()
	return viper.GetBool(key)
}
