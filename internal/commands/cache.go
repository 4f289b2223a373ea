package commands

import (
	"sync"
	"time"
)

// CacheItem holds a rendered chart and its caption until expiration.
type CacheItem struct {
	ChartData  []byte
	Caption    string
	Expiration time.Time
}

var (
	chartCacheMu sync.Mutex
	chartCache   = make(map[string]*CacheItem)
)

func cacheGet(symbol string) (*CacheItem, bool) {
	chartCacheMu.Lock()
	defer chartCacheMu.Unlock()

	if item, found := chartCache[symbol]; found && time.Now().Before(item.Expiration) {
		return item, true
	}
	return nil, false
}

func cacheSet(symbol string, chartData []byte, caption string, duration time.Duration) {
	chartCacheMu.Lock()
	defer chartCacheMu.Unlock()

	chartCache[symbol] = &CacheItem{
		ChartData:  chartData,
		Caption:    caption,
		Expiration: time.Now().Add(duration),
	}
}
