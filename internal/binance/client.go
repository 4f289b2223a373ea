package binance

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Kline is a single closed candlestick returned by the REST API.
type Kline struct {
	OpenTime  time.Time
	CloseTime time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// Client is a minimal Binance REST API client used for on-demand lookups
// (command surface); the monitoring pipeline itself is fed by the websocket
// stream.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a REST client for the given API base URL,
// e.g. https://api.binance.com/api/v3.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetKlines fetches up to limit most recent klines for a symbol.
func (c *Client) GetKlines(symbol, interval string, limit int) ([]Kline, error) {
	if limit > 1000 {
		limit = 1000
	}

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("interval", interval)
	params.Set("limit", strconv.Itoa(limit))

	body, err := c.get("/klines", params)
	if err != nil {
		return nil, errors.Wrapf(err, "could not fetch klines for %s", symbol)
	}

	// Entries mix JSON numbers (timestamps) and strings (prices), so decode
	// loosely and convert field by field.
	var raw [][]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.Wrap(err, "could not parse klines response")
	}

	klines := make([]Kline, 0, len(raw))
	for _, entry := range raw {
		if len(entry) < 7 {
			return nil, errors.Errorf("unexpected kline entry of length %d", len(entry))
		}

		openMs, err := klineTimestamp(entry[0])
		if err != nil {
			return nil, errors.Wrap(err, "bad kline open time")
		}
		closeMs, err := klineTimestamp(entry[6])
		if err != nil {
			return nil, errors.Wrap(err, "bad kline close time")
		}

		kline := Kline{
			OpenTime:  time.UnixMilli(openMs),
			CloseTime: time.UnixMilli(closeMs),
		}

		fields := []struct {
			idx int
			dst *float64
		}{
			{1, &kline.Open},
			{2, &kline.High},
			{3, &kline.Low},
			{4, &kline.Close},
			{5, &kline.Volume},
		}
		for _, f := range fields {
			v, err := klinePrice(entry[f.idx])
			if err != nil {
				return nil, errors.Wrapf(err, "bad kline field %d", f.idx)
			}
			*f.dst = v
		}

		klines = append(klines, kline)
	}

	return klines, nil
}

func klineTimestamp(v interface{}) (int64, error) {
	ms, ok := v.(float64)
	if !ok {
		return 0, errors.Errorf("expected numeric timestamp, got %T", v)
	}
	return int64(ms), nil
}

func klinePrice(v interface{}) (float64, error) {
	switch value := v.(type) {
	case string:
		return strconv.ParseFloat(value, 64)
	case float64:
		return value, nil
	default:
		return 0, errors.Errorf("expected price value, got %T", v)
	}
}

// GetCurrentPrice fetches the latest traded price for a symbol. It doubles
// as symbol validation: unknown symbols return an error.
func (c *Client) GetCurrentPrice(symbol string) (float64, error) {
	params := url.Values{}
	params.Set("symbol", symbol)

	body, err := c.get("/ticker/price", params)
	if err != nil {
		return 0, errors.Wrapf(err, "could not fetch price for %s", symbol)
	}

	var ticker struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := json.Unmarshal(body, &ticker); err != nil {
		return 0, errors.Wrap(err, "could not parse price response")
	}

	price, err := strconv.ParseFloat(ticker.Price, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "bad price %q for %s", ticker.Price, symbol)
	}
	return price, nil
}

func (c *Client) get(path string, params url.Values) ([]byte, error) {
	resp, err := c.httpClient.Get(c.baseURL + path + "?" + params.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("binance API error: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
