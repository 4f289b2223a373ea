package commands

import (
	"bytes"
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"rsi-alert-bot/internal/binance"
	"rsi-alert-bot/internal/rsi"
	"rsi-alert-bot/lib/helpers"
	"rsi-alert-bot/lib/translation"
)

// CommandChart renders a PNG of recent close prices with the RSI overlaid
// on a secondary axis. Returns nil chart data with a caption when the
// symbol has no usable history.
func CommandChart(argument string) ([]byte, string, error) {
	symbol := helpers.NormalizeSymbol(argument)
	log.Debugf("processing command /chart with argument: %s", symbol)

	if symbol == "" {
		return nil, translation.Translate("Usage: `/chart SYMBOL`, e\\.g\\. `/chart BTCUSDT`"), nil
	}

	if cachedItem, found := cacheGet(symbol); found {
		log.Debugf("returning cached chart for %s", symbol)
		return cachedItem.ChartData, cachedItem.Caption, nil
	}

	klines, err := binanceClient.GetKlines(symbol, klineInterval(), 100)
	if err != nil {
		return nil, "", errors.Wrap(err, "command /chart")
	}
	if len(klines) < rsi.DefaultPeriod+1 {
		return nil, fmt.Sprintf(
			translation.Translate("Not enough price history for *%s* yet\\."),
			helpers.EscapeMarkdownV2(symbol),
		), nil
	}

	chartData, err := renderChart(symbol, klines)
	if err != nil {
		return nil, "", errors.Wrap(err, "command /chart")
	}

	caption := fmt.Sprintf(
		"*%s* — %s",
		helpers.EscapeMarkdownV2(symbol),
		helpers.EscapeMarkdownV2(fmt.Sprintf(
			translation.Translate("close price and RSI(%d), %s candles"),
			rsi.DefaultPeriod, klineInterval(),
		)),
	)

	cacheSet(symbol, chartData, caption, 5*time.Minute)
	return chartData, caption, nil
}

// renderChart draws close prices on the primary axis and the RSI on a
// secondary 0..100 axis, with the threshold band for orientation.
func renderChart(symbol string, klines []binance.Kline) ([]byte, error) {
	times := make([]time.Time, 0, len(klines))
	closes := make([]float64, 0, len(klines))
	for _, k := range klines {
		times = append(times, k.CloseTime)
		closes = append(closes, k.Close)
	}

	rsiValues := rsi.Calculate(closes, rsi.DefaultPeriod)
	if len(rsiValues) == 0 {
		return nil, errors.New("not enough klines to compute RSI")
	}
	// The RSI series starts period samples later than the price series.
	rsiTimes := times[len(times)-len(rsiValues):]

	priceColor := drawing.Color{R: 0, G: 122, B: 255, A: 255}
	rsiColor := drawing.Color{R: 255, G: 149, B: 0, A: 255}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s close price and RSI(%d)", symbol, rsi.DefaultPeriod),
		Width:  1200,
		Height: 500,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("02-Jan 15:04"),
		},
		YAxis: chart.YAxis{
			Name: "Price",
			ValueFormatter: func(v interface{}) string {
				if value, ok := v.(float64); ok {
					return helpers.FormatPriceUS(value, false)
				}
				return ""
			},
		},
		YAxisSecondary: chart.YAxis{
			Name:  "RSI",
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Close",
				XValues: times,
				YValues: closes,
				Style: chart.Style{
					StrokeColor: priceColor,
					FillColor:   priceColor.WithAlpha(25),
				},
			},
			chart.TimeSeries{
				Name:    fmt.Sprintf("RSI(%d)", rsi.DefaultPeriod),
				YAxis:   chart.YAxisSecondary,
				XValues: rsiTimes,
				YValues: rsiValues,
				Style: chart.Style{
					StrokeColor: rsiColor,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, errors.Wrap(err, "could not render chart")
	}
	return buf.Bytes(), nil
}
