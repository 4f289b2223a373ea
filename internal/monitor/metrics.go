package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	TicksProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "rsibot",
		Subsystem: "monitor",
		Name:      "ticks_processed",
		Help:      "The total number of closed-candle ticks processed",
	})
	AlertsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rsibot",
			Subsystem: "monitor",
			Name:      "alerts_sent",
			Help:      "The total number of alerts dispatched, by kind",
		},
		[]string{"kind"},
	)
	StreamFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "rsibot",
		Subsystem: "monitor",
		Name:      "stream_failures",
		Help:      "The total number of kline stream sessions that ended with an error",
	})
	StreamedSymbols = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "rsibot",
		Subsystem: "monitor",
		Name:      "streamed_symbols",
		Help:      "The current number of symbols on the live kline stream",
	})
)

func init() {
	prometheus.MustRegister(TicksProcessed)
	prometheus.MustRegister(AlertsSent)
	prometheus.MustRegister(StreamFailures)
	prometheus.MustRegister(StreamedSymbols)
}
