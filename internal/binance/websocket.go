package binance

import (
	"encoding/json"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// PriceTick is a single closed-candle price observation.
type PriceTick struct {
	Symbol  string
	Close   float64
	IsFinal bool
}

// TickHandler receives closed-candle ticks. Handlers run on the session
// goroutine; a panicking handler is recovered and logged without affecting
// other handlers or the session.
type TickHandler func(tick PriceTick)

// StreamConfig configuration of a kline stream session
type StreamConfig struct {
	BaseURL  string // e.g. wss://stream.binance.com:9443/ws
	Interval string // kline interval, e.g. "1h"
}

// StreamClient owns one multiplexed kline websocket session for a fixed
// symbol set. It is a single-attempt session object: once the connection
// drops or Stop is called, the caller creates a new client to reconnect.
type StreamClient struct {
	config StreamConfig
	dialer *websocket.Dialer

	mu       sync.Mutex
	conn     *websocket.Conn
	handlers []TickHandler
	stopped  bool

	wg sync.WaitGroup
}

// NewStreamClient creates a stream client for one session.
func NewStreamClient(c StreamConfig) *StreamClient {
	return &StreamClient{
		config: c,
		dialer: websocket.DefaultDialer,
	}
}

// AddHandler registers a tick handler. Registration is safe while a session
// is running; the dispatch pass snapshots the handler list.
func (s *StreamClient) AddHandler(h TickHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, h)
}

// Stream connects a combined kline stream for the given symbols and blocks
// reading messages until the connection fails or Stop is called. An empty
// symbol set returns immediately without connecting.
func (s *StreamClient) Stream(symbols []string) error {
	if len(symbols) == 0 {
		return nil
	}

	streams := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		streams = append(streams, strings.ToLower(symbol)+"@kline_"+s.config.Interval)
	}
	streamURL := s.config.BaseURL + "/" + strings.Join(streams, "/")

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	log.Infof("starting kline stream for symbols: %v", symbols)

	conn, _, err := s.dialer.Dial(streamURL, nil)
	if err != nil {
		return errors.Wrap(err, "could not connect kline stream")
	}

	s.mu.Lock()
	if s.stopped {
		// Stop raced the dial; discard the fresh connection.
		s.mu.Unlock()
		conn.Close()
		return nil
	}
	s.conn = conn
	s.mu.Unlock()

	s.wg.Add(1)
	defer s.wg.Done()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			s.mu.Lock()
			stopped := s.stopped
			s.conn = nil
			s.mu.Unlock()

			if stopped {
				return nil
			}
			return errors.Wrap(err, "kline stream read failed")
		}

		s.handleMessage(payload)
	}
}

// Stop signals the session to exit and closes the connection if open. It is
// idempotent and safe to call at any time; when it returns, no further
// handler invocations occur. Must not be called from inside a handler.
func (s *StreamClient) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		s.wg.Wait()
		return
	}
	s.stopped = true
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	s.wg.Wait()
	log.Info("kline stream stopped")
}

// klineEvent is the subset of the Binance kline payload the bot reads.
type klineEvent struct {
	EventType string `json:"e"`
	Kline     struct {
		Symbol  string `json:"s"`
		Close   string `json:"c"`
		IsFinal bool   `json:"x"`
	} `json:"k"`
}

func (s *StreamClient) handleMessage(payload []byte) {
	var event klineEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		log.Warnf("skipping unparsable stream message: %v", err)
		return
	}

	if event.Kline.Symbol == "" {
		log.Debugf("skipping non-kline stream message: %s", event.EventType)
		return
	}

	// Intra-candle updates are discarded; only closed candles feed the
	// indicator window.
	if !event.Kline.IsFinal {
		return
	}

	closePrice, err := strconv.ParseFloat(event.Kline.Close, 64)
	if err != nil {
		log.Warnf("skipping kline with bad close price %q: %v", event.Kline.Close, err)
		return
	}

	tick := PriceTick{
		Symbol:  strings.ToUpper(event.Kline.Symbol),
		Close:   closePrice,
		IsFinal: true,
	}

	s.mu.Lock()
	handlers := make([]TickHandler, len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.Unlock()

	for _, handler := range handlers {
		s.dispatch(handler, tick)
	}
}

func (s *StreamClient) dispatch(handler TickHandler, tick PriceTick) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("recovered from panic in tick handler for %s: %v", tick.Symbol, r)
		}
	}()
	handler(tick)
}
