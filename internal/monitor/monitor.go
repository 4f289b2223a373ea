// Package monitor drives the RSI alerting pipeline: it keeps one kline
// stream session open for the set of tracked symbols, maintains a rolling
// close-price window per symbol, evaluates RSI against the configured
// thresholds on every closed candle and fans out rate-limited alerts.
package monitor

import (
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"rsi-alert-bot/internal/binance"
	"rsi-alert-bot/internal/rsi"
	"rsi-alert-bot/internal/types"
)

type AlertKind string

const (
	Oversold   AlertKind = "oversold"
	Overbought AlertKind = "overbought"
)

// Recipient identifies a user to notify, resolvable to a Telegram chat.
type Recipient struct {
	UserID int64
	ChatID int64
}

// AlertEvent is one raised alert for one recipient.
type AlertEvent struct {
	Symbol    string
	RSIValue  float64
	Kind      AlertKind
	Recipient Recipient
	Time      time.Time
}

// Store supplies the monitor's read models and best-effort alert
// persistence.
type Store interface {
	TrackedSymbols() ([]string, error)
	Thresholds() (types.Thresholds, error)
	Recipients(symbol string) ([]Recipient, error)
	SaveAlert(event AlertEvent) error
}

// Sink delivers an alert notification to its recipient. Delivery failures
// are logged by the monitor and never retried.
type Sink interface {
	Deliver(event AlertEvent) error
}

// Config tunes the monitor. Zero values fall back to the defaults below.
type Config struct {
	Stream       binance.StreamConfig
	Period       int           // RSI period, default 14
	WindowSize   int           // close prices retained per symbol, default 100
	Cooldown     time.Duration // per symbol+kind alert suppression, default 1h
	PollInterval time.Duration // tracked-symbol reconciliation, default 30s
	RetryBackoff time.Duration // wait after a failed stream session, default 30s
}

// session is the part of binance.StreamClient the run loop drives.
type session interface {
	AddHandler(binance.TickHandler)
	Stream(symbols []string) error
	Stop()
}

// Monitor owns the per-symbol price windows and the alert cooldown
// registry. Construct with New, then Start/Stop.
type Monitor struct {
	config Config
	store  Store
	sink   Sink

	mu        sync.Mutex
	windows   map[string][]float64
	lastAlert map[string]time.Time

	generation atomic.Uint64

	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	// test seams
	now        func() time.Time
	newSession func() session
}

func New(store Store, sink Sink, config Config) *Monitor {
	if config.Period <= 0 {
		config.Period = rsi.DefaultPeriod
	}
	if config.WindowSize <= 0 {
		config.WindowSize = 100
	}
	if config.Cooldown <= 0 {
		config.Cooldown = time.Hour
	}
	if config.PollInterval <= 0 {
		config.PollInterval = 30 * time.Second
	}
	if config.RetryBackoff <= 0 {
		config.RetryBackoff = 30 * time.Second
	}

	m := &Monitor{
		config:    config,
		store:     store,
		sink:      sink,
		windows:   make(map[string][]float64),
		lastAlert: make(map[string]time.Time),
		quit:      make(chan struct{}),
		now:       time.Now,
	}
	m.newSession = func() session {
		return binance.NewStreamClient(config.Stream)
	}
	return m
}

// Start launches the monitoring loop in the background.
func (m *Monitor) Start() {
	m.wg.Add(1)
	go m.run()
	log.Info("RSI monitor started")
}

// Stop terminates the monitoring loop and the active stream session, if
// any. No tick is processed after Stop returns; in-flight notification
// deliveries are allowed to finish on their own.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.quit)
	})
	m.wg.Wait()
	log.Info("RSI monitor stopped")
}

// Generation counts stream sessions established so far. A reconnect or a
// subscription change bumps it.
func (m *Monitor) Generation() uint64 {
	return m.generation.Load()
}

// run is the control loop: it reconciles the tracked-symbol set against the
// live session every poll interval, restarts the session on divergence and
// backs off after stream failures.
func (m *Monitor) run() {
	defer m.wg.Done()

	var (
		current     session
		currentSet  map[string]struct{}
		sessionDone chan error
	)

	stopSession := func() {
		if current == nil {
			return
		}
		current.Stop()
		<-sessionDone
		current, currentSet, sessionDone = nil, nil, nil
		StreamedSymbols.Set(0)
	}

	for {
		desired, err := m.store.TrackedSymbols()
		if err != nil {
			log.Errorf("failed to load tracked symbols: %v", err)
		} else {
			desiredSet := toSet(desired)
			switch {
			case len(desiredSet) == 0:
				stopSession()
			case current == nil || !equalSets(currentSet, desiredSet):
				stopSession()
				current, sessionDone = m.startSession(desired)
				currentSet = desiredSet
			}
		}

		select {
		case <-m.quit:
			stopSession()
			return
		case err := <-sessionDone:
			// The session ended on its own; a nil channel (no session)
			// never fires here.
			log.Errorf("kline stream session ended: %v", err)
			current, currentSet, sessionDone = nil, nil, nil
			StreamedSymbols.Set(0)
			StreamFailures.Inc()
			select {
			case <-m.quit:
				return
			case <-time.After(m.config.RetryBackoff):
			}
		case <-time.After(m.config.PollInterval):
		}
	}
}

func (m *Monitor) startSession(symbols []string) (session, chan error) {
	s := m.newSession()
	s.AddHandler(m.handleTick)

	m.generation.Add(1)
	StreamedSymbols.Set(float64(len(symbols)))

	done := make(chan error, 1)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		done <- s.Stream(symbols)
	}()
	return s, done
}

func toSet(symbols []string) map[string]struct{} {
	set := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		set[s] = struct{}{}
	}
	return set
}

func equalSets(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for s := range a {
		if _, ok := b[s]; !ok {
			return false
		}
	}
	return true
}

// handleTick processes one closed-candle tick. Failures are contained to
// this tick: they are logged and never reach the session loop.
func (m *Monitor) handleTick(tick binance.PriceTick) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("recovered from panic processing tick for %s: %v", tick.Symbol, r)
		}
	}()

	TicksProcessed.Inc()

	window := m.appendToWindow(tick.Symbol, tick.Close)
	if len(window) < m.config.Period+1 {
		return
	}

	values := rsi.Calculate(window, m.config.Period)
	if len(values) == 0 {
		return
	}
	current := values[len(values)-1]
	log.Debugf("%s: RSI = %.2f", tick.Symbol, current)

	// Thresholds are read fresh on every evaluation so a /thresholds
	// change takes effect on the next candle.
	thresholds, err := m.store.Thresholds()
	if err != nil {
		log.Errorf("failed to load thresholds: %v", err)
		return
	}

	var kind AlertKind
	switch {
	case rsi.IsOversold(current, thresholds.Oversold):
		kind = Oversold
	case rsi.IsOverbought(current, thresholds.Overbought):
		kind = Overbought
	default:
		return
	}

	m.raiseAlert(tick.Symbol, current, kind)
}

// appendToWindow appends a close price to the symbol's rolling window,
// evicting the oldest entries beyond the window size, and returns a
// snapshot safe to read without the lock.
func (m *Monitor) appendToWindow(symbol string, closePrice float64) []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	window := append(m.windows[symbol], closePrice)
	if len(window) > m.config.WindowSize {
		window = window[len(window)-m.config.WindowSize:]
	}
	m.windows[symbol] = window

	snapshot := make([]float64, len(window))
	copy(snapshot, window)
	return snapshot
}

// raiseAlert applies the cooldown, persists one alert row per recipient
// (best-effort) and dispatches deliveries without holding any lock. The
// cooldown timestamp is stamped once per tick, not per recipient.
func (m *Monitor) raiseAlert(symbol string, value float64, kind AlertKind) {
	key := symbol + "_" + string(kind)
	now := m.now()

	m.mu.Lock()
	if last, ok := m.lastAlert[key]; ok && now.Sub(last) < m.config.Cooldown {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	recipients, err := m.store.Recipients(symbol)
	if err != nil {
		log.Errorf("failed to resolve recipients for %s: %v", symbol, err)
		return
	}
	if len(recipients) == 0 {
		return
	}

	for _, recipient := range recipients {
		event := AlertEvent{
			Symbol:    symbol,
			RSIValue:  value,
			Kind:      kind,
			Recipient: recipient,
			Time:      now,
		}

		// Persistence and delivery are independent best-effort side
		// effects; either may fail without rolling back the other.
		if err := m.store.SaveAlert(event); err != nil {
			log.Errorf("failed to persist %s alert for %s: %v", kind, symbol, err)
		}

		go m.deliver(event)
		AlertsSent.WithLabelValues(string(kind)).Inc()
	}

	m.mu.Lock()
	m.lastAlert[key] = now
	m.mu.Unlock()

	log.Infof("raised %s alert for %s (RSI %.2f) to %d recipients", kind, symbol, value, len(recipients))
}

func (m *Monitor) deliver(event AlertEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("recovered from panic delivering alert for %s: %v", event.Symbol, r)
		}
	}()
	if err := m.sink.Deliver(event); err != nil {
		log.Errorf("failed to deliver %s alert for %s to chat %d: %v",
			event.Kind, event.Symbol, event.Recipient.ChatID, err)
	}
}
