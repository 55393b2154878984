package observability

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
)

const (
	OTPSent        = "sent"
	OTPVerified    = "verified"
	OTPRejected    = "rejected"
	OTPCooldown    = "cooldown"
	OTPUnavailable = "unavailable"
)

type Metrics struct {
	apiRequests     *CounterVec
	apiLatency      *HistogramVec
	apiInflight     *Gauge
	recommendations *CounterVec
	chatbotAnswers  *CounterVec
	otpEvents       *CounterVec
	dbStats         *GaugeVec
	redisUp         *Gauge
	redisPing       *Gauge

	scrapeInterval time.Duration
}

// NewMetrics builds an empty registry. scrapeInterval paces the background collectors.
func NewMetrics(scrapeInterval time.Duration) *Metrics {
	if scrapeInterval <= 0 {
		scrapeInterval = 10 * time.Second
	}
	return &Metrics{
		apiRequests: NewCounterVec("jd_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"jd_api_request_duration_seconds",
			"API request latency in seconds by method/route.",
			[]string{"method", "route"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		),
		apiInflight:     NewGauge("jd_api_inflight_requests", "In-flight API requests."),
		recommendations: NewCounterVec("jd_recommendations_total", "Recommendations served by first candidate plan.", []string{"plan"}),
		chatbotAnswers:  NewCounterVec("jd_chatbot_answers_total", "Chatbot answers by category/language.", []string{"category", "language"}),
		otpEvents:       NewCounterVec("jd_otp_events_total", "OTP challenge outcomes.", []string{"outcome"}),
		dbStats:         NewGaugeVec("jd_db_pool", "database/sql pool statistics.", []string{"stat"}),
		redisUp:         NewGauge("jd_redis_up", "1 when the last redis ping succeeded."),
		redisPing:       NewGauge("jd_redis_ping_seconds", "Last redis ping latency in seconds."),
		scrapeInterval:  scrapeInterval,
	}
}

var (
	initOnce sync.Once
	instance *Metrics
)

// Init returns the process-wide registry, or nil when metrics are disabled. Every Metrics method
// is a no-op on nil.
func Init(log *logger.Logger, enabled bool, scrapeInterval time.Duration) *Metrics {
	if !enabled {
		return nil
	}
	initOnce.Do(func() {
		instance = NewMetrics(scrapeInterval)
		if log != nil {
			log.Info("Observability metrics enabled")
		}
	})
	return instance
}

// Current returns the registry installed by Init, or nil.
func Current() *Metrics {
	return instance
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route)
}

func (m *Metrics) APIInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Add(1)
}

func (m *Metrics) APIInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Add(-1)
}

func (m *Metrics) IncRecommendation(candidates []string) {
	if m == nil {
		return
	}
	plan := "none"
	if len(candidates) > 0 {
		plan = candidates[0]
	}
	m.recommendations.Inc(plan)
}

func (m *Metrics) IncChatbotAnswer(category, language string) {
	if m == nil {
		return
	}
	m.chatbotAnswers.Inc(category, language)
}

func (m *Metrics) IncOTP(outcome string) {
	if m == nil {
		return
	}
	m.otpEvents.Inc(outcome)
}

// OTPCount reports how many OTP events with outcome were recorded.
func (m *Metrics) OTPCount(outcome string) float64 {
	if m == nil {
		return 0
	}
	return m.otpEvents.Value(outcome)
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	writers := []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.recommendations,
		m.chatbotAnswers,
		m.otpEvents,
		m.dbStats,
		m.redisUp,
		m.redisPing,
	}
	for _, wr := range writers {
		if err := wr.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

// StartServer serves the exposition on a dedicated listener until ctx is done.
func (m *Metrics) StartServer(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.HandlerFunc(m.WriteHTTP),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if log != nil {
				log.Error("metrics server failed", "error", err, "addr", addr)
			}
		}
	}()
}

func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(m.scrapeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					if log != nil {
						log.Warn("metrics: db stats unavailable", "error", err)
					}
					continue
				}
				stats := sqlDB.Stats()
				m.dbStats.Set(float64(stats.OpenConnections), "open_connections")
				m.dbStats.Set(float64(stats.InUse), "in_use")
				m.dbStats.Set(float64(stats.Idle), "idle")
				m.dbStats.Set(float64(stats.WaitCount), "wait_count")
				m.dbStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
				m.dbStats.Set(float64(stats.MaxOpenConnections), "max_open_connections")
			}
		}
	}()
}

// StartRedisCollector pings the shared client; it never closes it.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb *goredis.Client) {
	if m == nil || rdb == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(m.scrapeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}
