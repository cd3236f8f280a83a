// Package monitor polls dependencies in the background and caches their health.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CheckFunc probes one dependency. A nil error means online.
type CheckFunc func(ctx context.Context) error

type check struct {
	name     string
	critical bool
	timeout  time.Duration
	fn       CheckFunc
}

type Monitor struct {
	checks []check

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

func New(interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
		status:   Status{Services: map[string]ServiceStatus{}},
	}
}

// Add registers a check. Critical checks decide overall health. Add must be called before
// Start.
func (m *Monitor) Add(name string, critical bool, fn CheckFunc) {
	if fn == nil {
		return
	}
	m.checks = append(m.checks, check{name: name, critical: critical, timeout: 3 * time.Second, fn: fn})
}

// Postgres builds a check that pings a pgx pool.
func Postgres(pool *pgxpool.Pool) CheckFunc {
	return func(ctx context.Context) error {
		return pool.Ping(ctx)
	}
}

// Redis builds a check that pings a Redis client.
func Redis(client *redislib.Client) CheckFunc {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

// Pinger adapts anything with a context-free Ping, such as the bbolt stores.
func Pinger(p interface{ Ping() error }) CheckFunc {
	return func(context.Context) error {
		return p.Ping()
	}
}

// Start runs one check round synchronously, then keeps polling in the background.
func (m *Monitor) Start() {
	m.Refresh()
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// Service returns a view that reports the health of a single dependency.
func (m *Monitor) Service(name string) *ServiceHealth {
	return &ServiceHealth{monitor: m, name: name}
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Refresh()
		case <-m.stopCh:
			return
		}
	}
}

// Refresh runs every check once and stores the result.
func (m *Monitor) Refresh() {
	services := make(map[string]ServiceStatus, len(m.checks))
	for _, c := range m.checks {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		err := c.fn(ctx)
		cancel()

		svc := ServiceStatus{Online: err == nil, Critical: c.critical}
		if err != nil {
			svc.Error = err.Error()
			m.logger.Warn("dependency check failed", zap.String("service", c.name), zap.Error(err))
		}
		services[c.name] = svc
	}

	m.mu.Lock()
	m.status = Status{Services: services, LastCheck: time.Now()}
	m.mu.Unlock()
}

// ServiceHealth exposes one dependency of a Monitor.
type ServiceHealth struct {
	monitor *Monitor
	name    string
}

// IsOnline is false until the dependency has passed a check.
func (s *ServiceHealth) IsOnline() bool {
	svc, ok := s.monitor.GetStatus().Services[s.name]
	return ok && svc.Online
}
