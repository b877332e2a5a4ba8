package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/trsv-dev/dpim-portal/internal/api/response"
	"github.com/trsv-dev/dpim-portal/internal/logger"
	"github.com/trsv-dev/dpim-portal/internal/utils"
)

// limiterIdleTTL Через сколько простоя лимитер клиента удаляется.
const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter Ограничитель частоты запросов по IP клиента.
type RateLimiter struct {
	mu             sync.Mutex
	limiters       map[string]*clientLimiter
	rate           rate.Limit
	burst          int
	trustForwarded bool
	now            func() time.Time
}

// NewRateLimiter Конструктор RateLimiter. По умолчанию клиент определяется по адресу соединения,
// X-Forwarded-For учитывается только при trustForwarded (сервис за доверенным прокси).
func NewRateLimiter(rps rate.Limit, burst int, trustForwarded bool) *RateLimiter {
	return &RateLimiter{
		limiters:       make(map[string]*clientLimiter),
		rate:           rps,
		burst:          burst,
		trustForwarded: trustForwarded,
		now:            time.Now,
	}
}

// Allow Сообщает, можно ли пропустить еще один запрос клиента.
func (rl *RateLimiter) Allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.evictIdle(now)

	cl, ok := rl.limiters[clientIP]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[clientIP] = cl
	}
	cl.lastSeen = now

	return cl.limiter.AllowN(now, 1)
}

// Len Количество отслеживаемых клиентов.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return len(rl.limiters)
}

// Вызывается под rl.mu.
func (rl *RateLimiter) evictIdle(now time.Time) {
	for ip, cl := range rl.limiters {
		if now.Sub(cl.lastSeen) > limiterIdleTTL {
			delete(rl.limiters, ip)
		}
	}
}

// Middleware Отвечает 429, если клиент превысил лимит.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := utils.ClientIP(r, rl.trustForwarded)

		if !rl.Allow(ip) {
			logger.Log.Warn("Превышен лимит запросов", logger.String("ip", ip), logger.String("uri", r.RequestURI))

			retryAfter := 1
			if rl.rate > 0 {
				retryAfter = int(1/float64(rl.rate)) + 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			response.ErrorJSON(w, http.StatusTooManyRequests, "Слишком много попыток, попробуйте позже")
			return
		}

		next.ServeHTTP(w, r)
	})
}
