package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginRateLimiter limita intentos de login por clave con ventana fija. El
// corte ocurre antes de cualquier trabajo de hash o descifrado: un intento
// rechazado no debe costar CPU de autenticación.
type LoginRateLimiter interface {
	Allow(key string) bool
}

type ventanaLogin struct {
	cuenta  int
	termina time.Time
}

type memoryLoginRateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	claves map[string]*ventanaLogin
}

// NewLoginRateLimiter crea un limitador de ventana fija en memoria.
func NewLoginRateLimiter(window time.Duration, max int) LoginRateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &memoryLoginRateLimiter{
		window: window,
		max:    max,
		claves: make(map[string]*ventanaLogin),
	}
}

func (l *memoryLoginRateLimiter) Allow(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	ahora := time.Now().UTC()
	v, ok := l.claves[key]
	if !ok || ahora.After(v.termina) {
		l.claves[key] = &ventanaLogin{cuenta: 1, termina: ahora.Add(l.window)}
		return true
	}
	if v.cuenta >= l.max {
		return false
	}
	v.cuenta++
	return true
}

const redisLoginAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisLoginRateLimiter struct {
	client *redis.Client
	window time.Duration
	max    int
	prefix string
}

// NewRedisLoginRateLimiter crea un limitador de ventana fija respaldado en
// redis, para que el límite se sostenga entre réplicas del servicio.
func NewRedisLoginRateLimiter(client *redis.Client, window time.Duration, max int) LoginRateLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisLoginRateLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "login:rl:",
	}
}

func (l *redisLoginRateLimiter) Allow(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	segundos := int(l.window.Seconds())
	if segundos <= 0 {
		segundos = 60
	}
	cuenta, err := l.client.Eval(ctx, redisLoginAllowScript, []string{l.prefix + key}, segundos).Int()
	if err != nil {
		// Si redis no responde, dejamos pasar: el login sigue protegido por
		// el costo del hash y preferimos disponibilidad sobre el límite.
		return true
	}
	return cuenta <= l.max
}
