package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio. Se construye una sola vez
// al arranque y se trata como inmutable durante la vida del proceso.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Tamaño del pool de conexiones. Los escaneos de registro y login toman
	// una conexión por petición, así que el máximo acota la concurrencia
	// efectiva de autenticación.
	DBMaxConns int32 `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns int32 `env:"DB_MIN_CONNS" envDefault:"1"`

	// Llave de firma HS256 y vigencia del token de sesión.
	JWTSecret     string `env:"JWT_SECRET,required"`
	JWTTTLMinutes int    `env:"JWT_TTL_MINUTES" envDefault:"180"`

	// Llave maestra de cifrado de PII: 32 bytes en hexadecimal.
	EncryptionKey string `env:"ENCRYPTION_KEY,required"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Ventana fija del limitador de login, por dirección de cliente.
	LoginMaxIntentos     int `env:"LOGIN_MAX_ATTEMPTS" envDefault:"5"`
	LoginVentanaSegundos int `env:"LOGIN_WINDOW_SECONDS" envDefault:"60"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
