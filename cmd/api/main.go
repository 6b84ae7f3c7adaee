package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tarjeta-joven/internal/config"
	"tarjeta-joven/internal/db"
	apihttp "tarjeta-joven/internal/http"
	"tarjeta-joven/internal/repository"
	"tarjeta-joven/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()
	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}

	cifrado, err := service.NewCipherService(cfg.EncryptionKey)
	if err != nil {
		logger.Fatal("llave de cifrado", zap.Error(err))
	}

	usuarioRepo := repository.NewPgUsuarioRepository(pool)
	tarjetaRepo := repository.NewPgTarjetaRepository(pool)
	negocioRepo := repository.NewPgNegocioRepository(pool)
	productoRepo := repository.NewPgProductoRepository(pool)
	descuentoRepo := repository.NewPgDescuentoRepository(pool)
	txRunner := repository.NewPgTxRunner(pool)

	ventanaLogin := time.Duration(cfg.LoginVentanaSegundos) * time.Second
	loginLimiter := service.NewLoginRateLimiter(ventanaLogin, cfg.LoginMaxIntentos)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			loginLimiter = service.NewRedisLoginRateLimiter(redisClient, ventanaLogin, cfg.LoginMaxIntentos)
		}
		cancel()
	}

	tarjetaSvc := service.NewTarjetaService(logger, tarjetaRepo)
	authSvc := service.NewAuthService(logger, usuarioRepo, tarjetaSvc, cifrado, txRunner)
	usuarioSvc := service.NewUsuarioService(logger, usuarioRepo, cifrado)
	jwtSvc := service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)

	authHandler := apihttp.NewAuthHandler(logger, authSvc, jwtSvc, negocioRepo)
	usuarioHandler := apihttp.NewUsuarioHandler(logger, usuarioSvc)
	tarjetaHandler := apihttp.NewTarjetaHandler(logger, tarjetaRepo)
	negocioHandler := apihttp.NewNegocioHandler(logger, negocioRepo, productoRepo)
	descuentoHandler := apihttp.NewDescuentoHandler(logger, descuentoRepo, negocioRepo)

	router := apihttp.NewRouter(logger, jwtSvc, loginLimiter, authHandler, usuarioHandler, tarjetaHandler, negocioHandler, descuentoHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
