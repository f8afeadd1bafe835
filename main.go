package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"todo-manager-api/api"
	"todo-manager-api/storage"
	"todo-manager-api/tools"
)

func main() {
	_ = godotenv.Load()

	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		log.SetLevel(log.DebugLevel)
	}

	connStr := os.Getenv("STORAGE_CONNECTION_STRING")
	if connStr == "" {
		log.Fatal("missing storage config")
	}
	todosTable := os.Getenv("TODOS_TABLE")
	if todosTable == "" {
		todosTable = "todos"
	}
	eventsQueue := os.Getenv("EVENTS_QUEUE")

	store, err := storage.New(connStr, todosTable, eventsQueue)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	if err := store.EnsureTable(context.Background()); err != nil {
		log.Fatalf("ensure table: %v", err)
	}

	var svcStore tools.Store = store
	if redisConn := os.Getenv("REDIS_CONNECTION_STRING"); redisConn != "" {
		rc := redis.NewClient(redisOptions(redisConn))
		ttl := time.Minute
		if v := os.Getenv("CACHE_TTL"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				log.Fatalf("invalid CACHE_TTL: %v", err)
			}
			ttl = d
		}
		svcStore = storage.NewCache(store, rc, ttl)
	}

	auth := buildAuth()

	e := echo.New()
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	logger := log.New()
	registry := tools.NewRegistry(tools.NewService(svcStore))
	api.Register(e, registry, auth, logger)

	listenAddr := ":8080"
	if val, ok := os.LookupEnv("FUNCTIONS_CUSTOMHANDLER_PORT"); ok {
		listenAddr = ":" + val
	}

	e.Logger.Fatal(e.Start(listenAddr))
}

// redisOptions accepts a redis URL or an Azure-style "host:port,k=v,..."
// connection string.
func redisOptions(conn string) *redis.Options {
	opts, err := redis.ParseURL(conn)
	if err == nil {
		return opts
	}
	parts := strings.Split(conn, ",")
	opts = &redis.Options{Addr: parts[0]}
	for _, p := range parts[1:] {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch strings.ToLower(kv[0]) {
		case "password":
			opts.Password = kv[1]
		case "ssl":
			if strings.ToLower(kv[1]) == "true" {
				opts.TLSConfig = &tls.Config{}
			}
		}
	}
	return opts
}

// buildAuth configures token validation from the environment. Returns nil
// when auth is disabled or unconfigured, which leaves the API open.
func buildAuth() api.Authenticator {
	if os.Getenv("AUTH_DISABLED") == "1" {
		log.Warn("auth disabled; API is open")
		return nil
	}
	if os.Getenv("AUTH_TEST_MODE") == "1" {
		secret := os.Getenv("TEST_JWT_SECRET")
		if secret == "" {
			log.Fatal("TEST_JWT_SECRET must be set when AUTH_TEST_MODE=1")
		}
		return api.NewTestAuth([]byte(secret), os.Getenv("AUTH_AUDIENCE"), os.Getenv("AUTH_ISSUER"))
	}
	domain := os.Getenv("AUTH_DOMAIN")
	audience := os.Getenv("AUTH_AUDIENCE")
	if domain == "" || audience == "" {
		log.Warn("auth not configured; API is open")
		return nil
	}
	jwksURL := fmt.Sprintf("https://%s/.well-known/jwks.json", domain)
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{})
	if err != nil {
		log.Fatalf("jwks: %v", err)
	}
	return api.NewAuth(jwks, audience, "https://"+domain+"/")
}
