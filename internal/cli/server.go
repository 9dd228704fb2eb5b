package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"factcheck-quiz-service/internal/app"
	"factcheck-quiz-service/internal/infra/memory"
	redissession "factcheck-quiz-service/internal/infra/redis"
	transport "factcheck-quiz-service/internal/transport/http"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the fact-check web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}

	checker, err := newChecker(cfg)
	if err != nil {
		return err
	}

	sessionTTL := cfg.SessionTTL()
	var store app.SessionRepository
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		redisStore := redissession.NewSessionStore(redisClient, sessionTTL)
		if err := redisStore.Ping(ctx); err != nil {
			return fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}
		store = redisStore
		log.Printf("sessions stored in redis at %s", cfg.Redis.Addr)
	} else {
		store = memory.NewSessionStore(sessionTTL)
		log.Printf("sessions stored in memory")
	}

	secret := cfg.SessionSecret()
	if secret == nil {
		log.Printf("%s not set, using a random session key; sessions will not survive a restart", cfg.Session.SecretEnv)
		secret = securecookie.GenerateRandomKey(32)
	}

	gin.SetMode(gin.ReleaseMode)
	service := app.NewQuizService(store, checker)
	router := transport.NewRouter(service, transport.RouterConfig{
		Sessions:     transport.NewSessionManager(secret, cfg.Session.CookieName, sessionTTL, cfg.Session.Secure),
		AllowOrigins: cfg.CORS.AllowOrigins,
		Logging:      true,
	})

	// Analyses wait on the model, so the write timeout must outlast it.
	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.ModelTimeout() + 15*time.Second,
	}

	go func() {
		log.Printf("starting fact-check service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
