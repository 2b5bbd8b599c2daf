// Package app wires the application together: config, logger, database
// pool, migrations, repositories, services, HTTP transport. All
// dependencies are constructed here and passed down explicitly.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/dealboard/dealboard-backend/internal/adapter/postgres"
	commentrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/comment"
	couponrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/coupon"
	dealrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/deal"
	discussionrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/discussion"
	savedrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/saved"
	tokenrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/token"
	userrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/user"
	voterepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/vote"
	"github.com/dealboard/dealboard-backend/internal/adapter/provider/google"
	internalauth "github.com/dealboard/dealboard-backend/internal/auth"
	"github.com/dealboard/dealboard-backend/internal/config"
	authsvc "github.com/dealboard/dealboard-backend/internal/service/auth"
	commentssvc "github.com/dealboard/dealboard-backend/internal/service/comments"
	contentsvc "github.com/dealboard/dealboard-backend/internal/service/content"
	feedsvc "github.com/dealboard/dealboard-backend/internal/service/feed"
	usersvc "github.com/dealboard/dealboard-backend/internal/service/user"
	votingsvc "github.com/dealboard/dealboard-backend/internal/service/voting"
	"github.com/dealboard/dealboard-backend/internal/transport/middleware"
	"github.com/dealboard/dealboard-backend/internal/transport/rest"
)

// Run is the application entry point. It blocks until ctx is cancelled,
// then shuts the HTTP server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := runMigrations(ctx, pool); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	// Repositories
	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	deals := dealrepo.New(pool)
	coupons := couponrepo.New(pool)
	discussions := discussionrepo.New(pool)
	comments := commentrepo.New(pool)
	votes := voterepo.New(pool)
	saved := savedrepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	// Auth collaborators
	jwtManager := internalauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	verifier := google.NewVerifier(cfg.Auth.GoogleClientID, cfg.Auth.GoogleClientSecret, cfg.Auth.GoogleRedirectURI, logger)
	if !cfg.Auth.GoogleConfigured() {
		logger.Warn("google oauth credentials not configured, external login disabled")
	}

	// Services
	authService := authsvc.NewService(logger, users, tokens, txManager, verifier, jwtManager, cfg.Auth)
	votingService := votingsvc.NewService(logger, votes)
	commentsService := commentssvc.NewService(logger, comments, votes)
	contentService := contentsvc.NewService(logger, deals, coupons, discussions, votes, comments, cfg.Feed)
	feedService := feedsvc.NewService(logger, deals, contentService, cfg.Feed)
	userService := usersvc.NewService(logger, users, saved)

	// Transport
	mux := rest.NewRouter(rest.Handlers{
		Auth:       rest.NewAuthHandler(authService, logger),
		Deal:       rest.NewDealHandler(contentService, feedService, logger),
		Coupon:     rest.NewCouponHandler(contentService, logger),
		Discussion: rest.NewDiscussionHandler(contentService, logger),
		Comment:    rest.NewCommentHandler(commentsService, logger),
		Vote:       rest.NewVoteHandler(votingService, logger),
		User:       rest.NewUserHandler(userService, logger),
		Admin:      rest.NewAdminHandler(userService, logger),
		Health:     rest.NewHealthHandler(pool, BuildVersion()),
	})

	rateLimiter := middleware.NewRateLimiter(cfg.Server.RateLimitSweep)
	defer rateLimiter.Stop()

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.CORS(cfg.CORS),
		middleware.Auth(authService),
		middleware.Logger(logger),
		rateLimiter.Limit(cfg.Server.RateLimitPerMin),
	)(mux)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}
