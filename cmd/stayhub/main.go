package main

import (
	"context"
	"log/slog"
	"os"

	"stayhub/config"
	"stayhub/internal/delivery"
	"stayhub/internal/delivery/http"
	"stayhub/internal/delivery/http/middleware"
	"stayhub/internal/delivery/http/router/handler"
	"stayhub/internal/domain/service"
	"stayhub/internal/infra/auth"
	"stayhub/internal/infra/auth/google"
	"stayhub/internal/infra/clock"
	logs "stayhub/internal/infra/log"
	"stayhub/internal/infra/persistence/postgres"
	"stayhub/internal/infra/token"
	"stayhub/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewIdentityRepository,
			postgres.NewRoleRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			clock.New,
			newBcryptHasher,
			newTokenService,
			newGoogleVerifier,
		),
	)
}

// newBcryptHasher adapts the hasher constructor to the loaded config.
func newBcryptHasher(cfg *config.Config) service.PasswordHasher {
	return auth.NewBcryptHasher(cfg.Auth)
}

// newTokenService adapts the token service constructor to the loaded config.
func newTokenService(cfg *config.Config, clk service.Clock) (service.TokenService, error) {
	return token.NewTokenService(cfg.Token, clk)
}

// newGoogleVerifier adapts the Google verifier constructor to the loaded config.
func newGoogleVerifier(cfg *config.Config) (service.FederatedVerifier, error) {
	return google.NewVerifier(cfg.GoogleOAuth)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewIdentityService,
			impl.NewFederationService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewProfileHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
