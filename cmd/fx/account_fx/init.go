package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"voyage/internal/config"
	"voyage/internal/repositories"
	"voyage/internal/services"
	"voyage/pkg/middleware"
	"voyage/pkg/utils"
)

var Module = fx.Provide(
	provideTokenIssuer,
	provideTokenValidator,
	provideUserRepo,
	provideGoogleVerifier,
	provideAccountService)

func provideTokenIssuer(cfg config.Config) *utils.TokenIssuer {
	return utils.NewTokenIssuer(cfg.JWTSecret)
}

func provideTokenValidator(issuer *utils.TokenIssuer) middleware.TokenValidator {
	return issuer
}

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideGoogleVerifier() services.GoogleVerifier {
	return services.NewGoogleVerifier()
}

func provideAccountService(userRepo repositories.UserRepository, issuer *utils.TokenIssuer, google services.GoogleVerifier) services.AccountServiceInterface {
	return services.NewAccountService(userRepo, issuer, google)
}
