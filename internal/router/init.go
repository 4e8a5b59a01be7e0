package router

import (
	"github.com/yogapratama/leasedrive/internal/application"
	"github.com/yogapratama/leasedrive/internal/container"
	pginfra "github.com/yogapratama/leasedrive/internal/infrastructure/postgres"
	handlers "github.com/yogapratama/leasedrive/internal/interface/http"
	"github.com/yogapratama/leasedrive/internal/router/modules"
	"github.com/yogapratama/leasedrive/pkg/helpers"
	"github.com/yogapratama/leasedrive/pkg/security"
)

// InitModules builds the services from container singletons and registers
// every feature module. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	vehicleRepo := pginfra.NewVehicleRepository(container.GetPGPool())

	hasher := security.NewHasher(cfg.BcryptCost)
	resetTokens := security.NewIssuer(security.PurposePasswordReset, cfg.TokenTTL)
	confirmTokens := security.NewIssuer(security.PurposeAccountConfirmation, cfg.TokenTTL)

	// Keep the interface nil when no publisher was built, so the services'
	// nil guard works (a typed nil pointer would slip past it).
	var mailPub application.MailPublisher
	if p := container.GetRabbitPub(); p != nil {
		mailPub = p
	}

	userSvc := application.NewUserService(
		userRepo,
		hasher,
		resetTokens,
		confirmTokens,
		container.GetJWT(),
		container.GetRedis(),
		container.GetLogger(),
		mailPub,
	)
	userSvc.ResetURL = cfg.ResetPasswordURL
	userSvc.ConfirmURL = cfg.ConfirmAccountURL
	userSvc.MailEnabled = cfg.MailSendEnabled
	userSvc.ChangeSkew = cfg.PasswordChangeSkew

	dealershipSvc := application.NewDealershipService(
		userRepo,
		container.GetLogger(),
		mailPub,
	)
	dealershipSvc.MailEnabled = cfg.MailSendEnabled

	vehicleSvc := application.NewVehicleService(
		vehicleRepo,
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetES(),
		cfg.ESVehiclesIndex,
		container.GetLogger(),
	)

	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(userSvc, cookies, container.GetLogger()), userRepo))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc), userRepo))
	r.Add(modules.NewDealershipModule(handlers.NewDealershipHandler(dealershipSvc), userRepo))
	r.Add(modules.NewVehicleModule(handlers.NewVehicleHandler(vehicleSvc), userRepo))
}
