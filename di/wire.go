//go:build wireinject
// +build wireinject

package di

import (
	"fixpoint/config"
	"fixpoint/infras/jwt"
	"fixpoint/infras/kafka"
	"fixpoint/infras/otel"
	"fixpoint/infras/postgres"
	"fixpoint/infras/redis"
	"fixpoint/infras/s3"
	"fixpoint/permissions"
	"fixpoint/shared/cache"
	"fixpoint/transport/http"
	"fixpoint/transport/http/middleware"
	"fixpoint/transport/http/router"

	"github.com/google/wire"

	authService "fixpoint/internal/domains/auth/service"
	bookingService "fixpoint/internal/domains/booking/service"
	couponRepository "fixpoint/internal/domains/coupon/repository"
	couponService "fixpoint/internal/domains/coupon/service"
	galleryRepository "fixpoint/internal/domains/gallery/repository"
	galleryService "fixpoint/internal/domains/gallery/service"
	inquiryRepository "fixpoint/internal/domains/inquiry/repository"
	inquiryService "fixpoint/internal/domains/inquiry/service"
	paymentService "fixpoint/internal/domains/payment/service"
	postRepository "fixpoint/internal/domains/post/repository"
	postService "fixpoint/internal/domains/post/service"
	serviceRepository "fixpoint/internal/domains/service/repository"
	serviceService "fixpoint/internal/domains/service/service"
	settingsRepository "fixpoint/internal/domains/settings/repository"
	settingsService "fixpoint/internal/domains/settings/service"
	userRepository "fixpoint/internal/domains/user/repository"
	userService "fixpoint/internal/domains/user/service"

	authHandler "fixpoint/internal/handlers/auth"
	bookingHandler "fixpoint/internal/handlers/booking"
	couponHandler "fixpoint/internal/handlers/coupon"
	galleryHandler "fixpoint/internal/handlers/gallery"
	inquiryHandler "fixpoint/internal/handlers/inquiry"
	paymentHandler "fixpoint/internal/handlers/payment"
	postHandler "fixpoint/internal/handlers/post"
	serviceHandler "fixpoint/internal/handlers/service"
	settingsHandler "fixpoint/internal/handlers/settings"
	userHandler "fixpoint/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
	userService.New,
)

var catalogDomain = wire.NewSet(
	serviceRepository.New,
	serviceService.New,
)

var couponDomain = wire.NewSet(
	couponRepository.New,
	couponService.New,
)

var inquiryDomain = wire.NewSet(
	inquiryRepository.New,
	inquiryService.New,
)

var settingsDomain = wire.NewSet(
	settingsRepository.New,
	settingsService.New,
)

var bookingDomain = wire.NewSet(
	bookingService.New,
)

var contentDomain = wire.NewSet(
	postRepository.New,
	postService.New,
	galleryRepository.New,
	galleryService.New,
)

var paymentDomain = wire.NewSet(
	paymentService.New,
)

var domains = wire.NewSet(
	authDomain,
	catalogDomain,
	couponDomain,
	inquiryDomain,
	settingsDomain,
	bookingDomain,
	contentDomain,
	paymentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	serviceHandler.New,
	couponHandler.New,
	bookingHandler.New,
	inquiryHandler.New,
	settingsHandler.New,
	postHandler.New,
	galleryHandler.New,
	paymentHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
