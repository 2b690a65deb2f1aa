package router

import (
	"fixpoint/internal/handlers/auth"
	"fixpoint/internal/handlers/booking"
	"fixpoint/internal/handlers/coupon"
	"fixpoint/internal/handlers/gallery"
	"fixpoint/internal/handlers/inquiry"
	"fixpoint/internal/handlers/payment"
	"fixpoint/internal/handlers/post"
	"fixpoint/internal/handlers/service"
	"fixpoint/internal/handlers/settings"
	"fixpoint/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth     auth.Handler
	User     user.Handler
	Service  service.Handler
	Coupon   coupon.Handler
	Booking  booking.Handler
	Inquiry  inquiry.Handler
	Settings settings.Handler
	Post     post.Handler
	Gallery  gallery.Handler
	Payment  payment.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Service.Router(routerGroup)
		r.DomainHandlers.Coupon.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Inquiry.Router(routerGroup)
		r.DomainHandlers.Settings.Router(routerGroup)
		r.DomainHandlers.Post.Router(routerGroup)
		r.DomainHandlers.Gallery.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
