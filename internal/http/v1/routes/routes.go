// Package routes wires every v1 endpoint into one huma API.
package routes

import (
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	adminhandler "github.com/zipparents/backend/internal/http/v1/admin"
	connectionshandler "github.com/zipparents/backend/internal/http/v1/connections"
	conversationshandler "github.com/zipparents/backend/internal/http/v1/conversations"
	discoveryhandler "github.com/zipparents/backend/internal/http/v1/discovery"
	eventshandler "github.com/zipparents/backend/internal/http/v1/events"
	onboardinghandler "github.com/zipparents/backend/internal/http/v1/onboarding"
	profileshandler "github.com/zipparents/backend/internal/http/v1/profiles"
	reportshandler "github.com/zipparents/backend/internal/http/v1/reports"
	verificationhandler "github.com/zipparents/backend/internal/http/v1/verification"
	"github.com/zipparents/backend/internal/platform/auth"
	connsvc "github.com/zipparents/backend/internal/service/connections"
	discoverysvc "github.com/zipparents/backend/internal/service/discovery"
	eventsvc "github.com/zipparents/backend/internal/service/events"
	messagingsvc "github.com/zipparents/backend/internal/service/messaging"
	"github.com/zipparents/backend/internal/service/moderation"
	onboardingsvc "github.com/zipparents/backend/internal/service/onboarding"
	"github.com/zipparents/backend/internal/service/photos"
	usersvc "github.com/zipparents/backend/internal/service/user"
)

// Services bundles everything the route table depends on.
type Services struct {
	Users         usersvc.Service
	Photos        photos.Service
	Submitter     *onboardingsvc.Submitter
	OnboardingCfg onboardingsvc.Config
	Discovery     *discoverysvc.Service
	Events        eventsvc.Service
	Messaging     messagingsvc.Service
	Connections   connsvc.Service
	Reports       moderation.Reports
}

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, verifier auth.Verifier, svcs Services) {
	prefix := apiPrefix(api)

	registerSecuritySchemes(api)

	// Apply auth middleware for protected endpoints
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))

	profileshandler.Register(api, svcs.Users, svcs.Photos)
	onboardinghandler.Register(api, svcs.Users, svcs.Submitter, svcs.OnboardingCfg)
	discoveryhandler.Register(api, svcs.Discovery, svcs.Users, prefix)
	eventshandler.Register(api, svcs.Events, prefix)
	conversationshandler.Register(api, svcs.Messaging, prefix)
	connectionshandler.Register(api, svcs.Connections, prefix)
	reportshandler.Register(api, svcs.Reports)
	verificationhandler.Register(api, svcs.Users)
	adminhandler.Register(api, svcs.Users, svcs.Reports)
}

func registerSecuritySchemes(api huma.API) {
	oapi := api.OpenAPI()
	if oapi.Components == nil {
		oapi.Components = &huma.Components{}
	}
	if oapi.Components.SecuritySchemes == nil {
		oapi.Components.SecuritySchemes = map[string]*huma.SecurityScheme{}
	}
	oapi.Components.SecuritySchemes["bearerAuth"] = &huma.SecurityScheme{
		Type:         "http",
		Scheme:       "bearer",
		BearerFormat: "JWT",
		Description:  "Firebase ID token",
	}
	oapi.Components.SecuritySchemes[auth.AdminSecurity] = &huma.SecurityScheme{
		Type:         "http",
		Scheme:       "bearer",
		BearerFormat: "JWT",
		Description:  "Firebase ID token carrying the admin custom claim",
	}
}

func apiPrefix(api huma.API) string {
	for _, s := range api.OpenAPI().Servers {
		if u, err := url.Parse(s.URL); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return ""
}
