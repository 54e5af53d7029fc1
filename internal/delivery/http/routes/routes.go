package routes

import (
	"talenthub/internal/delivery/http/handler"
	"talenthub/internal/delivery/http/middleware"
	"talenthub/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Registry wires handlers onto the app. Construction happens in the app
// container; the registry only knows the URL layout.
type Registry struct {
	authMw *middleware.AuthMiddleware

	health        *handler.HealthHandler
	auth          *handler.AuthHandler
	companies     *handler.CompanyHandler
	jobs          *handler.JobHandler
	resumes       *handler.ResumeHandler
	matches       *handler.MatchHandler
	chat          *handler.ChatHandler
	applications  *handler.ApplicationHandler
	interviews    *handler.InterviewHandler
	notifications *handler.NotificationHandler
	wsHandler     *ws.Handler
}

func NewRegistry(
	authMw *middleware.AuthMiddleware,
	auth *handler.AuthHandler,
	companies *handler.CompanyHandler,
	jobs *handler.JobHandler,
	resumes *handler.ResumeHandler,
	matches *handler.MatchHandler,
	chat *handler.ChatHandler,
	applications *handler.ApplicationHandler,
	interviews *handler.InterviewHandler,
	notifications *handler.NotificationHandler,
	wsHandler *ws.Handler,
) *Registry {
	return &Registry{
		authMw:        authMw,
		health:        handler.NewHealthHandler(),
		auth:          auth,
		companies:     companies,
		jobs:          jobs,
		resumes:       resumes,
		matches:       matches,
		chat:          chat,
		applications:  applications,
		interviews:    interviews,
		notifications: notifications,
		wsHandler:     wsHandler,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	r.registerV1(api.Group("/v1"))
}

func (r *Registry) registerV1(v1 fiber.Router) {
	r.auth.RegisterRoutes(v1.Group("/auth"))

	// The ws handshake authenticates itself via a token query param, so it
	// sits outside the header-based auth middleware.
	if r.wsHandler != nil {
		v1.Get("/ws/notifications", r.wsHandler.HandleNotificationsWS)
	}

	protected := v1.Group("", r.authMw.Middleware())

	companies := protected.Group("/companies")
	r.companies.RegisterRoutes(companies)
	r.companies.RegisterRecruiterRoutes(companies.Group("", r.authMw.RequireRecruiter()))

	jobs := protected.Group("/jobs")
	r.jobs.RegisterRoutes(jobs)
	r.jobs.RegisterRecruiterRoutes(jobs.Group("", r.authMw.RequireRecruiter()))

	r.resumes.RegisterRoutes(protected.Group("/resumes"))
	r.matches.RegisterRoutes(protected.Group("/matches"))
	r.chat.RegisterRoutes(protected.Group("/chat"))

	applications := protected.Group("/applications")
	r.applications.RegisterRoutes(applications)
	r.applications.RegisterRecruiterRoutes(applications.Group("", r.authMw.RequireRecruiter()))

	interviews := protected.Group("/interviews")
	r.interviews.RegisterRoutes(interviews)
	r.interviews.RegisterRecruiterRoutes(interviews.Group("", r.authMw.RequireRecruiter()))

	r.notifications.RegisterRoutes(protected.Group("/notifications"))
}
