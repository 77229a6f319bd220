package httpapi

import (
	"net/http"
	"time"

	"cattery-backend-go/internal/config"
	"cattery-backend-go/internal/models"
	"cattery-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	DB          *sqlx.DB
	Config      config.Config
	Tokens      services.TokenService
	Credentials *services.CredentialStore
	Content     *services.ContentStore
	SEO         *services.SEORenderer

	Kittens  *services.KittenRepository
	Parents  *services.ParentRepository
	Leads    *services.LeadRepository
	Products *services.ProductRepository
}

func NewServer(db *sqlx.DB, cfg config.Config) *Server {
	tokens := services.TokenService{
		Secret: []byte(cfg.JWTSecret),
		Issuer: cfg.JWTIssuer,
		TTL:    time.Duration(cfg.TokenTTLHours) * time.Hour,
	}
	content := services.NewContentStore(db)
	return &Server{
		DB:          db,
		Config:      cfg,
		Tokens:      tokens,
		Credentials: services.NewCredentialStore(db),
		Content:     content,
		SEO:         &services.SEORenderer{Content: content, SiteURL: cfg.SiteURL},
		Kittens:     services.NewKittens(db),
		Parents:     services.NewParents(db),
		Leads:       services.NewLeads(db),
		Products:    services.NewProducts(db),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	kittens := catalogRoutes[models.Kitten, models.KittenFields]{repo: s.Kittens, filters: availabilityFilter}
	parents := catalogRoutes[models.Parent, models.ParentFields]{repo: s.Parents}
	products := catalogRoutes[models.Product, models.ProductFields]{repo: s.Products, filters: productFilters}
	leads := catalogRoutes[models.Lead, models.LeadFields]{repo: s.Leads, deletedMsg: "Entry removed successfully"}
	requireAdmin := RequireAdmin(s.Tokens)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", s.Health)
		api.Post("/admin/login", s.Login)
		api.With(requireAdmin).Post("/admin/change-password", s.ChangePassword)
		api.With(requireAdmin).Get("/admin/system", s.System)
		api.With(requireAdmin).Post("/admin/images", s.UploadImage)

		api.Route("/kittens", kittens.mount(requireAdmin))
		api.Route("/parents", parents.mount(requireAdmin))
		api.Route("/products", products.mount(requireAdmin))

		api.Route("/waiting-list", func(wl chi.Router) {
			wl.Post("/", leads.create)
			wl.Group(func(admin chi.Router) {
				admin.Use(requireAdmin)
				admin.Get("/", leads.list)
				admin.Delete("/{id}", leads.delete)
			})
		})

		api.Get("/content/{page_name}", s.GetContent)
		api.With(requireAdmin).Put("/content", s.PutContent)

		api.NotFound(func(w http.ResponseWriter, r *http.Request) {
			WriteError(w, http.StatusNotFound, "Not found")
		})
	})

	r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(s.Config.ImagesDir))))
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir(assetsDir(s.Config.FrontendDist)))))
	r.Get("/", s.Root)
	r.Get("/*", s.Frontend)
	return r
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":      "healthy",
		"environment": s.Config.Environment,
	})
}
