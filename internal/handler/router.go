package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/org-hierarchy-api/internal/domain"
	"github.com/org-hierarchy-api/internal/media"
	"github.com/org-hierarchy-api/internal/middleware"
	"github.com/org-hierarchy-api/internal/service"
)

// Пути коллекций для каждого уровня иерархии
var unitPaths = map[domain.Kind]string{
	domain.KindService:    "/services",
	domain.KindDepartment: "/departments",
	domain.KindDivision:   "/divisions",
	domain.KindTeam:       "/teams",
}

// Router настраивает маршруты API
type Router struct {
	logger       *slog.Logger
	units        map[domain.Kind]*UnitHandler
	employees    *EmployeeHandler
	mediaDir     string
	allowOrigins []string
}

// NewRouter создаёт новый роутер
func NewRouter(
	units service.UnitService,
	employees service.EmployeeService,
	hierarchy service.HierarchyService,
	storage *media.Storage,
	allowOrigins []string,
	logger *slog.Logger,
) *Router {
	handlers := make(map[domain.Kind]*UnitHandler, len(domain.Kinds))
	for _, kind := range domain.Kinds {
		handlers[kind] = NewUnitHandler(kind, units, hierarchy, logger)
	}

	return &Router{
		logger:       logger,
		units:        handlers,
		employees:    NewEmployeeHandler(employees, hierarchy, storage.MaxBytes(), logger),
		mediaDir:     storage.Root(),
		allowOrigins: allowOrigins,
	}
}

// Setup настраивает все маршруты
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(rt.logger))
	r.Use(middleware.Recoverer(rt.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.allowOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Загруженные фотографии
	r.Handle(MediaPrefix+"*", filesOnly(http.StripPrefix(MediaPrefix, http.FileServer(http.Dir(rt.mediaDir)))))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.ContentType)

		for _, kind := range domain.Kinds {
			h := rt.units[kind]
			r.Route(unitPaths[kind], func(r chi.Router) {
				r.Get("/", h.List)
				r.Post("/", h.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Get)
					r.Put("/", h.Update)
					r.Patch("/", h.Update)
					r.Delete("/", h.Delete)
					r.Get("/employees", h.Employees)
					r.Get("/statistics", h.Statistics)

					if kind == domain.KindTeam {
						r.Patch("/add-member", h.AddMember)
						r.Delete("/members/{employeeID}", h.RemoveMember)
					}
				})
			})
		}

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", rt.employees.List)
			r.Post("/", rt.employees.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", rt.employees.Get)
				r.Put("/", rt.employees.Update)
				r.Patch("/", rt.employees.Update)
				r.Delete("/", rt.employees.Delete)
				r.Put("/photo", rt.employees.UploadPhoto)
				r.Get("/subdivision", rt.employees.Subdivision)
			})
		})
	})

	return r
}

// filesOnly отдаёт только файлы, листинги каталогов закрыты
func filesOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
