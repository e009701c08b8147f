package router

import (
	"database/sql"
	"net/http"

	_ "barkbuddy/docs"
	"barkbuddy/internal/adapters/imagestore/inline"
	mem "barkbuddy/internal/adapters/storage/memory"
	pg "barkbuddy/internal/adapters/storage/postgres"
	"barkbuddy/internal/domain/breeds"
	"barkbuddy/internal/domain/dogs"
	"barkbuddy/internal/domain/locations"
	"barkbuddy/internal/middleware"
	"barkbuddy/internal/platform/logger"
	"barkbuddy/internal/ports/auth"
	"barkbuddy/internal/ports/images"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev: X-Debug-User-ID)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: default inline (bytes en la fila).
	Images images.Store

	BreedsCSVPath  string
	MaxUploadBytes int64
	CORSOrigins    []string

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	imgs := opts.Images
	if imgs == nil {
		imgs = inline.New()
	}
	breedsPath := opts.BreedsCSVPath
	if breedsPath == "" {
		breedsPath = "data/dog_breeds.csv"
	}
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.CORS(origins))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	var (
		dogRepo      dogs.Repository
		locationRepo locations.Repository
	)

	if opts.DB != nil {
		dogRepo = pg.NewDogsRepo(opts.DB)
		locationRepo = pg.NewLocationsRepo(opts.DB)
	} else {
		memDB := mem.NewDB()
		dogRepo = mem.NewDogRepo(memDB)
		locationRepo = mem.NewLocationRepo(memDB)
	}

	// Services por módulo
	dogsSvc := dogs.NewService(dogRepo, imgs, log)
	locationsSvc := locations.NewService(locationRepo)
	dogsSvc.SetSightingRecorder(locationsSvc)

	// Rutas por módulo
	breeds.RegisterRoutes(r, breeds.NewLoader(breedsPath), log)
	dogs.RegisterRoutes(r, dogsSvc, dogs.HandlerOptions{
		MaxUploadBytes: opts.MaxUploadBytes,
		Log:            log,
	})
	locations.RegisterRoutes(r, locationsSvc, dogsSvc, log)

	return r
}
