package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "livestock-records/docs"
	"livestock-records/internal/domain/animals"
	"livestock-records/internal/domain/records"
	"livestock-records/internal/domain/vaccines"
	"livestock-records/internal/lifecycle"
	"livestock-records/internal/middleware"
	"livestock-records/internal/platform/logger"
	"livestock-records/internal/platform/metrics"
)

type Options struct {
	// Storage vacío usa repos en memoria.
	Storage  Storage
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	// Location define el día calendario de "hoy"; nil usa la zona del proceso.
	Location *time.Location
}

func (o Options) withDefaults() Options {
	if o.Storage.Animals == nil || o.Storage.Vaccines == nil {
		o.Storage = MemoryStorage()
	}
	if o.Metrics == nil {
		o.Metrics = metrics.New()
	}
	return o
}

// Services son los casos de uso; el CLI y el scheduler los usan sin HTTP.
type Services struct {
	Animals  *animals.Service
	Vaccines *vaccines.Service
	Records  *records.Service
}

func NewServices(opts Options) *Services {
	opts = opts.withDefaults()

	clock := lifecycle.ClockIn(opts.Location)

	animalsSvc := animals.NewService(opts.Storage.Animals, logger.Named(opts.Logger, "svc.animals")).
		WithClock(clock)
	vaccinesSvc := vaccines.NewService(opts.Storage.Vaccines, animalsSvc, opts.Metrics, logger.Named(opts.Logger, "svc.vaccines")).
		WithClock(clock)
	recordsSvc := records.NewService(animalsSvc, vaccinesSvc, logger.Named(opts.Logger, "svc.records")).
		WithClock(clock)

	return &Services{Animals: animalsSvc, Vaccines: vaccinesSvc, Records: recordsSvc}
}

func NewRouter(opts Options) http.Handler {
	opts = opts.withDefaults()
	return Handler(NewServices(opts), opts)
}

// Handler arma el router chi sobre servicios ya construidos.
func Handler(svcs *Services, opts Options) http.Handler {
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger.Named(opts.Logger, "http"), opts.Metrics))
	r.Use(middleware.Recover(logger.Named(opts.Logger, "http")))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo
	animals.RegisterRoutes(r, svcs.Animals)
	records.RegisterRoutes(r, svcs.Records)
	vaccines.RegisterRoutes(r, svcs.Vaccines)

	return r
}
