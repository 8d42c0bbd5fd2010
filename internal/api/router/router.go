package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"gocorretora/internal/api/auth"
	_ "gocorretora/internal/docs" // registra o doc.json no swag
	"gocorretora/internal/pkg/logger"
	"gocorretora/internal/pkg/middleware"
)

// Resource é qualquer handler capaz de registrar suas próprias rotas CRUD
// (e.g., *resource.Handler[domain.Tag, domain.TagInput]).
type Resource interface {
	Routes(r chi.Router)
}

// Handlers reúne os handlers já inicializados por injeção de dependências.
type Handlers struct {
	Auth *auth.Handler

	Users        Resource
	Owners       Resource
	Brokers      Resource
	Properties   Resource
	Tags         Resource
	Phones       Resource
	Addresses    Resource
	Transactions Resource

	// Relações paginadas (/usuarios/{id}/telefones, /proprietarios/{id}/imoveis, /corretores/{id}/transacoes)
	UserPhones         http.HandlerFunc
	OwnerProperties    http.HandlerFunc
	BrokerTransactions http.HandlerFunc
}

// NewRouter configura e retorna o roteador HTTP principal.
// metrics pode ser nil (sem /metrics e sem instrumentação).
func NewRouter(h Handlers, tokens middleware.TokenValidator, metrics *middleware.Metrics, log logger.Logger) http.Handler {
	r := chi.NewRouter()

	// --- 1. Middlewares globais ---
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	if metrics != nil {
		r.Use(metrics.Instrument)
	}
	r.Use(chimw.Recoverer)

	// --- 2. Rotas públicas ---
	r.Get("/ping", PingHandler)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Post("/api/signup", h.Auth.SignupHandler)
	r.Post("/api/login", h.Auth.LoginHandler)

	// --- 3. Rotas protegidas (Bearer JWT) ---
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(tokens, log))

		r.Route("/api/usuarios", func(r chi.Router) {
			h.Users.Routes(r)
			r.Get("/{id}/telefones", h.UserPhones)
		})
		r.Route("/api/proprietarios", func(r chi.Router) {
			h.Owners.Routes(r)
			r.Get("/{id}/imoveis", h.OwnerProperties)
		})
		r.Route("/api/corretores", func(r chi.Router) {
			h.Brokers.Routes(r)
			r.Get("/{id}/transacoes", h.BrokerTransactions)
		})
		r.Route("/api/imoveis", h.Properties.Routes)
		r.Route("/api/tags", h.Tags.Routes)
		r.Route("/api/telefones", h.Phones.Routes)
		r.Route("/api/enderecos", h.Addresses.Routes)
		r.Route("/api/transacoes", h.Transactions.Routes)
	})

	return r
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}
