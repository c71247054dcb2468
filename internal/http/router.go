package http

import (
	"net/http"

	"asf-backend/internal/handlers"
	"asf-backend/internal/middleware"
	"asf-backend/internal/models"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Client   *handlers.ClientHandler
	Manpower *handlers.ManpowerHandler
	Invoice  *handlers.InvoiceHandler
	Company  *handlers.CompanyHandler
	Health   *handlers.HealthHandler
}

func NewRouter(h Handlers, authMiddleware *middleware.AuthMiddleware) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/health", h.Health.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", h.Health.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", h.Health.DetailedHealth).Methods("GET")

	admins := middleware.RequireRole(models.RoleAdmin, models.RoleAdminSup)

	// Public API routes - Authentication
	r.HandleFunc("/api/auth/signup", h.Auth.Signup).Methods("POST")
	r.HandleFunc("/api/auth/login", h.Auth.Login).Methods("POST")
	r.HandleFunc("/api/auth/logout", h.Auth.Logout).Methods("POST")

	usersAPI := r.PathPrefix("/api/auth/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.Use(admins)
	usersAPI.HandleFunc("", h.Auth.ListUsers).Methods("GET")
	usersAPI.HandleFunc("/role", h.Auth.UpdateRole).Methods("PUT")
	usersAPI.HandleFunc("/{id:[0-9]+}", h.Auth.DeleteUser).Methods("DELETE")

	authAPI := r.PathPrefix("/api/auth").Subrouter()
	authAPI.Use(authMiddleware.Authenticate)
	authAPI.HandleFunc("/me", h.Auth.Me).Methods("GET")

	// One dashboard per role
	dashboards := r.PathPrefix("/api/dashboard").Subrouter()
	dashboards.Use(authMiddleware.Authenticate)
	dashboards.Handle("/admin-dashboard",
		middleware.RequireRole(models.RoleAdmin)(handlers.Dashboard("admin"))).Methods("GET")
	dashboards.Handle("/supervisor-dashboard",
		middleware.RequireRole(models.RoleSupervisor)(handlers.Dashboard("supervisor"))).Methods("GET")
	dashboards.Handle("/admin-supervisor-dashboard",
		middleware.RequireRole(models.RoleAdminSup)(handlers.Dashboard("admin-sup"))).Methods("GET")

	clientsAPI := r.PathPrefix("/api/clients").Subrouter()
	clientsAPI.Use(authMiddleware.Authenticate)
	clientsAPI.Use(admins)
	clientsAPI.HandleFunc("", h.Client.ListClients).Methods("GET")
	clientsAPI.HandleFunc("", h.Client.CreateClient).Methods("POST")
	clientsAPI.HandleFunc("/{id:[0-9]+}", h.Client.GetClient).Methods("GET")
	clientsAPI.HandleFunc("/{id:[0-9]+}", h.Client.UpdateClient).Methods("PUT")
	clientsAPI.HandleFunc("/{id:[0-9]+}", h.Client.DeleteClient).Methods("DELETE")

	manpowerAPI := r.PathPrefix("/api/manpower").Subrouter()
	manpowerAPI.Use(authMiddleware.Authenticate)
	manpowerAPI.Use(admins)
	manpowerAPI.HandleFunc("", h.Manpower.ListManpower).Methods("GET")
	manpowerAPI.HandleFunc("", h.Manpower.CreateManpower).Methods("POST")
	manpowerAPI.HandleFunc("/{id:[0-9]+}", h.Manpower.GetManpower).Methods("GET")
	manpowerAPI.HandleFunc("/{id:[0-9]+}", h.Manpower.UpdateManpower).Methods("PUT")
	manpowerAPI.HandleFunc("/{id:[0-9]+}/status", h.Manpower.UpdateStatus).Methods("PATCH")
	manpowerAPI.HandleFunc("/{id:[0-9]+}", h.Manpower.DeleteManpower).Methods("DELETE")

	invoicesAPI := r.PathPrefix("/api/invoices").Subrouter()
	invoicesAPI.Use(authMiddleware.Authenticate)
	invoicesAPI.Use(admins)
	invoicesAPI.HandleFunc("", h.Invoice.ListInvoices).Methods("GET")
	invoicesAPI.HandleFunc("", h.Invoice.CreateInvoice).Methods("POST")
	invoicesAPI.HandleFunc("/preview", h.Invoice.Preview).Methods("POST")
	invoicesAPI.HandleFunc("/by-number", h.Invoice.GetInvoiceByNumber).Methods("GET")
	invoicesAPI.HandleFunc("/{id:[0-9]+}", h.Invoice.GetInvoice).Methods("GET")
	invoicesAPI.HandleFunc("/{id:[0-9]+}", h.Invoice.UpdateInvoice).Methods("PUT")
	invoicesAPI.HandleFunc("/{id:[0-9]+}", h.Invoice.DeleteInvoice).Methods("DELETE")
	invoicesAPI.HandleFunc("/{id:[0-9]+}/pdf", h.Invoice.PDF).Methods("GET")

	companyAPI := r.PathPrefix("/api/company").Subrouter()
	companyAPI.Use(authMiddleware.Authenticate)
	companyAPI.Use(middleware.RequireRole(models.RoleAdminSup))
	companyAPI.HandleFunc("", h.Company.GetSettings).Methods("GET")
	companyAPI.HandleFunc("", h.Company.UpdateSettings).Methods("PUT")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Route not found"}`))
	})

	return r
}

// Wrap puts panic recovery and request logging around CORS and the router.
// CORS sits outside mux so preflight requests never need a matching route.
func Wrap(router http.Handler, cors func(http.Handler) http.Handler) http.Handler {
	return middleware.PanicRecovery(middleware.RequestLogger(cors(router)))
}
