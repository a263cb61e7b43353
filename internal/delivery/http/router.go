package http

import (
	"net/http"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/http/handler"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	Doctor       *handler.DoctorHandler
	Patient      *handler.PatientHandler
	Hospital     *handler.HospitalHandler
	Inventory    *handler.InventoryHandler
	Surveillance *handler.SurveillanceHandler
	Metrics      *handler.MetricsHandler
	Dashboard    *handler.DashboardHandler
	Citizen      *handler.CitizenHandler
	DoctorPortal *handler.DoctorPortalHandler
	AuditLog     *handler.AuditLogHandler
}

type Router struct {
	router         *mux.Router
	handlers       Handlers
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
	log            *logrus.Logger
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	log *logrus.Logger,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		handlers:       handlers,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
		log:            log,
	}
}

func (r *Router) Setup() http.Handler {
	h := r.handlers

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	api.HandleFunc("/hospitals", h.Hospital.ListHospitals).Methods(http.MethodGet)
	api.HandleFunc("/alerts", h.Surveillance.PublicAlerts).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", h.Auth.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", h.Auth.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", h.Auth.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", h.Auth.GetCurrentUser).Methods(http.MethodGet)

	r.citizenRoutes(api)
	r.doctorRoutes(api)
	r.adminRoutes(api)

	r.router.Use(middleware.Recover(r.log))
	r.router.Use(middleware.AccessLog(r.log))

	// CORS wraps the router so preflight requests for unmatched methods are answered.
	return r.corsMiddleware.Handle(r.router)
}

// Citizen routes (patient only)
func (r *Router) citizenRoutes(api *mux.Router) {
	h := r.handlers
	citizen := api.PathPrefix("/citizen").Subrouter()
	citizen.Use(r.authMiddleware.Authenticate)
	citizen.Use(middleware.RequirePatient)

	citizen.HandleFunc("/dashboard", h.Citizen.Dashboard).Methods(http.MethodGet)
	citizen.HandleFunc("/profile", h.Patient.GetProfile).Methods(http.MethodGet)
	citizen.HandleFunc("/profile", h.Patient.UpdateSelfProfile).Methods(http.MethodPut)
	citizen.HandleFunc("/doctors", h.Doctor.ListAvailableDoctors).Methods(http.MethodGet)
	citizen.HandleFunc("/appointments", h.Citizen.BookAppointment).Methods(http.MethodPost)
	citizen.HandleFunc("/appointments", h.Citizen.ListAppointments).Methods(http.MethodGet)
	citizen.HandleFunc("/appointments/{id}/cancel", h.Citizen.CancelAppointment).Methods(http.MethodPatch)
	citizen.HandleFunc("/medical-records", h.Citizen.ListMedicalRecords).Methods(http.MethodGet)
	citizen.HandleFunc("/medical-records/{id}", h.Citizen.GetMedicalRecord).Methods(http.MethodGet)
	citizen.HandleFunc("/precautions", h.Citizen.Precautions).Methods(http.MethodGet)
	citizen.HandleFunc("/vaccination-campaigns", h.Citizen.Campaigns).Methods(http.MethodGet)
}

// Doctor routes (doctor only)
func (r *Router) doctorRoutes(api *mux.Router) {
	h := r.handlers
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)

	doctor.HandleFunc("/dashboard", h.DoctorPortal.Dashboard).Methods(http.MethodGet)
	doctor.HandleFunc("/profile", h.Doctor.UpdateSelfProfile).Methods(http.MethodPut)
	doctor.HandleFunc("/appointments", h.DoctorPortal.ListAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{id}/cancel", h.DoctorPortal.CancelAppointment).Methods(http.MethodPatch)
	doctor.HandleFunc("/appointments/{id}/treat", h.DoctorPortal.TreatPatient).Methods(http.MethodPost)
	doctor.HandleFunc("/patients/qr/{code}", h.DoctorPortal.PatientByQRCode).Methods(http.MethodGet)
	doctor.HandleFunc("/patients/{id}/records", h.DoctorPortal.PatientRecords).Methods(http.MethodGet)
	doctor.HandleFunc("/analytics", h.DoctorPortal.Analytics).Methods(http.MethodGet)
}

// Admin routes (admin only). Fixed paths are registered ahead of /{id}.
func (r *Router) adminRoutes(api *mux.Router) {
	h := r.handlers
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/dashboard", h.Dashboard.AdminDashboard).Methods(http.MethodGet)

	// Hospitals
	admin.HandleFunc("/hospitals", h.Hospital.CreateHospital).Methods(http.MethodPost)
	admin.HandleFunc("/hospitals", h.Hospital.ListHospitals).Methods(http.MethodGet)
	admin.HandleFunc("/hospitals/{id}", h.Hospital.GetHospital).Methods(http.MethodGet)
	admin.HandleFunc("/hospitals/{id}", h.Hospital.UpdateHospital).Methods(http.MethodPut)
	admin.HandleFunc("/hospitals/{id}", h.Hospital.DeleteHospital).Methods(http.MethodDelete)
	admin.HandleFunc("/hospitals/{id}/beds", h.Hospital.UpdateBeds).Methods(http.MethodPatch)
	admin.HandleFunc("/beds", h.Hospital.BedAvailability).Methods(http.MethodGet)

	// Equipment
	admin.HandleFunc("/equipment", h.Inventory.CreateEquipment).Methods(http.MethodPost)
	admin.HandleFunc("/equipment", h.Inventory.ListEquipment).Methods(http.MethodGet)
	admin.HandleFunc("/equipment/maintenance-due", h.Inventory.MaintenanceDue).Methods(http.MethodGet)
	admin.HandleFunc("/equipment/{id}", h.Inventory.GetEquipment).Methods(http.MethodGet)
	admin.HandleFunc("/equipment/{id}", h.Inventory.UpdateEquipment).Methods(http.MethodPut)
	admin.HandleFunc("/equipment/{id}", h.Inventory.DeleteEquipment).Methods(http.MethodDelete)

	// Medicine
	admin.HandleFunc("/medicine", h.Inventory.CreateMedicine).Methods(http.MethodPost)
	admin.HandleFunc("/medicine", h.Inventory.ListMedicines).Methods(http.MethodGet)
	admin.HandleFunc("/medicine/low-stock", h.Inventory.LowStock).Methods(http.MethodGet)
	admin.HandleFunc("/medicine/expiring", h.Inventory.Expiring).Methods(http.MethodGet)
	admin.HandleFunc("/medicine/{id}", h.Inventory.GetMedicine).Methods(http.MethodGet)
	admin.HandleFunc("/medicine/{id}", h.Inventory.UpdateMedicine).Methods(http.MethodPut)
	admin.HandleFunc("/medicine/{id}", h.Inventory.DeleteMedicine).Methods(http.MethodDelete)
	admin.HandleFunc("/medicine/{id}/stock", h.Inventory.AdjustStock).Methods(http.MethodPatch)

	// Doctors
	admin.HandleFunc("/doctors", h.Doctor.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", h.Doctor.GetAllDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", h.Doctor.GetDoctor).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", h.Doctor.UpdateDoctor).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", h.Doctor.DeleteDoctor).Methods(http.MethodDelete)

	// Patients
	admin.HandleFunc("/patients", h.Patient.ListPatients).Methods(http.MethodGet)

	// Outbreaks
	admin.HandleFunc("/outbreaks", h.Surveillance.CreateOutbreak).Methods(http.MethodPost)
	admin.HandleFunc("/outbreaks", h.Surveillance.ListOutbreaks).Methods(http.MethodGet)
	admin.HandleFunc("/outbreaks/zone-summary", h.Surveillance.OutbreakZoneSummary).Methods(http.MethodGet)
	admin.HandleFunc("/outbreaks/{id}", h.Surveillance.GetOutbreak).Methods(http.MethodGet)
	admin.HandleFunc("/outbreaks/{id}", h.Surveillance.UpdateOutbreak).Methods(http.MethodPut)
	admin.HandleFunc("/outbreaks/{id}", h.Surveillance.DeleteOutbreak).Methods(http.MethodDelete)

	// Campaigns
	admin.HandleFunc("/campaigns", h.Surveillance.CreateCampaign).Methods(http.MethodPost)
	admin.HandleFunc("/campaigns", h.Surveillance.ListCampaigns).Methods(http.MethodGet)
	admin.HandleFunc("/campaigns/{id}", h.Surveillance.GetCampaign).Methods(http.MethodGet)
	admin.HandleFunc("/campaigns/{id}", h.Surveillance.UpdateCampaign).Methods(http.MethodPut)
	admin.HandleFunc("/campaigns/{id}", h.Surveillance.DeleteCampaign).Methods(http.MethodDelete)
	admin.HandleFunc("/campaigns/{id}/progress", h.Surveillance.CampaignProgress).Methods(http.MethodPatch)

	// Alerts
	admin.HandleFunc("/alerts", h.Surveillance.CreateAlert).Methods(http.MethodPost)
	admin.HandleFunc("/alerts", h.Surveillance.ListAlerts).Methods(http.MethodGet)
	admin.HandleFunc("/alerts/{id}", h.Surveillance.GetAlert).Methods(http.MethodGet)
	admin.HandleFunc("/alerts/{id}", h.Surveillance.UpdateAlert).Methods(http.MethodPut)
	admin.HandleFunc("/alerts/{id}", h.Surveillance.DeleteAlert).Methods(http.MethodDelete)
	admin.HandleFunc("/alerts/{id}/deactivate", h.Surveillance.DeactivateAlert).Methods(http.MethodPatch)

	// Health metrics
	admin.HandleFunc("/metrics", h.Metrics.UpsertMetrics).Methods(http.MethodPut)
	admin.HandleFunc("/metrics", h.Metrics.ListMetrics).Methods(http.MethodGet)
	admin.HandleFunc("/metrics/summary", h.Metrics.Summary).Methods(http.MethodGet)
	admin.HandleFunc("/metrics/trend", h.Metrics.Trend).Methods(http.MethodGet)
	admin.HandleFunc("/metrics/export", h.Metrics.Export).Methods(http.MethodPost)

	// Audit logs
	admin.HandleFunc("/audit-logs", h.AuditLog.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", h.AuditLog.GetAuditLog).Methods(http.MethodGet)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
