package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/service"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/usecase"
	"github.com/dhanashrishah1306-svg/SAMVED/pkg/response"
	"github.com/dhanashrishah1306-svg/SAMVED/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
	dateLayout   = "2006-01-02"
)

// errorStatus maps usecase sentinels to HTTP statuses. Anything else is a 500.
var errorStatus = map[error]int{
	usecase.ErrInvalidDateFormat:      http.StatusBadRequest,
	usecase.ErrInvalidDateRange:       http.StatusBadRequest,
	usecase.ErrInvalidCapacity:        http.StatusBadRequest,
	usecase.ErrInvalidEquipmentCounts: http.StatusBadRequest,
	usecase.ErrInvalidStock:           http.StatusBadRequest,
	usecase.ErrInvalidCaseCount:       http.StatusBadRequest,
	usecase.ErrInvalidPopulation:      http.StatusBadRequest,
	usecase.ErrInvalidConsultationFee: http.StatusBadRequest,
	usecase.ErrInvalidFollowUpDate:    http.StatusBadRequest,
	usecase.ErrAppointmentInPast:      http.StatusBadRequest,
	usecase.ErrDoctorNotWorkingOnDay:  http.StatusBadRequest,
	usecase.ErrInsufficientStock:      http.StatusBadRequest,
	usecase.ErrStockLimit:             http.StatusBadRequest,

	usecase.ErrInvalidCredentials: http.StatusUnauthorized,
	usecase.ErrInvalidToken:       http.StatusUnauthorized,
	usecase.ErrTokenRevoked:       http.StatusUnauthorized,
	usecase.ErrAccountInactive:    http.StatusForbidden,

	usecase.ErrAppointmentNotOwned: http.StatusForbidden,

	usecase.ErrUserNotFound:          http.StatusNotFound,
	usecase.ErrRoleNotFound:          http.StatusBadRequest,
	usecase.ErrDoctorNotFound:        http.StatusNotFound,
	usecase.ErrPatientNotFound:       http.StatusNotFound,
	usecase.ErrHospitalNotFound:      http.StatusNotFound,
	usecase.ErrEquipmentNotFound:     http.StatusNotFound,
	usecase.ErrMedicineNotFound:      http.StatusNotFound,
	usecase.ErrOutbreakNotFound:      http.StatusNotFound,
	usecase.ErrCampaignNotFound:      http.StatusNotFound,
	usecase.ErrAlertNotFound:         http.StatusNotFound,
	usecase.ErrAppointmentNotFound:   http.StatusNotFound,
	usecase.ErrMedicalRecordNotFound: http.StatusNotFound,
	usecase.ErrAuditLogNotFound:      http.StatusNotFound,
	usecase.ErrNoMetricsToExport:     http.StatusNotFound,

	usecase.ErrUsernameAlreadyExists:    http.StatusConflict,
	usecase.ErrEmailAlreadyExists:       http.StatusConflict,
	usecase.ErrAadharAlreadyExists:      http.StatusConflict,
	usecase.ErrDoctorRegistrationExists: http.StatusConflict,
	usecase.ErrDoctorHasAppointments:    http.StatusConflict,
	usecase.ErrHospitalInUse:            http.StatusConflict,
	usecase.ErrDuplicateAppointment:     http.StatusConflict,
	usecase.ErrAppointmentNotScheduled:  http.StatusConflict,
	usecase.ErrDoctorUnavailable:        http.StatusConflict,

	usecase.ErrQRCodeUnavailable:    http.StatusServiceUnavailable,
	service.ErrStorageNotConfigured: http.StatusServiceUnavailable,
}

// writeError answers with the status registered for err, or a 500 carrying
// the fallback message.
func writeError(w http.ResponseWriter, err error, fallback string) {
	for sentinel, status := range errorStatus {
		if errors.Is(err, sentinel) {
			response.Error(w, status, sentence(sentinel.Error()), nil)
			return
		}
	}
	response.InternalServerError(w, fallback)
}

func sentence(msg string) string {
	if msg == "" {
		return msg
	}
	r := []rune(msg)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// decodeAndValidate reads a JSON body into req and validates it, writing the
// 400 response itself when either step fails.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}

	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}

func pageFromQuery(r *http.Request) entity.Page {
	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = defaultPage
	}
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return entity.Page{Page: page, Limit: limit}
}

func meta(page entity.Page, total int64) *response.Meta {
	return response.NewMeta(page.Page, page.Limit, total)
}

func intVar(w http.ResponseWriter, r *http.Request, label string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id < 1 {
		response.Error(w, http.StatusBadRequest, "Invalid "+label+" ID", nil)
		return 0, false
	}
	return id, true
}

func uuidVar(w http.ResponseWriter, r *http.Request, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid "+label+" ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

// optionalIntQuery returns nil when the parameter is absent.
func optionalIntQuery(w http.ResponseWriter, r *http.Request, name string) (*int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid "+name+" parameter", nil)
		return nil, false
	}
	return &v, true
}

// boundedIntQuery falls back to def when the parameter is absent and
// accepts values in [1, max].
func boundedIntQuery(w http.ResponseWriter, r *http.Request, name string, def, max int) (int, bool) {
	v, ok := optionalIntQuery(w, r, name)
	if !ok {
		return 0, false
	}
	if v == nil {
		return def, true
	}
	if *v < 1 || *v > max {
		response.Error(w, http.StatusBadRequest, name+" must be between 1 and "+strconv.Itoa(max), nil)
		return 0, false
	}
	return *v, true
}

func optionalDateQuery(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, true
	}
	t, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid "+name+" parameter, use YYYY-MM-DD", nil)
		return nil, false
	}
	return &t, true
}
