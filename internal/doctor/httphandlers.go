package doctor

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"clinic-booking/internal/apierrors"
	"clinic-booking/internal/auth"
	"clinic-booking/internal/configs"
	"clinic-booking/internal/database"
	"clinic-booking/internal/logging"
	"clinic-booking/internal/schedule"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type httpHandler struct {
	authorizer auth.Authorizer
	service    Service
	logger     *log.Logger
}

// Setup setups the routes handled by doctor context.
func Setup(router *chi.Mux, logger *log.Logger, authorizer auth.Authorizer, config configs.Config, dbConn database.Connection) {
	handler := &httpHandler{logger: logger, authorizer: authorizer, service: NewService(config, dbConn)}

	// protected routes, for any authenticated user
	router.Group(func(group chi.Router) {
		group.Use(auth.JwtValidator(authorizer))
		group.Get("/api/v1/doctors", handler.ListDoctors)
		group.Get("/api/v1/doctors/{doctorUUID}", handler.GetDoctor)
		group.Get("/api/v1/doctors/{doctorUUID}/booked-slots", handler.GetBookedSlots)
	})

	// protected routes, only for doctors
	router.Group(func(group chi.Router) {
		group.Use(auth.JwtValidator(authorizer))
		group.Use(auth.AllowedRole(authorizer, auth.DoctorRole))
		group.Get("/api/v1/doctors/me/stats", handler.GetStats)
		group.Put("/api/v1/doctors/me/availability", handler.UpdateAvailability)
	})
}

// parseUUIDParameter parses a UUID parameter into a valid UUID.
func (h httpHandler) parseUUIDParameter(parName string, r *http.Request) (uuid.UUID, error) {
	zeroUUID := uuid.UUID{}
	uuidPar := chi.URLParam(r, parName)
	if uuidPar == "" {
		return zeroUUID, apierrors.NewAPIError(apierrors.WithDetail(ErrInvalidIdentifier), apierrors.WithHTTPStatusCode(http.StatusNotFound))
	}
	parsedUUID, err := uuid.Parse(uuidPar)
	if err != nil {
		return zeroUUID, apierrors.NewAPIError(apierrors.WithDetail(ErrInvalidIdentifier), apierrors.WithHTTPStatusCode(http.StatusBadRequest))
	}
	return parsedUUID, nil
}

func (h httpHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
	switch v := err.(type) {
	case *apierrors.APIError:
		w.WriteHeader(v.HTTPStatusCode())
		_ = json.NewEncoder(w).Encode(err)
		return
	case *apierrors.ValidationError:
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(err)
		return
	case *schedule.MalformedTimeError, *schedule.DuplicateSlotError, *schedule.OverlappingSlotsError, *schedule.UnknownWeekdayError:
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(apierrors.NewAPIError(apierrors.WithDetail(err.Error()), apierrors.WithHTTPStatusCode(http.StatusBadRequest)))
		return
	}
	w.WriteHeader(http.StatusInternalServerError)
}

// ListDoctors handles the request to list all doctors.
func (h httpHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.service.ListDoctors(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(doctors)
}

// GetDoctor handles the request to return a doctor profile with its schedule.
func (h httpHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorUUID, err := h.parseUUIDParameter("doctorUUID", r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	doctor, err := h.service.GetDoctor(r.Context(), doctorUUID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(doctor)
}

// GetBookedSlots handles the request to list the occupied slots of a doctor.
func (h httpHandler) GetBookedSlots(w http.ResponseWriter, r *http.Request) {
	doctorUUID, err := h.parseUUIDParameter("doctorUUID", r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	slots, err := h.service.GetBookedSlots(r.Context(), doctorUUID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(slots)
}

// GetStats handles the request to return the authenticated doctor's statistics.
func (h httpHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, err := h.authorizer.GetAuthenticatedUser(ctx)
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	snapshot, err := h.service.GetStats(ctx, user)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(snapshot)
}

// UpdateAvailability handles the request to replace the authenticated doctor's
// weekly availability.
func (h httpHandler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, err := h.authorizer.GetAuthenticatedUser(ctx)
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	update := new(AvailabilityUpdate)
	if err = json.NewDecoder(r.Body).Decode(update); err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	doctor, err := h.service.UpdateAvailability(ctx, user, *update)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(doctor)
}
