package booking

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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type httpHandler struct {
	authorizer auth.Authorizer
	service    Service
	logger     *log.Logger
}

// conflictResponse is the payload returned when a booking or reschedule
// collides with an existing appointment.
type conflictResponse struct {
	Detail              string    `json:"detail"`
	ExistingAppointment uuid.UUID `json:"existing_appointment"`
}

// Setup setups the routes handled by booking context.
func Setup(router *chi.Mux, logger *log.Logger, authorizer auth.Authorizer, config configs.Config, dbConn database.Connection) {
	handler := &httpHandler{logger: logger, authorizer: authorizer, service: NewService(config, dbConn)}

	// protected routes, only for patients
	router.Group(func(group chi.Router) {
		group.Use(auth.JwtValidator(authorizer))
		group.Use(auth.AllowedRole(authorizer, auth.PatientRole))
		group.Post("/api/v1/appointments", handler.Book)
		group.Get("/api/v1/patients/me/appointments", handler.ListPatientAppointments)
		group.Put("/api/v1/appointments/{appointmentUUID}/reschedule", handler.Reschedule)
	})

	// protected routes, only for doctors
	router.Group(func(group chi.Router) {
		group.Use(auth.JwtValidator(authorizer))
		group.Use(auth.AllowedRole(authorizer, auth.DoctorRole))
		group.Get("/api/v1/doctors/me/appointments", handler.ListDoctorAppointments)
		group.Put("/api/v1/appointments/{appointmentUUID}/complete", handler.Complete)
	})

	// protected routes, for any authenticated user
	router.Group(func(group chi.Router) {
		group.Use(auth.JwtValidator(authorizer))
		group.Get("/api/v1/appointments/{appointmentUUID}", handler.GetAppointment)
		group.Put("/api/v1/appointments/{appointmentUUID}/cancel", handler.Cancel)
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

// writeServiceError translates service errors into HTTP responses.
func (h httpHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
	switch v := err.(type) {
	case *AlreadyBookedError:
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(conflictResponse{Detail: v.Error(), ExistingAppointment: v.ExistingUUID})
		return
	case *SlotConflictError:
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(conflictResponse{Detail: v.Error(), ExistingAppointment: v.ExistingUUID})
		return
	case *NotFoundError:
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(apierrors.NewAPIError(apierrors.WithDetail(err.Error()), apierrors.WithHTTPStatusCode(http.StatusNotFound)))
		return
	case *apierrors.APIError:
		w.WriteHeader(v.HTTPStatusCode())
		_ = json.NewEncoder(w).Encode(err)
		return
	case *apierrors.ValidationError:
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(err)
		return
	}
	w.WriteHeader(http.StatusInternalServerError)
}

// Book handles the request to book a new appointment for the authenticated patient.
func (h httpHandler) Book(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, err := h.authorizer.GetAuthenticatedUser(ctx)
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	bookingRequest := new(BookingRequest)
	if err = json.NewDecoder(r.Body).Decode(bookingRequest); err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	appointment, err := h.service.Book(ctx, user, *bookingRequest)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(appointment)
}

// Reschedule handles the request to move an appointment to a new date and slot.
func (h httpHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	appointmentUUID, err := h.parseUUIDParameter("appointmentUUID", r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	user, err := h.authorizer.GetAuthenticatedUser(ctx)
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	rescheduleRequest := new(RescheduleRequest)
	if err = json.NewDecoder(r.Body).Decode(rescheduleRequest); err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	appointment, err := h.service.Reschedule(ctx, user, appointmentUUID, *rescheduleRequest)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(appointment)
}

// Complete handles the request to mark an appointment as completed.
func (h httpHandler) Complete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	appointmentUUID, err := h.parseUUIDParameter("appointmentUUID", r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	user, err := h.authorizer.GetAuthenticatedUser(ctx)
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	appointment, err := h.service.Complete(ctx, user, appointmentUUID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(appointment)
}

// Cancel handles the request to mark an appointment as canceled.
func (h httpHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	appointmentUUID, err := h.parseUUIDParameter("appointmentUUID", r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	user, err := h.authorizer.GetAuthenticatedUser(ctx)
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	appointment, err := h.service.Cancel(ctx, user, appointmentUUID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(appointment)
}

// GetAppointment handles the request to return a single appointment.
func (h httpHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	appointmentUUID, err := h.parseUUIDParameter("appointmentUUID", r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	appointment, err := h.service.GetAppointment(ctx, appointmentUUID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(appointment)
}

// ListPatientAppointments handles the request to list the authenticated patient's appointments.
func (h httpHandler) ListPatientAppointments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, err := h.authorizer.GetAuthenticatedUser(ctx)
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	appointments, err := h.service.ListPatientAppointments(ctx, user)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(appointments)
}

// ListDoctorAppointments handles the request to list the authenticated doctor's appointments.
func (h httpHandler) ListDoctorAppointments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, err := h.authorizer.GetAuthenticatedUser(ctx)
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	appointments, err := h.service.ListDoctorAppointments(ctx, user)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(appointments)
}
