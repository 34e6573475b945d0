package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"clinic-booking/internal/database"
	"clinic-booking/internal/schedule"

	"github.com/google/uuid"
)

const (
	findDoctorByUUIDQuery    = "SELECT id, uuid, user_id, name, specialization, experience, fee FROM tb_doctor WHERE uuid = $1"
	findDoctorByUserIDQuery  = "SELECT id, uuid, user_id, name, specialization, experience, fee FROM tb_doctor WHERE user_id = $1"
	findPatientByUserIDQuery = "SELECT id, uuid, user_id, name, phone FROM tb_patient WHERE user_id = $1"

	findAppointmentByUUIDQuery     = "SELECT id, uuid, doctor_id, patient_id, date, slot_start, slot_end, status, reschedule_count FROM tb_appointment WHERE uuid = $1"
	listAppointmentsByPatientQuery = "SELECT id, uuid, doctor_id, patient_id, date, slot_start, slot_end, status, reschedule_count FROM tb_appointment WHERE patient_id = $1 ORDER BY date"
	listAppointmentsByDoctorQuery  = "SELECT id, uuid, doctor_id, patient_id, date, slot_start, slot_end, status, reschedule_count FROM tb_appointment WHERE doctor_id = $1 ORDER BY date"
	listPatientDayQuery            = "SELECT id, uuid, doctor_id, patient_id, date, slot_start, slot_end, status, reschedule_count FROM tb_appointment WHERE patient_id = $1 AND date = $2 FOR UPDATE"
	listDoctorDayQuery             = "SELECT id, uuid, doctor_id, patient_id, date, slot_start, slot_end, status, reschedule_count FROM tb_appointment WHERE doctor_id = $1 AND date = $2 FOR UPDATE"
	insertAppointmentQuery         = "INSERT INTO tb_appointment (uuid, doctor_id, patient_id, date, slot_start, slot_end, status, reschedule_count) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id"
	rescheduleAppointmentQuery     = "UPDATE tb_appointment SET date = $2, slot_start = $3, slot_end = $4, status = $5, reschedule_count = reschedule_count + 1 WHERE id = $1"
	updateStatusQuery              = "UPDATE tb_appointment SET status = $2 WHERE id = $1"
	countActiveOnQuery             = "SELECT COUNT(*) FROM tb_appointment WHERE date = $1 AND status <> 'canceled'"

	advisoryLockQuery = "SELECT pg_advisory_xact_lock(hashtext($1))"
)

// ConflictDecision is the pure check run against the appointments loaded inside
// the booking transaction. Returning an error aborts the write.
type ConflictDecision func(existing []*Appointment) error

// Repository provides access to appointment data.
type Repository interface {

	// FindDoctorByUUID finds a doctor by its UUID.
	FindDoctorByUUID(ctx context.Context, uuid uuid.UUID) (*Doctor, error)

	// FindDoctorByUserID finds a doctor by its user ID.
	FindDoctorByUserID(ctx context.Context, userID int64) (*Doctor, error)

	// FindPatientByUserID finds a patient by its user ID.
	FindPatientByUserID(ctx context.Context, userID int64) (*Patient, error)

	// FindAppointmentByUUID finds an appointment by its UUID.
	FindAppointmentByUUID(ctx context.Context, uuid uuid.UUID) (*Appointment, error)

	// ListByPatient lists the patient's appointments ordered by date.
	ListByPatient(ctx context.Context, patientID int64) ([]*Appointment, error)

	// ListByDoctor lists the doctor's appointments ordered by date.
	ListByDoctor(ctx context.Context, doctorID int64) ([]*Appointment, error)

	// CountActiveOn counts the non-canceled appointments on the given date.
	CountActiveOn(ctx context.Context, date time.Time) (int, error)

	// CreateAppointment inserts the given appointment after the decision
	// accepts it. The check and the insert run in one transaction holding a
	// per-(patient, date, slot start) advisory lock, so no other booking for
	// the same patient slot can interleave between them.
	CreateAppointment(ctx context.Context, appointment *Appointment, decide ConflictDecision) error

	// RescheduleAppointment moves the given appointment to the new date and
	// slot after the decision accepts it, setting its status and incrementing
	// its reschedule counter atomically. The check and the update run in one
	// transaction holding a per-(doctor, date, slot start) advisory lock.
	RescheduleAppointment(ctx context.Context, appointment *Appointment, newDate time.Time, newSlot schedule.Slot, status Status, decide ConflictDecision) error

	// UpdateStatus unconditionally sets the appointment status.
	UpdateStatus(ctx context.Context, appointmentID int64, status Status) error
}

type defaultRepository struct {
	dbConn database.Connection
}

// NewRepository creates a new Repository.
func newRepository(dbConn database.Connection) Repository {
	return &defaultRepository{dbConn: dbConn}
}

func (d defaultRepository) FindDoctorByUUID(ctx context.Context, uuid uuid.UUID) (*Doctor, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, findDoctorByUUIDQuery, uuid)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	doctor := new(Doctor)
	for rows.Next() {
		if err = database.TransformRow(rows, doctor); err != nil {
			return nil, err
		}
		if doctor.ID > 0 {
			return doctor, nil
		}
	}
	return nil, nil
}

func (d defaultRepository) FindDoctorByUserID(ctx context.Context, userID int64) (*Doctor, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, findDoctorByUserIDQuery, userID)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	doctor := new(Doctor)
	for rows.Next() {
		if err = database.TransformRow(rows, doctor); err != nil {
			return nil, err
		}
		if doctor.ID > 0 {
			return doctor, nil
		}
	}
	return nil, nil
}

func (d defaultRepository) FindPatientByUserID(ctx context.Context, userID int64) (*Patient, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, findPatientByUserIDQuery, userID)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	patient := new(Patient)
	for rows.Next() {
		if err = database.TransformRow(rows, patient); err != nil {
			return nil, err
		}
		if patient.ID > 0 {
			return patient, nil
		}
	}
	return nil, nil
}

func (d defaultRepository) FindAppointmentByUUID(ctx context.Context, uuid uuid.UUID) (*Appointment, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, findAppointmentByUUIDQuery, uuid)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	for rows.Next() {
		appointment := new(Appointment)
		if err = database.TransformRow(rows, appointment); err != nil {
			return nil, err
		}
		if appointment.ID > 0 {
			appointment.Slot = schedule.Slot{Start: appointment.SlotStart, End: appointment.SlotEnd}
			return appointment, nil
		}
	}
	return nil, nil
}

func (d defaultRepository) ListByPatient(ctx context.Context, patientID int64) ([]*Appointment, error) {
	return d.listAppointments(ctx, listAppointmentsByPatientQuery, patientID)
}

func (d defaultRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]*Appointment, error) {
	return d.listAppointments(ctx, listAppointmentsByDoctorQuery, doctorID)
}

func (d defaultRepository) listAppointments(ctx context.Context, query string, ownerID int64) ([]*Appointment, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	appointments := make([]*Appointment, 0)
	for rows.Next() {
		appointment := new(Appointment)
		if err = database.TransformRow(rows, appointment); err != nil {
			return nil, err
		}
		appointment.Slot = schedule.Slot{Start: appointment.SlotStart, End: appointment.SlotEnd}
		appointments = append(appointments, appointment)
	}
	return appointments, nil
}

func (d defaultRepository) CountActiveOn(ctx context.Context, date time.Time) (int, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	row := d.dbConn.DB().QueryRowContext(ctx, countActiveOnQuery, DateOnly(date))
	if row.Err() != nil {
		return 0, row.Err()
	}
	count := new(int)
	if err := row.Scan(count); err != nil {
		return 0, err
	}
	return *count, nil
}

func (d defaultRepository) CreateAppointment(ctx context.Context, appointment *Appointment, decide ConflictDecision) error {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	lockKey := fmt.Sprintf("patient:%d:%s:%s", appointment.PatientID, appointment.Date.Format("2006-01-02"), appointment.Slot.Start)
	return database.WithTransaction(ctx, d.dbConn, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, advisoryLockQuery, lockKey); err != nil {
			return err
		}
		existing, err := d.listDayAppointments(ctx, tx, listPatientDayQuery, appointment.PatientID, appointment.Date)
		if err != nil {
			return err
		}
		if err = decide(existing); err != nil {
			return err
		}
		return tx.QueryRowContext(ctx, insertAppointmentQuery, appointment.UUID, appointment.DoctorID, appointment.PatientID,
			appointment.Date, appointment.Slot.Start, appointment.Slot.End, appointment.Status, appointment.RescheduleCount).Scan(&appointment.ID)
	})
}

func (d defaultRepository) RescheduleAppointment(ctx context.Context, appointment *Appointment, newDate time.Time, newSlot schedule.Slot, status Status, decide ConflictDecision) error {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	lockKey := fmt.Sprintf("doctor:%d:%s:%s", appointment.DoctorID, newDate.Format("2006-01-02"), newSlot.Start)
	return database.WithTransaction(ctx, d.dbConn, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, advisoryLockQuery, lockKey); err != nil {
			return err
		}
		existing, err := d.listDayAppointments(ctx, tx, listDoctorDayQuery, appointment.DoctorID, newDate)
		if err != nil {
			return err
		}
		if err = decide(existing); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, rescheduleAppointmentQuery, appointment.ID, newDate, newSlot.Start, newSlot.End, status)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("appointment not rescheduled")
		}
		appointment.Date = newDate
		appointment.Slot = newSlot
		appointment.SlotStart = newSlot.Start
		appointment.SlotEnd = newSlot.End
		appointment.Status = status
		appointment.RescheduleCount++
		return nil
	})
}

func (d defaultRepository) listDayAppointments(ctx context.Context, tx *sql.Tx, query string, ownerID int64, date time.Time) ([]*Appointment, error) {
	rows, err := tx.QueryContext(ctx, query, ownerID, DateOnly(date))
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	appointments := make([]*Appointment, 0)
	for rows.Next() {
		appointment := new(Appointment)
		if err = database.TransformRow(rows, appointment); err != nil {
			return nil, err
		}
		appointment.Slot = schedule.Slot{Start: appointment.SlotStart, End: appointment.SlotEnd}
		appointments = append(appointments, appointment)
	}
	return appointments, nil
}

func (d defaultRepository) UpdateStatus(ctx context.Context, appointmentID int64, status Status) error {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	result, err := d.dbConn.DB().ExecContext(ctx, updateStatusQuery, appointmentID, status)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("appointment status not updated")
	}
	return nil
}
