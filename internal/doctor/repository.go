package doctor

import (
	"context"
	"database/sql"

	"clinic-booking/internal/database"
	"clinic-booking/internal/schedule"

	"github.com/google/uuid"
)

const (
	listDoctorsQuery        = "SELECT id, uuid, user_id, name, specialization, experience, fee FROM tb_doctor ORDER BY name"
	findDoctorByUUIDQuery   = "SELECT id, uuid, user_id, name, specialization, experience, fee FROM tb_doctor WHERE uuid = $1"
	findDoctorByUserIDQuery = "SELECT id, uuid, user_id, name, specialization, experience, fee FROM tb_doctor WHERE user_id = $1"

	listAvailabilityQuery   = "SELECT weekday, slot_start, slot_end FROM tb_availability WHERE doctor_id = $1 ORDER BY weekday, slot_start"
	deleteAvailabilityQuery = "DELETE FROM tb_availability WHERE doctor_id = $1"
	insertAvailabilityQuery = "INSERT INTO tb_availability (doctor_id, weekday, slot_start, slot_end) VALUES ($1, $2, $3, $4)"
	updateFeeQuery          = "UPDATE tb_doctor SET fee = $2 WHERE id = $1"

	listAppointmentRecordsQuery = "SELECT id, date, status FROM tb_appointment WHERE doctor_id = $1"
	listBookedSlotsQuery        = "SELECT date, slot_start, slot_end FROM tb_appointment WHERE doctor_id = $1 AND status <> 'canceled' ORDER BY date, slot_start"
)

// Repository provides access to doctor data.
type Repository interface {

	// ListDoctors lists all doctors ordered by name.
	ListDoctors(ctx context.Context) ([]*Doctor, error)

	// FindDoctorByUUID finds a doctor by its UUID.
	FindDoctorByUUID(ctx context.Context, uuid uuid.UUID) (*Doctor, error)

	// FindDoctorByUserID finds a doctor by its user ID.
	FindDoctorByUserID(ctx context.Context, userID int64) (*Doctor, error)

	// GetWeekSchedule loads the doctor's weekly availability table.
	GetWeekSchedule(ctx context.Context, doctorID int64) (schedule.Week, error)

	// ReplaceAvailability replaces the doctor's weekly availability, and its
	// fee when one is given, in a single transaction.
	ReplaceAvailability(ctx context.Context, doctorID int64, week schedule.Week, fee *float64) error

	// ListAppointmentRecords lists the doctor's whole appointment history.
	ListAppointmentRecords(ctx context.Context, doctorID int64) ([]AppointmentRecord, error)

	// ListBookedSlots lists the occupied slots of the doctor's calendar.
	ListBookedSlots(ctx context.Context, doctorID int64) ([]*BookedSlot, error)
}

type defaultRepository struct {
	dbConn database.Connection
}

func newRepository(dbConn database.Connection) Repository {
	return &defaultRepository{dbConn: dbConn}
}

func (d defaultRepository) ListDoctors(ctx context.Context) ([]*Doctor, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, listDoctorsQuery)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	doctors := make([]*Doctor, 0)
	for rows.Next() {
		doctor := new(Doctor)
		if err = database.TransformRow(rows, doctor); err != nil {
			return nil, err
		}
		doctors = append(doctors, doctor)
	}
	return doctors, nil
}

func (d defaultRepository) FindDoctorByUUID(ctx context.Context, uuid uuid.UUID) (*Doctor, error) {
	return d.findDoctor(ctx, findDoctorByUUIDQuery, uuid)
}

func (d defaultRepository) FindDoctorByUserID(ctx context.Context, userID int64) (*Doctor, error) {
	return d.findDoctor(ctx, findDoctorByUserIDQuery, userID)
}

func (d defaultRepository) findDoctor(ctx context.Context, query string, arg interface{}) (*Doctor, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, query, arg)
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

func (d defaultRepository) GetWeekSchedule(ctx context.Context, doctorID int64) (schedule.Week, error) {
	var week schedule.Week
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, listAvailabilityQuery, doctorID)
	if err != nil {
		return week, err
	}
	defer database.CloseRows(rows)
	for rows.Next() {
		row := new(availabilityRow)
		if err = database.TransformRow(rows, row); err != nil {
			return week, err
		}
		if row.Weekday < 0 || row.Weekday >= schedule.DaysPerWeek {
			continue
		}
		week[row.Weekday] = append(week[row.Weekday], schedule.Slot{Start: row.SlotStart, End: row.SlotEnd})
	}
	return week, nil
}

func (d defaultRepository) ReplaceAvailability(ctx context.Context, doctorID int64, week schedule.Week, fee *float64) error {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	return database.WithTransaction(ctx, d.dbConn, func(tx *sql.Tx) error {
		if fee != nil {
			if _, err := tx.ExecContext(ctx, updateFeeQuery, doctorID, *fee); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, deleteAvailabilityQuery, doctorID); err != nil {
			return err
		}
		for _, day := range week.Days() {
			for _, slot := range week.SlotsOn(day) {
				if _, err := tx.ExecContext(ctx, insertAvailabilityQuery, doctorID, int(day), slot.Start, slot.End); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (d defaultRepository) ListAppointmentRecords(ctx context.Context, doctorID int64) ([]AppointmentRecord, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, listAppointmentRecordsQuery, doctorID)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	records := make([]AppointmentRecord, 0)
	for rows.Next() {
		record := new(AppointmentRecord)
		if err = database.TransformRow(rows, record); err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

func (d defaultRepository) ListBookedSlots(ctx context.Context, doctorID int64) ([]*BookedSlot, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, listBookedSlotsQuery, doctorID)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	slots := make([]*BookedSlot, 0)
	for rows.Next() {
		slot := new(BookedSlot)
		if err = database.TransformRow(rows, slot); err != nil {
			return nil, err
		}
		slot.Slot = schedule.Slot{Start: slot.SlotStart, End: slot.SlotEnd}
		slots = append(slots, slot)
	}
	return slots, nil
}
