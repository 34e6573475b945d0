package auth

import (
	"context"
	"database/sql"

	"clinic-booking/internal/database"
	"clinic-booking/internal/schedule"

	"github.com/google/uuid"
)

const (
	findUserByUUIDQuery    = "SELECT id, uuid, phone, role FROM tb_user WHERE uuid = $1"
	findUserByPhoneQuery   = "SELECT id, uuid, phone, role FROM tb_user WHERE phone = $1"
	checkUserPasswordQuery = "SELECT id, password FROM tb_user WHERE phone = $1"
	insertUserQuery        = "INSERT INTO tb_user (uuid, phone, password, role) VALUES ($1, $2, $3, $4) RETURNING id"
	insertPatientQuery     = "INSERT INTO tb_patient (uuid, user_id, name, phone) VALUES ($1, $2, $3, $4)"
	insertDoctorQuery      = "INSERT INTO tb_doctor (uuid, user_id, name, phone, specialization, experience, fee) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id"
	insertWeekSlotQuery    = "INSERT INTO tb_availability (doctor_id, weekday, slot_start, slot_end) VALUES ($1, $2, $3, $4)"
)

// Repository provides access to account data.
type Repository interface {

	// FindUserByUUID finds a user by its UUID.
	FindUserByUUID(ctx context.Context, uuid uuid.UUID) (*User, error)

	// FindUserByPhone finds a user by its phone number.
	FindUserByPhone(ctx context.Context, phone string) (*User, error)

	// CheckUserPassword checks if the stored password is equals to the given password.
	CheckUserPassword(ctx context.Context, phone string, password string) (bool, error)

	// CreatePatientAccount creates the user and the patient profile atomically.
	CreatePatientAccount(ctx context.Context, user User, name string) error

	// CreateDoctorAccount creates the user, the doctor profile and its initial
	// weekly availability atomically.
	CreateDoctorAccount(ctx context.Context, user User, registration DoctorRegistration, week schedule.Week) error
}

type defaultRepository struct {
	dbConn database.Connection
}

// NewRepository creates a new Repository.
func newRepository(dbConn database.Connection) Repository {
	return &defaultRepository{dbConn: dbConn}
}

func (d defaultRepository) FindUserByUUID(ctx context.Context, uuid uuid.UUID) (*User, error) {
	params := make([]interface{}, 1)
	params[0] = uuid.String()
	rows, err := d.dbConn.DB().QueryContext(ctx, findUserByUUIDQuery, params...)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	user := new(User)
	for rows.Next() {
		if err = database.TransformRow(rows, user); err != nil {
			return nil, err
		}
		if user.ID > 0 {
			return user, nil
		}
	}
	return nil, nil
}

func (d defaultRepository) FindUserByPhone(ctx context.Context, phone string) (*User, error) {
	params := make([]interface{}, 1)
	params[0] = phone
	rows, err := d.dbConn.DB().QueryContext(ctx, findUserByPhoneQuery, params...)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	user := new(User)
	for rows.Next() {
		if err = database.TransformRow(rows, user); err != nil {
			return nil, err
		}
		if user.ID > 0 {
			return user, nil
		}
	}
	return nil, nil
}

func (d defaultRepository) CheckUserPassword(ctx context.Context, phone string, password string) (bool, error) {
	params := make([]interface{}, 1)
	params[0] = phone
	row := d.dbConn.DB().QueryRowContext(ctx, checkUserPasswordQuery, params...)
	if row.Err() != nil {
		return false, row.Err()
	}
	id := new(uint64)
	hashedPass := new(string)
	if err := row.Scan(id, hashedPass); err != nil && err != sql.ErrNoRows {
		return false, err
	}
	return ComparePasswords(*hashedPass, password), nil
}

func (d defaultRepository) CreatePatientAccount(ctx context.Context, user User, name string) error {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	return database.WithTransaction(ctx, d.dbConn, func(tx *sql.Tx) error {
		var userID int64
		if err := tx.QueryRowContext(ctx, insertUserQuery, user.UUID, user.Phone, user.Password, user.Role).Scan(&userID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, insertPatientQuery, uuid.New(), userID, name, user.Phone)
		return err
	})
}

func (d defaultRepository) CreateDoctorAccount(ctx context.Context, user User, registration DoctorRegistration, week schedule.Week) error {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	return database.WithTransaction(ctx, d.dbConn, func(tx *sql.Tx) error {
		var userID int64
		if err := tx.QueryRowContext(ctx, insertUserQuery, user.UUID, user.Phone, user.Password, user.Role).Scan(&userID); err != nil {
			return err
		}
		var doctorID int64
		err := tx.QueryRowContext(ctx, insertDoctorQuery, uuid.New(), userID, registration.Name, registration.Phone,
			registration.Specialization, registration.Experience, registration.Fee).Scan(&doctorID)
		if err != nil {
			return err
		}
		for _, day := range week.Days() {
			for _, slot := range week.SlotsOn(day) {
				if _, err = tx.ExecContext(ctx, insertWeekSlotQuery, doctorID, int(day), slot.Start, slot.End); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
