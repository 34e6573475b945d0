package doctor

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"clinic-booking/internal/auth"
	"clinic-booking/internal/configs"
	"clinic-booking/internal/mock"
	"clinic-booking/internal/schedule"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type emptyWriter struct{}

func (e emptyWriter) Write(p []byte) (n int, err error) {
	return 0, nil
}

var logger = log.New(&emptyWriter{}, "", log.LstdFlags)

type mockAuthorizer struct {
	mockValidateToken        func(ctx context.Context, token string) (*auth.User, error)
	mockRefreshTokens        func(ctx context.Context, tokens auth.Tokens) (*auth.Tokens, error)
	mockGetAuthenticatedUser func(ctx context.Context) (auth.User, error)
}

func (m mockAuthorizer) ValidateToken(ctx context.Context, token string) (*auth.User, error) {
	return m.mockValidateToken(ctx, token)
}

func (m mockAuthorizer) RefreshTokens(ctx context.Context, tokens auth.Tokens) (*auth.Tokens, error) {
	return m.mockRefreshTokens(ctx, tokens)
}

func (m mockAuthorizer) GetAuthenticatedUser(ctx context.Context) (auth.User, error) {
	return m.mockGetAuthenticatedUser(ctx)
}

func mockDoctorUser() *auth.User {
	return &auth.User{
		ID:    2,
		UUID:  uuid.UUID{},
		Phone: "+15550200",
		Role:  auth.DoctorRole,
	}
}

func mockPatientUser() *auth.User {
	return &auth.User{
		ID:    1,
		UUID:  uuid.UUID{},
		Phone: "+15550100",
		Role:  auth.PatientRole,
	}
}

func authorizerFor(user *auth.User) mockAuthorizer {
	return mockAuthorizer{
		mockValidateToken: func(ctx context.Context, token string) (*auth.User, error) {
			return user, nil
		},
		mockGetAuthenticatedUser: func(ctx context.Context) (auth.User, error) {
			return *user, nil
		},
	}
}

func doctorColumns() []string {
	return []string{"id", "uuid", "user_id", "name", "specialization", "experience", "fee"}
}

func availabilityColumns() []string {
	return []string{"weekday", "slot_start", "slot_end"}
}

func withListDoctorsResult(rows *sqlmock.Rows) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(listDoctorsQuery)).WillReturnRows(rows)
	}
}

func withFindDoctorByUUIDResult(rows *sqlmock.Rows) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(findDoctorByUUIDQuery)).WithArgs(sqlmock.AnyArg()).WillReturnRows(rows)
	}
}

func withFindDoctorByUUIDError() mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(findDoctorByUUIDQuery)).WithArgs(sqlmock.AnyArg()).WillReturnError(sql.ErrConnDone)
	}
}

func withFindDoctorByUserIDResult(rows *sqlmock.Rows) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(findDoctorByUserIDQuery)).WithArgs(sqlmock.AnyArg()).WillReturnRows(rows)
	}
}

func withListAvailabilityResult(rows *sqlmock.Rows) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(listAvailabilityQuery)).WithArgs(sqlmock.AnyArg()).WillReturnRows(rows)
	}
}

func withListAppointmentRecordsResult(rows *sqlmock.Rows) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(listAppointmentRecordsQuery)).WithArgs(sqlmock.AnyArg()).WillReturnRows(rows)
	}
}

func withListBookedSlotsResult(rows *sqlmock.Rows) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(listBookedSlotsQuery)).WithArgs(sqlmock.AnyArg()).WillReturnRows(rows)
	}
}

func withUpdateFeeResult() mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectExec(regexp.QuoteMeta(updateFeeQuery)).WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))
	}
}

func withDeleteAvailabilityResult() mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectExec(regexp.QuoteMeta(deleteAvailabilityQuery)).WithArgs(sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))
	}
}

func withInsertAvailabilityResult() mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectExec(regexp.QuoteMeta(insertAvailabilityQuery)).WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))
	}
}

func TestGetDoctor(t *testing.T) {
	config := configs.MustLoad("./../../test/testdata/config_valid.json")
	doctorUUID := uuid.New()
	type args struct {
		mockAuth      mockAuthorizer
		dbConn        mock.Connection
		dbMockOptions []mock.DBResultOption
		tokens        *auth.Tokens
		doctorUUID    string
	}
	tests := []struct {
		name string
		args args
		want int
	}{
		{
			name: "should get the doctor with its weekly schedule",
			args: args{
				mockAuth: authorizerFor(mockPatientUser()),
				dbConn:   mock.MustCreateConnectionMock(),
				tokens:   auth.MustGenerateTokens(context.TODO(), config.PrivateKey(), *mockPatientUser()),
				dbMockOptions: []mock.DBResultOption{
					withFindDoctorByUUIDResult(sqlmock.NewRows(doctorColumns()).AddRow(1, doctorUUID, 2, "John Doe", "Cardiology", 5, 150.0)),
					withListAvailabilityResult(sqlmock.NewRows(availabilityColumns()).
						AddRow(1, "09:00", "09:30").
						AddRow(1, "09:30", "10:00").
						AddRow(3, "14:00", "14:30")),
				},
				doctorUUID: doctorUUID.String(),
			},
			want: http.StatusOK,
		},
		{
			name: "should not get the doctor because no doctor with the given UUID was found",
			args: args{
				mockAuth: authorizerFor(mockPatientUser()),
				dbConn:   mock.MustCreateConnectionMock(),
				tokens:   auth.MustGenerateTokens(context.TODO(), config.PrivateKey(), *mockPatientUser()),
				dbMockOptions: []mock.DBResultOption{
					withFindDoctorByUUIDResult(sqlmock.NewRows(doctorColumns())),
				},
				doctorUUID: doctorUUID.String(),
			},
			want: http.StatusNotFound,
		},
		{
			name: "should not get the doctor because the given UUID is not valid",
			args: args{
				mockAuth:   authorizerFor(mockPatientUser()),
				dbConn:     mock.MustCreateConnectionMock(),
				tokens:     auth.MustGenerateTokens(context.TODO(), config.PrivateKey(), *mockPatientUser()),
				doctorUUID: "not-a-uuid",
			},
			want: http.StatusBadRequest,
		},
		{
			name: "should not get the doctor due to a database error",
			args: args{
				mockAuth: authorizerFor(mockPatientUser()),
				dbConn:   mock.MustCreateConnectionMock(),
				tokens:   auth.MustGenerateTokens(context.TODO(), config.PrivateKey(), *mockPatientUser()),
				dbMockOptions: []mock.DBResultOption{
					withFindDoctorByUUIDError(),
				},
				doctorUUID: doctorUUID.String(),
			},
			want: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := chi.NewRouter()
			Setup(router, logger, tt.args.mockAuth, config, tt.args.dbConn)

			mock.MockDBResults(tt.args.dbConn, tt.args.dbMockOptions...)

			req, _ := http.NewRequest("GET", fmt.Sprintf("/api/v1/doctors/%s", tt.args.doctorUUID), nil)
			req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", tt.args.tokens.AccessToken))

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			response := recorder.Result()

			if response.StatusCode != tt.want {
				t.Errorf("response status is incorrect, got %d, want %d", recorder.Code, tt.want)
				return
			}
			if tt.want == http.StatusOK {
				doctor := new(Doctor)
				if err := json.NewDecoder(response.Body).Decode(doctor); err != nil {
					t.Fatalf("could not decode the response: %v", err)
				}
				if len(doctor.AvailableDays) != 2 {
					t.Errorf("available days are incorrect, got %v, want [Mon Wed]", doctor.AvailableDays)
				}
				if len(doctor.TimeSlots["Mon"]) != 2 {
					t.Errorf("monday slots are incorrect, got %v, want 2 slots", doctor.TimeSlots["Mon"])
				}
			}
		})
	}
}

func TestListDoctors(t *testing.T) {
	config := configs.MustLoad("./../../test/testdata/config_valid.json")
	mockAuth := authorizerFor(mockPatientUser())
	tokens := auth.MustGenerateTokens(context.TODO(), config.PrivateKey(), *mockPatientUser())
	dbConn := mock.MustCreateConnectionMock()

	router := chi.NewRouter()
	Setup(router, logger, mockAuth, config, dbConn)

	mock.MockDBResults(dbConn,
		withListDoctorsResult(sqlmock.NewRows(doctorColumns()).
			AddRow(1, uuid.New(), 2, "John Doe", "Cardiology", 5, 150.0).
			AddRow(2, uuid.New(), 3, "Mary Major", "Dermatology", 8, 200.0)),
		withListAvailabilityResult(sqlmock.NewRows(availabilityColumns()).AddRow(1, "09:00", "09:30")),
		withListAvailabilityResult(sqlmock.NewRows(availabilityColumns())),
	)

	req, _ := http.NewRequest("GET", "/api/v1/doctors", nil)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", tokens.AccessToken))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	response := recorder.Result()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("response status is incorrect, got %d, want %d", recorder.Code, http.StatusOK)
	}
	doctors := make([]*Doctor, 0)
	if err := json.NewDecoder(response.Body).Decode(&doctors); err != nil {
		t.Fatalf("could not decode the response: %v", err)
	}
	if len(doctors) != 2 {
		t.Errorf("doctors count is incorrect, got %d, want 2", len(doctors))
	}
}

func TestGetBookedSlots(t *testing.T) {
	config := configs.MustLoad("./../../test/testdata/config_valid.json")
	doctorUUID := uuid.New()
	mockAuth := authorizerFor(mockPatientUser())
	tokens := auth.MustGenerateTokens(context.TODO(), config.PrivateKey(), *mockPatientUser())
	dbConn := mock.MustCreateConnectionMock()

	router := chi.NewRouter()
	Setup(router, logger, mockAuth, config, dbConn)

	mock.MockDBResults(dbConn,
		withFindDoctorByUUIDResult(sqlmock.NewRows(doctorColumns()).AddRow(1, doctorUUID, 2, "John Doe", "Cardiology", 5, 150.0)),
		withListBookedSlotsResult(sqlmock.NewRows([]string{"date", "slot_start", "slot_end"}).
			AddRow(time.Date(2026, 9, 10, 0, 0, 0, 0, time.Local), "10:00", "10:30")),
	)

	req, _ := http.NewRequest("GET", fmt.Sprintf("/api/v1/doctors/%s/booked-slots", doctorUUID), nil)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", tokens.AccessToken))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	response := recorder.Result()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("response status is incorrect, got %d, want %d", recorder.Code, http.StatusOK)
	}
	slots := make([]*BookedSlot, 0)
	if err := json.NewDecoder(response.Body).Decode(&slots); err != nil {
		t.Fatalf("could not decode the response: %v", err)
	}
	if len(slots) != 1 || slots[0].Slot.Start != "10:00" {
		t.Errorf("booked slots are incorrect, got %v", slots)
	}
}

func TestGetStats(t *testing.T) {
	config := configs.MustLoad("./../../test/testdata/config_valid.json")
	type args struct {
		mockAuth      mockAuthorizer
		dbConn        mock.Connection
		dbMockOptions []mock.DBResultOption
		tokens        *auth.Tokens
	}
	tests := []struct {
		name string
		args args
		want int
	}{
		{
			name: "should get the doctor statistics",
			args: args{
				mockAuth: authorizerFor(mockDoctorUser()),
				dbConn:   mock.MustCreateConnectionMock(),
				tokens:   auth.MustGenerateTokens(context.TODO(), config.PrivateKey(), *mockDoctorUser()),
				dbMockOptions: []mock.DBResultOption{
					withFindDoctorByUserIDResult(sqlmock.NewRows(doctorColumns()).AddRow(1, uuid.New(), 2, "John Doe", "Cardiology", 5, 150.0)),
					withListAppointmentRecordsResult(sqlmock.NewRows([]string{"id", "date", "status"}).
						AddRow(1, time.Date(2026, 9, 10, 0, 0, 0, 0, time.Local), "completed").
						AddRow(2, time.Date(2026, 9, 11, 0, 0, 0, 0, time.Local), "canceled")),
				},
			},
			want: http.StatusOK,
		},
		{
			name: "should not get the statistics for a patient",
			args: args{
				mockAuth: authorizerFor(mockPatientUser()),
				dbConn:   mock.MustCreateConnectionMock(),
				tokens:   auth.MustGenerateTokens(context.TODO(), config.PrivateKey(), *mockPatientUser()),
			},
			want: http.StatusForbidden,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := chi.NewRouter()
			Setup(router, logger, tt.args.mockAuth, config, tt.args.dbConn)

			mock.MockDBResults(tt.args.dbConn, tt.args.dbMockOptions...)

			req, _ := http.NewRequest("GET", "/api/v1/doctors/me/stats", nil)
			req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", tt.args.tokens.AccessToken))

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			response := recorder.Result()

			if response.StatusCode != tt.want {
				t.Errorf("response status is incorrect, got %d, want %d", recorder.Code, tt.want)
			}
		})
	}
}

func TestUpdateAvailability(t *testing.T) {
	config := configs.MustLoad("./../../test/testdata/config_valid.json")
	fee := 180.0
	type args struct {
		mockAuth      mockAuthorizer
		dbConn        mock.Connection
		dbMockOptions []mock.DBResultOption
		tokens        *auth.Tokens
		update        AvailabilityUpdate
	}
	tests := []struct {
		name string
		args args
		want int
	}{
		{
			name: "should replace the availability and the fee",
			args: args{
				mockAuth: authorizerFor(mockDoctorUser()),
				dbConn:   mock.MustCreateConnectionMock(),
				tokens:   auth.MustGenerateTokens(context.TODO(), config.PrivateKey(), *mockDoctorUser()),
				dbMockOptions: []mock.DBResultOption{
					withFindDoctorByUserIDResult(sqlmock.NewRows(doctorColumns()).AddRow(1, uuid.New(), 2, "John Doe", "Cardiology", 5, 150.0)),
					mock.WithTransactionBegin(),
					withUpdateFeeResult(),
					withDeleteAvailabilityResult(),
					withInsertAvailabilityResult(),
					withInsertAvailabilityResult(),
					mock.WithTransactionCommit(),
				},
				update: AvailabilityUpdate{
					Fee:           &fee,
					AvailableDays: []string{"Mon"},
					TimeSlots: map[string][]schedule.Slot{
						"Mon": {{Start: "09:00", End: "09:30"}, {Start: "09:30", End: "10:00"}},
					},
				},
			},
			want: http.StatusOK,
		},
		{
			name: "should not replace the availability when the slots overlap",
			args: args{
				mockAuth: authorizerFor(mockDoctorUser()),
				dbConn:   mock.MustCreateConnectionMock(),
				tokens:   auth.MustGenerateTokens(context.TODO(), config.PrivateKey(), *mockDoctorUser()),
				dbMockOptions: []mock.DBResultOption{
					withFindDoctorByUserIDResult(sqlmock.NewRows(doctorColumns()).AddRow(1, uuid.New(), 2, "John Doe", "Cardiology", 5, 150.0)),
				},
				update: AvailabilityUpdate{
					AvailableDays: []string{"Mon"},
					TimeSlots: map[string][]schedule.Slot{
						"Mon": {{Start: "09:00", End: "10:00"}, {Start: "09:30", End: "10:30"}},
					},
				},
			},
			want: http.StatusBadRequest,
		},
		{
			name: "should not replace the availability for a patient",
			args: args{
				mockAuth: authorizerFor(mockPatientUser()),
				dbConn:   mock.MustCreateConnectionMock(),
				tokens:   auth.MustGenerateTokens(context.TODO(), config.PrivateKey(), *mockPatientUser()),
				update: AvailabilityUpdate{
					AvailableDays: []string{"Mon"},
					TimeSlots: map[string][]schedule.Slot{
						"Mon": {{Start: "09:00", End: "09:30"}},
					},
				},
			},
			want: http.StatusForbidden,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := chi.NewRouter()
			Setup(router, logger, tt.args.mockAuth, config, tt.args.dbConn)

			mock.MockDBResults(tt.args.dbConn, tt.args.dbMockOptions...)

			body, _ := json.Marshal(tt.args.update)
			req, _ := http.NewRequest("PUT", "/api/v1/doctors/me/availability", bytes.NewReader(body))
			req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", tt.args.tokens.AccessToken))

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			response := recorder.Result()

			if response.StatusCode != tt.want {
				t.Errorf("response status is incorrect, got %d, want %d", recorder.Code, tt.want)
			}
		})
	}
}
