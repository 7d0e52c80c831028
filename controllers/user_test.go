package controllers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSignup_RegistersUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO user").WillReturnResult(sqlmock.NewResult(7, 1))

	uc := UserController{}
	body := bytes.NewBufferString(`{"fullName": "Ayu Putri", "email": "ayu@example.com", "password": "secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/signup", body)
	rr := httptest.NewRecorder()

	uc.Signup(db)(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, float64(7), resp["userId"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignup_MissingFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	uc := UserController{}
	body := bytes.NewBufferString(`{"email": "ayu@example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/signup", body)
	rr := httptest.NewRecorder()

	uc.Signup(db)(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_UserAccount(t *testing.T) {
	t.Setenv("SECRET", "test-secret")

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, password FROM admin WHERE email").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT id, password FROM user WHERE email").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password"}).AddRow(3, string(hash)))

	uc := UserController{}
	body := bytes.NewBufferString(`{"email": "ayu@example.com", "password": "secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	rr := httptest.NewRecorder()

	uc.Login(db)(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		User struct {
			ID   int    `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 3, resp.User.ID)
	assert.Equal(t, "user", resp.User.Role)
	assert.NotEmpty(t, resp.Token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_AdminCheckedFirst(t *testing.T) {
	t.Setenv("SECRET", "test-secret")

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, password FROM admin WHERE email").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password"}).AddRow(1, string(hash)))

	uc := UserController{}
	body := bytes.NewBufferString(`{"email": "admin@example.com", "password": "admin-pass"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	rr := httptest.NewRecorder()

	uc.Login(db)(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"role":"admin"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_WrongCredentials(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, password FROM admin WHERE email").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT id, password FROM user WHERE email").WillReturnError(sql.ErrNoRows)

	uc := UserController{}
	body := bytes.NewBufferString(`{"email": "nobody@example.com", "password": "nope"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	rr := httptest.NewRecorder()

	uc.Login(db)(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("actual"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT password FROM user WHERE id").
		WillReturnRows(sqlmock.NewRows([]string{"password"}).AddRow(string(hash)))

	uc := UserController{}
	body := bytes.NewBufferString(`{"id": 3, "oldPassword": "guess", "newPassword": "next"}`)
	req := httptest.NewRequest(http.MethodPut, "/user/change-password", body)
	rr := httptest.NewRecorder()

	uc.ChangePassword(db)(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Old password is incorrect")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE user SET fullName").WillReturnResult(sqlmock.NewResult(0, 0))

	uc := UserController{}
	body := bytes.NewBufferString(`{"id": 99, "fullName": "Ghost", "email": "ghost@example.com"}`)
	req := httptest.NewRequest(http.MethodPut, "/user", body)
	rr := httptest.NewRecorder()

	uc.UpdateUser(db)(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
