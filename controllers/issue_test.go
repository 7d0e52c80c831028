package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validIssueFields() map[string]string {
	return map[string]string{
		"full_name":   "Jordan Lee",
		"phone":       "08123456789",
		"title":       "Broken pier lamp",
		"location":    "Pier",
		"description": "The lamp at the pier entrance is broken",
		"expectation": "Replace the lamp",
	}
}

func newIssueRequest(t *testing.T, fields map[string]string, withPhoto bool) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, mw.WriteField(key, value))
	}
	if withPhoto {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename="%s"`, "lamp.jpg"))
		h.Set("Content-Type", "image/jpeg")
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("jpg-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/report_issue", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestReportIssue_SavesReportAndPhoto(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO issue").WillReturnResult(sqlmock.NewResult(1, 1))

	ic := &IssueController{UploadDir: filepath.Join(t.TempDir(), "uploads")}
	rr := httptest.NewRecorder()

	ic.ReportIssue(db)(rr, newIssueRequest(t, validIssueFields(), true))

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.True(t, strings.HasPrefix(resp["photo_url"], "/uploads/"))

	name := strings.TrimPrefix(resp["photo_url"], "/uploads/")
	assert.FileExists(t, filepath.Join(ic.UploadDir, name))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportIssue_MissingFieldWritesNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	fields := validIssueFields()
	delete(fields, "description")

	ic := &IssueController{UploadDir: filepath.Join(t.TempDir(), "uploads")}
	rr := httptest.NewRecorder()

	ic.ReportIssue(db)(rr, newIssueRequest(t, fields, true))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 0, countFiles(t, ic.UploadDir))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportIssue_MissingPhoto(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ic := &IssueController{UploadDir: filepath.Join(t.TempDir(), "uploads")}
	rr := httptest.NewRecorder()

	ic.ReportIssue(db)(rr, newIssueRequest(t, validIssueFields(), false))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateApproval_UpdatesStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE issue SET approval_status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM issue WHERE id").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "full_name", "phone", "title", "location", "description", "expectation", "photo", "approval_status",
		}).AddRow(7, "Jordan Lee", "08123456789", "Broken pier lamp", "Pier", "d", "e", "lamp.jpg", 1))

	ic := &IssueController{UploadDir: t.TempDir()}
	body := bytes.NewBufferString(`{"status_aproval": 1, "id": 7}`)
	req := httptest.NewRequest(http.MethodPatch, "/issue/approval", body)
	rr := httptest.NewRecorder()

	ic.UpdateApproval(db)(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"approval_status":1`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateApproval_UnknownIssue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE issue SET approval_status").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ic := &IssueController{UploadDir: t.TempDir()}
	body := bytes.NewBufferString(`{"status_aproval": 1, "id": 99}`)
	req := httptest.NewRequest(http.MethodPatch, "/issue/approval", body)
	rr := httptest.NewRecorder()

	ic.UpdateApproval(db)(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateApproval_MissingFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ic := &IssueController{UploadDir: t.TempDir()}
	body := bytes.NewBufferString(`{"id": 7}`)
	req := httptest.NewRequest(http.MethodPatch, "/issue/approval", body)
	rr := httptest.NewRecorder()

	ic.UpdateApproval(db)(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
