package controllers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"

	"nautika-backend/models"
	"nautika-backend/utils"

	"github.com/gorilla/mux"
)

type IssueController struct {
	UploadDir string
}

func NewIssueController() *IssueController {
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	return &IssueController{UploadDir: uploadDir}
}

const issueColumns = "id, full_name, phone, title, location, description, expectation, photo, approval_status"

// ReportIssue accepts a multipart issue report. The fields are checked
// before the photo is written, so a rejected report leaves no file behind.
func (ic *IssueController) ReportIssue(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid form data"})
			return
		}

		issue := models.Issue{
			FullName:    r.FormValue("full_name"),
			Phone:       r.FormValue("phone"),
			Title:       r.FormValue("title"),
			Location:    r.FormValue("location"),
			Description: r.FormValue("description"),
			Expectation: r.FormValue("expectation"),
		}

		file, header, err := r.FormFile("photo")
		if err != nil || issue.FullName == "" || issue.Phone == "" || issue.Title == "" ||
			issue.Location == "" || issue.Description == "" || issue.Expectation == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "All fields are required, including the photo"})
			return
		}
		defer file.Close()

		photo, err := utils.SaveUploadedFile(file, header, ic.UploadDir)
		if err != nil {
			log.Println("Error saving issue photo:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to save report"})
			return
		}
		issue.Photo = photo

		_, err = db.Exec(
			`INSERT INTO issue (full_name, phone, title, location, description, expectation, photo, approval_status)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			issue.FullName, issue.Phone, issue.Title, issue.Location,
			issue.Description, issue.Expectation, issue.Photo, 0,
		)
		if err != nil {
			log.Println("Error inserting issue:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to save report"})
			return
		}

		utils.RespondWithJSON(w, http.StatusCreated, map[string]string{
			"message":   "Report saved successfully",
			"photo_url": "/uploads/" + photo,
		})
	}
}

func (ic *IssueController) GetIssues(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.Query("SELECT " + issueColumns + " FROM issue ORDER BY id")
		if err != nil {
			log.Println("Error fetching issues:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch issues"})
			return
		}
		defer rows.Close()

		issues := []models.Issue{}
		for rows.Next() {
			var issue models.Issue
			if err := scanIssue(rows, &issue); err != nil {
				log.Println("Error scanning issue row:", err)
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch issues"})
				return
			}
			issues = append(issues, issue)
		}
		if err := rows.Err(); err != nil {
			log.Println("Error iterating issue rows:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch issues"})
			return
		}

		utils.ResponseJSON(w, map[string]interface{}{"result": issues})
	}
}

func (ic *IssueController) GetIssue(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid issue ID format"})
			return
		}

		var issue models.Issue
		row := db.QueryRow("SELECT "+issueColumns+" FROM issue WHERE id = ?", id)
		if err := scanIssue(row, &issue); err != nil {
			if err == sql.ErrNoRows {
				utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Issue not found"})
			} else {
				log.Println("Error fetching issue:", err)
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch issue"})
			}
			return
		}

		utils.ResponseJSON(w, map[string]interface{}{"result": issue})
	}
}

// UpdateApproval moves an issue through the approval workflow. The request
// field is spelled status_aproval on the wire; the frontend already sends
// it that way.
func (ic *IssueController) UpdateApproval(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			StatusApproval int `json:"status_aproval"`
			ID             int `json:"id"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}
		if req.StatusApproval == 0 || req.ID == 0 {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid issue approval request"})
			return
		}

		result, err := db.Exec("UPDATE issue SET approval_status = ? WHERE id = ?", req.StatusApproval, req.ID)
		if err != nil {
			log.Println("Error updating approval status:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update issue"})
			return
		}

		affected, err := result.RowsAffected()
		if err != nil || affected == 0 {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Issue not found"})
			return
		}

		var issue models.Issue
		row := db.QueryRow("SELECT "+issueColumns+" FROM issue WHERE id = ?", req.ID)
		if err := scanIssue(row, &issue); err != nil {
			log.Println("Error fetching updated issue:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch updated issue"})
			return
		}

		utils.ResponseJSON(w, map[string]interface{}{
			"message": "Issue status updated successfully",
			"issue":   issue,
		})
	}
}

func scanIssue(row interface{ Scan(dest ...interface{}) error }, issue *models.Issue) error {
	return row.Scan(
		&issue.ID, &issue.FullName, &issue.Phone, &issue.Title, &issue.Location,
		&issue.Description, &issue.Expectation, &issue.Photo, &issue.ApprovalStatus,
	)
}
