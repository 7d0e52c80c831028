package controllers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"nautika-backend/models"
	"nautika-backend/utils"

	"github.com/gorilla/mux"
)

type VolunteerController struct{}

func (c VolunteerController) CreateVolunteer(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var v models.Volunteer

		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}

		if strings.TrimSpace(v.FirstName) == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "First name is required and must be a valid string"})
			return
		}
		if strings.TrimSpace(v.LastName) == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Last name is required and must be a valid string"})
			return
		}
		if !utils.IsEmail(v.Email) {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Email is required and must be a valid email address"})
			return
		}
		if !utils.IsPhoneNumber(v.PhoneNumber) {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Phone number is required and must be numeric"})
			return
		}
		if strings.TrimSpace(v.InterestReason) == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Interest reason is required and must be a valid string"})
			return
		}
		if strings.TrimSpace(v.SuitabilityReason) == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Suitability reason is required and must be a valid string"})
			return
		}
		if strings.TrimSpace(v.JobRole) == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Job role is required and must be a valid string"})
			return
		}

		_, err := db.Exec(
			`INSERT INTO volunteer (first_name, last_name, email, phone_number, interest_reason, suitability_reason, job_role)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			v.FirstName, v.LastName, v.Email, v.PhoneNumber, v.InterestReason, v.SuitabilityReason, v.JobRole,
		)
		if err != nil {
			log.Println("Error inserting volunteer:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to submit volunteer application"})
			return
		}

		utils.RespondWithJSON(w, http.StatusCreated, map[string]string{
			"message": "Volunteer application submitted successfully!",
		})
	}
}

func (c VolunteerController) GetVolunteers(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.Query(`SELECT id, first_name, last_name, email, phone_number, interest_reason, suitability_reason, job_role
			FROM volunteer ORDER BY id`)
		if err != nil {
			log.Println("Error fetching volunteers:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch volunteer data"})
			return
		}
		defer rows.Close()

		volunteers := []models.Volunteer{}
		for rows.Next() {
			var v models.Volunteer
			if err := rows.Scan(&v.ID, &v.FirstName, &v.LastName, &v.Email, &v.PhoneNumber,
				&v.InterestReason, &v.SuitabilityReason, &v.JobRole); err != nil {
				log.Println("Error scanning volunteer row:", err)
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch volunteer data"})
				return
			}
			volunteers = append(volunteers, v)
		}
		if err := rows.Err(); err != nil {
			log.Println("Error iterating volunteer rows:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch volunteer data"})
			return
		}

		utils.ResponseJSON(w, volunteers)
	}
}

func (c VolunteerController) GetVolunteer(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid volunteer ID format"})
			return
		}

		var v models.Volunteer
		err = db.QueryRow(`SELECT id, first_name, last_name, email, phone_number, interest_reason, suitability_reason, job_role
			FROM volunteer WHERE id = ?`, id).
			Scan(&v.ID, &v.FirstName, &v.LastName, &v.Email, &v.PhoneNumber,
				&v.InterestReason, &v.SuitabilityReason, &v.JobRole)
		if err != nil {
			if err == sql.ErrNoRows {
				utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Volunteer not found"})
			} else {
				log.Println("Error fetching volunteer:", err)
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch volunteer data"})
			}
			return
		}

		utils.ResponseJSON(w, v)
	}
}
