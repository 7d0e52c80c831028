package controllers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"nautika-backend/models"
	"nautika-backend/utils"

	"github.com/gorilla/mux"
)

type UserController struct{}

func (c UserController) Signup(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user models.User

		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}

		if user.FullName == "" || user.Email == "" || user.Password == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "fullName, email and password are required"})
			return
		}
		if !utils.IsEmail(user.Email) {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid email format"})
			return
		}

		hash, err := utils.HashPassword(user.Password)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to register user"})
			return
		}

		result, err := db.Exec("INSERT INTO user (fullName, email, password) VALUES (?, ?, ?)",
			user.FullName, user.Email, hash)
		if err != nil {
			log.Printf("Error inserting user: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to register user"})
			return
		}

		userID, err := result.LastInsertId()
		if err != nil {
			log.Printf("Error getting last insert ID: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to register user"})
			return
		}

		utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "User registered successfully",
			"userId":  userID,
		})
	}
}

// Login checks the admin table first, then the user table, mirroring the
// two account stores the frontend distinguishes by role.
func (c UserController) Login(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds models.User

		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}
		if creds.Email == "" || creds.Password == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Email and password are required"})
			return
		}

		user, err := findAccount(db, "admin", creds)
		if err != nil && err != sql.ErrNoRows {
			log.Printf("Error querying admin: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to log in"})
			return
		}
		if user == nil {
			user, err = findAccount(db, "user", creds)
			if err != nil && err != sql.ErrNoRows {
				log.Printf("Error querying user: %v", err)
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to log in"})
				return
			}
		}
		if user == nil {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "Invalid email or password"})
			return
		}

		token, err := utils.GenerateToken(*user, 24*time.Hour)
		if err != nil {
			log.Printf("Error generating token: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to log in"})
			return
		}

		user.Password = ""
		utils.ResponseJSON(w, map[string]interface{}{
			"message": "Login successful",
			"user":    user,
			"token":   token,
		})
	}
}

// findAccount looks an email up in the given account table and verifies
// the password. Returns nil without an error when the credentials do not
// match. The table name doubles as the role.
func findAccount(db *sql.DB, table string, creds models.User) (*models.User, error) {
	var (
		id   int
		hash string
	)
	err := db.QueryRow("SELECT id, password FROM "+table+" WHERE email = ?", creds.Email).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if !utils.ComparePasswords(hash, []byte(creds.Password)) {
		return nil, nil
	}
	return &models.User{ID: id, Email: creds.Email, Role: table}, nil
}

func (c UserController) GetUser(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid user ID format"})
			return
		}

		var user models.User
		err = db.QueryRow("SELECT id, fullName, email FROM user WHERE id = ?", id).
			Scan(&user.ID, &user.FullName, &user.Email)
		if err != nil {
			if err == sql.ErrNoRows {
				utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "User not found"})
			} else {
				log.Printf("Error fetching user: %v", err)
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch user"})
			}
			return
		}

		utils.ResponseJSON(w, map[string]interface{}{
			"message": "User found",
			"user":    user,
		})
	}
}

func (c UserController) UpdateUser(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user models.User

		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}
		if user.ID == 0 || user.FullName == "" || user.Email == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "id, fullName and email are required"})
			return
		}

		result, err := db.Exec("UPDATE user SET fullName = ?, email = ? WHERE id = ?",
			user.FullName, user.Email, user.ID)
		if err != nil {
			log.Printf("Error updating user: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update profile"})
			return
		}

		affected, err := result.RowsAffected()
		if err != nil || affected == 0 {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "User not found"})
			return
		}

		var updated models.User
		err = db.QueryRow("SELECT id, fullName, email FROM user WHERE id = ?", user.ID).
			Scan(&updated.ID, &updated.FullName, &updated.Email)
		if err != nil {
			log.Printf("Error fetching updated user: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update profile"})
			return
		}

		utils.ResponseJSON(w, map[string]interface{}{
			"message": "Profile updated successfully",
			"user":    updated,
		})
	}
}

func (c UserController) ChangePassword(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ChangePasswordRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}
		if req.ID == 0 || req.OldPassword == "" || req.NewPassword == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "id, oldPassword and newPassword are required"})
			return
		}

		var storedHash string
		err := db.QueryRow("SELECT password FROM user WHERE id = ?", req.ID).Scan(&storedHash)
		if err != nil {
			if err == sql.ErrNoRows {
				utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "User not found"})
			} else {
				log.Printf("Error fetching user password: %v", err)
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update password"})
			}
			return
		}

		if !utils.ComparePasswords(storedHash, []byte(req.OldPassword)) {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Old password is incorrect"})
			return
		}

		hash, err := utils.HashPassword(req.NewPassword)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update password"})
			return
		}

		if _, err := db.Exec("UPDATE user SET password = ? WHERE id = ?", hash, req.ID); err != nil {
			log.Printf("Error updating password: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update password"})
			return
		}

		utils.ResponseJSON(w, map[string]string{"message": "Password updated successfully"})
	}
}
