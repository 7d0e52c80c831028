package controllers

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"nautika-backend/models"
	"nautika-backend/utils"

	"github.com/gorilla/mux"
)

type EventController struct {
	StagingDir string
	StorageDir string
}

func NewEventController() *EventController {
	storageDir := os.Getenv("EVENT_STORAGE_DIR")
	if storageDir == "" {
		storageDir = "storage/event"
	}
	stagingDir := os.Getenv("EVENT_STAGING_DIR")
	if stagingDir == "" {
		stagingDir = "storage/staging"
	}
	return &EventController{StagingDir: stagingDir, StorageDir: storageDir}
}

const eventColumns = "id, title, description, team, date, location, time, equipment, activity, photo, event_type, deadline"

func scanEvent(row interface{ Scan(dest ...interface{}) error }, event *models.Event) error {
	return row.Scan(
		&event.ID, &event.Title, &event.Description, &event.Team, &event.Date,
		&event.Location, &event.Time, &event.Equipment, &event.Activity,
		&event.Photo, &event.EventType, &event.Deadline,
	)
}

// CreateEvent is the event submission pipeline: stage the photo upload,
// validate the form fields, insert the row, then commit the photo into the
// storage directory. A staged file is discarded whenever a later step
// fails, so a rejected submission leaves nothing on disk.
func (ec *EventController) CreateEvent(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid form data"})
			return
		}

		file, header, err := r.FormFile("photo")
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Image file is required"})
			return
		}
		defer file.Close()

		staged, err := utils.SaveUploadedImage(file, header, ec.StagingDir, ec.StorageDir)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: err.Error()})
			return
		}

		var event models.Event
		event.Title = r.FormValue("title")
		event.Description = r.FormValue("description")
		event.Team = r.FormValue("team")
		event.Date = r.FormValue("date")
		event.Location = r.FormValue("location")
		event.Time = r.FormValue("time")
		event.Equipment = r.FormValue("equipment")
		event.Activity = r.FormValue("activity")
		event.Deadline = r.FormValue("deadline")

		eventTypeStr := r.FormValue("event_type")
		if eventTypeStr != "" {
			eventType, err := strconv.Atoi(eventTypeStr)
			if err != nil {
				staged.Discard()
				utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid event_type format"})
				return
			}
			event.EventType = eventType
		}

		if details := utils.ValidateStruct(&event); details != nil {
			staged.Discard()
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{
				Message: "Validation failed",
				Details: details,
			})
			return
		}

		event.Photo = staged.FinalPath

		result, err := db.Exec(
			`INSERT INTO event (title, description, team, date, location, time, equipment, activity, photo, event_type, deadline)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			event.Title, event.Description, event.Team, event.Date, event.Location,
			event.Time, event.Equipment, event.Activity, event.Photo, event.EventType, event.Deadline,
		)
		if err != nil {
			log.Println("Error inserting event:", err)
			staged.Discard()
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to save event"})
			return
		}

		eventID, err := result.LastInsertId()
		if err != nil {
			log.Println("Error getting last insert ID:", err)
			staged.Discard()
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Event created but failed to retrieve ID"})
			return
		}

		if err := staged.Commit(); err != nil {
			log.Println("Error committing event photo:", err)
			// Roll the row back so no event references a missing file.
			if _, delErr := db.Exec("DELETE FROM event WHERE id = ?", eventID); delErr != nil {
				log.Println("Error removing event after failed photo commit:", delErr)
			}
			staged.Discard()
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to store event photo"})
			return
		}

		event.ID = int(eventID)
		utils.RespondWithJSON(w, http.StatusCreated, event)
	}
}

func (ec *EventController) GetEvents(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.Query("SELECT " + eventColumns + " FROM event ORDER BY id")
		if err != nil {
			log.Println("Error fetching events:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch events"})
			return
		}
		defer rows.Close()

		events := []models.Event{}
		for rows.Next() {
			var event models.Event
			if err := scanEvent(rows, &event); err != nil {
				log.Println("Error scanning event row:", err)
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch events"})
				return
			}
			events = append(events, event)
		}
		if err := rows.Err(); err != nil {
			log.Println("Error iterating event rows:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch events"})
			return
		}

		utils.ResponseJSON(w, events)
	}
}

func (ec *EventController) GetEvent(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid event ID format"})
			return
		}

		var event models.Event
		row := db.QueryRow("SELECT "+eventColumns+" FROM event WHERE id = ?", id)
		if err := scanEvent(row, &event); err != nil {
			if err == sql.ErrNoRows {
				utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Event not found"})
			} else {
				log.Println("Error fetching event by ID:", err)
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch event"})
			}
			return
		}

		utils.ResponseJSON(w, event)
	}
}

// DeleteEvent removes the row and then the photo file it referenced. The
// file removal is best effort and never fails the request.
func (ec *EventController) DeleteEvent(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid event ID format"})
			return
		}

		var photo string
		err = db.QueryRow("SELECT photo FROM event WHERE id = ?", id).Scan(&photo)
		if err != nil {
			if err == sql.ErrNoRows {
				utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Event not found"})
			} else {
				log.Println("Error fetching event photo:", err)
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to delete event"})
			}
			return
		}

		result, err := db.Exec("DELETE FROM event WHERE id = ?", id)
		if err != nil {
			log.Println("Error deleting event:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to delete event"})
			return
		}

		affected, err := result.RowsAffected()
		if err != nil || affected == 0 {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Event not found"})
			return
		}

		ec.removePhoto(photo)

		utils.ResponseJSON(w, map[string]string{"message": "Event deleted successfully"})
	}
}

// removePhoto deletes a photo file, but only when the recorded path still
// resolves inside the storage directory.
func (ec *EventController) removePhoto(photo string) {
	if photo == "" {
		return
	}
	path := filepath.FromSlash(photo)
	rel, err := filepath.Rel(ec.StorageDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		log.Println("Refusing to delete photo outside storage directory:", photo)
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Println("Failed to delete event photo:", err)
	}
}
