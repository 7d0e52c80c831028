package models

// Event categories accepted in event_type.
const (
	EventTypeCleanup  = 1
	EventTypeSocial   = 2
	EventTypeCharity  = 3
	EventTypeTraining = 4
)

type Event struct {
	ID          int    `json:"id"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Team        string `json:"team" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Location    string `json:"location" validate:"required"`
	Time        string `json:"time" validate:"required"`
	Equipment   string `json:"equipment" validate:"required"`
	Activity    string `json:"activity" validate:"required"`
	Photo       string `json:"photo"`
	EventType   int    `json:"event_type" validate:"required,min=1,max=4"`
	Deadline    string `json:"deadline" validate:"required,datetime=2006-01-02"`
}
