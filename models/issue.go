package models

// Issue approval_status values: 0 pending, 1 approved, 2 rejected.
type Issue struct {
	ID             int    `json:"id"`
	FullName       string `json:"full_name"`
	Phone          string `json:"phone"`
	Title          string `json:"title"`
	Location       string `json:"location"`
	Description    string `json:"description"`
	Expectation    string `json:"expectation"`
	Photo          string `json:"photo"`
	ApprovalStatus int    `json:"approval_status"`
}
