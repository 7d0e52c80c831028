package models

type Volunteer struct {
	ID                int    `json:"id"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Email             string `json:"email"`
	PhoneNumber       string `json:"phone_number"`
	InterestReason    string `json:"interest_reason"`
	SuitabilityReason string `json:"suitability_reason"`
	JobRole           string `json:"job_role"`
}
