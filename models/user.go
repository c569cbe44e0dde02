package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	IsAdmin      bool      `json:"is_admin"`
	BusinessID   *int64    `json:"business_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type Business struct {
	ID                  int64     `json:"id"`
	OwnerID             int64     `json:"owner_id"`
	Name                string    `json:"name"`
	Industry            string    `json:"industry"`
	ServiceAreas        []string  `json:"service_areas"`
	CustomScript        bool      `json:"custom_script"`
	MultiLocation       bool      `json:"multi_location"`
	RequiresManualSetup bool      `json:"requires_manual_setup"`
	ManualSetupReason   string    `json:"manual_setup_reason"`
	OnboardingComplete  bool      `json:"onboarding_complete"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// OptIn is a stored SMS consent record.
type OptIn struct {
	ID          int64     `json:"id"`
	PhoneNumber *string   `json:"phone_number"`
	SourceIP    string    `json:"source_ip"`
	UserAgent   string    `json:"user_agent"`
	CreatedAt   time.Time `json:"created_at"`
}
