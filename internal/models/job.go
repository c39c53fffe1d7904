// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package models

import "time"

// JobType is the employment type of a job posting.
type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeRemote     JobType = "remote"
)

// JobTypeLabels maps job types to display labels for admin forms.
var JobTypeLabels = map[JobType]string{
	JobTypeFullTime:   "Full Time",
	JobTypePartTime:   "Part Time",
	JobTypeContract:   "Contract",
	JobTypeInternship: "Internship",
	JobTypeRemote:     "Remote",
}

// ValidJobType reports whether t is a known job type.
func ValidJobType(t string) bool {
	_, ok := JobTypeLabels[JobType(t)]
	return ok
}

// Job is an open position. ApplicationsCount is maintained by the
// application store whenever applications are added or removed.
type Job struct {
	ID                      int64     `json:"-"`
	Title                   string    `json:"title"`
	Slug                    string    `json:"slug"`
	Location                string    `json:"location"`
	Type                    JobType   `json:"type"`
	KeyResponsibilities     []string  `json:"key_responsibilities"`
	PreferredQualifications []string  `json:"preferred_qualifications"`
	ApplicationsCount       int       `json:"applications_count"`
	IsActive                bool      `json:"is_active"`
	CreatedBy               int64     `json:"-"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`

	Author *User `json:"-"`
}

// ApplicationStatus tracks where a job application sits in the hiring
// workflow. Transitions are advisory only; any status may be set.
type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusReviewing   ApplicationStatus = "reviewing"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusInterview   ApplicationStatus = "interview"
	StatusHired       ApplicationStatus = "hired"
	StatusRejected    ApplicationStatus = "rejected"
)

// StatusOption describes one application status for admin UIs.
type StatusOption struct {
	Label       string `json:"label"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// StatusOptions maps each status to its display metadata.
var StatusOptions = map[ApplicationStatus]StatusOption{
	StatusPending:     {Label: "Pending", Color: "yellow", Description: "Application received, awaiting review"},
	StatusReviewing:   {Label: "Reviewing", Color: "blue", Description: "Application under review"},
	StatusShortlisted: {Label: "Shortlisted", Color: "purple", Description: "Candidate shortlisted for next round"},
	StatusInterview:   {Label: "Interview", Color: "indigo", Description: "Interview scheduled or completed"},
	StatusHired:       {Label: "Hired", Color: "green", Description: "Candidate hired"},
	StatusRejected:    {Label: "Rejected", Color: "red", Description: "Application rejected"},
}

// StatusWorkflow is the suggested transition graph exposed to clients.
// It is not enforced server-side.
var StatusWorkflow = map[ApplicationStatus][]ApplicationStatus{
	StatusPending:     {StatusReviewing, StatusShortlisted, StatusRejected},
	StatusReviewing:   {StatusShortlisted, StatusInterview, StatusRejected},
	StatusShortlisted: {StatusInterview, StatusHired, StatusRejected},
	StatusInterview:   {StatusHired, StatusRejected},
	StatusHired:       {},
	StatusRejected:    {},
}

// ValidApplicationStatus reports whether s is a known status.
func ValidApplicationStatus(s string) bool {
	_, ok := StatusOptions[ApplicationStatus(s)]
	return ok
}

// Availability is the applicant's notice period.
type Availability string

// AvailabilityLabels maps availability values to display labels.
var AvailabilityLabels = map[Availability]string{
	"immediate":  "Immediate",
	"2-weeks":    "2 Weeks Notice",
	"1-month":    "1 Month Notice",
	"2-months":   "2 Months Notice",
	"negotiable": "Negotiable",
}

// ValidAvailability reports whether a is a known availability value.
func ValidAvailability(a string) bool {
	_, ok := AvailabilityLabels[Availability(a)]
	return ok
}

// JobApplication is a candidate's submission for a job. The pair
// (JobID, Email) is unique: a duplicate submission is rejected.
type JobApplication struct {
	ID                int64             `json:"-"`
	JobID             int64             `json:"-"`
	FirstName         string            `json:"first_name"`
	LastName          string            `json:"last_name"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone"`
	Address           *string           `json:"address"`
	LinkedinProfile   *string           `json:"linkedin_profile"`
	PortfolioWebsite  *string           `json:"portfolio_website"`
	CoverLetter       string            `json:"cover_letter"`
	ResumePath        string            `json:"-"`
	PortfolioPath     *string           `json:"-"`
	YearsOfExperience int               `json:"years_of_experience"`
	CurrentPosition   *string           `json:"current_position"`
	CurrentCompany    *string           `json:"current_company"`
	ExpectedSalary    *float64          `json:"expected_salary"`
	Availability      Availability      `json:"availability"`
	WillingToRelocate bool              `json:"willing_to_relocate"`
	Status            ApplicationStatus `json:"status"`
	AdminNotes        *string           `json:"admin_notes"`
	ReviewedAt        *time.Time        `json:"reviewed_at"`
	ReviewedBy        *int64            `json:"-"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`

	Job      *Job  `json:"-"`
	Reviewer *User `json:"-"`
}

// Name returns the applicant's full name.
func (a *JobApplication) Name() string {
	return a.FirstName + " " + a.LastName
}
