package employee

import "time"

type Status string

const (
	StatusDraft    Status = "draft" // Onboarding wizard in progress
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Sub-permission ids for the tabs of the employee edit screen.
const (
	SubPersonalInformation = 1
	SubPromotionDemotion   = 2
	SubDocuments           = 3
)

type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	Email        string
	Contact      *string
	Department   *string
	Position     *string
	Grade        *string
	Status       Status
	HireDate     *time.Time
	PictureURL   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Document is a file attached to an employee record (contracts, IDs,
// certificates). The path is relative to the file storage root.
type Document struct {
	ID          string
	EmployeeID  string
	Name        string
	Path        string
	ContentType string
	SizeBytes   int64
	UploadedAt  time.Time
}

// PositionChange records one promotion or demotion entry shown on the
// promotion_demotion tab.
type PositionChange struct {
	ID         string
	EmployeeID string
	FromTitle  *string
	ToTitle    string
	Reason     *string
	EffectiveAt time.Time
	CreatedAt  time.Time
}
