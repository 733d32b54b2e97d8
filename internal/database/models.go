package database

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PendingJudgment is stored until a judgment has been generated.
const PendingJudgment = "Pending AI Analysis"

// CaseStatus is the lifecycle state of a case.
type CaseStatus string

const (
	StatusSubmitted        CaseStatus = "Submitted"
	StatusAnalysisComplete CaseStatus = "Analysis Complete"
	StatusError            CaseStatus = "Error"
)

// Valid reports whether s is one of the three known states.
func (s CaseStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusAnalysisComplete, StatusError:
		return true
	}
	return false
}

func (s CaseStatus) String() string {
	return string(s)
}

// UnmarshalText rejects anything outside the closed set.
func (s *CaseStatus) UnmarshalText(text []byte) error {
	v := CaseStatus(text)
	if !v.Valid() {
		return fmt.Errorf("unknown case status %q", string(text))
	}
	*s = v
	return nil
}

// Value implements driver.Valuer.
func (s CaseStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown case status %q", string(s))
	}
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *CaseStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return s.UnmarshalText([]byte(v))
	case []byte:
		return s.UnmarshalText(v)
	default:
		return fmt.Errorf("cannot scan %T into CaseStatus", src)
	}
}

// Case is a submitted legal dispute and its generated judgment.
type Case struct {
	ID              string     `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	CaseTitle       string     `json:"caseTitle" gorm:"not null"`
	CaseDescription string     `json:"caseDescription" gorm:"type:text;not null"`
	PartiesInvolved string     `json:"partiesInvolved" gorm:"not null"`
	Judgment        string     `json:"judgment" gorm:"type:text;not null"`
	Status          CaseStatus `json:"status" gorm:"type:varchar(32);not null"`
	SubmittedAt     time.Time  `json:"submittedAt" gorm:"not null"`
}

// BeforeCreate assigns the identifier.
func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

func (Case) TableName() string {
	return "cases"
}
