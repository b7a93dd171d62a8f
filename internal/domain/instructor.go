package domain

import (
	"strings"
	"time"
)

// InstructorID is a unique identifier for an instructor.
type InstructorID string

// String returns the string representation.
func (id InstructorID) String() string {
	return string(id)
}

// Instructor is a teacher who runs courses.
type Instructor struct {
	ID          InstructorID `json:"id" yaml:"id"`
	Name        Name         `json:"name" yaml:",inline"`
	Email       string       `json:"email,omitempty" yaml:"email,omitempty"`
	Phone       string       `json:"phone" yaml:"phone"`
	Gender      Gender       `json:"gender" yaml:"gender"`
	Title       string       `json:"title,omitempty" yaml:"title,omitempty"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	JoinedAt    time.Time    `json:"joined_at" yaml:"joined_at"`

	// Courses holds the titles of the instructor's courses, filled in by
	// storage.
	Courses []string `json:"courses,omitempty" yaml:"-"`
}

// CourseList joins the course titles for display; "-" when there are none.
func (i *Instructor) CourseList() string {
	if len(i.Courses) == 0 {
		return "-"
	}
	return strings.Join(i.Courses, "، ")
}

// Validate validates the instructor.
func (i *Instructor) Validate() error {
	if i.ID == "" {
		return ErrInvalidInstructorID
	}
	if i.Name.IsEmpty() {
		return ErrInvalidInstructorName
	}
	if !i.Gender.IsValid() {
		return ErrInvalidGender
	}
	if !validPhone(i.Phone) {
		return ErrInvalidPhone
	}
	if !validEmail(i.Email) {
		return ErrInvalidEmail
	}
	return nil
}
