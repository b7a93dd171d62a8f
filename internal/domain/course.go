package domain

import (
	"fmt"
	"strings"
	"time"
)

// CourseID is a unique identifier for a course.
type CourseID string

// String returns the string representation.
func (id CourseID) String() string {
	return string(id)
}

// ModuleID is a unique identifier for a course module.
type ModuleID string

// LectureID is a unique identifier for a lecture.
type LectureID string

// CourseStatus is derived from a course's dates.
type CourseStatus string

const (
	CourseStatusUpcoming  CourseStatus = "upcoming"
	CourseStatusActive    CourseStatus = "active"
	CourseStatusCompleted CourseStatus = "completed"
)

// Label returns the Arabic status label shown in tables.
func (s CourseStatus) Label() string {
	switch s {
	case CourseStatusUpcoming:
		return "قريباً"
	case CourseStatusCompleted:
		return "مكتملة"
	default:
		return "نشطة"
	}
}

// Course is a course with its modules.
type Course struct {
	ID          CourseID  `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	StartDate   time.Time `json:"start_date" yaml:"start_date"`
	EndDate     time.Time `json:"end_date" yaml:"end_date"`
	Price       float64   `json:"price" yaml:"price"`
	Type        string    `json:"type,omitempty" yaml:"type,omitempty"`

	InstructorID InstructorID `json:"instructor_id,omitempty" yaml:"instructor_id,omitempty"`

	// InstructorName is filled in by storage.
	InstructorName string `json:"instructor_name,omitempty" yaml:"-"`

	Modules []Module `json:"modules,omitempty" yaml:"modules,omitempty"`
}

// Status returns the course status at now. A course is upcoming before its
// start date and completed once its end date has passed; its end date
// counts as a whole day.
func (c *Course) Status(now time.Time) CourseStatus {
	if !c.StartDate.IsZero() && now.Before(c.StartDate) {
		return CourseStatusUpcoming
	}
	if !c.EndDate.IsZero() && !now.Before(c.EndDate.AddDate(0, 0, 1)) {
		return CourseStatusCompleted
	}
	return CourseStatusActive
}

// FormatPrice renders the price with two decimals and the currency.
func (c *Course) FormatPrice() string {
	return fmt.Sprintf("%.2f ریال", c.Price)
}

// Instructor returns the instructor name, or "-" when unassigned.
func (c *Course) Instructor() string {
	if c.InstructorName == "" {
		return "-"
	}
	return c.InstructorName
}

// Validate validates the course and its modules.
func (c *Course) Validate() error {
	if c.ID == "" {
		return ErrInvalidCourseID
	}
	if strings.TrimSpace(c.Title) == "" {
		return ErrInvalidCourseTitle
	}
	if c.Price < 0 {
		return ErrInvalidPrice
	}
	if !c.StartDate.IsZero() && !c.EndDate.IsZero() && c.EndDate.Before(c.StartDate) {
		return ErrInvalidCourseDates
	}
	for i := range c.Modules {
		if err := c.Modules[i].Validate(); err != nil {
			return fmt.Errorf("module %d: %w", i+1, err)
		}
	}
	return nil
}

// Module is an ordered section of a course.
type Module struct {
	ID          ModuleID  `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Lectures    []Lecture `json:"lectures,omitempty" yaml:"lectures,omitempty"`
}

// Validate validates the module and its lectures.
func (m *Module) Validate() error {
	if m.ID == "" || strings.TrimSpace(m.Title) == "" {
		return ErrInvalidModule
	}
	for i := range m.Lectures {
		if err := m.Lectures[i].Validate(); err != nil {
			return fmt.Errorf("lecture %d: %w", i+1, err)
		}
	}
	return nil
}

// Lecture is a scheduled session within a module.
type Lecture struct {
	ID          LectureID `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	ScheduledAt time.Time `json:"scheduled_at" yaml:"scheduled_at"`
}

// Validate validates the lecture.
func (l *Lecture) Validate() error {
	if l.ID == "" || strings.TrimSpace(l.Title) == "" {
		return ErrInvalidLecture
	}
	return nil
}
