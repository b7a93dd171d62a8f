package domain

import "time"

// StudentID is a unique identifier for a student.
type StudentID string

// String returns the string representation.
func (id StudentID) String() string {
	return string(id)
}

// RequestStatus is the review state of a student's enrollment request.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

// IsValid checks if the request status is valid.
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusAccepted, RequestStatusRejected:
		return true
	default:
		return false
	}
}

// Label returns the Arabic status label shown in tables.
func (s RequestStatus) Label() string {
	switch s {
	case RequestStatusAccepted:
		return "مقبول"
	case RequestStatusRejected:
		return "مرفوض"
	default:
		return "قيد المراجعة"
	}
}

// Student is a registered student and the state of their request.
type Student struct {
	ID       StudentID     `json:"id" yaml:"id"`
	Name     Name          `json:"name" yaml:",inline"`
	Email    string        `json:"email" yaml:"email"`
	Phone    string        `json:"phone" yaml:"phone"`
	Gender   Gender        `json:"gender" yaml:"gender"`
	Status   RequestStatus `json:"status" yaml:"status"`
	JoinedAt time.Time     `json:"joined_at" yaml:"joined_at"`

	// CourseID is the course the student enrolled in, if any.
	CourseID CourseID `json:"course_id,omitempty" yaml:"course_id,omitempty"`

	// CourseTitle is filled in by storage from the enrollment.
	CourseTitle string `json:"course_title,omitempty" yaml:"-"`
}

// Validate validates the student.
func (s *Student) Validate() error {
	if s.ID == "" {
		return ErrInvalidStudentID
	}
	if s.Name.IsEmpty() {
		return ErrInvalidStudentName
	}
	if !s.Gender.IsValid() {
		return ErrInvalidGender
	}
	if !s.Status.IsValid() {
		return ErrInvalidRequestStatus
	}
	if !validPhone(s.Phone) {
		return ErrInvalidPhone
	}
	if !validEmail(s.Email) {
		return ErrInvalidEmail
	}
	return nil
}
