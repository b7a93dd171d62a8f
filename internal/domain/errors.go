package domain

import "errors"

// Domain errors
var (
	// Student errors
	ErrInvalidStudentID     = errors.New("invalid student ID")
	ErrInvalidStudentName   = errors.New("invalid student name")
	ErrInvalidRequestStatus = errors.New("invalid request status")

	// Instructor errors
	ErrInvalidInstructorID   = errors.New("invalid instructor ID")
	ErrInvalidInstructorName = errors.New("invalid instructor name")

	// Shared person errors
	ErrInvalidGender = errors.New("invalid gender")
	ErrInvalidPhone  = errors.New("invalid phone number")
	ErrInvalidEmail  = errors.New("invalid email")

	// Course errors
	ErrInvalidCourseID    = errors.New("invalid course ID")
	ErrInvalidCourseTitle = errors.New("invalid course title")
	ErrInvalidCourseDates = errors.New("course end date is before its start date")
	ErrInvalidPrice       = errors.New("invalid price")
	ErrInvalidModule      = errors.New("invalid module")
	ErrInvalidLecture     = errors.New("invalid lecture")

	// Exam errors
	ErrInvalidExamID    = errors.New("invalid exam ID")
	ErrInvalidExamTitle = errors.New("invalid exam title")
	ErrInvalidDuration  = errors.New("invalid exam duration")

	// Question errors
	ErrInvalidQuestionID   = errors.New("invalid question ID")
	ErrInvalidQuestionText = errors.New("invalid question text")
	ErrInvalidPoints       = errors.New("question points must be positive")
	ErrInvalidAnswer       = errors.New("invalid answer")
	ErrNoCorrectAnswer     = errors.New("question has no correct answer")
)
