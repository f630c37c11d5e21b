package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrComposerNotFound is returned when a composer session is not found
	ErrComposerNotFound = errors.New("composer not found")

	// ErrComposerAlreadyExists is returned when trying to create a composer that already exists
	ErrComposerAlreadyExists = errors.New("composer already exists")

	// ErrDictionaryNotFound is returned when a dictionary is not found
	ErrDictionaryNotFound = errors.New("dictionary not found")

	// ErrDictionaryAlreadyExists is returned when trying to create a dictionary that already exists
	ErrDictionaryAlreadyExists = errors.New("dictionary already exists")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrJobNotCancellable is returned when cancelling a job that already finished
	ErrJobNotCancellable = errors.New("job cannot be cancelled")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownReading is returned when a reading has no candidates in the dictionary
	ErrUnknownReading = errors.New("unknown reading")

	// ErrNothingOverridden is returned when no overlapping candidate matches an override
	ErrNothingOverridden = errors.New("no candidate matched the override")

	// ErrCursorOutOfRange is returned when a cursor move exceeds the reading count
	ErrCursorOutOfRange = errors.New("cursor out of range")

	// ErrNothingToDelete is returned when a delete has no reading on its side of the cursor
	ErrNothingToDelete = errors.New("no reading to delete")
)

// ComposerNotFoundError represents a composer not found error with context
type ComposerNotFoundError struct {
	ComposerName string
}

func (e *ComposerNotFoundError) Error() string {
	return fmt.Sprintf("composer named '%s' not found", e.ComposerName)
}

func (e *ComposerNotFoundError) Is(target error) bool {
	return target == ErrComposerNotFound
}

// NewComposerNotFoundError creates a new ComposerNotFoundError
func NewComposerNotFoundError(composerName string) *ComposerNotFoundError {
	return &ComposerNotFoundError{ComposerName: composerName}
}

// ComposerAlreadyExistsError represents a composer already exists error with context
type ComposerAlreadyExistsError struct {
	ComposerName string
}

func (e *ComposerAlreadyExistsError) Error() string {
	return fmt.Sprintf("composer named '%s' already exists", e.ComposerName)
}

func (e *ComposerAlreadyExistsError) Is(target error) bool {
	return target == ErrComposerAlreadyExists
}

// NewComposerAlreadyExistsError creates a new ComposerAlreadyExistsError
func NewComposerAlreadyExistsError(composerName string) *ComposerAlreadyExistsError {
	return &ComposerAlreadyExistsError{ComposerName: composerName}
}

// DictionaryNotFoundError represents a dictionary not found error with context
type DictionaryNotFoundError struct {
	DictionaryName string
}

func (e *DictionaryNotFoundError) Error() string {
	return fmt.Sprintf("dictionary named '%s' not found", e.DictionaryName)
}

func (e *DictionaryNotFoundError) Is(target error) bool {
	return target == ErrDictionaryNotFound
}

// NewDictionaryNotFoundError creates a new DictionaryNotFoundError
func NewDictionaryNotFoundError(dictionaryName string) *DictionaryNotFoundError {
	return &DictionaryNotFoundError{DictionaryName: dictionaryName}
}

// DictionaryAlreadyExistsError represents a dictionary already exists error with context
type DictionaryAlreadyExistsError struct {
	DictionaryName string
}

func (e *DictionaryAlreadyExistsError) Error() string {
	return fmt.Sprintf("dictionary named '%s' already exists", e.DictionaryName)
}

func (e *DictionaryAlreadyExistsError) Is(target error) bool {
	return target == ErrDictionaryAlreadyExists
}

// NewDictionaryAlreadyExistsError creates a new DictionaryAlreadyExistsError
func NewDictionaryAlreadyExistsError(dictionaryName string) *DictionaryAlreadyExistsError {
	return &DictionaryAlreadyExistsError{DictionaryName: dictionaryName}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// JobNotCancellableError represents an attempt to cancel a job that already finished
type JobNotCancellableError struct {
	JobID  string
	Status string
}

func (e *JobNotCancellableError) Error() string {
	return fmt.Sprintf("job with ID '%s' cannot be cancelled (status: %s)", e.JobID, e.Status)
}

func (e *JobNotCancellableError) Is(target error) bool {
	return target == ErrJobNotCancellable
}

// NewJobNotCancellableError creates a new JobNotCancellableError
func NewJobNotCancellableError(jobID, status string) *JobNotCancellableError {
	return &JobNotCancellableError{JobID: jobID, Status: status}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// UnknownReadingError represents a reading the dictionary has no candidates for
type UnknownReadingError struct {
	Reading     string
	Suggestions []string
}

func (e *UnknownReadingError) Error() string {
	return fmt.Sprintf("reading '%s' has no candidates", e.Reading)
}

func (e *UnknownReadingError) Is(target error) bool {
	return target == ErrUnknownReading
}

// NewUnknownReadingError creates a new UnknownReadingError. Suggestions are
// nearby known readings, closest first, and may be empty.
func NewUnknownReadingError(reading string, suggestions []string) *UnknownReadingError {
	return &UnknownReadingError{Reading: reading, Suggestions: suggestions}
}
