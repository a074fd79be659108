package storage

import (
	"errors"

	"github.com/julianstephens/coursecal/internal/models"
)

var (
	// ErrNotFound is returned by the Get/Update/Delete methods for unknown IDs.
	ErrNotFound = errors.New("not found")
	// ErrNotInitialized is returned by Load before init has been run.
	ErrNotInitialized = errors.New("storage not initialized, run 'coursecal init' first")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Terms
	AddTerm(models.Term) error
	GetTerm(id string) (models.Term, error)
	GetAllTerms() ([]models.Term, error)
	DeleteTerm(id string) error

	// Courses
	AddCourse(models.Course) error
	GetCourse(id string) (models.Course, error)
	GetAllCourses() ([]models.Course, error)
	// DeleteCourse removes the course and every assignment attached to it.
	DeleteCourse(id string) error

	// Assignments
	AddAssignment(models.Assignment) error
	GetAssignment(id string) (models.Assignment, error)
	GetAllAssignments() ([]models.Assignment, error)
	UpdateAssignment(models.Assignment) error
	DeleteAssignment(id string) error

	// One-off events
	AddEvent(models.OneOffEvent) error
	GetEvent(id string) (models.OneOffEvent, error)
	GetAllEvents() ([]models.OneOffEvent, error)
	DeleteEvent(id string) error

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by backends with a versioned schema.
type Migrator interface {
	// SchemaVersion returns the applied and the newest known migration.
	SchemaVersion() (current, latest int, err error)
	// Migrate applies pending migrations, reporting progress to logFn.
	Migrate(logFn func(string)) (int, error)
}
