package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/julianstephens/coursecal/internal/models"
)

type Store struct {
	Version     int                           `json:"version"`
	Settings    models.Settings               `json:"settings"`
	Terms       map[string]models.Term        `json:"terms"`
	Courses     map[string]models.Course      `json:"courses"`
	Assignments map[string]models.Assignment  `json:"assignments"`
	Events      map[string]models.OneOffEvent `json:"events"`
}

// JSONStore keeps everything in a single indented JSON file that is rewritten
// on every mutation.
type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:  1,
		Settings: models.DefaultSettings(),
	}
	s.ensureMaps()

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	s.ensureMaps()
	models.ApplyDefaultSettings(&s.store.Settings)

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) ensureMaps() {
	if s.store.Terms == nil {
		s.store.Terms = make(map[string]models.Term)
	}
	if s.store.Courses == nil {
		s.store.Courses = make(map[string]models.Course)
	}
	if s.store.Assignments == nil {
		s.store.Assignments = make(map[string]models.Assignment)
	}
	if s.store.Events == nil {
		s.store.Events = make(map[string]models.OneOffEvent)
	}
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) loaded() error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if err := s.loaded(); err != nil {
		return models.Settings{}, err
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) AddTerm(term models.Term) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Terms[term.ID] = term
	return s.save()
}

func (s *JSONStore) GetTerm(id string) (models.Term, error) {
	if err := s.loaded(); err != nil {
		return models.Term{}, err
	}
	term, ok := s.store.Terms[id]
	if !ok {
		return models.Term{}, fmt.Errorf("term %s: %w", id, ErrNotFound)
	}
	return term, nil
}

func (s *JSONStore) GetAllTerms() ([]models.Term, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	terms := make([]models.Term, 0, len(s.store.Terms))
	for _, t := range s.store.Terms {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].StartDate != terms[j].StartDate {
			return terms[i].StartDate < terms[j].StartDate
		}
		return terms[i].ID < terms[j].ID
	})
	return terms, nil
}

func (s *JSONStore) DeleteTerm(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.store.Terms[id]; !ok {
		return fmt.Errorf("term %s: %w", id, ErrNotFound)
	}
	delete(s.store.Terms, id)
	return s.save()
}

func (s *JSONStore) AddCourse(course models.Course) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Courses[course.ID] = course
	return s.save()
}

func (s *JSONStore) GetCourse(id string) (models.Course, error) {
	if err := s.loaded(); err != nil {
		return models.Course{}, err
	}
	course, ok := s.store.Courses[id]
	if !ok {
		return models.Course{}, fmt.Errorf("course %s: %w", id, ErrNotFound)
	}
	return course, nil
}

func (s *JSONStore) GetAllCourses() ([]models.Course, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	courses := make([]models.Course, 0, len(s.store.Courses))
	for _, c := range s.store.Courses {
		courses = append(courses, c)
	}
	sort.Slice(courses, func(i, j int) bool {
		if courses[i].Code != courses[j].Code {
			return courses[i].Code < courses[j].Code
		}
		return courses[i].ID < courses[j].ID
	})
	return courses, nil
}

func (s *JSONStore) DeleteCourse(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.store.Courses[id]; !ok {
		return fmt.Errorf("course %s: %w", id, ErrNotFound)
	}
	delete(s.store.Courses, id)
	for aid, a := range s.store.Assignments {
		if a.CourseID == id {
			delete(s.store.Assignments, aid)
		}
	}
	return s.save()
}

func (s *JSONStore) AddAssignment(a models.Assignment) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Assignments[a.ID] = a
	return s.save()
}

func (s *JSONStore) GetAssignment(id string) (models.Assignment, error) {
	if err := s.loaded(); err != nil {
		return models.Assignment{}, err
	}
	a, ok := s.store.Assignments[id]
	if !ok {
		return models.Assignment{}, fmt.Errorf("assignment %s: %w", id, ErrNotFound)
	}
	return a, nil
}

func (s *JSONStore) GetAllAssignments() ([]models.Assignment, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	out := make([]models.Assignment, 0, len(s.store.Assignments))
	for _, a := range s.store.Assignments {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueAt.Equal(out[j].DueAt) {
			return out[i].DueAt.Before(out[j].DueAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *JSONStore) UpdateAssignment(a models.Assignment) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.store.Assignments[a.ID]; !ok {
		return fmt.Errorf("assignment %s: %w", a.ID, ErrNotFound)
	}
	s.store.Assignments[a.ID] = a
	return s.save()
}

func (s *JSONStore) DeleteAssignment(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.store.Assignments[id]; !ok {
		return fmt.Errorf("assignment %s: %w", id, ErrNotFound)
	}
	delete(s.store.Assignments, id)
	return s.save()
}

func (s *JSONStore) AddEvent(ev models.OneOffEvent) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Events[ev.ID] = ev
	return s.save()
}

func (s *JSONStore) GetEvent(id string) (models.OneOffEvent, error) {
	if err := s.loaded(); err != nil {
		return models.OneOffEvent{}, err
	}
	ev, ok := s.store.Events[id]
	if !ok {
		return models.OneOffEvent{}, fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	return ev, nil
}

func (s *JSONStore) GetAllEvents() ([]models.OneOffEvent, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	out := make([]models.OneOffEvent, 0, len(s.store.Events))
	for _, ev := range s.store.Events {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *JSONStore) DeleteEvent(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.store.Events[id]; !ok {
		return fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	delete(s.store.Events, id)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
