package sqlstore

import (
	"github.com/julianstephens/coursecal/internal/models"
)

func (s *Store) AddTerm(term models.Term) error {
	_, err := s.exec(`
		INSERT INTO terms (id, name, start_date, end_date) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name, start_date = excluded.start_date, end_date = excluded.end_date`,
		term.ID, term.Name, term.StartDate, term.EndDate)
	return err
}

func (s *Store) GetTerm(id string) (models.Term, error) {
	var t models.Term
	err := s.queryRow("SELECT id, name, start_date, end_date FROM terms WHERE id = ?", id).
		Scan(&t.ID, &t.Name, &t.StartDate, &t.EndDate)
	if err != nil {
		return models.Term{}, notFound(err, "term", id)
	}
	return t, nil
}

func (s *Store) GetAllTerms() ([]models.Term, error) {
	rows, err := s.query("SELECT id, name, start_date, end_date FROM terms ORDER BY start_date, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []models.Term
	for rows.Next() {
		var t models.Term
		if err := rows.Scan(&t.ID, &t.Name, &t.StartDate, &t.EndDate); err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}

func (s *Store) DeleteTerm(id string) error {
	res, err := s.exec("DELETE FROM terms WHERE id = ?", id)
	if err != nil {
		return err
	}
	return mustAffect(res, "term", id)
}
