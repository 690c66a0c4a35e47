package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/stemsi/qbank-backend/internal/model"
	"github.com/stemsi/qbank-backend/internal/repository"
)

// memStore is an in-memory stand-in for the repositories.
type memStore struct {
	mu        sync.Mutex
	questions map[int64]model.Question
	courses   map[int64]model.Course
	exams     map[int64]model.ExamPaper
	links     map[int64][]int64
	users     map[int64]model.User
	nextID    int64
	saveErr   error
}

func newMemStore() *memStore {
	return &memStore{
		questions: map[int64]model.Question{},
		courses:   map[int64]model.Course{},
		exams:     map[int64]model.ExamPaper{},
		links:     map[int64][]int64{},
		users:     map[int64]model.User{},
		nextID:    100,
	}
}

func (m *memStore) addQuestion(q model.Question) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions[q.ID] = q
}

// Questions

func (m *memStore) ListByOwner(_ context.Context, ownerID int64, filter model.QuestionFilter) ([]model.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Question
	for _, q := range m.questions {
		if q.OwnerID != ownerID {
			continue
		}
		if filter.CourseID != 0 && q.CourseID != filter.CourseID {
			continue
		}
		if filter.QuestionType != "" && q.QuestionType != filter.QuestionType {
			continue
		}
		if topic := strings.TrimSpace(filter.Topic); topic != "" &&
			!strings.Contains(strings.ToLower(q.Topic), strings.ToLower(topic)) {
			continue
		}
		out = append(out, q)
	}
	model.SortForPaper(out)
	return out, nil
}

func (m *memStore) GetByID(_ context.Context, id int64) (*model.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.questions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &q, nil
}

func (m *memStore) Create(_ context.Context, q *model.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	q.ID = m.nextID
	m.questions[q.ID] = *q
	return nil
}

func (m *memStore) Update(_ context.Context, q *model.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.questions[q.ID]
	if !ok || cur.OwnerID != q.OwnerID {
		return repository.ErrNotFound
	}
	m.questions[q.ID] = *q
	return nil
}

func (m *memStore) Delete(_ context.Context, ownerID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.questions[id]
	if !ok || q.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	for _, ids := range m.links {
		for _, qid := range ids {
			if qid == id {
				return repository.ErrReferenced
			}
		}
	}
	delete(m.questions, id)
	return nil
}

// Exams

type memExams struct{ *memStore }

func (m memExams) Save(_ context.Context, c *model.ExamCandidate) (*model.ExamPaper, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	m.nextID++
	p := model.ExamPaper{ID: m.nextID, OwnerID: c.OwnerID, Title: c.Title, CreatedAt: time.Now()}
	m.exams[p.ID] = p
	m.links[p.ID] = append([]int64(nil), c.QuestionIDs...)
	return &p, nil
}

func (m memExams) GetForOwner(_ context.Context, id, ownerID int64) (*model.ExamPaper, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.exams[id]
	if !ok || p.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (m memExams) ListQuestions(_ context.Context, examID int64) ([]model.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Question
	for _, id := range m.links[examID] {
		out = append(out, m.questions[id])
	}
	return out, nil
}

func (m memExams) Delete(_ context.Context, id, ownerID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.exams[id]
	if !ok || p.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(m.links, id)
	delete(m.exams, id)
	return nil
}

func (m memExams) ListSummaries(_ context.Context, ownerID int64, search string) ([]model.ExamSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.ExamSummary
	for id, p := range m.exams {
		if p.OwnerID != ownerID || !strings.Contains(strings.ToLower(p.Title), strings.ToLower(search)) {
			continue
		}
		s := model.ExamSummary{ID: id, Title: p.Title, CreatedAt: p.CreatedAt}
		for _, qid := range m.links[id] {
			s.QuestionCount++
			s.TotalMarks += m.questions[qid].Marks
		}
		out = append(out, s)
	}
	return out, nil
}

// Courses

type memCourses struct{ *memStore }

func (m memCourses) Create(_ context.Context, c *model.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.courses {
		if existing.OwnerID == c.OwnerID && existing.Name == c.Name {
			return errors.Join(repository.ErrDuplicate, errors.New("unique violation"))
		}
	}
	m.nextID++
	c.ID = m.nextID
	m.courses[c.ID] = *c
	return nil
}

func (m memCourses) ListByOwner(_ context.Context, ownerID int64) ([]model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Course
	for _, c := range m.courses {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m memCourses) ExistsForOwner(_ context.Context, ownerID, courseID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courses[courseID]
	return ok && c.OwnerID == ownerID, nil
}

func (m memCourses) Delete(_ context.Context, ownerID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courses[id]
	if !ok || c.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	for _, q := range m.questions {
		if q.CourseID == id {
			return repository.ErrReferenced
		}
	}
	delete(m.courses, id)
	return nil
}

// Users

type memUsers struct{ *memStore }

func (m memUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m memUsers) Create(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return errors.Join(repository.ErrDuplicate, errors.New("unique violation"))
		}
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	m.users[u.ID] = *u
	return nil
}
