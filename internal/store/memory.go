package store

import (
	"context"
	"sort"
	"sync"

	"github.com/cxmpoundV/TaskManagementAPI/internal/domain"
)

// Memory is an in-process TaskStore/UserStore. Query results preserve
// insertion order unless an explicit Order is requested, so tests stay
// deterministic.
type Memory struct {
	mu     sync.RWMutex
	tasks  []domain.Task
	users  []domain.User
	nextID int64
}

func NewMemory() *Memory {
	return &Memory{nextID: 1}
}

func (m *Memory) AddTask(t domain.Task) domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.TaskID == 0 {
		t.TaskID = m.nextID
		m.nextID++
	} else if t.TaskID >= m.nextID {
		m.nextID = t.TaskID + 1
	}
	m.tasks = append(m.tasks, t)
	return t
}

func (m *Memory) AddUser(u domain.User) domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == 0 {
		u.ID = m.nextID
		m.nextID++
	}
	m.users = append(m.users, u)
	return u
}

func (m *Memory) matches(t domain.Task, f TaskFilter) bool {
	if f.OwnerID != nil && t.OwnerID != *f.OwnerID {
		return false
	}
	if f.OwnerEmail != nil {
		owner, ok := m.userByID(t.OwnerID)
		if !ok || owner.Email != *f.OwnerEmail {
			return false
		}
	}
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.StatusNot != nil && t.Status == *f.StatusNot {
		return false
	}
	if f.DueBefore != nil && !t.DueDate.Before(*f.DueBefore) {
		return false
	}
	if f.DueFrom != nil && t.DueDate.Before(*f.DueFrom) {
		return false
	}
	if f.DueTo != nil && t.DueDate.After(*f.DueTo) {
		return false
	}
	if f.CompletedSet != nil && (t.CompletedDate != nil) != *f.CompletedSet {
		return false
	}
	return true
}

func (m *Memory) userByID(id int64) (domain.User, bool) {
	for _, u := range m.users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

func (m *Memory) Query(ctx context.Context, f TaskFilter, order Order) ([]domain.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var res []domain.Task
	for _, t := range m.tasks {
		if m.matches(t, f) {
			res = append(res, t)
		}
	}

	switch order {
	case OrderDueDateAsc:
		sort.SliceStable(res, func(i, j int) bool {
			return res[i].DueDate.Before(res[j].DueDate)
		})
	case OrderPriorityThenDue:
		sort.SliceStable(res, func(i, j int) bool {
			ri, rj := domain.PriorityRank(res[i].Priority), domain.PriorityRank(res[j].Priority)
			if ri != rj {
				return ri > rj
			}
			return res[i].DueDate.Before(res[j].DueDate)
		})
	}
	return res, nil
}

func (m *Memory) Count(ctx context.Context, f TaskFilter) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, t := range m.tasks {
		if m.matches(t, f) {
			n++
		}
	}
	return n, nil
}

func (m *Memory) GroupCount(ctx context.Context, field string, f TaskFilter) (map[string]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make(map[string]int64)
	for _, t := range m.tasks {
		if !m.matches(t, f) {
			continue
		}
		switch field {
		case FieldStatus:
			res[t.Status]++
		case FieldPriority:
			res[t.Priority]++
		}
	}
	return res, nil
}

func (m *Memory) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.userByID(id); ok {
		return &u, nil
	}
	return nil, domain.ErrNotFound
}

func (m *Memory) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			uu := u
			return &uu, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *Memory) Create(ctx context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.nextID
	m.nextID++
	m.users = append(m.users, *u)
	return nil
}

func (m *Memory) ListEmails(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	emails := make([]string, 0, len(m.users))
	for _, u := range m.users {
		emails = append(emails, u.Email)
	}
	return emails, nil
}
