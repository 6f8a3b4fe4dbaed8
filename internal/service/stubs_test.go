package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/spec-kit/list-manager/internal/domain"
	"github.com/spec-kit/list-manager/internal/events"
)

type memoryUsers struct {
	mu    sync.Mutex
	byID  map[string]domain.User
	order []string
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: map[string]domain.User{}}
}

func (m *memoryUsers) emailTaken(email, exceptID string) bool {
	for id, u := range m.byID {
		if u.Email == email && id != exceptID {
			return true
		}
	}
	return false
}

func (m *memoryUsers) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.emailTaken(user.Email, "") {
		return fmt.Errorf("%w: users_email_key", domain.ErrDuplicateEmail)
	}
	user.ID = uuid.NewString()
	m.byID[user.ID] = *user
	m.order = append(m.order, user.ID)
	return nil
}

func (m *memoryUsers) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	if m.emailTaken(user.Email, user.ID) {
		return domain.ErrDuplicateEmail
	}
	m.byID[user.ID] = *user
	return nil
}

func (m *memoryUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memoryUsers) ListByRoles(_ context.Context, roles []domain.Role) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.User
	for _, id := range m.order {
		u := m.byID[id]
		if len(roles) == 0 || lo.Some(u.Roles, roles) {
			out = append(out, u)
		}
	}
	return out, nil
}

// seed stores a user directly, bypassing hashing.
func (m *memoryUsers) seed(u domain.User) *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	m.byID[u.ID] = u
	m.order = append(m.order, u.ID)
	return &u
}

type memoryItems struct {
	rows map[string]domain.Item
}

func newMemoryItems() *memoryItems {
	return &memoryItems{rows: map[string]domain.Item{}}
}

func (m *memoryItems) Create(_ context.Context, item *domain.Item) error {
	item.ID = uuid.NewString()
	m.rows[item.ID] = *item
	return nil
}

func (m *memoryItems) Update(_ context.Context, item *domain.Item) error {
	if cur, ok := m.rows[item.ID]; !ok || cur.UserID != item.UserID {
		return domain.ErrNotFound
	}
	m.rows[item.ID] = *item
	return nil
}

func (m *memoryItems) Delete(_ context.Context, userID, id string) error {
	if cur, ok := m.rows[id]; !ok || cur.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryItems) GetByID(_ context.Context, userID, id string) (*domain.Item, error) {
	cur, ok := m.rows[id]
	if !ok || cur.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &cur, nil
}

func (m *memoryItems) ListByUser(_ context.Context, userID string, page domain.Page) ([]domain.Item, error) {
	out := lo.Filter(lo.Values(m.rows), func(i domain.Item, _ int) bool {
		return i.UserID == userID && strings.Contains(strings.ToLower(i.Name), strings.ToLower(page.Search))
	})
	return out, nil
}

func (m *memoryItems) CountByUser(_ context.Context, userID string) (int, error) {
	return lo.CountBy(lo.Values(m.rows), func(i domain.Item) bool { return i.UserID == userID }), nil
}

type memoryLists struct {
	rows map[string]domain.List
}

func newMemoryLists() *memoryLists {
	return &memoryLists{rows: map[string]domain.List{}}
}

func (m *memoryLists) Create(_ context.Context, list *domain.List) error {
	list.ID = uuid.NewString()
	m.rows[list.ID] = *list
	return nil
}

func (m *memoryLists) Update(_ context.Context, list *domain.List) error {
	if cur, ok := m.rows[list.ID]; !ok || cur.UserID != list.UserID {
		return domain.ErrNotFound
	}
	m.rows[list.ID] = *list
	return nil
}

func (m *memoryLists) Delete(_ context.Context, userID, id string) error {
	if cur, ok := m.rows[id]; !ok || cur.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryLists) GetByID(_ context.Context, userID, id string) (*domain.List, error) {
	cur, ok := m.rows[id]
	if !ok || cur.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &cur, nil
}

func (m *memoryLists) ListByUser(_ context.Context, userID string, _ domain.Page) ([]domain.List, error) {
	return lo.Filter(lo.Values(m.rows), func(l domain.List, _ int) bool { return l.UserID == userID }), nil
}

func (m *memoryLists) CountByUser(_ context.Context, userID string) (int, error) {
	return lo.CountBy(lo.Values(m.rows), func(l domain.List) bool { return l.UserID == userID }), nil
}

type memoryEntries struct {
	rows  map[string]domain.ListItem
	lists *memoryLists
}

func newMemoryEntries(lists *memoryLists) *memoryEntries {
	return &memoryEntries{rows: map[string]domain.ListItem{}, lists: lists}
}

func (m *memoryEntries) duplicate(e *domain.ListItem) bool {
	return lo.SomeBy(lo.Values(m.rows), func(cur domain.ListItem) bool {
		return cur.ID != e.ID && cur.ListID == e.ListID && cur.ItemID == e.ItemID
	})
}

func (m *memoryEntries) owned(userID string, e domain.ListItem) bool {
	l, ok := m.lists.rows[e.ListID]
	return ok && l.UserID == userID
}

func (m *memoryEntries) Create(_ context.Context, e *domain.ListItem) error {
	if m.duplicate(e) {
		return fmt.Errorf("%w: list_items_list_id_item_id_key", domain.ErrConflict)
	}
	e.ID = uuid.NewString()
	m.rows[e.ID] = *e
	return nil
}

func (m *memoryEntries) Update(_ context.Context, e *domain.ListItem) error {
	if _, ok := m.rows[e.ID]; !ok {
		return domain.ErrNotFound
	}
	if m.duplicate(e) {
		return domain.ErrConflict
	}
	m.rows[e.ID] = *e
	return nil
}

func (m *memoryEntries) Delete(_ context.Context, userID, id string) error {
	cur, ok := m.rows[id]
	if !ok || !m.owned(userID, cur) {
		return domain.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryEntries) GetByID(_ context.Context, userID, id string) (*domain.ListItem, error) {
	cur, ok := m.rows[id]
	if !ok || !m.owned(userID, cur) {
		return nil, domain.ErrNotFound
	}
	return &cur, nil
}

func (m *memoryEntries) ListByList(_ context.Context, listID string, _ domain.Page) ([]domain.ListItem, error) {
	return lo.Filter(lo.Values(m.rows), func(e domain.ListItem, _ int) bool { return e.ListID == listID }), nil
}

func (m *memoryEntries) CountByList(_ context.Context, listID string) (int, error) {
	return lo.CountBy(lo.Values(m.rows), func(e domain.ListItem) bool { return e.ListID == listID }), nil
}

type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	return lo.Map(d.published, func(e events.Event, _ int) events.EventType { return e.Type })
}
