package graph

import (
	"context"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/list-manager/internal/auth"
	"github.com/spec-kit/list-manager/internal/domain"
)

type stubUsers struct {
	byID map[string]*domain.User
}

func (s *stubUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUsers) List(_ context.Context, roles []domain.Role) ([]*domain.User, error) {
	return lo.Filter(lo.Values(s.byID), func(u *domain.User, _ int) bool {
		return len(roles) == 0 || lo.Some(u.Roles, roles)
	}), nil
}

func (s *stubUsers) Update(_ context.Context, id string, patch domain.UserPatch, by *domain.User) (*domain.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.FullName != nil {
		u.FullName = *patch.FullName
	}
	u.LastUpdatedByID = lo.ToPtr(by.ID)
	return u.Sanitized(), nil
}

func (s *stubUsers) Block(ctx context.Context, id string, by *domain.User) (*domain.User, error) {
	u, err := s.Update(ctx, id, domain.UserPatch{}, by)
	if err != nil {
		return nil, err
	}
	s.byID[id].IsActive = false
	u.IsActive = false
	return u, nil
}

type stubItems struct {
	mu    sync.Mutex
	items map[string][]domain.Item
	calls int
}

func (s *stubItems) Create(_ context.Context, ownerID, name string, units *string) (*domain.Item, error) {
	item := domain.Item{ID: name, Name: name, QuantityUnits: units, UserID: ownerID}
	s.items[ownerID] = append(s.items[ownerID], item)
	return &item, nil
}

func (s *stubItems) FindAll(_ context.Context, ownerID string, _ domain.Page) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.items[ownerID], nil
}

func (s *stubItems) FindOne(_ context.Context, ownerID, id string) (*domain.Item, error) {
	item, ok := lo.Find(s.items[ownerID], func(i domain.Item) bool { return i.ID == id })
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (s *stubItems) Update(ctx context.Context, ownerID, id string, patch domain.ItemPatch) (*domain.Item, error) {
	item, err := s.FindOne(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	return item, nil
}

func (s *stubItems) Remove(ctx context.Context, ownerID, id string) (*domain.Item, error) {
	return s.FindOne(ctx, ownerID, id)
}

func (s *stubItems) CountByUser(_ context.Context, ownerID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return len(s.items[ownerID]), nil
}

type stubLists struct {
	lists map[string][]domain.List
}

func (s *stubLists) Create(_ context.Context, ownerID, name string) (*domain.List, error) {
	list := domain.List{ID: name, Name: name, UserID: ownerID}
	s.lists[ownerID] = append(s.lists[ownerID], list)
	return &list, nil
}

func (s *stubLists) FindAll(_ context.Context, ownerID string, _ domain.Page) ([]domain.List, error) {
	return append([]domain.List(nil), s.lists[ownerID]...), nil
}

func (s *stubLists) FindOne(_ context.Context, ownerID, id string) (*domain.List, error) {
	list, ok := lo.Find(s.lists[ownerID], func(l domain.List) bool { return l.ID == id })
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &list, nil
}

func (s *stubLists) Update(ctx context.Context, ownerID, id string, name *string) (*domain.List, error) {
	return s.FindOne(ctx, ownerID, id)
}

func (s *stubLists) Remove(ctx context.Context, ownerID, id string) (*domain.List, error) {
	return s.FindOne(ctx, ownerID, id)
}

func (s *stubLists) CountByUser(_ context.Context, ownerID string) (int, error) {
	return len(s.lists[ownerID]), nil
}

type stubEntries struct {
	byList map[string][]domain.ListItem
}

func (s *stubEntries) Create(_ context.Context, _ string, in domain.ListItemInput) (*domain.ListItem, error) {
	entry := domain.ListItem{ID: in.ListID + ":" + in.ItemID, ListID: in.ListID, ItemID: in.ItemID, Quantity: in.Quantity}
	s.byList[in.ListID] = append(s.byList[in.ListID], entry)
	return &entry, nil
}

func (s *stubEntries) FindAll(_ context.Context, _ string, listID string, _ domain.Page) ([]domain.ListItem, error) {
	return s.byList[listID], nil
}

func (s *stubEntries) ByList(_ context.Context, list *domain.List, _ domain.Page) ([]domain.ListItem, error) {
	return s.byList[list.ID], nil
}

func (s *stubEntries) CountByList(_ context.Context, list *domain.List) (int, error) {
	return len(s.byList[list.ID]), nil
}

func (s *stubEntries) FindOne(context.Context, string, string) (*domain.ListItem, error) {
	return nil, domain.ErrNotFound
}

func (s *stubEntries) Update(context.Context, string, string, domain.ListItemPatch) (*domain.ListItem, error) {
	return nil, domain.ErrNotFound
}

func (s *stubEntries) Remove(context.Context, string, string) (*domain.ListItem, error) {
	return nil, domain.ErrNotFound
}

type stubAuth struct{}

func (stubAuth) Signup(_ context.Context, in domain.SignupInput) (*domain.AuthResult, error) {
	return &domain.AuthResult{Credential: domain.Credential{Token: "t"}, User: &domain.User{ID: "new", Email: in.Email}}, nil
}

func (stubAuth) Login(context.Context, string, string) (*domain.AuthResult, error) {
	return nil, domain.ErrInvalidCredentials
}

func (stubAuth) Revalidate(_ context.Context, user *domain.User) (*domain.AuthResult, error) {
	return &domain.AuthResult{Credential: domain.Credential{Token: "fresh"}, User: user.Sanitized()}, nil
}

type fixture struct {
	resolver *Resolver
	users    *stubUsers
	items    *stubItems
	lists    *stubLists
	entries  *stubEntries
	alice    *domain.User
	bob      *domain.User
	super    *domain.User
	admin    *domain.User
}

func newFixture() *fixture {
	f := &fixture{
		alice: &domain.User{ID: "alice", Roles: []domain.Role{domain.RoleUser}, IsActive: true},
		bob:   &domain.User{ID: "bob", Roles: []domain.Role{domain.RoleUser}, IsActive: true},
		super: &domain.User{ID: "super", Roles: []domain.Role{domain.RoleSuperUser}, IsActive: true},
		admin: &domain.User{ID: "admin", Roles: []domain.Role{domain.RoleAdmin}, IsActive: true},
	}
	f.users = &stubUsers{byID: map[string]*domain.User{
		"alice": f.alice, "bob": f.bob, "super": f.super, "admin": f.admin,
	}}
	f.items = &stubItems{items: map[string][]domain.Item{
		"bob": {{ID: "i1", Name: "Milk", UserID: "bob"}, {ID: "i2", Name: "Eggs", UserID: "bob"}},
	}}
	f.lists = &stubLists{lists: map[string][]domain.List{
		"alice": {{ID: "l1", Name: "Groceries", UserID: "alice"}},
	}}
	f.entries = &stubEntries{byList: map[string][]domain.ListItem{
		"l1": {{ID: "e1", ListID: "l1", ItemID: "i9", Quantity: 2}},
	}}
	f.resolver = NewResolver(Dependencies{
		Auth:      stubAuth{},
		Users:     f.users,
		Items:     f.items,
		Lists:     f.lists,
		ListItems: f.entries,
	})
	return f
}

func as(user *domain.User) context.Context {
	return auth.WithUser(context.Background(), user)
}

func selection(t *testing.T, raw string) Selection {
	t.Helper()
	sel, err := ParseUserSelection(raw, domain.Page{})
	require.NoError(t, err)
	return sel
}

func TestNestedItemCountRequiresAdmin(t *testing.T) {
	f := newFixture()
	sel := selection(t, "itemCount")

	_, err := f.resolver.User(as(f.alice), "bob", sel)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.resolver.Users(as(f.super), nil, sel)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	node, err := f.resolver.User(as(f.admin), "bob", sel)
	require.NoError(t, err)
	require.NotNil(t, node.ItemCount)
	assert.Equal(t, 2, *node.ItemCount)
}

func TestSuperUserListsUsersWithoutGatedFields(t *testing.T) {
	f := newFixture()

	nodes, err := f.resolver.Users(as(f.super), []domain.Role{domain.RoleUser}, Selection{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, lo.Map(nodes, func(n *UserNode, _ int) string { return n.ID }))

	_, err = f.resolver.Users(as(f.alice), nil, Selection{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestForbiddenFieldLoadsNothing(t *testing.T) {
	f := newFixture()
	_, err := f.resolver.Revalidate(as(f.bob), selection(t, "items"))
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Zero(t, f.items.calls)
}

func TestAdminResolvesEveryUserField(t *testing.T) {
	f := newFixture()
	f.bob.LastUpdatedByID = lo.ToPtr("admin")

	node, err := f.resolver.User(as(f.admin), "bob", selection(t, "itemCount,items,lists,listCount,lastUpdatedBy"))
	require.NoError(t, err)
	assert.Equal(t, 2, *node.ItemCount)
	assert.Len(t, node.Items, 2)
	assert.Empty(t, node.Lists)
	assert.Equal(t, 0, *node.ListCount)
	require.NotNil(t, node.LastUpdatedBy)
	assert.Equal(t, "admin", node.LastUpdatedBy.ID)
}

func TestLastUpdatedByForAnyUser(t *testing.T) {
	f := newFixture()
	f.alice.LastUpdatedByID = lo.ToPtr("admin")

	payload, err := f.resolver.Revalidate(as(f.alice), selection(t, "lastUpdatedBy"))
	require.NoError(t, err)
	assert.Equal(t, "fresh", payload.Token)
	require.NotNil(t, payload.User.LastUpdatedBy)
	assert.Equal(t, "admin", payload.User.LastUpdatedBy.ID)

	f.alice.LastUpdatedByID = lo.ToPtr("deleted-admin")
	payload, err = f.resolver.Revalidate(as(f.alice), selection(t, "lastUpdatedBy"))
	require.NoError(t, err)
	assert.Nil(t, payload.User.LastUpdatedBy)
}

func TestRevalidateRequiresUser(t *testing.T) {
	f := newFixture()
	_, err := f.resolver.Revalidate(context.Background(), Selection{})
	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}

func TestPublicOperationsWithoutUser(t *testing.T) {
	f := newFixture()

	payload, err := f.resolver.Signup(context.Background(), domain.SignupInput{Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "new", payload.User.ID)

	_, err = f.resolver.Login(context.Background(), "x", "y")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAdminMutations(t *testing.T) {
	f := newFixture()

	_, err := f.resolver.BlockUser(as(f.super), "bob", Selection{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.True(t, f.bob.IsActive)

	node, err := f.resolver.BlockUser(as(f.admin), "bob", Selection{})
	require.NoError(t, err)
	assert.False(t, node.IsActive)
	assert.Equal(t, "admin", *node.LastUpdatedByID)

	node, err = f.resolver.UpdateUser(as(f.admin), "alice", domain.UserPatch{FullName: lo.ToPtr("Alice")}, Selection{})
	require.NoError(t, err)
	assert.Equal(t, "Alice", node.FullName)

	_, err = f.resolver.UpdateUser(as(f.admin), "ghost", domain.UserPatch{}, Selection{})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListFieldsForOwner(t *testing.T) {
	f := newFixture()
	sel, err := ParseListSelection("items, itemCount", domain.Page{})
	require.NoError(t, err)

	nodes, err := f.resolver.Lists(as(f.alice), domain.Page{}, sel)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, 1, *nodes[0].ItemCount)
	assert.Equal(t, "e1", nodes[0].Items[0].ID)

	_, err = f.resolver.List(as(f.bob), "l1", sel)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResourcesScopedToCaller(t *testing.T) {
	f := newFixture()

	items, err := f.resolver.Items(as(f.bob), domain.Page{})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = f.resolver.Item(as(f.alice), "i1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	created, err := f.resolver.CreateItem(as(f.alice), "Bread", nil)
	require.NoError(t, err)
	assert.Equal(t, "alice", created.UserID)

	entry, err := f.resolver.CreateListItem(as(f.alice), domain.ListItemInput{ListID: "l1", ItemID: "Bread"})
	require.NoError(t, err)
	assert.Equal(t, "l1", entry.ListID)

	_, err = f.resolver.Items(context.Background(), domain.Page{})
	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}
