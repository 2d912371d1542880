package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/homelists/homelists/internal/model"
	"github.com/homelists/homelists/internal/store"
)

// fakeStore is an in-memory store.Store used by the service tests. It counts
// writes so tests can assert that rejected operations touched nothing, and
// failCopy makes CopyContents fail to exercise the rollback path.
type fakeStore struct {
	users   map[string]*model.User
	lists   map[string]*model.List
	items   map[string][]*model.Item
	members map[string]map[string]bool

	failCopy    bool
	listCreates int
	itemWrites  int
	seq         int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   map[string]*model.User{},
		lists:   map[string]*model.List{},
		items:   map[string][]*model.Item{},
		members: map[string]map[string]bool{},
	}
}

func (f *fakeStore) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeStore) Users() store.Users             { return &fakeUsers{f} }
func (f *fakeStore) Lists() store.Lists             { return &fakeLists{f} }
func (f *fakeStore) Items() store.Items             { return &fakeItems{f} }
func (f *fakeStore) Memberships() store.Memberships { return &fakeMemberships{f} }

type fakeUsers struct{ p *fakeStore }

func (u *fakeUsers) Create(_ context.Context, in *model.User) (*model.User, error) {
	cp := *in
	if cp.UserID == "" {
		cp.UserID = u.p.nextID("user")
	}
	cp.CreationTime = time.Now().UTC()
	u.p.users[cp.UserID] = &cp
	return &cp, nil
}

func (u *fakeUsers) GetByID(_ context.Context, userID string) (*model.User, error) {
	if usr, ok := u.p.users[userID]; ok {
		return usr, nil
	}
	return nil, model.ErrNotFound
}

func (u *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, usr := range u.p.users {
		if usr.Email == email {
			return usr, nil
		}
	}
	return nil, model.ErrNotFound
}

func (u *fakeUsers) ListIDs(_ context.Context) ([]string, error) {
	ids := make([]string, 0, len(u.p.users))
	for id := range u.p.users {
		ids = append(ids, id)
	}
	return ids, nil
}

type fakeLists struct{ p *fakeStore }

func (l *fakeLists) Create(_ context.Context, in *model.List) (*model.List, error) {
	cp := *in
	cp.ListID = l.p.nextID("list")
	cp.CreationTime = time.Now().UTC()
	l.p.lists[cp.ListID] = &cp
	l.p.listCreates++
	return &cp, nil
}

func (l *fakeLists) GetByID(_ context.Context, listID string) (*model.List, error) {
	if ls, ok := l.p.lists[listID]; ok {
		return ls, nil
	}
	return nil, model.ErrNotFound
}

func (l *fakeLists) GetPublic(_ context.Context, listID string) (*model.List, error) {
	if ls, ok := l.p.lists[listID]; ok && ls.IsPublic {
		return ls, nil
	}
	return nil, model.ErrNotFound
}

func (l *fakeLists) FindByNameFold(_ context.Context, ownerID, name string) (*model.List, error) {
	for _, ls := range l.p.lists {
		if ls.OwnerID == ownerID && strings.EqualFold(ls.Name, name) {
			return ls, nil
		}
	}
	return nil, model.ErrNotFound
}

func (l *fakeLists) ListPersonal(_ context.Context, ownerID string) ([]*model.List, error) {
	var out []*model.List
	for _, ls := range l.p.lists {
		if ls.OwnerID == ownerID && !ls.IsShared && !ls.IsTemplate {
			out = append(out, ls)
		}
	}
	return out, nil
}

func (l *fakeLists) ListShared(_ context.Context) ([]*model.List, error) {
	var out []*model.List
	for _, ls := range l.p.lists {
		if ls.IsShared {
			out = append(out, ls)
		}
	}
	return out, nil
}

func (l *fakeLists) ListTemplates(_ context.Context, ownerID string) ([]*model.List, error) {
	var out []*model.List
	for _, ls := range l.p.lists {
		if ls.OwnerID == ownerID && ls.IsTemplate {
			out = append(out, ls)
		}
	}
	return out, nil
}

func (l *fakeLists) setFlag(listID string, set func(*model.List)) error {
	ls, ok := l.p.lists[listID]
	if !ok {
		return model.ErrNotFound
	}
	set(ls)
	return nil
}

func (l *fakeLists) SetFavorite(_ context.Context, listID string, v bool) error {
	return l.setFlag(listID, func(ls *model.List) { ls.IsFavorite = v })
}

func (l *fakeLists) SetPublic(_ context.Context, listID string, v bool) error {
	return l.setFlag(listID, func(ls *model.List) { ls.IsPublic = v })
}

func (l *fakeLists) SetShared(_ context.Context, listID string, v bool) error {
	return l.setFlag(listID, func(ls *model.List) { ls.IsShared = v })
}

func (l *fakeLists) Delete(_ context.Context, listID string) error {
	if _, ok := l.p.lists[listID]; !ok {
		return model.ErrNotFound
	}
	delete(l.p.lists, listID)
	delete(l.p.items, listID)
	delete(l.p.members, listID)
	return nil
}

type fakeItems struct{ p *fakeStore }

func (i *fakeItems) Create(_ context.Context, in *model.Item) (*model.Item, error) {
	cp := *in
	cp.ItemID = i.p.nextID("item")
	cp.CreationTime = time.Now().UTC()
	i.p.items[cp.ListID] = append(i.p.items[cp.ListID], &cp)
	i.p.itemWrites++
	return &cp, nil
}

func (i *fakeItems) ListByList(_ context.Context, listID string) ([]*model.Item, error) {
	return i.p.items[listID], nil
}

func (i *fakeItems) SetChecked(_ context.Context, itemID string, checked bool) error {
	for _, its := range i.p.items {
		for _, it := range its {
			if it.ItemID == itemID {
				it.Checked = checked
				return nil
			}
		}
	}
	return model.ErrNotFound
}

func (i *fakeItems) Delete(_ context.Context, itemID string) error {
	for listID, its := range i.p.items {
		for n, it := range its {
			if it.ItemID == itemID {
				i.p.items[listID] = append(its[:n], its[n+1:]...)
				return nil
			}
		}
	}
	return model.ErrNotFound
}

func (i *fakeItems) CopyContents(_ context.Context, srcListID, dstListID string) (int, error) {
	if i.p.failCopy {
		return 0, errors.New("copy failed")
	}
	src := i.p.items[srcListID]
	for _, it := range src {
		cp := &model.Item{
			ItemID:       i.p.nextID("item"),
			ListID:       dstListID,
			Content:      it.Content,
			CreationTime: time.Now().UTC(),
		}
		i.p.items[dstListID] = append(i.p.items[dstListID], cp)
		i.p.itemWrites++
	}
	return len(src), nil
}

type fakeMemberships struct{ p *fakeStore }

func (m *fakeMemberships) Grant(_ context.Context, listID string, userIDs []string) error {
	set, ok := m.p.members[listID]
	if !ok {
		set = map[string]bool{}
		m.p.members[listID] = set
	}
	for _, id := range userIDs {
		set[id] = true
	}
	return nil
}

func (m *fakeMemberships) ListUserIDs(_ context.Context, listID string) ([]string, error) {
	var out []string
	for id := range m.p.members[listID] {
		out = append(out, id)
	}
	return out, nil
}
