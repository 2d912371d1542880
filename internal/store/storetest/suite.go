package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/homelists/homelists/internal/model"
	"github.com/homelists/homelists/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	// Unique test identifiers
	suffix := uuid.New().String()
	owner := mustCreateUser(t, s, "owner-"+suffix+"@example.test")
	other := mustCreateUser(t, s, "other-"+suffix+"@example.test")

	// Users
	if got, err := s.Users().GetByID(ctx, owner.UserID); err != nil || got.Email != owner.Email {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if got, err := s.Users().GetByEmail(ctx, owner.Email); err != nil || got.UserID != owner.UserID {
		t.Fatalf("GetByEmail: got=%v err=%v", got, err)
	}
	if _, err := s.Users().GetByID(ctx, "missing-"+suffix); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetByID missing: want ErrNotFound, got %v", err)
	}
	if ids, err := s.Users().ListIDs(ctx); err != nil || len(ids) < 2 {
		t.Fatalf("ListIDs: n=%d err=%v", len(ids), err)
	}

	// Lists
	personal, err := s.Lists().Create(ctx, &model.List{OwnerID: owner.UserID, Name: "Groceries"})
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	if personal.ListID == "" {
		t.Fatalf("CreateList: empty list id")
	}
	shared, err := s.Lists().Create(ctx, &model.List{OwnerID: owner.UserID, Name: "Chores", IsShared: true})
	if err != nil {
		t.Fatalf("CreateList shared: %v", err)
	}
	tpl, err := s.Lists().Create(ctx, &model.List{OwnerID: owner.UserID, Name: "Weekly shop (T)", IsTemplate: true})
	if err != nil {
		t.Fatalf("CreateList template: %v", err)
	}

	// Case-insensitive owner-scoped name lookup
	if got, err := s.Lists().FindByNameFold(ctx, owner.UserID, "gRoCeRiEs"); err != nil || got.ListID != personal.ListID {
		t.Fatalf("FindByNameFold: got=%v err=%v", got, err)
	}
	if _, err := s.Lists().FindByNameFold(ctx, other.UserID, "Groceries"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("FindByNameFold other owner: want ErrNotFound, got %v", err)
	}

	// The three sidebar queries
	if lst, err := s.Lists().ListPersonal(ctx, owner.UserID); err != nil || !containsList(lst, personal.ListID) || containsList(lst, shared.ListID) || containsList(lst, tpl.ListID) {
		t.Fatalf("ListPersonal: n=%d err=%v", len(lst), err)
	}
	if lst, err := s.Lists().ListShared(ctx); err != nil || !containsList(lst, shared.ListID) {
		t.Fatalf("ListShared: n=%d err=%v", len(lst), err)
	}
	if lst, err := s.Lists().ListTemplates(ctx, owner.UserID); err != nil || !containsList(lst, tpl.ListID) || containsList(lst, personal.ListID) {
		t.Fatalf("ListTemplates: n=%d err=%v", len(lst), err)
	}

	// Public predicate: private and missing lists are indistinguishable
	if _, err := s.Lists().GetPublic(ctx, personal.ListID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetPublic private list: want ErrNotFound, got %v", err)
	}
	if _, err := s.Lists().GetPublic(ctx, uuid.New().String()); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetPublic missing list: want ErrNotFound, got %v", err)
	}
	if err := s.Lists().SetPublic(ctx, personal.ListID, true); err != nil {
		t.Fatalf("SetPublic: %v", err)
	}
	if got, err := s.Lists().GetPublic(ctx, personal.ListID); err != nil || got.Name != "Groceries" {
		t.Fatalf("GetPublic after SetPublic: got=%v err=%v", got, err)
	}
	if err := s.Lists().SetPublic(ctx, personal.ListID, false); err != nil {
		t.Fatalf("SetPublic off: %v", err)
	}
	if _, err := s.Lists().GetPublic(ctx, personal.ListID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetPublic after unshare: want ErrNotFound, got %v", err)
	}

	// Flag flips on a missing list
	if err := s.Lists().SetFavorite(ctx, uuid.New().String(), true); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("SetFavorite missing: want ErrNotFound, got %v", err)
	}

	// Items, ordered by creation time ascending
	first, err := s.Items().Create(ctx, &model.Item{ListID: personal.ListID, Content: "milk"})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	time.Sleep(5 * time.Millisecond) // ensure monotonic creation time ordering
	if _, err := s.Items().Create(ctx, &model.Item{ListID: personal.ListID, Content: "bread"}); err != nil {
		t.Fatalf("CreateItem 2: %v", err)
	}
	got, err := s.Items().ListByList(ctx, personal.ListID)
	if err != nil || len(got) != 2 {
		t.Fatalf("ListByList: n=%d err=%v", len(got), err)
	}
	if got[0].Content != "milk" || got[1].Content != "bread" {
		t.Fatalf("ListByList order: %q, %q", got[0].Content, got[1].Content)
	}

	if err := s.Items().SetChecked(ctx, first.ItemID, true); err != nil {
		t.Fatalf("SetChecked: %v", err)
	}
	if got, err := s.Items().ListByList(ctx, personal.ListID); err != nil || !got[0].Checked {
		t.Fatalf("SetChecked not persisted: %v err=%v", got, err)
	}

	// Copy contents: fresh IDs, checked reset, count returned
	dst, err := s.Lists().Create(ctx, &model.List{OwnerID: owner.UserID, Name: "Groceries (copy)"})
	if err != nil {
		t.Fatalf("CreateList dst: %v", err)
	}
	n, err := s.Items().CopyContents(ctx, personal.ListID, dst.ListID)
	if err != nil || n != 2 {
		t.Fatalf("CopyContents: n=%d err=%v", n, err)
	}
	copied, err := s.Items().ListByList(ctx, dst.ListID)
	if err != nil || len(copied) != 2 {
		t.Fatalf("ListByList dst: n=%d err=%v", len(copied), err)
	}
	for _, it := range copied {
		if it.Checked {
			t.Fatalf("CopyContents must reset checked, item %s", it.ItemID)
		}
		if it.ItemID == first.ItemID {
			t.Fatalf("CopyContents must mint fresh item IDs")
		}
	}

	// Copy from an empty list is legal and copies nothing
	empty, err := s.Lists().Create(ctx, &model.List{OwnerID: owner.UserID, Name: "Empty"})
	if err != nil {
		t.Fatalf("CreateList empty: %v", err)
	}
	if n, err := s.Items().CopyContents(ctx, empty.ListID, dst.ListID); err != nil || n != 0 {
		t.Fatalf("CopyContents empty: n=%d err=%v", n, err)
	}

	// Memberships: bulk grant is idempotent
	if err := s.Memberships().Grant(ctx, shared.ListID, []string{owner.UserID, other.UserID}); err != nil {
		t.Fatalf("Grant: %v", err)
	}
	if err := s.Memberships().Grant(ctx, shared.ListID, []string{other.UserID}); err != nil {
		t.Fatalf("Grant repeat: %v", err)
	}
	if ids, err := s.Memberships().ListUserIDs(ctx, shared.ListID); err != nil || len(ids) != 2 {
		t.Fatalf("ListUserIDs: n=%d err=%v", len(ids), err)
	}

	// Delete cascades to items and memberships
	if err := s.Lists().Delete(ctx, personal.ListID); err != nil {
		t.Fatalf("DeleteList: %v", err)
	}
	if _, err := s.Lists().GetByID(ctx, personal.ListID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetByID after delete: want ErrNotFound, got %v", err)
	}
	if left, err := s.Items().ListByList(ctx, personal.ListID); err != nil || len(left) != 0 {
		t.Fatalf("items should cascade on delete: n=%d err=%v", len(left), err)
	}
	if err := s.Lists().Delete(ctx, personal.ListID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Delete twice: want ErrNotFound, got %v", err)
	}
}

func mustCreateUser(t *testing.T, s store.Store, email string) *model.User {
	t.Helper()
	u, err := s.Users().Create(context.Background(), &model.User{Email: email, PasswordHash: "x"})
	if err != nil {
		t.Fatalf("CreateUser %s: %v", email, err)
	}
	return u
}

func containsList(lst []*model.List, id string) bool {
	for _, l := range lst {
		if l.ListID == id {
			return true
		}
	}
	return false
}
