package store

import (
	"context"

	"github.com/homelists/homelists/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Users() Users
	Lists() Lists
	Items() Items
	Memberships() Memberships
}

type Users interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, userID string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// ListIDs returns the IDs of every registered user. Used for shared-list
	// membership grants, which go to all users.
	ListIDs(ctx context.Context) ([]string, error)
}

type Lists interface {
	Create(ctx context.Context, l *model.List) (*model.List, error)
	GetByID(ctx context.Context, listID string) (*model.List, error)
	// GetPublic returns the list only when its is_public flag is set. A private
	// list and a nonexistent one both yield model.ErrNotFound, so a caller
	// cannot infer existence of a private list.
	GetPublic(ctx context.Context, listID string) (*model.List, error)
	// FindByNameFold performs a case-insensitive owner-scoped name lookup.
	FindByNameFold(ctx context.Context, ownerID, name string) (*model.List, error)

	// The three sidebar queries. Each is independent; callers re-run all three
	// after every mutation.
	ListPersonal(ctx context.Context, ownerID string) ([]*model.List, error)
	ListShared(ctx context.Context) ([]*model.List, error)
	ListTemplates(ctx context.Context, ownerID string) ([]*model.List, error)

	SetFavorite(ctx context.Context, listID string, favorite bool) error
	SetPublic(ctx context.Context, listID string, public bool) error
	SetShared(ctx context.Context, listID string, shared bool) error

	// Delete removes the list together with its items and memberships in one
	// transaction. Deletion is immediate and unrecoverable.
	Delete(ctx context.Context, listID string) error
}

type Items interface {
	Create(ctx context.Context, it *model.Item) (*model.Item, error)
	// ListByList returns items ordered by creation time ascending.
	ListByList(ctx context.Context, listID string) ([]*model.Item, error)
	SetChecked(ctx context.Context, itemID string, checked bool) error
	Delete(ctx context.Context, itemID string) error
	// CopyContents copies every item's content from src to dst in a single
	// transaction: fresh IDs, checked reset to false. An empty source copies
	// zero rows and is not an error. Returns the number of rows copied.
	CopyContents(ctx context.Context, srcListID, dstListID string) (int, error)
}

type Memberships interface {
	// Grant inserts membership rows in bulk inside one transaction. Existing
	// pairs are skipped, so repeated grants are idempotent.
	Grant(ctx context.Context, listID string, userIDs []string) error
	ListUserIDs(ctx context.Context, listID string) ([]string, error)
}
