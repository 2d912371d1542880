package model

import "time"

// User represents an account in the system. PasswordHash never leaves the
// service; it is excluded from every JSON response.
type User struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	DisplayName  *string   `json:"displayName,omitempty"`
	PasswordHash string    `json:"-"`
	CreationTime time.Time `json:"creationTime"`
}

// List is a named, owned collection of items. A list is owned by exactly one
// user; the boolean flags only affect who can see it, never who owns it.
type List struct {
	ListID       string    `json:"listId"`
	OwnerID      string    `json:"ownerId"`
	Name         string    `json:"name"`
	IsShared     bool      `json:"isShared"`
	IsPublic     bool      `json:"isPublic"`
	IsFavorite   bool      `json:"isFavorite"`
	IsTemplate   bool      `json:"isTemplate"`
	CreationTime time.Time `json:"creationTime"`
}

// Item is a single content line belonging to one list. CreationTime is the
// stable ordering key for rendering.
type Item struct {
	ItemID       string    `json:"itemId"`
	ListID       string    `json:"listId"`
	Content      string    `json:"content"`
	Checked      bool      `json:"checked"`
	CreationTime time.Time `json:"creationTime"`
}

// ListMembership grants a user visibility into a list (table list_users).
type ListMembership struct {
	ListID       string    `json:"listId"`
	UserID       string    `json:"userId"`
	CreationTime time.Time `json:"creationTime"`
}

// ListOverview partitions the lists visible to a user into the three sidebar
// buckets. Each bucket is re-derived in full on every call; there is no
// incremental patching across buckets.
type ListOverview struct {
	Personal  []*List `json:"personal"`
	Shared    []*List `json:"shared"`
	Templates []*List `json:"templates"`
}

// PublicList is the read-only projection served to unauthenticated viewers.
type PublicList struct {
	ListID string  `json:"listId"`
	Name   string  `json:"name"`
	Items  []*Item `json:"items"`
}
