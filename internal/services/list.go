package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/homelists/homelists/internal/model"
	"github.com/homelists/homelists/internal/store"
)

// Derived-name suffixes for the duplication workflow.
const (
	templateSuffix = " (T)"
	copySuffix     = " (copy)"
)

// ListService orchestrates list-level use cases: the sidebar categorization,
// the visibility toggles and the template duplication workflow.
type ListService struct {
	store         store.Store
	publicBaseURL string
}

func NewListService(s store.Store, publicBaseURL string) *ListService {
	return &ListService{store: s, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

// Overview partitions the lists visible to userID into the three sidebar
// buckets. The buckets are re-derived from scratch on every call, so the
// result is deterministic for an unchanged backing data set. A template the
// caller owns appears only under Templates, even while still flagged shared.
func (s *ListService) Overview(ctx context.Context, userID string) (*model.ListOverview, error) {
	personal, err := s.store.Lists().ListPersonal(ctx, userID)
	if err != nil {
		return nil, err
	}
	shared, err := s.store.Lists().ListShared(ctx)
	if err != nil {
		return nil, err
	}
	templates, err := s.store.Lists().ListTemplates(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Template bucket wins: drop the caller's templates from the shared bucket.
	visibleShared := shared[:0:0]
	for _, l := range shared {
		if l.IsTemplate && l.OwnerID == userID {
			continue
		}
		visibleShared = append(visibleShared, l)
	}

	return &model.ListOverview{
		Personal:  personal,
		Shared:    visibleShared,
		Templates: templates,
	}, nil
}

// Create makes a new list and grants memberships: always the owner, and every
// registered user when the list is shared.
func (s *ListService) Create(ctx context.Context, userID, name string, shared bool) (*model.List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", model.ErrValidation)
	}

	// Duplicate names are rejected per owner, case-insensitively.
	if _, err := s.store.Lists().FindByNameFold(ctx, userID, name); err == nil {
		return nil, fmt.Errorf("%w: you already have a list with this name", model.ErrConflict)
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	l, err := s.store.Lists().Create(ctx, &model.List{OwnerID: userID, Name: name, IsShared: shared})
	if err != nil {
		return nil, err
	}
	log.Info().Str("userID", userID).Str("listID", l.ListID).Bool("shared", shared).Msg("Creating list")

	members := []string{userID}
	if shared {
		all, err := s.store.Users().ListIDs(ctx)
		if err != nil {
			return nil, err
		}
		for _, id := range all {
			if id != userID {
				members = append(members, id)
			}
		}
	}
	if err := s.store.Memberships().Grant(ctx, l.ListID, members); err != nil {
		return nil, err
	}
	return l, nil
}

// Get fetches a single list by ID.
func (s *ListService) Get(ctx context.Context, listID string) (*model.List, error) {
	return s.store.Lists().GetByID(ctx, listID)
}

// Delete removes a list. Only the owner may delete; deletion cascades to
// items and memberships and is unrecoverable.
func (s *ListService) Delete(ctx context.Context, userID, listID string) error {
	l, err := s.store.Lists().GetByID(ctx, listID)
	if err != nil {
		return err
	}
	if l.OwnerID != userID {
		return fmt.Errorf("%w: only the owner can delete this list", model.ErrForbidden)
	}
	log.Info().Str("userID", userID).Str("listID", listID).Msg("Deleting list")
	return s.store.Lists().Delete(ctx, listID)
}

// ToggleFavorite flips the favorite flag and returns the updated list.
func (s *ListService) ToggleFavorite(ctx context.Context, listID string) (*model.List, error) {
	l, err := s.store.Lists().GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Lists().SetFavorite(ctx, listID, !l.IsFavorite); err != nil {
		return nil, err
	}
	l.IsFavorite = !l.IsFavorite
	return l, nil
}

// TogglePublic flips the public flag. When the list becomes public the
// returned share URL points at the read-only /view page; when it becomes
// private the URL is empty.
func (s *ListService) TogglePublic(ctx context.Context, listID string) (*model.List, string, error) {
	l, err := s.store.Lists().GetByID(ctx, listID)
	if err != nil {
		return nil, "", err
	}
	next := !l.IsPublic
	if err := s.store.Lists().SetPublic(ctx, listID, next); err != nil {
		return nil, "", err
	}
	l.IsPublic = next

	shareURL := ""
	if next {
		shareURL = fmt.Sprintf("%s/view/%s", s.publicBaseURL, listID)
	}
	return l, shareURL, nil
}

// ToggleShared flips the shared flag. Turning sharing on grants membership to
// every registered user; there is no curated household group in the data
// model. Turning it off leaves existing membership rows in place, matching
// the flag-only visibility model.
func (s *ListService) ToggleShared(ctx context.Context, listID string) (*model.List, error) {
	l, err := s.store.Lists().GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	next := !l.IsShared
	if err := s.store.Lists().SetShared(ctx, listID, next); err != nil {
		return nil, err
	}
	l.IsShared = next

	if next {
		all, err := s.store.Users().ListIDs(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.store.Memberships().Grant(ctx, listID, all); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// SaveAsTemplate clones a list into a new template named "<name> (T)" owned
// by userID. If the user already has a template with exactly that name the
// call fails with a conflict and performs no write. Item contents are copied;
// checked state and item IDs are not. If the item copy fails after the list
// insert, the fresh template is deleted again so no orphan is left behind.
func (s *ListService) SaveAsTemplate(ctx context.Context, userID, listID string) (*model.List, error) {
	src, err := s.store.Lists().GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}

	name := src.Name + templateSuffix
	existing, err := s.store.Lists().ListTemplates(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, t := range existing {
		if t.Name == name {
			return nil, fmt.Errorf("%w: you already have a template with this name", model.ErrConflict)
		}
	}

	tpl, err := s.store.Lists().Create(ctx, &model.List{OwnerID: userID, Name: name, IsTemplate: true})
	if err != nil {
		return nil, err
	}
	log.Info().Str("userID", userID).Str("listID", listID).Str("templateID", tpl.ListID).Msg("Saving list as template")

	if _, err := s.store.Items().CopyContents(ctx, src.ListID, tpl.ListID); err != nil {
		// Compensating delete so a failed copy does not leave an empty template.
		if delErr := s.store.Lists().Delete(ctx, tpl.ListID); delErr != nil {
			log.Error().Stack().Err(delErr).Str("templateID", tpl.ListID).Msg("rollback of template failed")
		}
		return nil, err
	}
	return tpl, nil
}

// UseTemplate clones a template into a new personal list owned by userID.
// A blank name defaults to "<template name> (copy)". Items are copied by
// content with fresh IDs and checked reset; an empty template yields an empty
// list. The same compensating delete applies on copy failure.
func (s *ListService) UseTemplate(ctx context.Context, userID, templateID, name string) (*model.List, error) {
	tpl, err := s.store.Lists().GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if !tpl.IsTemplate {
		return nil, fmt.Errorf("%w: list is not a template", model.ErrValidation)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = tpl.Name + copySuffix
	}

	l, err := s.store.Lists().Create(ctx, &model.List{OwnerID: userID, Name: name})
	if err != nil {
		return nil, err
	}
	log.Info().Str("userID", userID).Str("templateID", templateID).Str("listID", l.ListID).Msg("Using template")

	if _, err := s.store.Items().CopyContents(ctx, tpl.ListID, l.ListID); err != nil {
		if delErr := s.store.Lists().Delete(ctx, l.ListID); delErr != nil {
			log.Error().Stack().Err(delErr).Str("listID", l.ListID).Msg("rollback of cloned list failed")
		}
		return nil, err
	}
	return l, nil
}

// PublicView serves the unauthenticated read path. A private list and a
// missing one are both reported as not found.
func (s *ListService) PublicView(ctx context.Context, listID string) (*model.PublicList, error) {
	l, err := s.store.Lists().GetPublic(ctx, listID)
	if err != nil {
		return nil, err
	}
	items, err := s.store.Items().ListByList(ctx, l.ListID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*model.Item{}
	}
	return &model.PublicList{ListID: l.ListID, Name: l.Name, Items: items}, nil
}
