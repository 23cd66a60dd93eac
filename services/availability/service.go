package availability

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"slotgrid/models"
	"slotgrid/utils"
)

const shareIDCharset = "abcdefghijklmnopqrstuvwxyz0123456789"
const shareIDLength = 6
const shareIDAttempts = 5

// Create stores a new availability. The owner's first availability becomes
// the favorite; later ones append to the display order.
func (s *DefaultAvailabilityService) Create(ctx context.Context, ownerID string, req models.CreateAvailabilityRequest) (*models.Availability, error) {
	if err := validateAvailability(req.Title, req.Description, req.Slots); err != nil {
		return nil, err
	}

	existing, err := s.Repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list existing availabilities: %w", err)
	}

	id, err := s.newShareID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a := &models.Availability{
		ID:           id,
		OwnerID:      ownerID,
		OwnerEmail:   req.OwnerEmail,
		OwnerName:    req.OwnerName,
		Title:        req.Title,
		Description:  req.Description,
		Slots:        req.Slots,
		Timezone:     req.Timezone,
		CreatedAt:    now,
		UpdatedAt:    now,
		BusyTimes:    req.BusyTimes,
		IsFavorite:   len(existing) == 0,
		DisplayOrder: len(existing),
	}
	if err := s.Repo.Insert(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to store availability: %w", err)
	}
	return a, nil
}

// GetByID fetches an availability, serving repeated lookups from cache.
func (s *DefaultAvailabilityService) GetByID(ctx context.Context, id string) (*models.Availability, error) {
	if cached := s.cacheGet(ctx, id); cached != nil {
		return cached, nil
	}

	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.cacheSet(ctx, a)
	return a, nil
}

// Update applies a partial update after re-validating whichever fields are
// being replaced.
func (s *DefaultAvailabilityService) Update(ctx context.Context, ownerID, id string, req models.UpdateAvailabilityRequest) (*models.Availability, error) {
	a, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if len(*req.Title) == 0 || len(*req.Title) > 100 {
			return nil, fmt.Errorf("title must be 1-100 characters")
		}
		a.Title = *req.Title
	}
	if req.Description != nil {
		if len(*req.Description) > 500 {
			return nil, fmt.Errorf("description must be 0-500 characters")
		}
		a.Description = *req.Description
	}
	if req.Slots != nil {
		slots := *req.Slots
		if len(slots) == 0 {
			return nil, fmt.Errorf("at least 1 slot is required")
		}
		for _, slot := range slots {
			if err := validateSlot(slot); err != nil {
				return nil, err
			}
		}
		if err := checkSlotOverlaps(slots); err != nil {
			return nil, err
		}
		a.Slots = slots
	}
	if req.Timezone != nil {
		a.Timezone = *req.Timezone
	}
	a.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to update availability: %w", err)
	}
	s.cacheInvalidate(ctx, id)
	return a, nil
}

// Delete removes an availability after an ownership check.
func (s *DefaultAvailabilityService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.getOwned(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}
	s.cacheInvalidate(ctx, id)
	return nil
}

// ListByOwner returns all of the owner's availabilities in display order.
func (s *DefaultAvailabilityService) ListByOwner(ctx context.Context, ownerID string) ([]models.Availability, error) {
	return s.Repo.ListByOwner(ctx, ownerID)
}

// RegenerateID swaps the share id so a previously shared link stops
// resolving.
func (s *DefaultAvailabilityService) RegenerateID(ctx context.Context, ownerID, oldID string) (string, error) {
	a, err := s.getOwned(ctx, ownerID, oldID)
	if err != nil {
		return "", err
	}

	newID, err := s.newShareID(ctx)
	if err != nil {
		return "", err
	}
	a.ID = newID
	a.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Replace(ctx, oldID, a); err != nil {
		return "", fmt.Errorf("failed to regenerate availability id: %w", err)
	}
	s.cacheInvalidate(ctx, oldID)

	utils.GetLogger().Info("regenerated availability id",
		zap.String("oldID", oldID), zap.String("newID", newID))
	return newID, nil
}

// UpdateBusyTimes replaces the stored busy blocks used by the mutual
// availability view.
func (s *DefaultAvailabilityService) UpdateBusyTimes(ctx context.Context, ownerID, id string, busy []models.BusyBlock) error {
	a, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}
	a.BusyTimes = busy
	a.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, a); err != nil {
		return fmt.Errorf("failed to update busy times: %w", err)
	}
	s.cacheInvalidate(ctx, id)
	return nil
}

// SetFavorite marks one availability as the favorite and reorders the rest.
// Only one availability per owner is favorite at a time.
func (s *DefaultAvailabilityService) SetFavorite(ctx context.Context, ownerID, id string) error {
	target, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}

	all, err := s.Repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to list availabilities: %w", err)
	}

	now := time.Now().UTC()
	target.IsFavorite = true
	target.DisplayOrder = 0
	target.UpdatedAt = now
	if err := s.Repo.Update(ctx, target); err != nil {
		return fmt.Errorf("failed to set favorite: %w", err)
	}
	s.cacheInvalidate(ctx, target.ID)

	order := 1
	for i := range all {
		a := &all[i]
		if a.ID == id {
			continue
		}
		a.IsFavorite = false
		a.DisplayOrder = order
		a.UpdatedAt = now
		order++
		if err := s.Repo.Update(ctx, a); err != nil {
			return fmt.Errorf("failed to reorder availability %s: %w", a.ID, err)
		}
		s.cacheInvalidate(ctx, a.ID)
	}
	return nil
}

// SearchByEmail returns the availabilities shared under an owner email.
func (s *DefaultAvailabilityService) SearchByEmail(ctx context.Context, email string) ([]models.Availability, error) {
	return s.Repo.FindByOwnerEmail(ctx, email)
}

// SearchByUsername returns the availabilities shared under an owner name.
func (s *DefaultAvailabilityService) SearchByUsername(ctx context.Context, username string) ([]models.Availability, error) {
	return s.Repo.FindByOwnerName(ctx, username)
}

// SearchByEmails resolves several emails at once. The result holds one
// group per requested email, in request order, empty when nothing matches.
func (s *DefaultAvailabilityService) SearchByEmails(ctx context.Context, emails []string) ([][]models.Availability, error) {
	groups := make([][]models.Availability, 0, len(emails))
	for _, email := range emails {
		list, err := s.Repo.FindByOwnerEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		groups = append(groups, list)
	}
	return groups, nil
}

// SearchByUsernames is the batch form of SearchByUsername, one group per
// requested name in request order.
func (s *DefaultAvailabilityService) SearchByUsernames(ctx context.Context, usernames []string) ([][]models.Availability, error) {
	groups := make([][]models.Availability, 0, len(usernames))
	for _, username := range usernames {
		list, err := s.Repo.FindByOwnerName(ctx, username)
		if err != nil {
			return nil, err
		}
		groups = append(groups, list)
	}
	return groups, nil
}

// getOwned fetches a record and verifies the caller owns it.
func (s *DefaultAvailabilityService) getOwned(ctx context.Context, ownerID, id string) (*models.Availability, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if a.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return a, nil
}

// newShareID generates a short lowercase-alphanumeric id, retrying on the
// rare collision.
func (s *DefaultAvailabilityService) newShareID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < shareIDAttempts; attempt++ {
		buf := make([]byte, shareIDLength)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to generate share id: %w", err)
		}
		for i := range buf {
			buf[i] = shareIDCharset[int(buf[i])%len(shareIDCharset)]
		}
		id := string(buf)

		exists, err := s.Repo.Exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique share id")
}

func (s *DefaultAvailabilityService) cacheGet(ctx context.Context, id string) *models.Availability {
	if s.Cache == nil {
		return nil
	}
	raw, err := s.Cache.Get(ctx, utils.AvailabilityCachePrefix+id).Bytes()
	if err != nil {
		return nil
	}
	var a models.Availability
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil
	}
	return &a
}

func (s *DefaultAvailabilityService) cacheSet(ctx context.Context, a *models.Availability) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return
	}
	s.Cache.Set(ctx, utils.AvailabilityCachePrefix+a.ID, raw, utils.AvailabilityCacheTTL)
}

func (s *DefaultAvailabilityService) cacheInvalidate(ctx context.Context, id string) {
	if s.Cache == nil {
		return
	}
	s.Cache.Del(ctx, utils.AvailabilityCachePrefix+id)
}
