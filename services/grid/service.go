// File: services/grid/service.go
package grid

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/api/googleapi"

	"slotgrid/config"
	"slotgrid/models"
	"slotgrid/services/schedule"
	"slotgrid/services/tasks"
	"slotgrid/utils"
)

// ListEvents returns the events in a window, serving from the snapshot
// cache when the background worker has already filled it.
func (s *DefaultGridService) ListEvents(ctx context.Context, accountID string, window models.EventWindow) ([]models.Event, error) {
	if cached, ok := s.snapshotGet(ctx, accountID, window); ok {
		return cached, nil
	}

	events, err := s.Provider.ListEvents(ctx, accountID, window)
	if err != nil {
		return nil, remoteErr("list", err)
	}
	s.snapshotSet(ctx, accountID, window, events)
	return events, nil
}

// CommitCreate pushes a committed create gesture to the provider.
func (s *DefaultGridService) CommitCreate(ctx context.Context, accountID string, payload schedule.CreatePayload, window models.EventWindow) (*models.Event, error) {
	created, err := s.Provider.CreateEvent(ctx, accountID, models.EventPayload{
		Summary:   payload.Title,
		Start:     payload.Start,
		End:       payload.End,
		Attendees: payload.Attendees,
	})
	if err != nil {
		return nil, remoteErr("create", err)
	}

	s.snapshotInvalidate(ctx, accountID, window)
	s.enqueueRefresh(models.RefreshPayload{
		AccountID:     accountID,
		WindowStart:   window.Start,
		WindowEnd:     window.End,
		ExpectEventID: created.ID,
		ExpectStart:   created.Start,
	})
	return created, nil
}

// CommitUpdate reschedules an existing event. Only the interval changes;
// the summary and attendee list are carried over from the stored event.
func (s *DefaultGridService) CommitUpdate(ctx context.Context, accountID string, payload schedule.UpdatePayload, window models.EventWindow) (*models.Event, error) {
	original, err := s.Provider.GetEvent(ctx, accountID, payload.EventID)
	if err != nil {
		return nil, s.mapProviderErr("fetch", err)
	}

	updated, err := s.Provider.UpdateEvent(ctx, accountID, payload.EventID, models.EventPayload{
		Summary:   original.Summary,
		Start:     payload.Start,
		End:       payload.End,
		Attendees: original.Attendees,
	})
	if err != nil {
		return nil, s.mapProviderErr("update", err)
	}

	s.snapshotInvalidate(ctx, accountID, window)
	s.enqueueRefresh(models.RefreshPayload{
		AccountID:     accountID,
		WindowStart:   window.Start,
		WindowEnd:     window.End,
		ExpectEventID: updated.ID,
		ExpectStart:   updated.Start,
	})
	return updated, nil
}

// DeleteEvent removes an event and polls until the provider stops
// returning it.
func (s *DefaultGridService) DeleteEvent(ctx context.Context, accountID, eventID string, window models.EventWindow) error {
	if err := s.Provider.DeleteEvent(ctx, accountID, eventID); err != nil {
		return s.mapProviderErr("delete", err)
	}

	s.snapshotInvalidate(ctx, accountID, window)
	s.enqueueRefresh(models.RefreshPayload{
		AccountID:     accountID,
		WindowStart:   window.Start,
		WindowEnd:     window.End,
		ExpectEventID: eventID,
		ExpectGone:    true,
	})
	return nil
}

// Respond records the caller's accept or decline on an invitation.
func (s *DefaultGridService) Respond(ctx context.Context, accountID, eventID string, accepted bool, window models.EventWindow) (*models.Event, error) {
	updated, err := s.Provider.RespondToInvitation(ctx, accountID, eventID, accepted)
	if err != nil {
		return nil, s.mapProviderErr("respond", err)
	}

	s.snapshotInvalidate(ctx, accountID, window)
	s.enqueueRefresh(models.RefreshPayload{
		AccountID:   accountID,
		WindowStart: window.Start,
		WindowEnd:   window.End,
	})
	return updated, nil
}

// mapProviderErr turns a provider 404 into ErrEventNotFound and wraps
// everything else as a RemoteError.
func (s *DefaultGridService) mapProviderErr(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == 404 {
		return ErrEventNotFound
	}
	return remoteErr(op, err)
}

func (s *DefaultGridService) enqueueRefresh(payload models.RefreshPayload) {
	if s.Queue == nil {
		return
	}
	delay := tasks.RefreshDelay(0, config.AppConfig.RefreshBaseDelaySec)
	task, opts, err := tasks.NewRefreshTask(payload, delay)
	if err != nil {
		utils.GetLogger().Warn("failed to build refresh task", zap.Error(err))
		return
	}
	if _, err := s.Queue.Enqueue(task, opts...); err != nil {
		utils.GetLogger().Warn("failed to enqueue refresh task",
			zap.String("accountID", payload.AccountID), zap.Error(err))
	}
}

func (s *DefaultGridService) snapshotGet(ctx context.Context, accountID string, window models.EventWindow) ([]models.Event, bool) {
	if s.Cache == nil {
		return nil, false
	}
	raw, err := s.Cache.Get(ctx, utils.EventSnapshotKey(accountID, window.Start, window.End)).Bytes()
	if err != nil {
		return nil, false
	}
	var events []models.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, false
	}
	return events, true
}

func (s *DefaultGridService) snapshotSet(ctx context.Context, accountID string, window models.EventWindow, events []models.Event) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(events)
	if err != nil {
		return
	}
	s.Cache.Set(ctx, utils.EventSnapshotKey(accountID, window.Start, window.End), raw, utils.EventSnapshotTTL)
}

func (s *DefaultGridService) snapshotInvalidate(ctx context.Context, accountID string, window models.EventWindow) {
	if s.Cache == nil {
		return
	}
	s.Cache.Del(ctx, utils.EventSnapshotKey(accountID, window.Start, window.End))
}
