package availability

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"slotgrid/models"
)

// fakeRepo is an in-memory AvailabilityRepository for service tests.
type fakeRepo struct {
	byID map[string]models.Availability
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]models.Availability)}
}

func (f *fakeRepo) Insert(_ context.Context, a *models.Availability) error {
	f.byID[a.ID] = *a
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*models.Availability, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	out := a
	return &out, nil
}

func (f *fakeRepo) Update(_ context.Context, a *models.Availability) error {
	if _, ok := f.byID[a.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	f.byID[a.ID] = *a
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := f.byID[id]
	return ok, nil
}

func (f *fakeRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Availability, error) {
	var out []models.Availability
	for _, a := range f.byID {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (f *fakeRepo) FindByOwnerEmail(_ context.Context, email string) ([]models.Availability, error) {
	var out []models.Availability
	for _, a := range f.byID {
		if a.OwnerEmail == email {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindByOwnerName(_ context.Context, name string) ([]models.Availability, error) {
	var out []models.Availability
	for _, a := range f.byID {
		if a.OwnerName == name {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) Replace(_ context.Context, oldID string, a *models.Availability) error {
	if _, ok := f.byID[oldID]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.byID, oldID)
	f.byID[a.ID] = *a
	return nil
}

func newTestService() (*DefaultAvailabilityService, *fakeRepo) {
	repo := newFakeRepo()
	return &DefaultAvailabilityService{Repo: repo}, repo
}

func validCreateReq() models.CreateAvailabilityRequest {
	return models.CreateAvailabilityRequest{
		Title:    "Work hours",
		Slots:    []models.BackendSlot{{DayOfWeek: 1, StartTime: 540, EndTime: 1020}},
		Timezone: "America/New_York",
	}
}

func TestCreate_FirstIsFavorite(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, "owner-1", validCreateReq())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !first.IsFavorite {
		t.Error("first availability should be the favorite")
	}
	if first.DisplayOrder != 0 {
		t.Errorf("first availability order = %d, want 0", first.DisplayOrder)
	}
	if len(first.ID) != 6 {
		t.Errorf("share id %q should be 6 characters", first.ID)
	}
	for _, r := range first.ID {
		if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') {
			t.Errorf("share id %q contains invalid character %q", first.ID, r)
		}
	}

	second, err := svc.Create(ctx, "owner-1", validCreateReq())
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}
	if second.IsFavorite {
		t.Error("second availability should not be the favorite")
	}
	if second.DisplayOrder != 1 {
		t.Errorf("second availability order = %d, want 1", second.DisplayOrder)
	}
	if second.ID == first.ID {
		t.Error("share ids should be unique")
	}
}

func TestCreate_RejectsInvalidPayload(t *testing.T) {
	svc, _ := newTestService()

	req := validCreateReq()
	req.Slots = []models.BackendSlot{
		{DayOfWeek: 1, StartTime: 540, EndTime: 720},
		{DayOfWeek: 1, StartTime: 600, EndTime: 660},
	}
	if _, err := svc.Create(context.Background(), "owner-1", req); err == nil {
		t.Fatal("overlapping slots should fail validation")
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.GetByID(context.Background(), "nope99"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestUpdate_PartialAndOwnership(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, "owner-1", validCreateReq())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	title := "Office hours"
	updated, err := svc.Update(ctx, "owner-1", a.ID, models.UpdateAvailabilityRequest{Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Office hours" {
		t.Errorf("title = %q, want %q", updated.Title, "Office hours")
	}
	if len(updated.Slots) != 1 || updated.Slots[0].StartTime != 540 {
		t.Error("slots should be untouched when not in the request")
	}

	if _, err := svc.Update(ctx, "intruder", a.ID, models.UpdateAvailabilityRequest{Title: &title}); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("got %v, want ErrNotOwner", err)
	}

	empty := []models.BackendSlot{}
	if _, err := svc.Update(ctx, "owner-1", a.ID, models.UpdateAvailabilityRequest{Slots: &empty}); err == nil {
		t.Fatal("emptying the slot list should be rejected")
	}
}

func TestDelete(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, "owner-1", validCreateReq())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, "intruder", a.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("got %v, want ErrNotOwner", err)
	}
	if err := svc.Delete(ctx, "owner-1", a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := repo.byID[a.ID]; ok {
		t.Error("record should be gone after delete")
	}
}

func TestRegenerateID(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, "owner-1", validCreateReq())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	newID, err := svc.RegenerateID(ctx, "owner-1", a.ID)
	if err != nil {
		t.Fatalf("RegenerateID: %v", err)
	}
	if newID == a.ID {
		t.Error("regenerated id should differ from the old one")
	}
	if _, ok := repo.byID[a.ID]; ok {
		t.Error("old share id should no longer resolve")
	}
	got, err := svc.GetByID(ctx, newID)
	if err != nil {
		t.Fatalf("GetByID(new): %v", err)
	}
	if got.Title != a.Title {
		t.Error("record content should survive an id swap")
	}
}

func TestUpdateBusyTimes(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, "owner-1", validCreateReq())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	busy := []models.BusyBlock{{
		Start: time.Date(2026, 1, 5, 13, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 5, 14, 0, 0, 0, time.UTC),
	}}
	if err := svc.UpdateBusyTimes(ctx, "owner-1", a.ID, busy); err != nil {
		t.Fatalf("UpdateBusyTimes: %v", err)
	}
	got, err := svc.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.BusyTimes) != 1 || !got.BusyTimes[0].Start.Equal(busy[0].Start) {
		t.Errorf("busy times not stored: %+v", got.BusyTimes)
	}
}

func TestSetFavorite_Reorders(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		a, err := svc.Create(ctx, "owner-1", validCreateReq())
		if err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
		ids = append(ids, a.ID)
	}

	if err := svc.SetFavorite(ctx, "owner-1", ids[2]); err != nil {
		t.Fatalf("SetFavorite: %v", err)
	}

	all, err := svc.ListByOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d availabilities, want 3", len(all))
	}
	if all[0].ID != ids[2] || !all[0].IsFavorite || all[0].DisplayOrder != 0 {
		t.Errorf("favorite should sort first with order 0, got %+v", all[0])
	}
	for _, a := range all[1:] {
		if a.IsFavorite {
			t.Errorf("%s should not be favorite", a.ID)
		}
	}
	if all[1].DisplayOrder != 1 || all[2].DisplayOrder != 2 {
		t.Errorf("remaining orders = %d, %d, want 1, 2", all[1].DisplayOrder, all[2].DisplayOrder)
	}
}

func TestSearch(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	req := validCreateReq()
	req.OwnerEmail = "ada@example.com"
	req.OwnerName = "ada"
	if _, err := svc.Create(ctx, "owner-1", req); err != nil {
		t.Fatalf("Create: %v", err)
	}

	byEmail, err := svc.SearchByEmail(ctx, "ada@example.com")
	if err != nil || len(byEmail) != 1 {
		t.Fatalf("SearchByEmail: %v, %d results", err, len(byEmail))
	}
	byName, err := svc.SearchByUsername(ctx, "ada")
	if err != nil || len(byName) != 1 {
		t.Fatalf("SearchByUsername: %v, %d results", err, len(byName))
	}
	none, err := svc.SearchByEmail(ctx, "nobody@example.com")
	if err != nil || len(none) != 0 {
		t.Fatalf("SearchByEmail(miss): %v, %d results", err, len(none))
	}
}

func TestSearchBatch_GroupPerKeyInRequestOrder(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for _, owner := range []struct{ id, email, name string }{
		{"owner-1", "ada@example.com", "ada"},
		{"owner-2", "bob@example.com", "bob"},
	} {
		req := validCreateReq()
		req.OwnerEmail = owner.email
		req.OwnerName = owner.name
		if _, err := svc.Create(ctx, owner.id, req); err != nil {
			t.Fatalf("Create %s: %v", owner.id, err)
		}
	}

	groups, err := svc.SearchByEmails(ctx, []string{"bob@example.com", "nobody@example.com", "ada@example.com"})
	if err != nil {
		t.Fatalf("SearchByEmails: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want one per requested email", len(groups))
	}
	if len(groups[0]) != 1 || groups[0][0].OwnerEmail != "bob@example.com" {
		t.Errorf("group 0 = %+v, want bob's availability", groups[0])
	}
	if len(groups[1]) != 0 {
		t.Errorf("group 1 should be empty for an unknown email, got %d", len(groups[1]))
	}
	if len(groups[2]) != 1 || groups[2][0].OwnerEmail != "ada@example.com" {
		t.Errorf("group 2 = %+v, want ada's availability", groups[2])
	}

	nameGroups, err := svc.SearchByUsernames(ctx, []string{"ada", "ghost"})
	if err != nil {
		t.Fatalf("SearchByUsernames: %v", err)
	}
	if len(nameGroups) != 2 || len(nameGroups[0]) != 1 || len(nameGroups[1]) != 0 {
		t.Errorf("username groups = %v, want [1 hit, empty]", nameGroups)
	}
}
