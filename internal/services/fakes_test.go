package services_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"voyage/internal/models/db_models"
	"voyage/internal/repositories"
	"voyage/pkg/utils"
)

func cloneTrip(t *db_models.Trip) *db_models.Trip {
	cp := *t
	cp.TripDetails = append(datatypes.JSON(nil), t.TripDetails...)
	if t.Plan != nil {
		plan := *t.Plan
		cp.Plan = &plan
	}
	return &cp
}

type fakeTripRepo struct {
	mu    sync.Mutex
	trips map[uuid.UUID]*db_models.Trip
	clock int64

	// beforeSave runs inside Save before the version check, to simulate a concurrent writer.
	beforeSave func()
	saveErr    error
	saves      int
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{trips: map[uuid.UUID]*db_models.Trip{}}
}

func (r *fakeTripRepo) Create(_ context.Context, trip *db_models.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	if trip.Version == 0 {
		trip.Version = 1
	}
	r.clock++
	trip.CreatedAt = r.clock
	trip.UpdatedAt = r.clock
	r.trips[trip.ID] = cloneTrip(trip)
	return nil
}

func (r *fakeTripRepo) FindByIDForUser(_ context.Context, id, userID uuid.UUID) (*db_models.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trips[id]
	if !ok || t.UserID != userID {
		return nil, nil
	}
	return cloneTrip(t), nil
}

func (r *fakeTripRepo) ListByUser(_ context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Trip, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []db_models.Trip
	for _, t := range r.trips {
		if t.UserID == userID {
			all = append(all, *cloneTrip(t))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt > all[j].CreatedAt })
	total := int64(len(all))
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, total, nil
	}
	end := min(start+pageSize, len(all))
	return all[start:end], total, nil
}

func (r *fakeTripRepo) Save(_ context.Context, trip *db_models.Trip, expectedVersion int) error {
	if r.beforeSave != nil {
		hook := r.beforeSave
		r.beforeSave = nil
		hook()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	stored, ok := r.trips[trip.ID]
	if !ok || stored.UserID != trip.UserID {
		return repositories.ErrStaleTrip
	}
	if expectedVersion > 0 && stored.Version != expectedVersion {
		return repositories.ErrStaleTrip
	}
	r.clock++
	trip.Version = stored.Version + 1
	trip.UpdatedAt = r.clock
	trip.CreatedAt = stored.CreatedAt
	r.trips[trip.ID] = cloneTrip(trip)
	r.saves++
	return nil
}

func (r *fakeTripRepo) Delete(_ context.Context, id, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trips[id]
	if !ok || t.UserID != userID {
		return false, nil
	}
	delete(r.trips, id)
	return true, nil
}

// bump simulates another request writing the trip.
func (r *fakeTripRepo) bump(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trips[id].Version++
}

func (r *fakeTripRepo) stored(id uuid.UUID) *db_models.Trip {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneTrip(r.trips[id])
}

type fakeActivityRepo struct {
	mu         sync.Mutex
	rows       map[uuid.UUID][]db_models.Activity
	replaceErr error
	replaces   int
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{rows: map[uuid.UUID][]db_models.Activity{}}
}

func (r *fakeActivityRepo) ReplaceForTrip(_ context.Context, tripID uuid.UUID, rows []db_models.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.replaceErr != nil {
		return r.replaceErr
	}
	out := make([]db_models.Activity, 0, len(rows))
	for _, row := range rows {
		row.ID = uuid.New()
		row.TripID = tripID
		out = append(out, row)
	}
	r.rows[tripID] = out
	r.replaces++
	return nil
}

func (r *fakeActivityRepo) Create(_ context.Context, a *db_models.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = uuid.New()
	r.rows[a.TripID] = append(r.rows[a.TripID], *a)
	return nil
}

func (r *fakeActivityRepo) ListByTrip(_ context.Context, tripID uuid.UUID) ([]db_models.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]db_models.Activity(nil), r.rows[tripID]...), nil
}

func (r *fakeActivityRepo) Delete(_ context.Context, id, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for tripID, rows := range r.rows {
		for i, row := range rows {
			if row.ID == id && row.UserID == userID {
				r.rows[tripID] = append(rows[:i:i], rows[i+1:]...)
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *fakeActivityRepo) forTrip(tripID uuid.UUID) []db_models.Activity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]db_models.Activity(nil), r.rows[tripID]...)
}

type fakeSavedPlaceRepo struct {
	mu     sync.Mutex
	places []db_models.SavedPlace
}

func (r *fakeSavedPlaceRepo) Create(_ context.Context, p *db_models.SavedPlace) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.places {
		if existing.UserID == p.UserID && existing.PlaceName == p.PlaceName {
			return gorm.ErrDuplicatedKey
		}
	}
	p.ID = uuid.New()
	r.places = append(r.places, *p)
	return nil
}

func (r *fakeSavedPlaceRepo) FindByName(_ context.Context, userID uuid.UUID, name string) (*db_models.SavedPlace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.places {
		if p.UserID == userID && p.PlaceName == name {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSavedPlaceRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]db_models.SavedPlace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db_models.SavedPlace
	for _, p := range r.places {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeSavedPlaceRepo) Delete(_ context.Context, id, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.places {
		if p.ID == id && p.UserID == userID {
			r.places = append(r.places[:i], r.places[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeUserRepo struct {
	users map[string]*db_models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*db_models.User{}}
}

func (r *fakeUserRepo) Insert(_ context.Context, u *db_models.User) error {
	if _, ok := r.users[u.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	u.ID = uuid.New()
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) FindById(_ context.Context, id uuid.UUID) (*db_models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*db_models.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

type fakeProvider struct {
	content string
	err     error
	calls   int
	delay   time.Duration
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Suggest(ctx context.Context, _ utils.SuggestionRequest) (string, error) {
	p.calls++
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return p.content, p.err
}

var errUpstream = errors.New("upstream exploded")
