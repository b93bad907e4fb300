package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"efgportal/internal/domain"
	"efgportal/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

const testTimeout = 5 * time.Second

type fixture struct {
	store    *memory.Store
	users    domain.UserRepository
	profiles domain.ProfileRepository
	events   domain.EventRepository
	regs     domain.EventRegistrationRepository
	lookups  domain.LookupRepository
	industry *domain.Industry
	interest *domain.Interest
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	return &fixture{
		store:    store,
		users:    memory.NewUserRepository(store),
		profiles: memory.NewProfileRepository(store),
		events:   memory.NewEventRepository(store),
		regs:     memory.NewEventRegistrationRepository(store),
		lookups:  memory.NewLookupRepository(store),
		industry: store.SeedIndustry(domain.Industry{Name: "Banking", Slug: "banking"}),
		interest: store.SeedInterest(domain.Interest{Name: "Cloud Security"}),
	}
}

// addUser creates a user+profile, optionally completed and/or admin.
func (f *fixture) addUser(t *testing.T, email string, completed, admin bool) (*domain.User, *domain.Profile) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	u := domain.NewUser(email, "hash", "salt", now, now)
	p := domain.NewProfile("", "User "+email, email, now)
	require.NoError(t, f.users.Create(ctx, u, p))
	if completed {
		p.Title = "CISO"
		p.Company = "Acme"
		p.IndustryID = &f.industry.ID
		p.ProfileCompleted = true
		require.NoError(t, f.profiles.Update(ctx, p))
	}
	if admin {
		require.NoError(t, f.profiles.SetAdmin(ctx, p.ID, true))
		p.IsAdmin = true
	}
	return u, p
}

func (f *fixture) addEvent(t *testing.T, name string, open bool, date time.Time) *domain.Event {
	t.Helper()
	e := domain.NewEvent(name, "", date, "Kuwait City", time.Now())
	e.RegistrationOpen = open
	require.NoError(t, f.events.Create(context.Background(), e))
	return e
}

func (f *fixture) workflow(n domain.RegistrationNotifier, r Recorder) domain.RegistrationWorkflow {
	return NewRegistrationWorkflow(f.events, f.regs, n, r, discardLogger())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingNotifier struct {
	mu      sync.Mutex
	changes []domain.RegistrationStatusChanged
	err     error
}

func (n *recordingNotifier) Notify(_ context.Context, change domain.RegistrationStatusChanged) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, change)
	return n.err
}

type countingRecorder struct {
	mu          sync.Mutex
	created     int
	transitions map[string]int
}

func (r *countingRecorder) RegistrationCreated() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created++
}

func (r *countingRecorder) StatusChanged(from, to domain.RegistrationStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.transitions == nil {
		r.transitions = make(map[string]int)
	}
	r.transitions[string(from)+"->"+string(to)]++
}
