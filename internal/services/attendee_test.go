package services

import (
	"context"
	"testing"
	"time"

	"efgportal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) attendeeService() domain.AttendeeService {
	return NewAttendeeService(f.profiles, f.events, f.regs, f.workflow(nil, nil), testTimeout)
}

func TestAttendeeService_IncompleteProfileIsGated(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.attendeeService()
	u, _ := f.addUser(t, "new@example.com", false, false)
	ev := f.addEvent(t, "Summit", true, time.Now().Add(48*time.Hour))

	_, err := svc.ListEventsWithStatus(ctx, u.ID, time.Now())
	assert.ErrorIs(t, err, domain.ErrProfileIncomplete)

	_, _, err = svc.ExpressInterest(ctx, u.ID, ev.ID)
	assert.ErrorIs(t, err, domain.ErrProfileIncomplete)
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)

	_, err = svc.ConfirmAttendance(ctx, u.ID, "any")
	assert.ErrorIs(t, err, domain.ErrProfileIncomplete)

	// Reading one's own registrations is not gated.
	regs, err := svc.ListMyRegistrations(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, regs)
}

func TestAttendeeService_UnknownUser(t *testing.T) {
	svc := newFixture(t).attendeeService()

	_, err := svc.ListMyRegistrations(context.Background(), "missing-user")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, _, err = svc.ExpressInterest(context.Background(), "missing-user", "ev")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAttendeeService_ListEventsWithStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.attendeeService()
	u, _ := f.addUser(t, "a@example.com", true, false)
	now := time.Now()
	later := f.addEvent(t, "Later", true, now.Add(72*time.Hour))
	sooner := f.addEvent(t, "Sooner", true, now.Add(24*time.Hour))

	_, created, err := svc.ExpressInterest(ctx, u.ID, later.ID)
	require.NoError(t, err)
	require.True(t, created)

	items, err := svc.ListEventsWithStatus(ctx, u.ID, now)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, sooner.ID, items[0].Event.ID)
	assert.Nil(t, items[0].Status)
	assert.Equal(t, 1, items[0].Remaining.Days)

	assert.Equal(t, later.ID, items[1].Event.ID)
	require.NotNil(t, items[1].Status)
	assert.Equal(t, domain.StatusInterested, *items[1].Status)
	assert.Equal(t, 3, items[1].Remaining.Days)
}

func TestAttendeeService_ExpressInterestTwiceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.attendeeService()
	u, _ := f.addUser(t, "a@example.com", true, false)
	ev := f.addEvent(t, "Summit", true, time.Now().Add(time.Hour))

	first, created, err := svc.ExpressInterest(ctx, u.ID, ev.ID)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := svc.ExpressInterest(ctx, u.ID, ev.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestAttendeeService_ConfirmAttendance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.attendeeService()
	wf := f.workflow(nil, nil)
	u, p := f.addUser(t, "a@example.com", true, false)
	_, admin := f.addUser(t, "admin@example.com", true, true)
	ev := f.addEvent(t, "Summit", true, time.Now().Add(time.Hour))

	reg, _, err := svc.ExpressInterest(ctx, u.ID, ev.ID)
	require.NoError(t, err)

	_, err = svc.ConfirmAttendance(ctx, u.ID, reg.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "interested registrations cannot be confirmed")

	_, err = wf.Approve(ctx, domain.Caller{ProfileID: admin.ID, IsAdmin: true}, reg.ID, nil)
	require.NoError(t, err)

	other, _ := f.addUser(t, "other@example.com", true, false)
	_, err = svc.ConfirmAttendance(ctx, other.ID, reg.ID)
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	confirmed, err := svc.ConfirmAttendance(ctx, u.ID, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, confirmed.Status)
	assert.Equal(t, p.ID, confirmed.ProfileID)
}

func TestAttendeeService_ListMyRegistrationsJoinsEvents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.attendeeService()
	u, _ := f.addUser(t, "a@example.com", true, false)
	first := f.addEvent(t, "First", true, time.Now().Add(time.Hour))
	second := f.addEvent(t, "Second", true, time.Now().Add(2*time.Hour))

	for _, ev := range []*domain.Event{first, second} {
		_, _, err := svc.ExpressInterest(ctx, u.ID, ev.ID)
		require.NoError(t, err)
	}

	regs, err := svc.ListMyRegistrations(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, regs, 2)
	names := []string{regs[0].Event.Name, regs[1].Event.Name}
	assert.ElementsMatch(t, []string{"First", "Second"}, names)
	for _, r := range regs {
		assert.Equal(t, r.Event.ID, r.Registration.EventID)
	}
}
