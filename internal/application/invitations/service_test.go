package invitations

import (
	"context"
	"testing"
	"time"

	policies "github.com/euRezerv/api-sub000/internal/application/policies/invitations"
	"github.com/euRezerv/api-sub000/internal/domain"
	"github.com/euRezerv/api-sub000/internal/infrastructure/database"
	"github.com/euRezerv/api-sub000/internal/infrastructure/repository"
	"github.com/euRezerv/api-sub000/internal/pkg/constants"
	"github.com/euRezerv/api-sub000/internal/pkg/pagination"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	svc     *Service
	store   domain.Store
	company *domain.Company
	owner   *domain.User
	manager *domain.User
	invitee *domain.User
	now     time.Time
}

func newUser(t *testing.T, store domain.Store, email string) *domain.User {
	u := &domain.User{FirstName: "Test", LastName: "User", Email: email, PasswordHash: "x"}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func setup(t *testing.T) *env {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	store := repository.New(db)
	ctx := context.Background()

	e := &env{store: store, now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	e.owner = newUser(t, store, "owner@example.com")
	e.manager = newUser(t, store, "manager@example.com")
	e.invitee = newUser(t, store, "invitee@example.com")

	e.company = &domain.Company{Name: "Acme", Country: "RO", City: "Cluj", Street: "Main 1", PostalCode: "400000", CreatedByID: e.owner.ID}
	require.NoError(t, store.Companies().Create(ctx, e.company))
	require.NoError(t, store.Employees().Create(ctx, &domain.CompanyEmployee{CompanyID: e.company.ID, EmployeeID: e.owner.ID, Role: constants.Owner}))
	require.NoError(t, store.Employees().Create(ctx, &domain.CompanyEmployee{CompanyID: e.company.ID, EmployeeID: e.manager.ID, Role: constants.Manager}))

	e.svc = NewService(store)
	e.svc.Now = func() time.Time { return e.now }
	return e
}

func (e *env) invite(t *testing.T) *Created {
	created, err := e.svc.Create(context.Background(), CreateInput{
		CompanyID: e.company.ID, ActorUserID: e.owner.ID, InvitedUserID: e.invitee.ID, Role: constants.Regular,
	})
	require.NoError(t, err)
	return created
}

func TestCreate_SetsPendingAndTTL(t *testing.T) {
	e := setup(t)
	created := e.invite(t)

	assert.Equal(t, constants.InvitationPending, created.Status)
	assert.Equal(t, e.now.Add(7*24*time.Hour), created.ExpiresAt)
	assert.Equal(t, int64(604800000), created.ExpiresInMs)
	assert.Equal(t, e.company.ID, created.CompanyID)
}

func TestCreate_Guards(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.svc.Create(ctx, CreateInput{CompanyID: e.company.ID, ActorUserID: e.manager.ID, InvitedUserID: e.invitee.ID, Role: constants.Regular})
	assert.ErrorIs(t, err, ErrCannotInvite)

	_, err = e.svc.Create(ctx, CreateInput{CompanyID: e.company.ID, ActorUserID: e.invitee.ID, InvitedUserID: e.owner.ID, Role: constants.Regular})
	assert.ErrorIs(t, err, ErrNotAnEmployee)

	_, err = e.svc.Create(ctx, CreateInput{CompanyID: uuid.New(), ActorUserID: e.owner.ID, InvitedUserID: e.invitee.ID, Role: constants.Regular})
	assert.ErrorIs(t, err, ErrCompanyNotFound)

	_, err = e.svc.Create(ctx, CreateInput{CompanyID: e.company.ID, ActorUserID: e.owner.ID, InvitedUserID: e.invitee.ID, Role: constants.Role("ADMIN")})
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = e.svc.Create(ctx, CreateInput{CompanyID: e.company.ID, ActorUserID: e.owner.ID, InvitedUserID: e.manager.ID, Role: constants.Regular})
	assert.ErrorIs(t, err, policies.ErrAlreadyEmployee)
}

func TestCreate_DuplicatePendingThenAllowedAfterTerminal(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	first := e.invite(t)

	_, err := e.svc.Create(ctx, CreateInput{CompanyID: e.company.ID, ActorUserID: e.owner.ID, InvitedUserID: e.invitee.ID, Role: constants.Manager})
	assert.ErrorIs(t, err, policies.ErrPendingInvitationExists)

	_, err = e.svc.Decline(ctx, e.company.ID, first.ID, e.invitee.ID)
	require.NoError(t, err)

	second := e.invite(t)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreate_AllowedAfterEachTerminalStatus(t *testing.T) {
	tests := []struct {
		name   string
		settle func(t *testing.T, e *env, id uuid.UUID)
		want   constants.InvitationStatus
	}{
		{"declined", func(t *testing.T, e *env, id uuid.UUID) {
			_, err := e.svc.Decline(context.Background(), e.company.ID, id, e.invitee.ID)
			require.NoError(t, err)
		}, constants.InvitationDeclined},
		{"cancelled", func(t *testing.T, e *env, id uuid.UUID) {
			_, err := e.svc.Cancel(context.Background(), e.company.ID, id, e.owner.ID)
			require.NoError(t, err)
		}, constants.InvitationCancelled},
		{"stored expired", func(t *testing.T, e *env, id uuid.UUID) {
			require.NoError(t, e.store.Invitations().UpdateStatus(context.Background(), id, constants.InvitationExpired))
		}, constants.InvitationExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := setup(t)
			first := e.invite(t)
			tt.settle(t, e, first.ID)

			second := e.invite(t)
			assert.NotEqual(t, first.ID, second.ID)
			assert.Equal(t, constants.InvitationPending, second.Status)

			old, err := e.store.Invitations().FindByID(context.Background(), first.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, old.Status)
		})
	}
}

func TestCreate_ExpiredPendingIsRewritten(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	first := e.invite(t)

	e.now = e.now.Add(8 * 24 * time.Hour)
	second := e.invite(t)

	old, err := e.store.Invitations().FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.InvitationExpired, old.Status)
	assert.Equal(t, constants.InvitationPending, second.Status)
}

func TestAccept_CreatesEmployeeAndIsIdempotent(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	created := e.invite(t)

	res, err := e.svc.Accept(ctx, e.company.ID, created.ID, e.invitee.ID)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, MsgAccepted, res.Message)
	assert.Equal(t, constants.InvitationAccepted, res.Invitation.Status)
	require.NotNil(t, res.Employee)
	assert.Equal(t, constants.Regular, res.Employee.Role)

	member, err := e.store.Employees().FindByCompanyAndUser(ctx, e.company.ID, e.invitee.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Employee.ID, member.ID)

	again, err := e.svc.Accept(ctx, e.company.ID, created.ID, e.invitee.ID)
	require.NoError(t, err)
	assert.False(t, again.Changed)
	assert.Equal(t, MsgAlreadyAccepted, again.Message)
	assert.Nil(t, again.Employee)

	_, err = e.svc.Decline(ctx, e.company.ID, created.ID, e.invitee.ID)
	assert.ErrorIs(t, err, ErrAlreadyAccepted)
	_, err = e.svc.Cancel(ctx, e.company.ID, created.ID, e.owner.ID)
	assert.ErrorIs(t, err, ErrAlreadyAccepted)
}

func TestAccept_Failures(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	created := e.invite(t)

	_, err := e.svc.Accept(ctx, e.company.ID, created.ID, e.manager.ID)
	assert.ErrorIs(t, err, ErrNotRecipient)

	_, err = e.svc.Accept(ctx, e.company.ID, uuid.New(), e.invitee.ID)
	assert.ErrorIs(t, err, ErrInvitationNotFound)

	other := &domain.Company{Name: "Other", Country: "RO", City: "Iasi", Street: "S 2", PostalCode: "700000", CreatedByID: e.owner.ID}
	require.NoError(t, e.store.Companies().Create(ctx, other))
	_, err = e.svc.Accept(ctx, other.ID, created.ID, e.invitee.ID)
	assert.ErrorIs(t, err, ErrInvitationNotFound)

	e.now = created.ExpiresAt.Add(time.Second)
	_, err = e.svc.Accept(ctx, e.company.ID, created.ID, e.invitee.ID)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestAccept_AlreadyEmployee(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	created := e.invite(t)
	require.NoError(t, e.store.Employees().Create(ctx, &domain.CompanyEmployee{CompanyID: e.company.ID, EmployeeID: e.invitee.ID, Role: constants.Regular}))

	_, err := e.svc.Accept(ctx, e.company.ID, created.ID, e.invitee.ID)
	assert.ErrorIs(t, err, policies.ErrAlreadyEmployee)

	stored, err := e.store.Invitations().FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.InvitationPending, stored.Status)
}

func TestDecline(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	created := e.invite(t)

	res, err := e.svc.Decline(ctx, e.company.ID, created.ID, e.invitee.ID)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, constants.InvitationDeclined, res.Invitation.Status)

	_, err = e.svc.Decline(ctx, e.company.ID, created.ID, e.invitee.ID)
	assert.ErrorIs(t, err, ErrAlreadyRejected)
	_, err = e.svc.Accept(ctx, e.company.ID, created.ID, e.invitee.ID)
	assert.ErrorIs(t, err, ErrAlreadyRejected)

	// cancel answers with the stored state and writes nothing
	cancelled, err := e.svc.Cancel(ctx, e.company.ID, created.ID, e.owner.ID)
	require.NoError(t, err)
	assert.False(t, cancelled.Changed)
	assert.Equal(t, MsgAlreadyRejected, cancelled.Message)
	assert.Equal(t, constants.InvitationDeclined, cancelled.Invitation.Status)
}

func TestCancel(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	created := e.invite(t)

	_, err := e.svc.Cancel(ctx, e.company.ID, created.ID, e.manager.ID)
	assert.ErrorIs(t, err, ErrCannotCancel)
	_, err = e.svc.Cancel(ctx, e.company.ID, created.ID, e.invitee.ID)
	assert.ErrorIs(t, err, ErrNotAnEmployee)

	res, err := e.svc.Cancel(ctx, e.company.ID, created.ID, e.owner.ID)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, MsgCancelled, res.Message)

	again, err := e.svc.Cancel(ctx, e.company.ID, created.ID, e.owner.ID)
	require.NoError(t, err)
	assert.False(t, again.Changed)
	assert.Equal(t, MsgAlreadyCancelled, again.Message)

	_, err = e.svc.Accept(ctx, e.company.ID, created.ID, e.invitee.ID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancel_TimeExpiredIsUnchanged(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	created := e.invite(t)
	e.now = created.ExpiresAt.Add(time.Minute)

	res, err := e.svc.Cancel(ctx, e.company.ID, created.ID, e.owner.ID)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, MsgExpired, res.Message)

	stored, err := e.store.Invitations().FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.InvitationPending, stored.Status)

	_, err = e.svc.Decline(ctx, e.company.ID, created.ID, e.invitee.ID)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestGetAndList(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	created := e.invite(t)

	got, err := e.svc.Get(ctx, e.company.ID, created.ID, e.invitee.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.InvitationPending, got.EffectiveStatus)

	stranger := newUser(t, e.store, "stranger@example.com")
	_, err = e.svc.Get(ctx, e.company.ID, created.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrNoAccess)

	e.now = created.ExpiresAt.Add(time.Hour)
	got, err = e.svc.Get(ctx, e.company.ID, created.ID, e.manager.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.InvitationExpired, got.EffectiveStatus)
	assert.Equal(t, constants.InvitationPending, got.Status)

	one := 1
	items, meta, err := e.svc.List(ctx, ListInput{CompanyID: e.company.ID, ActorUserID: e.owner.ID, Page: pagination.Calculate(&one, nil)})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), meta.TotalCount)
	assert.Equal(t, int64(1), meta.TotalPages)

	declined := constants.InvitationDeclined
	items, meta, err = e.svc.List(ctx, ListInput{CompanyID: e.company.ID, ActorUserID: e.owner.ID, Status: &declined, Page: pagination.Calculate(nil, nil)})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int64(0), meta.TotalPages)

	_, _, err = e.svc.List(ctx, ListInput{CompanyID: e.company.ID, ActorUserID: stranger.ID, Page: pagination.Calculate(nil, nil)})
	assert.ErrorIs(t, err, ErrNotAnEmployee)
}
