package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"questionbank/internal/database/dbtest"
	"questionbank/internal/domain"
	"questionbank/internal/repository"
)

func TestAdminRepository_CaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewAdminRepository(dbtest.New(t))

	_, err := repo.Add(ctx, "  Head.Of.Dept@College.EDU ")
	require.NoError(t, err)

	ok, err := repo.ExistsByEmail(ctx, "head.of.dept@college.edu")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsByEmail(ctx, "HEAD.OF.DEPT@COLLEGE.EDU")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsByEmail(ctx, "x@y.com")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.Add(ctx, "head.of.dept@college.edu")
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	admins, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "head.of.dept@college.edu", admins[0].Email)

	removed, err := repo.Remove(ctx, "Head.Of.Dept@college.edu")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Remove(ctx, "head.of.dept@college.edu")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestAuthUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewAuthUserRepository(dbtest.New(t))

	u := &domain.AuthUser{Email: "Admin@College.edu", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, u))
	assert.Equal(t, "admin@college.edu", u.Email)

	err := repo.Create(ctx, &domain.AuthUser{Email: "ADMIN@college.edu", PasswordHash: "other"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := repo.GetByEmail(ctx, "ADMIN@college.edu")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = repo.GetByEmail(ctx, "nobody@college.edu")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.UpdatePassword(ctx, u.ID, "new-hash"))
	got, err = repo.GetByEmail(ctx, "admin@college.edu")
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)

	assert.ErrorIs(t, repo.UpdatePassword(ctx, 999, "x"), gorm.ErrRecordNotFound)
}

func TestSessionRepository_RevokeAndDeleteStale(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	users := repository.NewAuthUserRepository(db)
	repo := repository.NewSessionRepository(db)

	u := &domain.AuthUser{Email: "admin@college.edu", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, u))

	now := time.Now().UTC()
	newSession := func(createdAt, expiresAt time.Time) *domain.AuthSession {
		s := &domain.AuthSession{
			ID:        uuid.NewString(),
			UserID:    u.ID,
			Email:     u.Email,
			CreatedAt: createdAt,
			ExpiresAt: expiresAt,
		}
		require.NoError(t, repo.Create(ctx, s))
		return s
	}

	live := newSession(now, now.Add(time.Hour))
	expired := newSession(now.Add(-2*time.Hour), now.Add(-time.Hour))
	oldRevoked := newSession(now.Add(-48*time.Hour), now.Add(time.Hour))
	freshRevoked := newSession(now, now.Add(time.Hour))

	require.NoError(t, repo.Revoke(ctx, oldRevoked.ID))
	require.NoError(t, repo.Revoke(ctx, freshRevoked.ID))
	require.NoError(t, repo.Revoke(ctx, freshRevoked.ID))

	got, err := repo.GetByID(ctx, freshRevoked.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRevoked())

	deleted, err := repo.DeleteStale(ctx, now, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	for _, id := range []string{expired.ID, oldRevoked.ID} {
		_, err := repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	}
	for _, id := range []string{live.ID, freshRevoked.ID} {
		_, err := repo.GetByID(ctx, id)
		assert.NoError(t, err)
	}
}

func TestReferenceRepositories(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	f := dbtest.Seed(t, db)

	branches := repository.NewBranchRepository(db)
	got, err := branches.ListByCodes(ctx, []string{"CSE", "CSE-AIML", "NOPE"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, f.CSEAIML.ID, got[0].ID, "ordered by name")

	_, err = branches.GetByCode(ctx, "cse")
	assert.True(t, repository.IsNotFound(err), "code lookup is exact")

	semesters := repository.NewSemesterRepository(db)
	sems, err := semesters.List(ctx)
	require.NoError(t, err)
	require.Len(t, sems, 3)
	assert.Equal(t, 1, sems[0].Number)

	examTypes := repository.NewExamTypeRepository(db)
	et, err := examTypes.GetByCode(ctx, "END_SEM")
	require.NoError(t, err)
	assert.Equal(t, f.EndSem.ID, et.ID)
}
