package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"questionbank/internal/database/dbtest"
	"questionbank/internal/domain"
	"questionbank/internal/modules/auth"
	"questionbank/internal/repository"
)

type mockAuthenticator struct {
	mock.Mock
}

func (m *mockAuthenticator) SignIn(ctx context.Context, email, password string) (*auth.Session, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*auth.Session), args.String(1), args.Error(2)
}

func (m *mockAuthenticator) SignOut(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type mockAdminRepo struct {
	mock.Mock
}

func (m *mockAdminRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

var fixedNow = func() time.Time { return time.Date(2025, 9, 15, 10, 0, 0, 0, time.UTC) }

func newDBService(t *testing.T, authn Authenticator, admins AdminRepository) (*Service, *gorm.DB, dbtest.Fixtures) {
	t.Helper()
	db := dbtest.New(t)
	f := dbtest.Seed(t, db)
	svc := NewService(
		authn,
		admins,
		repository.NewPaperRepository(db),
		repository.NewBranchRepository(db),
		repository.NewSemesterRepository(db),
		repository.NewExamTypeRepository(db),
		Options{DefaultExamTypeCode: "END_SEM", Now: fixedNow},
	)
	return svc, db, f
}

func TestAuthenticate(t *testing.T) {
	sess := &auth.Session{ID: "s-1", UserID: 1, Email: "admin@college.edu"}
	other := &auth.Session{ID: "s-2", UserID: 2, Email: "x@y.com"}

	t.Run("admin", func(t *testing.T) {
		authn, admins := new(mockAuthenticator), new(mockAdminRepo)
		authn.On("SignIn", mock.Anything, "admin@college.edu", "pw").Return(sess, "tok", nil)
		admins.On("ExistsByEmail", mock.Anything, "admin@college.edu").Return(true, nil)

		res, err := NewService(authn, admins, nil, nil, nil, nil, Options{}).
			Authenticate(context.Background(), " admin@college.edu ", "pw")
		require.NoError(t, err)
		assert.True(t, res.Authenticated)
		assert.Equal(t, "tok", res.Token)
		authn.AssertNotCalled(t, "SignOut", mock.Anything, mock.Anything)
	})

	t.Run("not on allow-list", func(t *testing.T) {
		authn, admins := new(mockAuthenticator), new(mockAdminRepo)
		authn.On("SignIn", mock.Anything, "x@y.com", "pw").Return(other, "tok", nil)
		authn.On("SignOut", mock.Anything, "s-2").Return(nil)
		admins.On("ExistsByEmail", mock.Anything, "x@y.com").Return(false, nil)

		res, err := NewService(authn, admins, nil, nil, nil, nil, Options{}).
			Authenticate(context.Background(), "x@y.com", "pw")
		assert.ErrorIs(t, err, ErrNotAdmin)
		assert.Nil(t, res)
		authn.AssertCalled(t, "SignOut", mock.Anything, "s-2")
	})

	t.Run("allow-list lookup fails", func(t *testing.T) {
		authn, admins := new(mockAuthenticator), new(mockAdminRepo)
		authn.On("SignIn", mock.Anything, "admin@college.edu", "pw").Return(sess, "tok", nil)
		authn.On("SignOut", mock.Anything, "s-1").Return(nil)
		admins.On("ExistsByEmail", mock.Anything, "admin@college.edu").Return(false, errors.New("timeout"))

		_, err := NewService(authn, admins, nil, nil, nil, nil, Options{}).
			Authenticate(context.Background(), "admin@college.edu", "pw")
		assert.ErrorIs(t, err, ErrAdminCheckFailed)
		authn.AssertCalled(t, "SignOut", mock.Anything, "s-1")
	})

	t.Run("bad credential", func(t *testing.T) {
		authn, admins := new(mockAuthenticator), new(mockAdminRepo)
		authn.On("SignIn", mock.Anything, "admin@college.edu", "nope").Return(nil, "", auth.ErrInvalidCredentials)

		_, err := NewService(authn, admins, nil, nil, nil, nil, Options{}).
			Authenticate(context.Background(), "admin@college.edu", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		admins.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
	})

	t.Run("malformed email", func(t *testing.T) {
		authn := new(mockAuthenticator)
		_, err := NewService(authn, new(mockAdminRepo), nil, nil, nil, nil, Options{}).
			Authenticate(context.Background(), "admin", "pw")
		assert.ErrorIs(t, err, ErrInvalidEmail)
		authn.AssertNotCalled(t, "SignIn", mock.Anything, mock.Anything, mock.Anything)
	})
}

func validRequest(f dbtest.Fixtures) *PaperRequest {
	return &PaperRequest{
		BranchID:    f.ECE.ID,
		SemesterID:  f.Sem3.ID,
		SubjectName: "Signals and Systems",
		Year:        2024,
		FileURL:     "https://drive.google.com/file/d/abc/view",
	}
}

func TestCreatePaper(t *testing.T) {
	svc, _, f := newDBService(t, nil, nil)
	ctx := context.Background()

	p, err := svc.CreatePaper(ctx, validRequest(f))
	require.NoError(t, err)
	assert.Equal(t, f.EndSem.ID, p.ExamTypeID)
	assert.Zero(t, p.Downloads)
	assert.Zero(t, p.Views)
	assert.Equal(t, "Signals and Systems", p.Subject())
	require.NotNil(t, p.Branch)
	assert.Equal(t, "ECE", p.Branch.Code)
	assert.True(t, p.CreatedAt.Equal(fixedNow()))

	req := validRequest(f)
	req.ExamTypeID = &f.Lab.ID
	p, err = svc.CreatePaper(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, f.Lab.ID, p.ExamTypeID)
}

func TestCreatePaper_Validation(t *testing.T) {
	svc, _, f := newDBService(t, nil, nil)
	ctx := context.Background()

	req := validRequest(f)
	req.FileURL = "drive/file/abc"
	_, err := svc.CreatePaper(ctx, req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Please enter a valid URL", verr.Message())

	req = validRequest(f)
	req.SubjectName = ""
	req.FileURL = ""
	_, err = svc.CreatePaper(ctx, req)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Please fill in all required fields including the PDF URL", verr.Message())
	assert.Contains(t, verr.Fields, "SubjectName")
	assert.Contains(t, verr.Fields, "FileURL")

	req = validRequest(f)
	req.SubjectName = "   "
	_, err = svc.CreatePaper(ctx, req)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Please fill in all required fields including the PDF URL", verr.Message())
	assert.Equal(t, map[string]string{"SubjectName": "required"}, verr.Fields)

	req = validRequest(f)
	req.FileURL = " \t "
	_, err = svc.CreatePaper(ctx, req)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "FileURL")

	req = validRequest(f)
	req.SubjectName = "  Operating Systems  "
	p, err := svc.CreatePaper(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Operating Systems", p.Subject())

	req = validRequest(f)
	req.BranchID = 999
	_, err = svc.CreatePaper(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidReference)

	req = validRequest(f)
	missing := int64(999)
	req.ExamTypeID = &missing
	_, err = svc.CreatePaper(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestCreatePaper_DefaultExamTypeMissing(t *testing.T) {
	db := dbtest.New(t)
	f := dbtest.Seed(t, db)
	svc := NewService(nil, nil,
		repository.NewPaperRepository(db),
		repository.NewBranchRepository(db),
		repository.NewSemesterRepository(db),
		repository.NewExamTypeRepository(db),
		Options{DefaultExamTypeCode: "FINAL"},
	)

	_, err := svc.CreatePaper(context.Background(), validRequest(f))
	assert.ErrorIs(t, err, ErrDefaultExamTypeMissing)

	papers, err := repository.NewPaperRepository(db).ListActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, papers)
}

func TestEditPaper(t *testing.T) {
	svc, db, f := newDBService(t, nil, nil)
	ctx := context.Background()

	orig := dbtest.Paper(t, db, domain.Paper{
		BranchID: f.ECE.ID, SemesterID: f.Sem1.ID, ExamTypeID: f.MidSem.ID,
		SubjectName: dbtest.Ptr("Maths"), Year: 2022, FileURL: "https://drive.google.com/file/d/old/view",
		Downloads: 7,
	})

	req := validRequest(f)
	req.BranchID = f.Mech.ID
	updated, err := svc.EditPaper(ctx, orig.ID, req)
	require.NoError(t, err)
	assert.Equal(t, f.Mech.ID, updated.BranchID)
	assert.Equal(t, f.Sem3.ID, updated.SemesterID)
	assert.Equal(t, 2024, updated.Year)
	assert.Equal(t, f.MidSem.ID, updated.ExamTypeID)
	assert.Equal(t, int64(7), updated.Downloads)

	req = validRequest(f)
	req.SubjectName = "\n "
	_, err = svc.EditPaper(ctx, orig.ID, req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "SubjectName")

	_, err = svc.EditPaper(ctx, 999, validRequest(f))
	assert.ErrorIs(t, err, ErrPaperNotFound)

	_, err = svc.DeletePaper(ctx, orig.ID)
	require.NoError(t, err)
	_, err = svc.EditPaper(ctx, orig.ID, validRequest(f))
	assert.ErrorIs(t, err, ErrPaperNotFound)
}

func TestDeletePaper(t *testing.T) {
	svc, db, f := newDBService(t, nil, nil)
	ctx := context.Background()

	p := dbtest.Paper(t, db, domain.Paper{
		BranchID: f.CSE.ID, SemesterID: f.Sem1.ID, ExamTypeID: f.EndSem.ID,
		Year: 2024, FileURL: "https://drive.google.com/file/d/x/view",
	})

	res, err := svc.DeletePaper(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, res.Changed)

	res, err = svc.DeletePaper(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.True(t, res.Deleted)

	_, err = svc.DeletePaper(ctx, 999)
	assert.ErrorIs(t, err, ErrPaperNotFound)

	listed, err := svc.ListPapers(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestFilterPapers(t *testing.T) {
	ece := &domain.Branch{Name: "Electronics and Communication"}
	mech := &domain.Branch{Name: "Mechanical Engineering"}
	sem3 := &domain.Semester{Number: 3}
	sem5 := &domain.Semester{Number: 5}

	papers := []domain.Paper{
		{ID: 1, Branch: ece, Semester: sem3, SubjectName: dbtest.Ptr("Signals and Systems"), Year: 2024},
		{ID: 2, Branch: mech, Semester: sem5, SubjectName: dbtest.Ptr("Thermodynamics"), Year: 2023},
		{ID: 3, Branch: ece, Semester: sem5, Year: 2023},
	}

	ids := func(ps []domain.Paper) []int64 {
		out := []int64{}
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}

	assert.Equal(t, []int64{1, 2, 3}, ids(FilterPapers(papers, "   ")))
	assert.Equal(t, []int64{1, 3}, ids(FilterPapers(papers, "electronics")))
	assert.Equal(t, []int64{3}, ids(FilterPapers(papers, "ELECTRONICS  2023")))
	assert.Equal(t, []int64{2}, ids(FilterPapers(papers, "thermo mechanical")))
	assert.Equal(t, []int64{1}, ids(FilterPapers(papers, "signals 3")))
	assert.Empty(t, FilterPapers(papers, "signals 2023"))
}

func TestMonthlyHistogram(t *testing.T) {
	at := func(y int, m time.Month, d int) domain.Paper {
		return domain.Paper{CreatedAt: time.Date(y, m, d, 12, 0, 0, 0, time.UTC)}
	}
	papers := []domain.Paper{
		at(2025, time.September, 1),
		at(2025, time.March, 3),
		at(2025, time.March, 28),
		at(2024, time.October, 5),
		at(2024, time.September, 30),
		at(2023, time.March, 10),
	}

	h := MonthlyHistogram(papers, fixedNow())
	require.Len(t, h, 12)
	assert.Equal(t, MonthlyActivity{Key: "2024-10", Month: "Oct", Year: 2024, Uploads: 1}, h[0])
	assert.Equal(t, MonthlyActivity{Key: "2025-09", Month: "Sep", Year: 2025, Uploads: 1}, h[11])
	assert.Equal(t, "Mar", h[5].Month)
	assert.Equal(t, 2, h[5].Uploads, "same month of an earlier year is not counted")

	total := 0
	for _, b := range h {
		total += b.Uploads
	}
	assert.Equal(t, 4, total)

	jan := MonthlyHistogram(nil, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-02", jan[0].Key)
	assert.Equal(t, "2026-01", jan[11].Key)
}

func TestDashboard(t *testing.T) {
	svc, db, f := newDBService(t, nil, nil)
	ctx := context.Background()

	mk := func(branch domain.Branch, downloads, views int64, created time.Time) {
		dbtest.Paper(t, db, domain.Paper{
			BranchID: branch.ID, SemesterID: f.Sem1.ID, ExamTypeID: f.EndSem.ID,
			Year: 2024, FileURL: "https://drive.google.com/file/d/x/view",
			Downloads: downloads, Views: views, CreatedAt: created,
		})
	}
	mk(f.CSE, 10, 30, time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC))
	mk(f.CSE, 5, 1, time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC))
	mk(f.ECE, 20, 4, time.Date(2025, 8, 9, 0, 0, 0, 0, time.UTC))
	deleted := time.Now()
	dbtest.Paper(t, db, domain.Paper{
		BranchID: f.Mech.ID, SemesterID: f.Sem1.ID, ExamTypeID: f.EndSem.ID,
		Year: 2024, FileURL: "https://drive.google.com/file/d/gone/view",
		Downloads: 100, DeletedAt: &deleted,
	})

	d, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, d.TotalPapers)
	assert.Equal(t, int64(35), d.TotalDownloads)
	assert.Equal(t, int64(35), d.TotalViews)

	require.Len(t, d.BranchDownloads, 2)
	assert.Equal(t, "ECE", d.BranchDownloads[0].BranchCode)
	assert.Equal(t, int64(20), d.BranchDownloads[0].Downloads)
	assert.Equal(t, "CSE", d.BranchDownloads[1].BranchCode)
	assert.Equal(t, 2, d.BranchDownloads[1].Papers)

	assert.Equal(t, 2, d.MonthlyActivity[10].Uploads)
	assert.Equal(t, 1, d.MonthlyActivity[11].Uploads)

	m, err := svc.Metadata(ctx)
	require.NoError(t, err)
	assert.Len(t, m.Branches, 4)
	assert.Len(t, m.Semesters, 3)
	assert.Len(t, m.ExamTypes, 3)
}
