package admin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"questionbank/internal/domain"
	"questionbank/internal/modules/auth"
	"questionbank/internal/pkg/validator"
	"questionbank/internal/repository"
)

const histogramMonths = 12

const (
	msgMissingFields = "Please fill in all required fields including the PDF URL"
	msgInvalidURL    = "Please enter a valid URL"
)

type Options struct {
	DefaultExamTypeCode string
	Now                 func() time.Time
}

type Service struct {
	auth      Authenticator
	admins    AdminRepository
	papers    PaperRepository
	branches  BranchRepository
	semesters SemesterRepository
	examTypes ExamTypeRepository

	defaultExamType string
	now             func() time.Time
}

func NewService(
	authn Authenticator,
	admins AdminRepository,
	papers PaperRepository,
	branches BranchRepository,
	semesters SemesterRepository,
	examTypes ExamTypeRepository,
	opts Options,
) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		auth:            authn,
		admins:          admins,
		papers:          papers,
		branches:        branches,
		semesters:       semesters,
		examTypes:       examTypes,
		defaultExamType: opts.DefaultExamTypeCode,
		now:             opts.Now,
	}
}

// Authenticate signs the credential in and keeps the session only when the
// email is on the admin allow-list. Otherwise the new session is revoked
// before returning.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if !validator.IsEmail(email) {
		return nil, ErrInvalidEmail
	}

	sess, token, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.admins.ExistsByEmail(ctx, sess.Email)
	if err != nil {
		s.revoke(ctx, sess.ID)
		return nil, fmt.Errorf("%w: %v", ErrAdminCheckFailed, err)
	}
	if !ok {
		s.revoke(ctx, sess.ID)
		log.Printf("admin_login_rejected email=%s reason=not_admin", sess.Email)
		return nil, ErrNotAdmin
	}

	log.Printf("admin_login email=%s session_id=%s", sess.Email, sess.ID)
	return &LoginResult{Session: sess, Token: token, Authenticated: true}, nil
}

func (s *Service) revoke(ctx context.Context, sessionID string) {
	if err := s.auth.SignOut(ctx, sessionID); err != nil {
		log.Printf("session_revoke_failed session_id=%s err=%v", sessionID, err)
	}
}

func (s *Service) Logout(ctx context.Context, sess *auth.Session) error {
	return s.auth.SignOut(ctx, sess.ID)
}

// validatePaper trims the text fields of req before checking them, so a
// whitespace-only subject or URL counts as missing.
func validatePaper(req *PaperRequest) error {
	req.SubjectName = strings.TrimSpace(req.SubjectName)
	req.FileURL = strings.TrimSpace(req.FileURL)

	fields := validator.Validate(req)
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// Message is the user-facing text for the failed validation.
func (e *ValidationError) Message() string {
	if len(e.Fields) == 1 && e.Fields["FileURL"] == "absurl" {
		return msgInvalidURL
	}
	return msgMissingFields
}

func (s *Service) checkReferences(ctx context.Context, branchID, semesterID int64) error {
	if _, err := s.branches.GetByID(ctx, branchID); err != nil {
		if repository.IsNotFound(err) {
			return fmt.Errorf("%w: branch %d", ErrInvalidReference, branchID)
		}
		return err
	}
	if _, err := s.semesters.GetByID(ctx, semesterID); err != nil {
		if repository.IsNotFound(err) {
			return fmt.Errorf("%w: semester %d", ErrInvalidReference, semesterID)
		}
		return err
	}
	return nil
}

func (s *Service) resolveExamType(ctx context.Context, id *int64) (int64, error) {
	if id != nil {
		et, err := s.examTypes.GetByID(ctx, *id)
		if err != nil {
			if repository.IsNotFound(err) {
				return 0, fmt.Errorf("%w: exam type %d", ErrInvalidReference, *id)
			}
			return 0, err
		}
		return et.ID, nil
	}

	et, err := s.examTypes.GetByCode(ctx, s.defaultExamType)
	if err != nil {
		if repository.IsNotFound(err) {
			return 0, fmt.Errorf("%w: code %s", ErrDefaultExamTypeMissing, s.defaultExamType)
		}
		return 0, err
	}
	return et.ID, nil
}

func subjectPtr(name string) *string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return &name
}

func mapPaperError(err error) error {
	switch {
	case errors.Is(err, repository.ErrPaperNotFound):
		return ErrPaperNotFound
	case errors.Is(err, repository.ErrInvalidReference):
		return ErrInvalidReference
	default:
		return err
	}
}

// CreatePaper adds a paper with zeroed counters.
func (s *Service) CreatePaper(ctx context.Context, req *PaperRequest) (*domain.Paper, error) {
	if err := validatePaper(req); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, req.BranchID, req.SemesterID); err != nil {
		return nil, err
	}
	examTypeID, err := s.resolveExamType(ctx, req.ExamTypeID)
	if err != nil {
		return nil, err
	}

	p := &domain.Paper{
		BranchID:    req.BranchID,
		SemesterID:  req.SemesterID,
		ExamTypeID:  examTypeID,
		SubjectName: subjectPtr(req.SubjectName),
		Year:        req.Year,
		FileURL:     strings.TrimSpace(req.FileURL),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.papers.Create(ctx, p); err != nil {
		return nil, mapPaperError(err)
	}
	log.Printf("paper_created paper_id=%d branch_id=%d semester_id=%d year=%d", p.ID, p.BranchID, p.SemesterID, p.Year)

	created, err := s.papers.GetByID(ctx, p.ID)
	if err != nil {
		return nil, mapPaperError(err)
	}
	return created, nil
}

// EditPaper overwrites the editable fields of a live paper. The exam type is
// left unchanged.
func (s *Service) EditPaper(ctx context.Context, id int64, req *PaperRequest) (*domain.Paper, error) {
	if err := validatePaper(req); err != nil {
		return nil, err
	}
	existing, err := s.papers.GetByID(ctx, id)
	if err != nil {
		return nil, mapPaperError(err)
	}
	if existing.IsDeleted() {
		return nil, ErrPaperNotFound
	}
	if err := s.checkReferences(ctx, req.BranchID, req.SemesterID); err != nil {
		return nil, err
	}

	err = s.papers.Update(ctx, id, repository.PaperFields{
		BranchID:    req.BranchID,
		SemesterID:  req.SemesterID,
		SubjectName: subjectPtr(req.SubjectName),
		Year:        req.Year,
		FileURL:     strings.TrimSpace(req.FileURL),
	})
	if err != nil {
		return nil, mapPaperError(err)
	}
	log.Printf("paper_updated paper_id=%d", id)

	updated, err := s.papers.GetByID(ctx, id)
	if err != nil {
		return nil, mapPaperError(err)
	}
	return updated, nil
}

// DeletePaper soft-deletes a paper. Deleting an already deleted paper
// succeeds without changing it.
func (s *Service) DeletePaper(ctx context.Context, id int64) (*DeleteResult, error) {
	changed, err := s.papers.SoftDelete(ctx, id, s.now().UTC())
	if err != nil {
		return nil, mapPaperError(err)
	}
	if changed {
		log.Printf("paper_deleted paper_id=%d", id)
	}
	return &DeleteResult{ID: id, Deleted: true, Changed: changed}, nil
}

// ListPapers returns the live papers, newest first, narrowed by query.
func (s *Service) ListPapers(ctx context.Context, query string) ([]domain.Paper, error) {
	papers, err := s.papers.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return FilterPapers(papers, query), nil
}

func searchText(p *domain.Paper) string {
	var b strings.Builder
	if p.Branch != nil {
		b.WriteString(p.Branch.Name)
	}
	b.WriteByte(' ')
	if p.Semester != nil {
		b.WriteString(strconv.Itoa(p.Semester.Number))
	}
	b.WriteByte(' ')
	b.WriteString(p.Subject())
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(p.Year))
	return strings.ToLower(b.String())
}

// FilterPapers keeps the papers whose branch name, semester number, subject
// and year together contain every whitespace-separated token of query.
// Matching is case-insensitive and order is preserved.
func FilterPapers(papers []domain.Paper, query string) []domain.Paper {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return papers
	}

	out := make([]domain.Paper, 0, len(papers))
	for i := range papers {
		text := searchText(&papers[i])
		match := true
		for _, t := range tokens {
			if !strings.Contains(text, t) {
				match = false
				break
			}
		}
		if match {
			out = append(out, papers[i])
		}
	}
	return out
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	papers, err := s.papers.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		TotalPapers:     len(papers),
		BranchDownloads: branchDownloads(papers),
		MonthlyActivity: MonthlyHistogram(papers, s.now()),
	}
	for _, p := range papers {
		d.TotalDownloads += p.Downloads
		d.TotalViews += p.Views
	}
	return d, nil
}

func branchDownloads(papers []domain.Paper) []BranchDownloads {
	byID := map[int64]*BranchDownloads{}
	for _, p := range papers {
		bd, ok := byID[p.BranchID]
		if !ok {
			bd = &BranchDownloads{BranchID: p.BranchID}
			if p.Branch != nil {
				bd.BranchName = p.Branch.Name
				bd.BranchCode = p.Branch.Code
			}
			byID[p.BranchID] = bd
		}
		bd.Papers++
		bd.Downloads += p.Downloads
	}

	out := make([]BranchDownloads, 0, len(byID))
	for _, bd := range byID {
		out = append(out, *bd)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Downloads != out[j].Downloads {
			return out[i].Downloads > out[j].Downloads
		}
		return out[i].BranchName < out[j].BranchName
	})
	return out
}

// MonthlyHistogram counts uploads per calendar month for the twelve months
// ending with the month of now, oldest first. Papers outside that window are
// not counted.
func MonthlyHistogram(papers []domain.Paper, now time.Time) []MonthlyActivity {
	loc := now.Location()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -(histogramMonths - 1), 0)

	buckets := make([]MonthlyActivity, histogramMonths)
	index := make(map[string]int, histogramMonths)
	for i := range buckets {
		m := first.AddDate(0, i, 0)
		key := m.Format("2006-01")
		buckets[i] = MonthlyActivity{Key: key, Month: m.Format("Jan"), Year: m.Year()}
		index[key] = i
	}

	for _, p := range papers {
		if i, ok := index[p.CreatedAt.In(loc).Format("2006-01")]; ok {
			buckets[i].Uploads++
		}
	}
	return buckets
}

func (s *Service) Metadata(ctx context.Context) (*Metadata, error) {
	branches, err := s.branches.List(ctx)
	if err != nil {
		return nil, err
	}
	semesters, err := s.semesters.List(ctx)
	if err != nil {
		return nil, err
	}
	examTypes, err := s.examTypes.List(ctx)
	if err != nil {
		return nil, err
	}
	return &Metadata{Branches: branches, Semesters: semesters, ExamTypes: examTypes}, nil
}
