package catalog

import (
	"context"
	"log"
	"time"

	"questionbank/internal/domain"
	"questionbank/internal/repository"
)

const (
	noticeBranchesFailed  = "Failed to fetch branches"
	noticeBranchNotFound  = "Branch not found"
	noticeBranchFailed    = "Failed to fetch branch details"
	noticeSemestersFailed = "Failed to fetch semesters"
	noticeSemesterMissing = "Semester not found"
	noticePapersFailed    = "Failed to fetch papers"
	noticePageNotFound    = "Page not found"
)

type Options struct {
	// Branch codes listed under the umbrella entry instead of the main list.
	ReservedBranchCodes []string
	// Exam type codes left out of the umbrella papers page.
	ReservedExcludedExamTypes []string
	Now                       func() time.Time
}

// Service serves the browse pages. Lookups that miss and queries that fail
// never surface as errors: the view comes back empty with a notice, and
// with a redirect to the root when the page cannot be shown at all.
type Service struct {
	branches  BranchRepository
	semesters SemesterRepository
	examTypes ExamTypeRepository
	papers    PaperRepository

	reserved     map[string]bool
	reservedList []string
	excluded     []string
	now          func() time.Time
}

func NewService(
	branches BranchRepository,
	semesters SemesterRepository,
	examTypes ExamTypeRepository,
	papers PaperRepository,
	opts Options,
) *Service {
	s := &Service{
		branches:     branches,
		semesters:    semesters,
		examTypes:    examTypes,
		papers:       papers,
		reserved:     make(map[string]bool, len(opts.ReservedBranchCodes)),
		reservedList: append([]string{}, opts.ReservedBranchCodes...),
		excluded:     append([]string{}, opts.ReservedExcludedExamTypes...),
		now:          opts.Now,
	}
	for _, code := range opts.ReservedBranchCodes {
		s.reserved[code] = true
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Branches lists every branch except the reserved ones, and whether any
// reserved branch exists to show the umbrella entry for.
func (s *Service) Branches(ctx context.Context) BranchListView {
	view := BranchListView{Branches: []domain.Branch{}, ReservedCodes: s.reservedList}

	all, err := s.branches.List(ctx)
	if err != nil {
		log.Printf("catalog: list_branches_failed err=%v", err)
		view.Notice = noticeBranchesFailed
		return view
	}
	for _, b := range all {
		if s.reserved[b.Code] {
			view.HasReserved = true
			continue
		}
		view.Branches = append(view.Branches, b)
	}
	return view
}

// ReservedBranches lists the branches grouped under the umbrella entry.
func (s *Service) ReservedBranches(ctx context.Context) ReservedBranchesView {
	view := ReservedBranchesView{Branches: []domain.Branch{}}

	branches, err := s.branches.ListByCodes(ctx, s.reservedList)
	if err != nil {
		log.Printf("catalog: list_reserved_branches_failed err=%v", err)
		view.Notice = noticeBranchesFailed
		return view
	}
	view.Branches = branches
	return view
}

// resolveBranch returns the branch for code, or the notice to show and
// send the user back to the root with.
func (s *Service) resolveBranch(ctx context.Context, code string) (*domain.Branch, string) {
	b, err := s.branches.GetByCode(ctx, code)
	if err == nil {
		return b, ""
	}
	if repository.IsNotFound(err) {
		return nil, noticeBranchNotFound
	}
	log.Printf("catalog: get_branch_failed code=%s err=%v", code, err)
	return nil, noticeBranchFailed
}

// Years is the year list of a branch: the last YearSpan calendar years.
func (s *Service) Years(ctx context.Context, branchCode string) YearListView {
	view := YearListView{Years: []int{}}

	b, notice := s.resolveBranch(ctx, branchCode)
	if b == nil {
		view.Redirect = Root.Path()
		view.Notice = notice
		return view
	}
	view.Branch = b
	view.Years = YearsFor(s.now())
	return view
}

// Semesters lists the semesters to pick from for a branch and year.
func (s *Service) Semesters(ctx context.Context, branchCode string, year int) SemesterListView {
	view := SemesterListView{Year: year, Semesters: []domain.Semester{}}

	b, notice := s.resolveBranch(ctx, branchCode)
	if b == nil {
		view.Redirect = Root.Path()
		view.Notice = notice
		return view
	}
	view.Branch = b

	semesters, err := s.semesters.List(ctx)
	if err != nil {
		log.Printf("catalog: list_semesters_failed err=%v", err)
		view.Notice = noticeSemestersFailed
		return view
	}
	view.Semesters = semesters
	return view
}

// SemesterPapers lists the non-deleted papers of one branch, year and
// semester.
func (s *Service) SemesterPapers(ctx context.Context, branchCode string, year, semester int) PaperListView {
	view := PaperListView{Year: year, Papers: []domain.Paper{}}

	b, notice := s.resolveBranch(ctx, branchCode)
	if b == nil {
		view.Redirect = Root.Path()
		view.Notice = notice
		return view
	}
	view.Branch = b

	sem, err := s.semesters.GetByNumber(ctx, semester)
	if err != nil {
		if repository.IsNotFound(err) {
			view.Notice = noticeSemesterMissing
		} else {
			log.Printf("catalog: get_semester_failed number=%d err=%v", semester, err)
			view.Notice = noticePapersFailed
		}
		return view
	}
	view.Semester = sem

	papers, err := s.papers.ListByCatalog(ctx, b.ID, sem.ID, year)
	if err != nil {
		log.Printf("catalog: list_papers_failed branch=%s year=%d semester=%d err=%v", branchCode, year, semester, err)
		view.Notice = noticePapersFailed
		return view
	}
	view.Papers = papers
	return view
}

// ReservedPapers lists the non-deleted papers of the reserved branches,
// leaving out the configured exam types.
func (s *Service) ReservedPapers(ctx context.Context) PaperListView {
	view := PaperListView{Papers: []domain.Paper{}}

	branches, err := s.branches.ListByCodes(ctx, s.reservedList)
	if err != nil {
		log.Printf("catalog: list_reserved_branches_failed err=%v", err)
		view.Notice = noticePapersFailed
		return view
	}
	examTypes, err := s.examTypes.ListByCodes(ctx, s.excluded)
	if err != nil {
		log.Printf("catalog: list_excluded_exam_types_failed err=%v", err)
		view.Notice = noticePapersFailed
		return view
	}

	branchIDs := make([]int64, 0, len(branches))
	for _, b := range branches {
		branchIDs = append(branchIDs, b.ID)
	}
	examTypeIDs := make([]int64, 0, len(examTypes))
	for _, et := range examTypes {
		examTypeIDs = append(examTypeIDs, et.ID)
	}

	papers, err := s.papers.ListByBranchesExcludingExamTypes(ctx, branchIDs, examTypeIDs)
	if err != nil {
		log.Printf("catalog: list_reserved_papers_failed err=%v", err)
		view.Notice = noticePapersFailed
		return view
	}
	view.Papers = papers
	return view
}

// Navigate resolves any client path to its page. Unknown paths redirect to
// the root; admin pages carry no catalog data.
func (s *Service) Navigate(ctx context.Context, path string) NavigationView {
	r, err := ParseRoute(path)
	if err != nil {
		return NavigationView{
			Route:       Root,
			Path:        Root.Path(),
			Back:        Root.Path(),
			Breadcrumbs: Breadcrumbs(Root, ""),
			Redirect:    Root.Path(),
			Notice:      noticePageNotFound,
		}
	}

	nav := NavigationView{Route: r, Path: r.Path(), Back: r.Back().Path()}
	var branchName string

	switch r.State {
	case StateBranchList:
		v := s.Branches(ctx)
		nav.View, nav.Notice = v, v.Notice
	case StateReservedBranches:
		v := s.ReservedBranches(ctx)
		nav.View, nav.Notice = v, v.Notice
	case StateReservedPapers:
		v := s.ReservedPapers(ctx)
		nav.View, nav.Notice = v, v.Notice
	case StateYearList:
		v := s.Years(ctx, r.BranchCode)
		nav.View, nav.Redirect, nav.Notice = v, v.Redirect, v.Notice
		if v.Branch != nil {
			branchName = v.Branch.Name
		}
	case StateSemesterList:
		v := s.Semesters(ctx, r.BranchCode, r.Year)
		nav.View, nav.Redirect, nav.Notice = v, v.Redirect, v.Notice
		if v.Branch != nil {
			branchName = v.Branch.Name
		}
	case StateSemesterPapers:
		v := s.SemesterPapers(ctx, r.BranchCode, r.Year, r.Semester)
		nav.View, nav.Redirect, nav.Notice = v, v.Redirect, v.Notice
		if v.Branch != nil {
			branchName = v.Branch.Name
		}
	}

	nav.Breadcrumbs = Breadcrumbs(r, branchName)
	return nav
}
