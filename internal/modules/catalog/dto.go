package catalog

import "questionbank/internal/domain"

// Views returned by the catalog. Every view may carry a Notice for the
// user; Redirect, when set, is the client path to go to instead.

type BranchListView struct {
	Branches      []domain.Branch `json:"branches"`
	HasReserved   bool            `json:"has_reserved"`
	ReservedCodes []string        `json:"reserved_codes"`
	Notice        string          `json:"notice,omitempty"`
}

type ReservedBranchesView struct {
	Branches []domain.Branch `json:"branches"`
	Notice   string          `json:"notice,omitempty"`
}

type YearListView struct {
	Branch   *domain.Branch `json:"branch"`
	Years    []int          `json:"years"`
	Redirect string         `json:"redirect,omitempty"`
	Notice   string         `json:"notice,omitempty"`
}

type SemesterListView struct {
	Branch    *domain.Branch    `json:"branch"`
	Year      int               `json:"year"`
	Semesters []domain.Semester `json:"semesters"`
	Redirect  string            `json:"redirect,omitempty"`
	Notice    string            `json:"notice,omitempty"`
}

type PaperListView struct {
	Branch   *domain.Branch   `json:"branch,omitempty"`
	Year     int              `json:"year,omitempty"`
	Semester *domain.Semester `json:"semester,omitempty"`
	Papers   []domain.Paper   `json:"papers"`
	Redirect string           `json:"redirect,omitempty"`
	Notice   string           `json:"notice,omitempty"`
}

// NavigationView resolves a client path: the parsed route, where "back"
// leads, the breadcrumb trail and the data of the page, if it has any.
type NavigationView struct {
	Route       Route        `json:"route"`
	Path        string       `json:"path"`
	Back        string       `json:"back"`
	Breadcrumbs []Breadcrumb `json:"breadcrumbs"`
	View        any          `json:"view,omitempty"`
	Redirect    string       `json:"redirect,omitempty"`
	Notice      string       `json:"notice,omitempty"`
}
