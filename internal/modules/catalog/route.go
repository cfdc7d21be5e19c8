package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// State is a page of the browse flow. Which state is shown is derived
// from the route alone; nothing else carries navigation state.
type State int

const (
	StateBranchList State = iota
	StateReservedBranches
	StateYearList
	StateSemesterList
	StateSemesterPapers
	StateReservedPapers
	StateAdminLogin
	StateAdminDashboard
)

var stateNames = map[State]string{
	StateBranchList:       "branch_list",
	StateReservedBranches: "reserved_branches",
	StateYearList:         "year_list",
	StateSemesterList:     "semester_list",
	StateSemesterPapers:   "semester_papers",
	StateReservedPapers:   "reserved_papers",
	StateAdminLogin:       "admin_login",
	StateAdminDashboard:   "admin_dashboard",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

var (
	ErrUnknownRoute = errors.New("unknown route")
	ErrInvalidRoute = errors.New("invalid route parameter")
)

// Route is a parsed client path.
type Route struct {
	State      State  `json:"state"`
	BranchCode string `json:"branch_code,omitempty"`
	Year       int    `json:"year,omitempty"`
	Semester   int    `json:"semester,omitempty"`
}

// Root is the branch list.
var Root = Route{State: StateBranchList}

// ParseRoute maps a client path such as
// /branch/CSE/year/2024/semester/3/papers onto a Route. Trailing slashes
// and a query string are ignored.
func ParseRoute(path string) (Route, error) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	parts := splitPath(path)

	switch {
	case len(parts) == 0:
		return Root, nil
	case len(parts) == 1 && parts[0] == "cse-branches":
		return Route{State: StateReservedBranches}, nil
	case len(parts) == 1 && parts[0] == "cse-papers":
		return Route{State: StateReservedPapers}, nil
	case len(parts) == 2 && parts[0] == "admin" && parts[1] == "login":
		return Route{State: StateAdminLogin}, nil
	case len(parts) == 2 && parts[0] == "admin" && parts[1] == "dashboard":
		return Route{State: StateAdminDashboard}, nil
	}

	if parts[0] != "branch" || len(parts) < 2 {
		return Route{}, fmt.Errorf("%w: %s", ErrUnknownRoute, path)
	}
	r := Route{State: StateYearList, BranchCode: parts[1]}
	if len(parts) == 2 {
		return r, nil
	}

	if (len(parts) != 4 && len(parts) != 7) || parts[2] != "year" {
		return Route{}, fmt.Errorf("%w: %s", ErrUnknownRoute, path)
	}
	year, err := strconv.Atoi(parts[3])
	if err != nil {
		return Route{}, fmt.Errorf("%w: year %q", ErrInvalidRoute, parts[3])
	}
	r.State = StateSemesterList
	r.Year = year
	if len(parts) == 4 {
		return r, nil
	}

	if parts[4] != "semester" || parts[6] != "papers" {
		return Route{}, fmt.Errorf("%w: %s", ErrUnknownRoute, path)
	}
	sem, err := strconv.Atoi(parts[5])
	if err != nil || sem <= 0 {
		return Route{}, fmt.Errorf("%w: semester %q", ErrInvalidRoute, parts[5])
	}
	r.State = StateSemesterPapers
	r.Semester = sem
	return r, nil
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// Path renders the route back into its client path.
func (r Route) Path() string {
	switch r.State {
	case StateReservedBranches:
		return "/cse-branches"
	case StateReservedPapers:
		return "/cse-papers"
	case StateAdminLogin:
		return "/admin/login"
	case StateAdminDashboard:
		return "/admin/dashboard"
	case StateYearList:
		return "/branch/" + r.BranchCode
	case StateSemesterList:
		return fmt.Sprintf("/branch/%s/year/%d", r.BranchCode, r.Year)
	case StateSemesterPapers:
		return fmt.Sprintf("/branch/%s/year/%d/semester/%d/papers", r.BranchCode, r.Year, r.Semester)
	default:
		return "/"
	}
}

// Back pops one level of the drill-down. Pages outside the drill-down go
// back to the root.
func (r Route) Back() Route {
	switch r.State {
	case StateSemesterPapers:
		return Route{State: StateSemesterList, BranchCode: r.BranchCode, Year: r.Year}
	case StateSemesterList:
		return Route{State: StateYearList, BranchCode: r.BranchCode}
	default:
		return Root
	}
}

// Breadcrumb is one link of the trail shown above a page.
type Breadcrumb struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Breadcrumbs returns the trail for r, Home first. branchName labels the
// branch link; the branch code is used when it is empty.
func Breadcrumbs(r Route, branchName string) []Breadcrumb {
	home := Breadcrumb{Label: "Home", Path: "/"}
	if branchName == "" {
		branchName = r.BranchCode
	}

	switch r.State {
	case StateReservedBranches:
		return []Breadcrumb{home, {Label: "Computer Science Branches", Path: r.Path()}}
	case StateReservedPapers:
		return []Breadcrumb{home, {Label: "CSE Papers", Path: r.Path()}}
	case StateAdminLogin:
		return []Breadcrumb{home, {Label: "Admin Login", Path: r.Path()}}
	case StateAdminDashboard:
		return []Breadcrumb{home, {Label: "Admin Dashboard", Path: r.Path()}}
	case StateYearList, StateSemesterList, StateSemesterPapers:
	default:
		return []Breadcrumb{home}
	}

	trail := []Breadcrumb{home, {Label: branchName, Path: "/branch/" + r.BranchCode}}
	if r.State == StateYearList {
		return trail
	}
	trail = append(trail, Breadcrumb{
		Label: strconv.Itoa(r.Year),
		Path:  fmt.Sprintf("/branch/%s/year/%d", r.BranchCode, r.Year),
	})
	if r.State == StateSemesterList {
		return trail
	}
	return append(trail, Breadcrumb{Label: fmt.Sprintf("Semester %d", r.Semester), Path: r.Path()})
}
