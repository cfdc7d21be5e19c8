package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearsFor(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t,
		[]int{2025, 2024, 2023, 2022, 2021, 2020, 2019, 2018, 2017, 2016},
		YearsFor(now))
}

func TestParseRoute(t *testing.T) {
	tests := []struct {
		path string
		want Route
	}{
		{"/", Root},
		{"", Root},
		{"/cse-branches", Route{State: StateReservedBranches}},
		{"/cse-papers/", Route{State: StateReservedPapers}},
		{"/admin/login", Route{State: StateAdminLogin}},
		{"/admin/dashboard?tab=papers", Route{State: StateAdminDashboard}},
		{"/branch/ECE", Route{State: StateYearList, BranchCode: "ECE"}},
		{"/branch/ECE/year/2024", Route{State: StateSemesterList, BranchCode: "ECE", Year: 2024}},
		{"/branch/CSE-AIML/year/2023/semester/5/papers",
			Route{State: StateSemesterPapers, BranchCode: "CSE-AIML", Year: 2023, Semester: 5}},
	}
	for _, tt := range tests {
		got, err := ParseRoute(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestParseRoute_Errors(t *testing.T) {
	for _, path := range []string{"/studios", "/branch", "/branch/ECE/semester/1", "/branch/ECE/year/2024/semester/2", "/admin"} {
		_, err := ParseRoute(path)
		assert.ErrorIs(t, err, ErrUnknownRoute, path)
	}
	for _, path := range []string{"/branch/ECE/year/last", "/branch/ECE/year/2024/semester/zero/papers", "/branch/ECE/year/2024/semester/0/papers"} {
		_, err := ParseRoute(path)
		assert.ErrorIs(t, err, ErrInvalidRoute, path)
	}
}

func TestRoute_PathRoundTrip(t *testing.T) {
	for _, path := range []string{
		"/", "/cse-branches", "/cse-papers", "/admin/login", "/admin/dashboard",
		"/branch/MECH", "/branch/MECH/year/2021", "/branch/MECH/year/2021/semester/8/papers",
	} {
		r, err := ParseRoute(path)
		require.NoError(t, err)
		assert.Equal(t, path, r.Path())
	}
}

func TestRoute_Back(t *testing.T) {
	papers, err := ParseRoute("/branch/ECE/year/2024/semester/3/papers")
	require.NoError(t, err)

	assert.Equal(t, "/branch/ECE/year/2024", papers.Back().Path())
	assert.Equal(t, "/branch/ECE", papers.Back().Back().Path())
	assert.Equal(t, "/", papers.Back().Back().Back().Path())
	assert.Equal(t, Root, Root.Back())
	assert.Equal(t, Root, Route{State: StateReservedPapers}.Back())
}

func TestBreadcrumbs(t *testing.T) {
	r, err := ParseRoute("/branch/ECE/year/2024/semester/3/papers")
	require.NoError(t, err)

	assert.Equal(t, []Breadcrumb{
		{Label: "Home", Path: "/"},
		{Label: "Electronics", Path: "/branch/ECE"},
		{Label: "2024", Path: "/branch/ECE/year/2024"},
		{Label: "Semester 3", Path: "/branch/ECE/year/2024/semester/3/papers"},
	}, Breadcrumbs(r, "Electronics"))

	years := Route{State: StateYearList, BranchCode: "ECE"}
	assert.Equal(t, []Breadcrumb{
		{Label: "Home", Path: "/"},
		{Label: "ECE", Path: "/branch/ECE"},
	}, Breadcrumbs(years, ""), "branch code stands in for an unknown name")

	assert.Equal(t, []Breadcrumb{
		{Label: "Home", Path: "/"},
		{Label: "Computer Science Branches", Path: "/cse-branches"},
	}, Breadcrumbs(Route{State: StateReservedBranches}, ""))

	assert.Equal(t, []Breadcrumb{{Label: "Home", Path: "/"}}, Breadcrumbs(Root, ""))
}

func TestState_MarshalText(t *testing.T) {
	b, err := StateSemesterPapers.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "semester_papers", string(b))
	assert.Equal(t, "state(42)", State(42).String())
}
