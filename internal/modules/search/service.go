package search

import (
	"context"
	"errors"
	"log"
	"strings"

	"questionbank/internal/domain"
)

const noticeSearchFailed = "Failed to search papers"

// Result is one answered search. Searching is false for a blank query,
// which tells the client to fall back to the catalog view.
type Result struct {
	Seq       int64          `json:"seq"`
	Query     string         `json:"query"`
	Searching bool           `json:"searching"`
	Papers    []domain.Paper `json:"papers"`
	Notice    string         `json:"notice,omitempty"`
}

type Service struct {
	branches BranchLister
	papers   PaperSearcher
	hosts    HostMatcher
}

func NewService(branches BranchLister, papers PaperSearcher, hosts HostMatcher) *Service {
	return &Service{branches: branches, papers: papers, hosts: hosts}
}

// Search never returns an error: failures yield an empty result carrying
// a notice for the user.
func (s *Service) Search(ctx context.Context, query string, seq int64) Result {
	res := Result{Seq: seq, Query: query, Papers: []domain.Paper{}}
	if strings.TrimSpace(query) == "" {
		return res
	}
	res.Searching = true

	branches, err := s.branches.List(ctx)
	if err != nil {
		return s.failed(res, "list_branches", err)
	}

	papers, err := s.papers.Search(ctx, BuildDisjunction(query, branches))
	if err != nil {
		return s.failed(res, "query_papers", err)
	}

	for _, p := range papers {
		if s.hosts.IsRecognizedHost(p.FileURL) {
			res.Papers = append(res.Papers, p)
		}
	}
	return res
}

func (s *Service) failed(res Result, stage string, err error) Result {
	if errors.Is(err, context.Canceled) {
		log.Printf("search: cancelled stage=%s seq=%d", stage, res.Seq)
	} else {
		log.Printf("search: failed stage=%s seq=%d query=%q err=%v", stage, res.Seq, res.Query, err)
	}
	res.Papers = []domain.Paper{}
	res.Notice = noticeSearchFailed
	return res
}
