package viewer

import (
	"context"
	"errors"
	"log"

	"questionbank/internal/domain"
	"questionbank/internal/repository"
)

const (
	noticeViewCountFailed     = "Failed to update view count"
	noticeDownloadCountFailed = "Failed to update download count"
)

// Opened is what a client needs to show or fetch a paper.
type Opened struct {
	Paper  *domain.Paper `json:"paper"`
	URL    string        `json:"url"`
	Notice string        `json:"notice,omitempty"`
}

type Service struct {
	papers PaperRepository
	links  *Links
}

func NewService(papers PaperRepository, links *Links) *Service {
	return &Service{papers: papers, links: links}
}

// Links exposes the link transformer, shared with search.
func (s *Service) Links() *Links {
	return s.links
}

// View counts a view of paper id and returns its preview URL. A failed
// counter update does not stop the paper from opening.
func (s *Service) View(ctx context.Context, id int64) (*Opened, error) {
	p, err := s.activePaper(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &Opened{Paper: p, URL: s.links.PreviewURL(p.FileURL)}
	if err := s.papers.IncrementViews(ctx, id); err != nil {
		log.Printf("viewer: increment_views_failed paper_id=%d err=%v", id, err)
		out.Notice = noticeViewCountFailed
	} else {
		p.Views++
	}
	return out, nil
}

// Download counts a download of paper id and returns its direct-download
// URL, or the stored URL when no file id can be extracted.
func (s *Service) Download(ctx context.Context, id int64) (*Opened, error) {
	p, err := s.activePaper(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &Opened{Paper: p, URL: s.links.DownloadURL(p.FileURL)}
	if err := s.papers.IncrementDownloads(ctx, id); err != nil {
		log.Printf("viewer: increment_downloads_failed paper_id=%d err=%v", id, err)
		out.Notice = noticeDownloadCountFailed
	} else {
		p.Downloads++
	}
	return out, nil
}

// Preview is the pure link transform, with no paper lookup.
func (s *Service) Preview(raw string) string {
	return s.links.PreviewURL(raw)
}

func (s *Service) activePaper(ctx context.Context, id int64) (*domain.Paper, error) {
	p, err := s.papers.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPaperNotFound) {
			return nil, ErrPaperNotFound
		}
		return nil, err
	}
	return p, nil
}
