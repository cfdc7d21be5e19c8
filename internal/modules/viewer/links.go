package viewer

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// LinkRule recognizes one shape of shareable link and knows how to turn the
// file id it carries into preview and download URLs.
type LinkRule struct {
	Name     string
	Extract  func(raw string) (string, bool)
	Preview  func(id string) string
	Download func(id string) string
}

const (
	drivePreviewTemplate  = "https://drive.google.com/file/d/%s/preview"
	driveDownloadTemplate = "https://drive.google.com/uc?export=download&id=%s"
)

var (
	drivePathPattern  = regexp.MustCompile(`/d/(.+?)/view`)
	driveQueryPattern = regexp.MustCompile(`[?&]id=([^&#]+)`)
)

func drivePreview(id string) string {
	return fmt.Sprintf(drivePreviewTemplate, url.PathEscape(id))
}

func driveDownload(id string) string {
	return fmt.Sprintf(driveDownloadTemplate, url.QueryEscape(id))
}

func regexpExtractor(re *regexp.Regexp) func(string) (string, bool) {
	return func(raw string) (string, bool) {
		m := re.FindStringSubmatch(raw)
		if len(m) < 2 || m[1] == "" {
			return "", false
		}
		return m[1], true
	}
}

// DefaultRules are the Google Drive link shapes: /file/d/<id>/view and
// ?id=<id>, tried in that order.
func DefaultRules() []LinkRule {
	return []LinkRule{
		{
			Name:     "drive-path",
			Extract:  regexpExtractor(drivePathPattern),
			Preview:  drivePreview,
			Download: driveDownload,
		},
		{
			Name:     "drive-query",
			Extract:  regexpExtractor(driveQueryPattern),
			Preview:  drivePreview,
			Download: driveDownload,
		},
	}
}

// Links transforms stored file URLs for display. The zero value is not
// usable; build it with NewLinks.
type Links struct {
	rules []LinkRule
	hosts []string
}

// NewLinks builds a Links over the recognized hosts. With no rules the
// DefaultRules are used.
func NewLinks(hosts []string, rules ...LinkRule) *Links {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	normalized := make([]string, 0, len(hosts))
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			normalized = append(normalized, h)
		}
	}
	return &Links{rules: rules, hosts: normalized}
}

func (l *Links) match(raw string) (LinkRule, string, bool) {
	for _, r := range l.rules {
		if id, ok := r.Extract(raw); ok {
			return r, id, true
		}
	}
	return LinkRule{}, "", false
}

// PreviewURL returns the embeddable preview URL for raw, or raw unchanged
// when no rule extracts a file id.
func (l *Links) PreviewURL(raw string) string {
	if r, id, ok := l.match(raw); ok {
		return r.Preview(id)
	}
	return raw
}

// DownloadURL returns the direct-download URL for raw, or raw unchanged
// when no rule extracts a file id.
func (l *Links) DownloadURL(raw string) string {
	if r, id, ok := l.match(raw); ok {
		return r.Download(id)
	}
	return raw
}

// IsRecognizedHost reports whether raw is an absolute URL whose hostname
// is one of the recognized hosts or a subdomain of one.
func (l *Links) IsRecognizedHost(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	for _, h := range l.hosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}
