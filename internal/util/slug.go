package util

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	numericSegment = regexp.MustCompile(`^\d+$`)
	uuidSegment    = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	trailingID     = regexp.MustCompile(`[-_.]+(?:[A-Za-z]{0,4}[-_]?\d{3,}|[0-9a-fA-F]{12,})$`)
	fileExtension  = regexp.MustCompile(`(?i)\.(html?|php|aspx?|jsp)$`)
	slugSeparators = regexp.MustCompile(`[-_+.~]+`)
	hasLetter      = regexp.MustCompile(`\pL`)
)

// path segments that never carry the role name
var trivialSegments = map[string]bool{
	"jobs": true, "job": true, "careers": true, "career": true, "view": true,
	"apply": true, "posting": true, "postings": true, "position": true,
	"positions": true, "opening": true, "openings": true, "details": true,
	"detail": true, "en": true, "en-us": true, "en-gb": true, "us": true,
	"index": true, "search": true, "viewjob": true, "o": true, "p": true,
	"j": true, "vacancy": true, "vacancies": true, "role": true, "roles": true,
}

var secondLevelDomains = map[string]bool{
	"co": true, "com": true, "org": true, "net": true, "ac": true, "gov": true, "edu": true,
}

// NormalizeURL validates a user supplied job link, defaulting the scheme to
// https.
func NormalizeURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty URL")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("URL has no host")
	}
	return u, nil
}

// SlugQuery derives a search string from the shape of a job-board URL.
// Known boards are read structurally, anything else falls back to the last
// meaningful path segment and finally to the site name.
func SlugQuery(u *url.URL) string {
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	segments := pathSegments(u.Path)

	var q string
	switch {
	case strings.HasSuffix(host, "linkedin.com"):
		// /jobs/view/<role-at-company>-<id>
		if i := indexOf(segments, "view"); i >= 0 && i+1 < len(segments) {
			q = Humanize(segments[i+1])
		}
	case strings.HasSuffix(host, "greenhouse.io"):
		// /<company>/jobs/<id>
		if len(segments) > 0 {
			q = Humanize(segments[0])
		}
	case host == "jobs.lever.co" || host == "jobs.ashbyhq.com":
		// /<company>/<uuid>
		if len(segments) > 0 {
			q = Humanize(segments[0])
		}
	case strings.HasSuffix(host, "myworkdayjobs.com"):
		// /<site>/job/<location>/<Role-Title>_<REQ>
		if i := indexOf(segments, "job"); i >= 0 && i+2 < len(segments) {
			q = Humanize(segments[i+2])
		}
	}
	if q != "" {
		return q
	}

	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		if trivialSegments[strings.ToLower(seg)] || numericSegment.MatchString(seg) || uuidSegment.MatchString(seg) {
			continue
		}
		if q = Humanize(seg); q != "" {
			return q
		}
	}
	return HostLabel(host)
}

// HostLabel turns "careers.acme.co.uk" style hosts into "Acme".
func HostLabel(host string) string {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	parts := strings.Split(host, ".")
	label := parts[0]
	if len(parts) >= 3 && secondLevelDomains[parts[len(parts)-2]] && len(parts[len(parts)-1]) == 2 {
		label = parts[len(parts)-3]
	} else if len(parts) >= 2 {
		label = parts[len(parts)-2]
	}
	return Humanize(label)
}

// Humanize converts a URL slug into words: separators become spaces,
// trailing requisition ids and file extensions are dropped.
func Humanize(slug string) string {
	if unescaped, err := url.PathUnescape(slug); err == nil {
		slug = unescaped
	}
	slug = fileExtension.ReplaceAllString(slug, "")
	for {
		stripped := trailingID.ReplaceAllString(slug, "")
		if stripped == slug {
			break
		}
		slug = stripped
	}
	slug = slugSeparators.ReplaceAllString(slug, " ")
	slug = strings.Join(strings.Fields(slug), " ")
	if !hasLetter.MatchString(slug) {
		return ""
	}
	// a Caser carries state, so each call gets its own
	return cases.Title(language.English, cases.NoLower).String(slug)
}

func pathSegments(p string) []string {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		if seg = strings.TrimSpace(seg); seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

func indexOf(items []string, target string) int {
	for i, item := range items {
		if strings.EqualFold(item, target) {
			return i
		}
	}
	return -1
}
