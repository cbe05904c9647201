package util

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const minTitleLength = 5

const jobBoardNames = `linkedin|indeed(\.com)?|glassdoor|greenhouse|lever|workday|wellfound|angellist|ziprecruiter|monster|dice|built ?in|smartrecruiters|ashby|otta|remote ?ok|we work remotely|jobs?|careers?( at [^|]+)?`

var (
	jobBoardSuffix = regexp.MustCompile(`(?i)\s*[|\-–—:·]\s*(` + jobBoardNames + `)\s*$`)
	jobBoardOnly   = regexp.MustCompile(`(?i)^(` + jobBoardNames + `)$`)
	titlePrefix    = regexp.MustCompile(`(?i)^(job application for|apply for|apply now:?|job:)\s+`)
	authWall       = regexp.MustCompile(`(?i)\b(sign ?in|log ?in|login|sign ?up|join linkedin|access denied|just a moment|attention required|security check|captcha|verify you are (a )?human|are you a robot|page not found|not found|forbidden|404)\b`)
)

// CleanJobTitle strips job-board decoration from a page title and reports
// whether what is left is plausibly a role name.
func CleanJobTitle(title string) (string, bool) {
	title = collapseSpaces(title)
	if title == "" || authWall.MatchString(title) {
		return "", false
	}

	for {
		stripped := jobBoardSuffix.ReplaceAllString(title, "")
		if stripped == title {
			break
		}
		title = stripped
	}
	title = titlePrefix.ReplaceAllString(title, "")
	title = strings.TrimSpace(title)

	if jobBoardOnly.MatchString(title) || utf8.RuneCountInString(title) < minTitleLength {
		return "", false
	}
	return title, true
}
