package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJobTitle(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		want   string
		wantOK bool
	}{
		{name: "linkedin suffix", title: "Senior Go Engineer - Acme | LinkedIn", want: "Senior Go Engineer - Acme", wantOK: true},
		{name: "indeed suffix", title: "Backend Developer - Indeed.com", want: "Backend Developer", wantOK: true},
		{name: "stacked suffixes", title: "Data Engineer | Careers | Lever", want: "Data Engineer", wantOK: true},
		{name: "greenhouse prefix", title: "Job Application for Platform Engineer at Globex", want: "Platform Engineer at Globex", wantOK: true},
		{name: "careers at tail", title: "Staff SRE — Careers at Initech", want: "Staff SRE", wantOK: true},
		{name: "login wall", title: "Sign In | LinkedIn", wantOK: false},
		{name: "cloudflare interstitial", title: "Just a moment...", wantOK: false},
		{name: "too short", title: "SRE | LinkedIn", wantOK: false},
		{name: "only board name", title: "LinkedIn", wantOK: false},
		{name: "empty", title: "   ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CleanJobTitle(tt.title)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
