package util

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	u, err := NormalizeURL("  www.acme.com/careers/go-engineer ")
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "www.acme.com", u.Host)

	for _, raw := range []string{"", "   ", "ftp://acme.com/job", "https://", "http://%zz"} {
		_, err := NormalizeURL(raw)
		assert.Error(t, err, raw)
	}
}

func TestSlugQuery(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "linkedin view slug",
			url:  "https://www.linkedin.com/jobs/view/senior-go-engineer-at-acme-3812345678/",
			want: "Senior Go Engineer At Acme",
		},
		{
			name: "linkedin numeric only falls back to site",
			url:  "https://www.linkedin.com/jobs/view/3812345678",
			want: "Linkedin",
		},
		{
			name: "greenhouse company",
			url:  "https://boards.greenhouse.io/acmecorp/jobs/4012345",
			want: "Acmecorp",
		},
		{
			name: "lever company",
			url:  "https://jobs.lever.co/globex/8f2a6a9e-1c2b-4c1d-9a8b-123456789abc",
			want: "Globex",
		},
		{
			name: "workday title",
			url:  "https://acme.wd5.myworkdayjobs.com/External/job/Berlin/Staff-Platform-Engineer_R12345",
			want: "Staff Platform Engineer",
		},
		{
			name: "generic last segment",
			url:  "https://careers.initech.com/en-us/positions/backend_developer-golang.html",
			want: "Backend Developer Golang",
		},
		{
			name: "generic skips ids and trivial segments",
			url:  "https://jobs.example.org/data-engineer/apply/98765",
			want: "Data Engineer",
		},
		{
			name: "no path uses host label",
			url:  "https://careers.hooli.co.uk/",
			want: "Hooli",
		},
		{
			name: "percent encoded spaces",
			url:  "https://acme.io/jobs/Site%20Reliability%20Engineer",
			want: "Site Reliability Engineer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NormalizeURL(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, SlugQuery(u))
		})
	}
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Senior SRE", Humanize("senior-SRE"))
	assert.Equal(t, "", Humanize("12345"))
	assert.Equal(t, "", Humanize("---"))
	assert.Equal(t, "Go Developer Remote Job", Humanize("go-developer-remote-job-12345.html"))
}

func TestSlugQuery_Concurrent(t *testing.T) {
	u, err := NormalizeURL("https://careers.acme.com/jobs/senior-platform-engineer-remote")
	require.NoError(t, err)

	const workers, rounds = 64, 200
	var wg sync.WaitGroup
	got := make([][]string, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				got[w] = append(got[w], SlugQuery(u))
			}
		}(w)
	}
	wg.Wait()

	for _, results := range got {
		require.Len(t, results, rounds)
		for _, q := range results {
			assert.Equal(t, "Senior Platform Engineer Remote", q)
		}
	}
}
