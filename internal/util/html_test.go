package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPageTitle(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "title element",
			doc:  `<html><head><title>  Senior Go Engineer
				| Acme </title></head><body></body></html>`,
			want: "Senior Go Engineer | Acme",
		},
		{
			name: "og title fallback",
			doc:  `<html><head><meta property="og:title" content="Platform Engineer"></head><body></body></html>`,
			want: "Platform Engineer",
		},
		{
			name: "title wins over og title",
			doc:  `<html><head><meta property="og:title" content="OG"><title>Real</title></head></html>`,
			want: "Real",
		},
		{
			name: "no title",
			doc:  `<html><body><h1>Hello</h1></body></html>`,
			want: "",
		},
		{
			name: "empty document",
			doc:  ``,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPageTitle(strings.NewReader(tt.doc)))
		})
	}
}
