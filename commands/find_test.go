package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPattern(t *testing.T) {
	cases := []struct {
		re   string
		text string
		want bool
	}{
		{"b", "b", true},
		{"b", "abc", true},
		{"^b", "abc", false},
		{"^a", "abc", true},
		{"c$", "abc", true},
		{"b$", "abc", false},
		{"a.c", "abc", true},
		{"a.c", "ac", false},
		{"ab*c", "ac", true},
		{"ab*c", "abbbc", true},
		{"^.*$", "", true},
		{"^$", "x", false},
		{"", "anything", true},
		{"x*", "", true},
		{"z", "", false},
		{".go$", "main.go", true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, matchPattern(tc.re, tc.text), "matchPattern(%q, %q)", tc.re, tc.text)
	}
}

func TestFind(t *testing.T) {
	files := map[string]string{
		"/a/b":        "",
		"/a/aa/b":     "",
		"/a/aa/c.go":  "",
		"/a/bb/x.txt": "",
		"/other/b":    "",
	}

	cases := goldenTestSuite{
		"basename": {Args: []string{"find", "/a", "b"}, Files: files},
		"anchored": {Args: []string{"find", "/a", "^c"}, Files: files},
		"no-match": {Args: []string{"find", "/a", "zzz"}, Files: files},
		"missing":  {Args: []string{"find", "/nope", "b"}, Files: files},
		"usage":    {Args: []string{"find", "/a"}, Files: files},
	}

	cases.Run(t, Find)
}
