package shell

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandPID(t *testing.T) {
	cases := []struct {
		line     string
		expected string
	}{
		{"echo $$", "echo 4242"},
		{"echo $$$$", "echo 42424242"},
		{"echo $$$", "echo 4242$"},
		{"echo $HOME $", "echo $HOME $"},
		{"mkdir dir.$$ && cd dir.$$", "mkdir dir.4242 && cd dir.4242"},
		{"no expansion", "no expansion"},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			assert.Equal(t, tc.expected, ExpandPID(tc.line, 4242))
		})
	}
}

func TestIsComment(t *testing.T) {
	assert.True(t, IsComment(""))
	assert.True(t, IsComment("   \t"))
	assert.True(t, IsComment("# a comment"))
	assert.True(t, IsComment("#ls"))
	assert.False(t, IsComment(" # indented is a command"))
	assert.False(t, IsComment("ls #"))
}

func TestFirstToken(t *testing.T) {
	cases := []struct {
		line string
		name string
		rest string
	}{
		{"cd", "cd", ""},
		{"cd /tmp", "cd", "/tmp"},
		{"  cd \t  some dir", "cd", "some dir"},
		{"status", "status", ""},
		{"", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			name, rest := FirstToken(tc.line)
			assert.Equal(t, tc.name, name)
			assert.Equal(t, tc.rest, rest)
		})
	}
}

func TestParser_Expand(t *testing.T) {
	p := &Parser{PID: 7, MaxLineLength: 10}

	line, err := p.Expand("echo $$\n")
	assert.Nil(t, err)
	assert.Equal(t, "echo 7", line)

	_, err = p.Expand(strings.Repeat("x", 11))
	assert.True(t, errors.Is(err, ErrLineTooLong))
}

func TestParser_Parse(t *testing.T) {
	cases := map[string]struct {
		line     string
		expected *Request
	}{
		"simple": {
			line:     "ls -la",
			expected: &Request{Command: "ls", Args: []string{"ls", "-la"}},
		},
		"redirects": {
			line: "sort < in.txt > out.txt",
			expected: &Request{
				Command:    "sort",
				Args:       []string{"sort"},
				InputFile:  "in.txt",
				OutputFile: "out.txt",
			},
		},
		"background": {
			line:     "sleep 5 &",
			expected: &Request{Command: "sleep", Args: []string{"sleep", "5"}, Background: true},
		},
		"ampersand-not-last": {
			line:     "echo & done",
			expected: &Request{Command: "echo", Args: []string{"echo", "&", "done"}},
		},
		"redirect-and-background": {
			line: "wc < f > g &",
			expected: &Request{
				Command:    "wc",
				Args:       []string{"wc"},
				InputFile:  "f",
				OutputFile: "g",
				Background: true,
			},
		},
		"quoted": {
			line:     `echo "hello world"`,
			expected: &Request{Command: "echo", Args: []string{"echo", "hello world"}},
		},
		"empty": {
			line:     "   ",
			expected: nil,
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			p := &Parser{}
			actual, err := p.Parse(tc.line)
			assert.Nil(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestParser_ParseErrors(t *testing.T) {
	cases := map[string]struct {
		line string
		err  error
	}{
		"dangling-input":  {"cat <", ErrSyntax},
		"dangling-output": {"ls >", ErrSyntax},
		"only-redirect":   {"< in.txt", ErrSyntax},
		"unclosed-quote":  {`echo "oops`, ErrSyntax},
		"too-many-args":   {"a b c d", ErrTooManyArgs},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			p := &Parser{MaxArgs: 3}
			req, err := p.Parse(tc.line)
			assert.Nil(t, req)
			assert.True(t, errors.Is(err, tc.err), "got %v", err)
		})
	}
}

func TestRequest_String(t *testing.T) {
	req := &Request{
		Command:    "sort",
		Args:       []string{"sort", "-r"},
		InputFile:  "in",
		OutputFile: "out",
		Background: true,
	}

	assert.Equal(t, "sort -r < in > out &", req.String())
}
