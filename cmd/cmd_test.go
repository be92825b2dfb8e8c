package cmd

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const octocatRepos = `[
	{"id": 1, "name": "Hello-World", "full_name": "octocat/Hello-World", "owner": {"login": "octocat"},
	 "html_url": "https://github.com/octocat/Hello-World", "description": "My first repository", "stargazers_count": 5, "language": "Go"}
]`

// newTestServer serves octocat and answers 404 for everyone else.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/users/octocat/repos" {
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, octocatRepos)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	}))
	t.Cleanup(server.Close)
	return server
}

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func isolate(t *testing.T) (stateDir string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, key := range []string{"BASE_URL", "STATE_DIR", "FORMAT", "SUMMARY", "QR"} {
		t.Setenv("GITHUB_REPOS_"+key, "")
	}
	return t.TempDir()
}

func TestSearch(t *testing.T) {
	server := newTestServer(t)

	testCases := []struct {
		name           string
		args           []string
		expectError    bool
		stdoutContains []string
		stderrContains []string
	}{
		{
			name:           "happy path - table",
			args:           []string{"search", "octocat"},
			stdoutContains: []string{"Hello-World", "https://github.com/octocat/Hello-World"},
		},
		{
			name:           "happy path - json with share",
			args:           []string{"search", "octocat", "--format", "json", "--share", "1"},
			stdoutContains: []string{`"full_name": "octocat/Hello-World"`, "\nhttps://github.com/octocat/Hello-World\n"},
		},
		{
			name:           "summary footer",
			args:           []string{"search", "octocat", "--summary"},
			stdoutContains: []string{"1 repositories, 5 stars (mean 5.0, median 5.0)"},
		},
		{
			name:           "error case - unknown user",
			args:           []string{"search", "nonexistent-user-xyz"},
			expectError:    true,
			stderrContains: []string{"! User not found"},
		},
		{
			name:           "error case - blank username",
			args:           []string{"search", "   "},
			expectError:    true,
			stderrContains: []string{"! Please enter a GitHub username"},
		},
		{
			name:        "error case - row out of range",
			args:        []string{"search", "octocat", "--share", "2"},
			expectError: true,
		},
		{
			name:        "error case - bad format",
			args:        []string{"search", "octocat", "--format", "xml"},
			expectError: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stateDir := isolate(t)
			args := append(tc.args, "--base-url", server.URL, "--state-dir", stateDir)

			res := run(t, "", args...)
			if tc.expectError {
				assert.Error(t, res.err)
			} else {
				assert.NoError(t, res.err)
			}
			for _, s := range tc.stdoutContains {
				assert.Contains(t, res.stdout, s)
			}
			for _, s := range tc.stderrContains {
				assert.Contains(t, res.stderr, s)
			}
		})
	}
}

func TestSearch_RemembersUsername(t *testing.T) {
	server := newTestServer(t)
	stateDir := isolate(t)
	flags := []string{"--base-url", server.URL, "--state-dir", stateDir}

	// Nothing remembered yet: startup searches an empty name and fails.
	res := run(t, "", append([]string{"search"}, flags...)...)
	assert.Error(t, res.err)
	assert.Contains(t, res.stderr, "User not found")

	res = run(t, "", append([]string{"whoami"}, flags...)...)
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)

	// A failed search is not remembered.
	res = run(t, "", append([]string{"search", "nonexistent-user-xyz"}, flags...)...)
	assert.Error(t, res.err)
	res = run(t, "", append([]string{"whoami"}, flags...)...)
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)

	res = run(t, "", append([]string{"search", "octocat"}, flags...)...)
	require.NoError(t, res.err)

	res = run(t, "", append([]string{"whoami"}, flags...)...)
	require.NoError(t, res.err)
	assert.Equal(t, "octocat\n", res.stdout)

	// Without an argument the remembered user is searched again.
	res = run(t, "", append([]string{"search"}, flags...)...)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Hello-World")
}

func TestBrowse(t *testing.T) {
	server := newTestServer(t)
	stateDir := isolate(t)
	flags := []string{"--base-url", server.URL, "--state-dir", stateDir}

	res := run(t, "\noctocat\nopen x\n", append([]string{"browse"}, flags...)...)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Hello-World")
	assert.Contains(t, res.stderr, "! Please enter a GitHub username")
	assert.Contains(t, res.stderr, `! invalid row "x"`)
	assert.Contains(t, res.stderr, `Loading repositories for "octocat"...`)

	res = run(t, "", append([]string{"whoami"}, flags...)...)
	require.NoError(t, res.err)
	assert.Equal(t, "octocat\n", res.stdout)

	// The next session starts from the remembered user.
	res = run(t, "", append([]string{"browse"}, flags...)...)
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "username: octocat")
	assert.Contains(t, res.stdout, "Hello-World")

	res = run(t, "quit\n", append([]string{"browse"}, flags...)...)
	assert.NoError(t, res.err)
}

func TestParseCommand(t *testing.T) {
	testCases := []struct {
		line        string
		expected    command
		expectError bool
	}{
		{line: "octocat", expected: command{kind: commandSubmit, input: "octocat"}},
		{line: "  octocat ", expected: command{kind: commandSubmit, input: "  octocat "}},
		{line: "", expected: command{kind: commandSubmit, input: ""}},
		{line: "quit", expected: command{kind: commandQuit}},
		{line: "EXIT", expected: command{kind: commandQuit}},
		{line: "help", expected: command{kind: commandHelp}},
		{line: "open 3", expected: command{kind: commandOpen, row: 3}},
		{line: "share 1", expected: command{kind: commandShare, row: 1}},
		{line: "open", expectError: true},
		{line: "share 0", expectError: true},
		{line: "open two", expectError: true},
		// Keywords with extra words are usernames, which GitHub will reject.
		{line: "quit now", expected: command{kind: commandSubmit, input: "quit now"}},
	}
	for _, tc := range testCases {
		t.Run(tc.line, func(t *testing.T) {
			cmd, err := parseCommand(tc.line)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cmd)
		})
	}
}
