// File: cmd/scan_test.go
package cmd

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geofill/geofill-cli/api/schemas"
	"github.com/geofill/geofill-cli/internal/browser/scanner"
)

const signupPage = `<!DOCTYPE html>
<html lang="en"><head><title>Create your account</title></head>
<body>
<h1>Sign up</h1>
<form action="/register" method="post">
  <fieldset><legend>About you</legend>
    <label for="first_name">First name</label><input id="first_name" name="first_name" required>
    <label for="last_name">Last name</label><input id="last_name" name="last_name">
  </fieldset>
  <label>Email <input type="email" name="email" autocomplete="email"></label>
  <input name="city" placeholder="City">
  <input name="zip" placeholder="ZIP code" pattern="[0-9]{5}">
  <input type="hidden" name="csrf" value="t0k3n">
  <button type="submit">Register</button>
</form>
</body></html>`

func signupServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/signup" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, signupPage)
	}))
	t.Cleanup(server.Close)
	return server
}

func decodeOutcomes(t *testing.T, out string) []scanner.Outcome {
	t.Helper()
	var outcomes []scanner.Outcome
	require.NoError(t, json.UnmarshalFromString(out, &outcomes), out)
	return outcomes
}

func TestScan(t *testing.T) {
	server := signupServer(t)

	t.Run("SingleTarget", func(t *testing.T) {
		out, err := executeCommand(t, "", "scan", server.URL+"/signup")
		require.NoError(t, err)

		outcomes := decodeOutcomes(t, out)
		require.Len(t, outcomes, 1)
		res := outcomes[0].Result
		require.NotNil(t, res)

		assert.Equal(t, schemas.PageRegister, res.Page.PageType)
		assert.Equal(t, "en", res.Page.Language)
		assert.Equal(t, []string{server.URL + "/register"}, res.Page.FormActions)

		ids := make([]string, 0, len(res.Fields))
		for _, f := range res.Fields {
			ids = append(ids, f.ID)
		}
		assert.Equal(t, []string{"first_name", "last_name", "email", "city", "zip"}, ids)

		first := res.Fields[0]
		assert.Equal(t, "First name", first.Label)
		assert.Equal(t, schemas.LabelSourceFor, first.LabelSource)
		assert.Equal(t, "About you", first.Group)
		assert.True(t, first.Required)
		assert.Equal(t, "[0-9]{5}", res.Fields[4].Pattern)
	})

	t.Run("PartialFailure", func(t *testing.T) {
		out, err := executeCommand(t, "", "scan", server.URL+"/signup", server.URL+"/missing.json")
		require.NoError(t, err)

		outcomes := decodeOutcomes(t, out)
		require.Len(t, outcomes, 2)
		assert.NotNil(t, outcomes[0].Result)
		assert.Nil(t, outcomes[1].Result)
		assert.NotEmpty(t, outcomes[1].Error)
	})

	t.Run("AllFailed", func(t *testing.T) {
		_, err := executeCommand(t, "", "scan", filepath.Join(t.TempDir(), "nope.html"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "all 1 targets failed")
	})

	t.Run("LocalFileMarkdown", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "signup.html")
		require.NoError(t, os.WriteFile(path, []byte(signupPage), 0o644))

		out, err := executeCommand(t, "", "scan", "-f", "markdown", path)
		require.NoError(t, err)
		assert.Contains(t, out, "# Form scan")
		assert.Contains(t, out, "first_name")
		assert.Contains(t, out, "About you")
		assert.NotContains(t, out, "csrf")
	})

	t.Run("NoTargets", func(t *testing.T) {
		_, err := executeCommand(t, "", "scan")
		assert.Error(t, err)
	})
}
