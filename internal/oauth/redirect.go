package oauth

import (
	"html/template"
	"io"
	"net/url"
)

// SlackRedirectURL points the app's URL scheme at the Slack code. State is
// omitted when empty.
func SlackRedirectURL(scheme, code, state string) string {
	q := url.Values{}
	q.Set("code", code)
	if state != "" {
		q.Set("state", state)
	}
	return scheme + "://auth/slack?" + q.Encode()
}

// BasecampRedirectURL points the app's URL scheme at the Basecamp code.
// State is always present, possibly empty.
func BasecampRedirectURL(scheme, code, state string) string {
	q := url.Values{}
	q.Set("code", code)
	q.Set("state", state)
	return scheme + "://oauth/callback?" + q.Encode()
}

var callbackPage = template.Must(template.New("callback").Parse(`<!DOCTYPE html>
<html>
<head>
  <title>Authentication Successful</title>
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <script>
    window.location.href = {{.RedirectURL}};
  </script>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      flex-direction: column;
      align-items: center;
      justify-content: center;
      height: 100vh;
      margin: 0;
      padding: 20px;
      text-align: center;
      background-color: #f5f5f7;
    }
    h1 { margin-bottom: 20px; color: #1d1d1f; }
    p { color: #86868b; margin-bottom: 30px; }
  </style>
</head>
<body>
  <h1>Authentication Successful</h1>
  <p>Redirecting back to {{.AppName}}...</p>
</body>
</html>
`))

// WriteCallbackPage renders the page that hands the browser back to the app.
func WriteCallbackPage(w io.Writer, redirectURL string) error {
	return callbackPage.Execute(w, struct {
		RedirectURL string
		AppName     string
	}{
		RedirectURL: redirectURL,
		AppName:     "Promise Keeper app",
	})
}
