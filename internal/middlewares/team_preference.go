package middlewares

import (
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const sessionName = "tracker_session"
const activeTeamKey = "active_team"

// SessionMiddleware backs the per-browser team preference with a signed
// cookie store.
func SessionMiddleware(secret string) echo.MiddlewareFunc {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
	}
	return session.Middleware(store)
}

// GetPreferredTeam returns the team preference stored in the session, or ""
// when there is none.
func GetPreferredTeam(c echo.Context) string {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return ""
	}
	teamID, _ := sess.Values[activeTeamKey].(string)
	return teamID
}

// SetPreferredTeam persists a team preference in the session. A session save
// failure only loses the preference, so it is not propagated.
func SetPreferredTeam(c echo.Context, teamID string) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return
	}
	sess.Values[activeTeamKey] = teamID
	_ = sess.Save(c.Request(), c.Response())
}
