package adapthttp

import (
	"net/http"
	"strings"

	"fitlog/internal/app"
)

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		email, ok := accountParam(w, r)
		if !ok {
			return
		}
		p, err := s.profile.Get(r.Context(), email)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)

	case http.MethodPut:
		var body app.ProfileUpdate
		if err := parseJSON(r, &body); err != nil {
			writeError(w, err)
			return
		}
		body.Email = strings.TrimSpace(body.Email)
		if err := authorizeAccount(r, body.Email); err != nil {
			writeError(w, err)
			return
		}
		if _, err := s.profile.Update(r.Context(), body); err != nil {
			writeError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "Profile updated successfully")

	default:
		methodNotAllowed(w)
	}
}
