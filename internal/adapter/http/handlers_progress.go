package adapthttp

import (
	"net/http"
)

// accountParam reads ?email= and checks it against the signed-in caller.
func accountParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	email, err := emailQuery(r)
	if err == nil {
		err = authorizeAccount(r, email)
	}
	if err != nil {
		writeError(w, err)
		return "", false
	}
	return email, true
}

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	email, ok := accountParam(w, r)
	if !ok {
		return
	}
	if err := s.progress.CheckIn(r.Context(), email, s.now()); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Workout logged successfully")
}

func (s *Server) handleWeeklySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	email, ok := accountParam(w, r)
	if !ok {
		return
	}
	summary, err := s.progress.WeeklySummary(r.Context(), email, s.now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleDailyCheckins(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	email, ok := accountParam(w, r)
	if !ok {
		return
	}
	days, err := s.progress.DailyCheckins(r.Context(), email, s.now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

func (s *Server) handleLegacyProgress(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/progress" {
		writeDetail(w, http.StatusNotFound, "Not Found")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	email, ok := accountParam(w, r)
	if !ok {
		return
	}
	p, err := s.legacy.Get(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
