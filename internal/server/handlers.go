package server

import (
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strconv"

	"kbarticle/enhancer/internal/domain"
	"kbarticle/enhancer/internal/page"
	"kbarticle/enhancer/internal/service"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

const (
	maxPageSize = 8 << 20
	podCookie   = "POD"
)

var mobileAgent = regexp.MustCompile(`(?i)mobile|iphone|ipad|ipod|android`)

// IsMobile reports whether the user agent belongs to a phone or tablet
func IsMobile(userAgent string) bool {
	return mobileAgent.MatchString(userAgent)
}

func (s *Server) handleNavTags(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	settings := domain.NavTagSettings{
		Show:    true,
		Heading: q.Get("heading"),
		Suffix:  q.Get("suffix"),
	}
	if v := q.Get("show"); v != "" {
		show, err := strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "show must be a boolean", http.StatusBadRequest)
			return
		}
		settings.Show = show
	}

	markup, err := s.svc.RenderNavTags(r.Context(), chi.URLParam(r, "locale"), chi.URLParam(r, "articleID"), q.Get("publishedDate"), settings)
	if err != nil {
		log.Warnf("⚠️ Nav tags for %s unavailable: %v", chi.URLParam(r, "articleID"), err)
		http.Error(w, "nav tags unavailable", http.StatusBadGateway)
		return
	}

	writeHTML(w, http.StatusOK, markup)
}

func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPageSize))
	if err != nil {
		http.Error(w, "page too large", http.StatusRequestEntityTooLarge)
		return
	}

	enhanced, err := s.svc.EnhancePage(r.Context(), string(body), service.EnhanceOptions{
		Mobile: IsMobile(r.UserAgent()),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if header := enhanced.Config.Header; header.SetPod.Bool() && header.PodValue != "" {
		http.SetCookie(w, &http.Cookie{Name: podCookie, Value: header.PodValue, Path: "/"})
	}

	writeHTML(w, http.StatusOK, enhanced.HTML)
}

func (s *Server) handleRating(w http.ResponseWriter, r *http.Request) {
	var req service.RatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid rating payload", http.StatusBadRequest)
		return
	}

	outcome, err := s.svc.Rate(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	target, err := page.QuestionURL(s.cfg.QuestionAction, r.PostForm.Get("articleId"), r.PostForm.Get("articleQuestion"), s.cfg.QuestionPlaceholder)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
