package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/hnscope/pkg/domain"
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.opts.Version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// analyzeHandler streams processed stories as server-sent events
func (s *Server) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	offset, err := intParam(r, "offset", 0)
	if err != nil || offset < 0 {
		renderError(w, r, errors.New("offset must be a non-negative integer"), http.StatusBadRequest)
		return
	}
	limit, err := intParam(r, "limit", 10)
	if err != nil || limit < 1 || limit > s.opts.MaxLimit {
		renderError(w, r, fmt.Errorf("limit must be an integer between 1 and %d", s.opts.MaxLimit), http.StatusBadRequest)
		return
	}

	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		lgr.Printf("[WARN] can't lift write deadline for event stream: %v", err)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)

	count := 0
	for ev := range s.streamer.Stream(r.Context(), offset, limit) {
		if err := writeEvent(w, ev); err != nil {
			lgr.Printf("[WARN] event stream to %s stopped: %v", r.RemoteAddr, err)
			return
		}
		if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			lgr.Printf("[WARN] event stream to %s stopped, can't flush: %v", r.RemoteAddr, err)
			return
		}
		count++
	}
	lgr.Printf("[DEBUG] event stream done, offset=%d, limit=%d, events=%d", offset, limit, count)
}

// screenshotHandler captures a screenshot of the given url for story id
func (s *Server) screenshotHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		renderError(w, r, errors.New("invalid story id"), http.StatusBadRequest)
		return
	}
	target, err := articleURL(r.URL.Query().Get("url"))
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	res := s.capturer.Capture(r.Context(), target, id)
	if !res.OK() {
		reason := res.Reason
		if reason == "" {
			reason = "Failed to take screenshot"
		}
		renderJSON(w, r, http.StatusOK, map[string]string{"error": reason})
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"screenshot_path": res.Path})
}

// debugFrontpageHandler returns the first listing page as scraped
func (s *Server) debugFrontpageHandler(w http.ResponseWriter, r *http.Request) {
	page, err := s.fetcher.ListStories(r.Context(), 0, s.opts.MaxLimit)
	if err != nil {
		lgr.Printf("[WARN] debug frontpage failed: %v", err)
		renderError(w, r, err, http.StatusBadGateway)
		return
	}

	type listed struct {
		ID            int64  `json:"id"`
		Title         string `json:"title"`
		URL           string `json:"url"`
		ArticleURL    string `json:"article_url"`
		Points        int    `json:"points"`
		Author        string `json:"author"`
		CommentsCount int    `json:"comments_count"`
		Time          int64  `json:"time"`
	}
	stories := make([]listed, 0, len(page.Stories))
	for _, st := range page.Stories {
		stories = append(stories, listed{ID: st.ID, Title: st.Title, URL: st.URL, ArticleURL: st.ArticleURL,
			Points: st.Points, Author: st.Author, CommentsCount: st.CommentsCount, Time: st.Time})
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"stories": stories, "has_more": page.HasMore})
}

// debugArticleHandler returns the extracted article for the url
func (s *Server) debugArticleHandler(w http.ResponseWriter, r *http.Request) {
	target, err := articleURL(r.URL.Query().Get("url"))
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	article, err := s.fetcher.FetchArticle(r.Context(), target)
	if err != nil {
		lgr.Printf("[WARN] debug article %s failed: %v", target, err)
		renderError(w, r, err, http.StatusBadGateway)
		return
	}
	renderJSON(w, r, http.StatusOK, struct {
		URL      string                 `json:"url"`
		HTML     string                 `json:"html"`
		Text     string                 `json:"text"`
		Metadata domain.ArticleMetadata `json:"metadata"`
	}{URL: article.URL, HTML: article.HTML, Text: article.Text, Metadata: article.Metadata})
}

// debugCommentsHandler returns one page of the story discussion
func (s *Server) debugCommentsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id", 0)
	if err != nil || id <= 0 {
		renderError(w, r, errors.New("invalid story id"), http.StatusBadRequest)
		return
	}
	offset, err := intParam(r, "offset", 0)
	if err != nil || offset < 0 {
		renderError(w, r, errors.New("offset must be a non-negative integer"), http.StatusBadRequest)
		return
	}

	page, err := s.fetcher.FetchComments(r.Context(), int64(id), offset, s.opts.CommentsLimit)
	if err != nil {
		lgr.Printf("[WARN] debug comments for %d failed: %v", id, err)
		renderError(w, r, err, http.StatusBadGateway)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"comments": page.Comments, "has_more": page.HasMore})
}

// intParam reads an integer query parameter, def is used when it is absent
func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	return n, nil
}

// articleURL checks the url is an absolute http(s) address
func articleURL(raw string) (string, error) {
	if raw == "" {
		return "", errors.New("url is required")
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid url %q", raw)
	}
	return u.String(), nil
}
