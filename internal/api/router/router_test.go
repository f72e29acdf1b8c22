package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/vidgrab/internal/api/handlers"
	"github.com/denisAlshanov/vidgrab/internal/config"
	"github.com/denisAlshanov/vidgrab/internal/models"
	"github.com/denisAlshanov/vidgrab/internal/services/auth"
	"github.com/denisAlshanov/vidgrab/internal/services/downloader"
	"github.com/denisAlshanov/vidgrab/internal/services/extractor"
	"github.com/denisAlshanov/vidgrab/internal/services/extractor/extractortest"
	"github.com/denisAlshanov/vidgrab/internal/services/metadata"
	"github.com/denisAlshanov/vidgrab/internal/services/session"
)

const cookieName = "vidgrab_session"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeChecker struct{ err error }

func (f fakeChecker) Available() error { return f.err }

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	store  *session.Store
	tokens *auth.TokenService
	cookie *http.Cookie
}

func newTestServer(t *testing.T, fake *extractortest.FakeEngine, checker fakeChecker, opts ...func(*config.Config)) *testServer {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = "0"
	cfg.Session = config.SessionConfig{Secret: "test-secret", CookieName: cookieName, TTL: time.Hour}
	cfg.API = config.APIConfig{RateLimitRequests: 1000, RateLimitWindow: time.Minute}
	for _, opt := range opts {
		opt(cfg)
	}

	base := t.TempDir()
	store := session.NewStore(time.Hour, func() (*downloader.Orchestrator, error) {
		return downloader.NewOrchestrator(fake, base, time.Minute)
	})
	t.Cleanup(store.Close)

	tokens := auth.NewTokenService(auth.TokenConfig{SecretKey: cfg.Session.Secret, Duration: cfg.Session.TTL})

	r := NewRouter(cfg, store, tokens, Handlers{
		UI:      handlers.NewUIHandler(),
		Options: handlers.NewOptionsHandler(),
		Video:   handlers.NewVideoHandler(metadata.NewFetcher(fake, time.Minute), nil, time.Second),
		Session: handlers.NewSessionHandler(),
		Health:  handlers.NewHealthHandler(checker, nil, store),
	})

	return &testServer{t: t, engine: r.Engine(), store: store, tokens: tokens}
}

// do sends a request with the server's current session cookie and keeps
// any cookie the response sets.
func (s *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			s.t.Fatal(err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}

	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			s.cookie = c
		}
	}
	return rec
}

func (s *testServer) session() *session.Session {
	s.t.Helper()
	if s.cookie == nil {
		s.t.Fatal("No session cookie issued")
	}
	id, err := s.tokens.Validate(s.cookie.Value)
	if err != nil {
		s.t.Fatalf("Invalid session cookie: %v", err)
	}
	sess, ok := s.store.Get(id)
	if !ok {
		s.t.Fatalf("Session %s not found", id)
	}
	return sess
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode error body %q: %v", rec.Body.String(), err)
	}
	if body.RequestID == "" {
		t.Error("Expected request_id in error body")
	}
	return body.Error.Code, body.Error.Message
}

func demoEngine() *extractortest.FakeEngine {
	title := "Demo Video"
	duration := 65.0
	views := int64(2_000_000)
	return &extractortest.FakeEngine{
		Info: &extractor.RawInfo{
			Title:     &title,
			Duration:  &duration,
			ViewCount: &views,
		},
		Files:      []string{"Demo Video__720p.mp4"},
		Content:    []byte("not really a video"),
		ReportPath: true,
	}
}

func TestDownloadRequiresInfo(t *testing.T) {
	fake := demoEngine()
	srv := newTestServer(t, fake, fakeChecker{})

	rec := srv.do(http.MethodPost, "/api/v1/video/download", models.DownloadRequest{URL: "https://example.com/v"})

	if rec.Code != http.StatusPreconditionFailed {
		t.Fatalf("Expected 412, got %d: %s", rec.Code, rec.Body.String())
	}
	code, message := errorCode(t, rec)
	if code != "INFO_REQUIRED" || message != "Please get video info first!" {
		t.Errorf("Unexpected error: %s %q", code, message)
	}
	if info, download := fake.Calls(); info != 0 || download != 0 {
		t.Errorf("Expected no engine calls, got info=%d download=%d", info, download)
	}
}

func TestInfoDownloadAndFile(t *testing.T) {
	fake := demoEngine()
	srv := newTestServer(t, fake, fakeChecker{})

	rec := srv.do(http.MethodPost, "/api/v1/video/info", models.InfoRequest{URL: " https://example.com/v "})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 from info, got %d: %s", rec.Code, rec.Body.String())
	}
	var info models.InfoResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatal(err)
	}
	if info.Video.Title != "Demo Video" || info.Video.DurationText != "01:05" || info.Video.ViewsText != "2.0M views" {
		t.Errorf("Unexpected summary: %+v", info.Video)
	}
	if fake.LastURL != "https://example.com/v" {
		t.Errorf("Expected trimmed URL, got %q", fake.LastURL)
	}

	rec = srv.do(http.MethodPost, "/api/v1/video/download", models.DownloadRequest{
		URL:              "https://example.com/v",
		Quality:          "720p",
		IncludeSubtitles: true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 from download, got %d: %s", rec.Code, rec.Body.String())
	}
	var download models.DownloadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &download); err != nil {
		t.Fatal(err)
	}
	if download.File.FileName != "Demo Video__720p.mp4" {
		t.Errorf("Unexpected file name: %s", download.File.FileName)
	}
	if download.SizeText != "0.00 MB" || download.DownloadURL != "/api/v1/video/file" {
		t.Errorf("Unexpected download response: %+v", download)
	}
	if !strings.HasSuffix(fake.LastConfig.OutputTemplate, "%(title)s__720p.%(ext)s") {
		t.Errorf("Unexpected output template: %s", fake.LastConfig.OutputTemplate)
	}
	if !fake.LastConfig.WriteSubtitles {
		t.Error("Expected subtitles to be requested")
	}

	rec = srv.do(http.MethodGet, "/api/v1/video/file", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 from file, got %d", rec.Code)
	}
	if rec.Body.String() != "not really a video" {
		t.Errorf("Unexpected file body: %q", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/octet-stream" {
		t.Errorf("Expected octet-stream, got %s", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment") || !strings.Contains(cd, "720p.mp4") {
		t.Errorf("Unexpected Content-Disposition: %s", cd)
	}

	rec = srv.do(http.MethodGet, "/api/v1/session", nil)
	var view models.SessionView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatal(err)
	}
	if !view.HasInfo || view.Quality != models.Quality720p || !view.IncludeSubtitles || view.LastFile != "Demo Video__720p.mp4" {
		t.Errorf("Unexpected session view: %+v", view)
	}

	rec = srv.do(http.MethodGet, "/api/v1/video/progress", nil)
	var progress models.Progress
	if err := json.Unmarshal(rec.Body.Bytes(), &progress); err != nil {
		t.Fatal(err)
	}
	if progress.Status != models.ProgressStatusFinished || progress.Percent != 100 {
		t.Errorf("Unexpected progress: %+v", progress)
	}
}

func TestInfoValidation(t *testing.T) {
	testCases := []struct {
		name string
		body interface{}
	}{
		{"missing url", map[string]string{}},
		{"blank url", models.InfoRequest{URL: "   "}},
		{"not json", "plain text"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fake := demoEngine()
			srv := newTestServer(t, fake, fakeChecker{})

			rec := srv.do(http.MethodPost, "/api/v1/video/info", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Expected 400, got %d", rec.Code)
			}
			if code, _ := errorCode(t, rec); code != "VALIDATION_ERROR" {
				t.Errorf("Expected VALIDATION_ERROR, got %s", code)
			}
			if info, _ := fake.Calls(); info != 0 {
				t.Error("Expected no engine call for invalid input")
			}
		})
	}
}

func TestInfoFailureKeepsGateClosed(t *testing.T) {
	fake := demoEngine()
	fake.InfoErr = errors.New("Unsupported URL")
	srv := newTestServer(t, fake, fakeChecker{})

	rec := srv.do(http.MethodPost, "/api/v1/video/info", models.InfoRequest{URL: "not-a-url"})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("Expected 502, got %d", rec.Code)
	}
	if code, _ := errorCode(t, rec); code != "METADATA_FETCH_FAILED" {
		t.Errorf("Expected METADATA_FETCH_FAILED, got %s", code)
	}

	rec = srv.do(http.MethodPost, "/api/v1/video/download", models.DownloadRequest{URL: "not-a-url"})
	if rec.Code != http.StatusPreconditionFailed {
		t.Errorf("Expected 412 after failed fetch, got %d", rec.Code)
	}
}

func TestDownloadFailure(t *testing.T) {
	fake := demoEngine()
	fake.DownloadErr = errors.New("HTTP Error 403: Forbidden")
	srv := newTestServer(t, fake, fakeChecker{})

	srv.do(http.MethodPost, "/api/v1/video/info", models.InfoRequest{URL: "https://example.com/v"})
	rec := srv.do(http.MethodPost, "/api/v1/video/download", models.DownloadRequest{URL: "https://example.com/v"})

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("Expected 502, got %d", rec.Code)
	}
	if code, _ := errorCode(t, rec); code != "DOWNLOAD_FAILED" {
		t.Errorf("Expected DOWNLOAD_FAILED, got %s", code)
	}
	if p := srv.session().Progress(); p.Status != models.ProgressStatusError || p.Error == "" {
		t.Errorf("Expected error progress, got %+v", p)
	}

	rec = srv.do(http.MethodGet, "/api/v1/video/file", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for file after failed download, got %d", rec.Code)
	}
}

func TestDownloadInProgress(t *testing.T) {
	fake := demoEngine()
	fake.Block = make(chan struct{})
	srv := newTestServer(t, fake, fakeChecker{})

	srv.do(http.MethodPost, "/api/v1/video/info", models.InfoRequest{URL: "https://example.com/v"})
	cookie := srv.cookie

	done := make(chan int, 1)
	go func() {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/video/download", strings.NewReader(`{"url":"https://example.com/v"}`))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		srv.engine.ServeHTTP(rec, req)
		done <- rec.Code
	}()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, download := fake.Calls(); download == 1 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	sess := srv.session()
	if p := sess.Progress(); p.Status != models.ProgressStatusStarting {
		t.Errorf("Expected starting progress while the engine runs, got %s", p.Status)
	}
	sess.UpdateProgress(models.Progress{Status: models.ProgressStatusDownloading, Percent: 40, ETASeconds: -1})

	rec := srv.do(http.MethodPost, "/api/v1/video/download", models.DownloadRequest{URL: "https://example.com/v"})
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected 409, got %d", rec.Code)
	}
	if p := sess.Progress(); p.Status != models.ProgressStatusDownloading || p.Percent != 40 {
		t.Errorf("Expected the rejected download to leave progress alone, got %+v", p)
	}

	close(fake.Block)
	if code := <-done; code != http.StatusOK {
		t.Errorf("Expected first download to succeed, got %d", code)
	}
}

func TestClearCacheClosesGate(t *testing.T) {
	srv := newTestServer(t, demoEngine(), fakeChecker{})

	srv.do(http.MethodPost, "/api/v1/video/info", models.InfoRequest{URL: "https://example.com/v"})

	rec := srv.do(http.MethodDelete, "/api/v1/session/cache", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	rec = srv.do(http.MethodPost, "/api/v1/video/download", models.DownloadRequest{URL: "https://example.com/v"})
	if rec.Code != http.StatusPreconditionFailed {
		t.Errorf("Expected 412 after clearing the cache, got %d", rec.Code)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	fake := demoEngine()
	first := newTestServer(t, fake, fakeChecker{})
	first.do(http.MethodPost, "/api/v1/video/info", models.InfoRequest{URL: "https://example.com/v"})

	// A second browser on the same server has no cookie yet
	second := &testServer{t: t, engine: first.engine, store: first.store, tokens: first.tokens}
	rec := second.do(http.MethodPost, "/api/v1/video/download", models.DownloadRequest{URL: "https://example.com/v"})
	if rec.Code != http.StatusPreconditionFailed {
		t.Errorf("Expected 412 for a fresh session, got %d", rec.Code)
	}
	if first.session().ID == second.session().ID {
		t.Error("Expected distinct sessions")
	}
}

func TestInvalidCookieStartsNewSession(t *testing.T) {
	srv := newTestServer(t, demoEngine(), fakeChecker{})
	srv.cookie = &http.Cookie{Name: cookieName, Value: "tampered"}

	rec := srv.do(http.MethodGet, "/api/v1/session", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var view models.SessionView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatal(err)
	}
	if view.SessionID != "" || view.HasInfo || view.Quality != models.QualityHighest {
		t.Errorf("Expected the default view, got %+v", view)
	}
	if srv.cookie.Value != "tampered" || srv.store.Count() != 0 {
		t.Fatal("Expected a read-only request not to start a session")
	}

	rec = srv.do(http.MethodDelete, "/api/v1/session/cache", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if srv.cookie.Value == "tampered" {
		t.Fatal("Expected a fresh session cookie")
	}
	if !srv.cookie.HttpOnly {
		t.Error("Expected the session cookie to be HttpOnly")
	}
	if srv.store.Count() != 1 {
		t.Errorf("Expected one session, got %d", srv.store.Count())
	}
}

func TestIndexAndOptions(t *testing.T) {
	srv := newTestServer(t, demoEngine(), fakeChecker{})

	rec := srv.do(http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("Unexpected index response: %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), "Get Video Info") {
		t.Error("Expected the UI page")
	}
	if srv.cookie != nil || srv.store.Count() != 0 {
		t.Error("Expected the index page not to start a session")
	}

	rec = srv.do(http.MethodGet, "/api/v1/options", nil)
	var options models.OptionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &options); err != nil {
		t.Fatal(err)
	}
	if len(options.Qualities) != 6 || options.DefaultQuality != models.QualityHighest {
		t.Errorf("Unexpected options: %+v", options)
	}
	if srv.store.Count() != 0 {
		t.Errorf("Expected no sessions after read-only requests, got %d", srv.store.Count())
	}
}

func TestReadOnlyRoutesWithoutSession(t *testing.T) {
	srv := newTestServer(t, demoEngine(), fakeChecker{})

	rec := srv.do(http.MethodGet, "/api/v1/video/progress", nil)
	var progress models.Progress
	if err := json.Unmarshal(rec.Body.Bytes(), &progress); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK || progress.Status != models.ProgressStatusIdle {
		t.Errorf("Expected idle progress, got %d %+v", rec.Code, progress)
	}

	if rec := srv.do(http.MethodGet, "/api/v1/video/file", nil); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for file, got %d", rec.Code)
	}
	if rec := srv.do(http.MethodGet, "/api/v1/video/progress/stream", nil); rec.Code != http.StatusNoContent {
		t.Errorf("Expected 204 for progress stream, got %d", rec.Code)
	}

	if srv.cookie != nil || srv.store.Count() != 0 {
		t.Errorf("Expected no session, got %d", srv.store.Count())
	}
}

func TestRateLimitIgnoresFreshSessions(t *testing.T) {
	fake := demoEngine()
	srv := newTestServer(t, fake, fakeChecker{}, func(cfg *config.Config) {
		cfg.API.RateLimitRequests = 2
	})

	rejected := 0
	for i := 0; i < 5; i++ {
		// No cookie is sent back, so every request looks like a new visitor
		req := httptest.NewRequest(http.MethodPost, "/api/v1/video/info", strings.NewReader(`{"url":"https://example.com/v"}`))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "10.0.0.1:40000"
		rec := httptest.NewRecorder()
		srv.engine.ServeHTTP(rec, req)

		if rec.Code == http.StatusTooManyRequests {
			rejected++
			if code, _ := errorCode(t, rec); code != "RATE_LIMIT_EXCEEDED" {
				t.Errorf("Expected RATE_LIMIT_EXCEEDED, got %s", code)
			}
		}
	}

	if rejected != 3 {
		t.Errorf("Expected 3 rejected requests, got %d", rejected)
	}
	if info, _ := fake.Calls(); info != 2 {
		t.Errorf("Expected 2 engine calls, got %d", info)
	}
	if srv.store.Count() != 2 {
		t.Errorf("Expected rejected requests not to create sessions, got %d", srv.store.Count())
	}
}

func TestHealth(t *testing.T) {
	testCases := []struct {
		name     string
		checker  fakeChecker
		expected int
	}{
		{"engine available", fakeChecker{}, http.StatusOK},
		{"engine missing", fakeChecker{err: errors.New("yt-dlp not found")}, http.StatusServiceUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, demoEngine(), tc.checker)

			if rec := srv.do(http.MethodGet, "/health", nil); rec.Code != tc.expected {
				t.Errorf("Expected /health %d, got %d", tc.expected, rec.Code)
			}
			if rec := srv.do(http.MethodGet, "/ready", nil); rec.Code != tc.expected {
				t.Errorf("Expected /ready %d, got %d", tc.expected, rec.Code)
			}
			if rec := srv.do(http.MethodGet, "/live", nil); rec.Code != http.StatusOK {
				t.Errorf("Expected /live 200, got %d", rec.Code)
			}
			if srv.cookie != nil {
				t.Error("Expected health endpoints not to create sessions")
			}
		})
	}
}

func TestProgressStream(t *testing.T) {
	srv := newTestServer(t, demoEngine(), fakeChecker{})
	srv.do(http.MethodDelete, "/api/v1/session/cache", nil)
	sess := srv.session()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/video/progress/stream", nil).WithContext(ctx)
	req.AddCookie(srv.cookie)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		srv.engine.ServeHTTP(rec, req)
		close(done)
	}()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for finished := false; !finished; {
		select {
		case <-done:
			finished = true
		case <-ctx.Done():
			t.Fatal("Progress stream did not end after a terminal update")
		case <-ticker.C:
			sess.UpdateProgress(models.Progress{Status: models.ProgressStatusFinished, Percent: 100})
		}
	}

	body := rec.Body.String()
	if !strings.Contains(body, "event:progress") {
		t.Errorf("Expected progress events, got %q", body)
	}
	if !strings.Contains(body, `"status":"finished"`) {
		t.Errorf("Expected a finished event, got %q", body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("Unexpected Content-Type: %s", ct)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, demoEngine(), fakeChecker{})
	srv.do(http.MethodGet, "/api/v1/options", nil)

	rec := srv.do(http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "vidgrab_http_requests_total") {
		t.Error("Expected request counter in metrics output")
	}
}
