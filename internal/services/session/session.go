package session

import (
	"sync"
	"time"

	"github.com/denisAlshanov/vidgrab/internal/models"
	"github.com/denisAlshanov/vidgrab/internal/services/downloader"
)

// Session is the state of one browser UI. All fields are guarded by mu.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu               sync.RWMutex
	url              string
	quality          models.Quality
	includeSubtitles bool
	summary          *models.VideoSummary
	lastFile         *models.DownloadedFile
	progress         models.Progress
	progressChanged  chan struct{}
	lastActivity     time.Time

	newOrchestrator OrchestratorFactory
	orchestrator    *downloader.Orchestrator
}

// IdleProgress is the snapshot of a session that has not downloaded anything.
func IdleProgress() models.Progress {
	return models.Progress{Status: models.ProgressStatusIdle, ETASeconds: -1, UpdatedAt: time.Now()}
}

// DefaultView describes a visitor who has no session yet.
func DefaultView() models.SessionView {
	return models.SessionView{Quality: models.QualityHighest}
}

func newSession(id string, factory OrchestratorFactory) *Session {
	now := time.Now()
	return &Session{
		ID:              id,
		CreatedAt:       now,
		quality:         models.QualityHighest,
		progress:        IdleProgress(),
		progressChanged: make(chan struct{}),
		lastActivity:    now,
		newOrchestrator: factory,
	}
}

// SetRequest records the settings of the latest request.
func (s *Session) SetRequest(url string, quality models.Quality, includeSubtitles bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.url = url
	s.quality = quality
	s.includeSubtitles = includeSubtitles
	s.lastActivity = time.Now()
}

// SetSummary stores the metadata of a successful fetch, replacing the previous one.
func (s *Session) SetSummary(url string, summary *models.VideoSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.url = url
	s.summary = summary
	s.lastActivity = time.Now()
}

func (s *Session) Summary() *models.VideoSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// HasInfo reports whether a metadata fetch succeeded in this session.
// The URL of that fetch is not compared with later download requests.
func (s *Session) HasInfo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary != nil
}

func (s *Session) SetLastFile(file *models.DownloadedFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFile = file
	s.lastActivity = time.Now()
}

func (s *Session) LastFile() *models.DownloadedFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastFile
}

// ClearCache forgets the stored metadata and last file. Files already on
// disk stay in the work directory until the session expires.
func (s *Session) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = nil
	s.lastFile = nil
	s.lastActivity = time.Now()
}

// UpdateProgress replaces the progress snapshot and wakes any watchers.
func (s *Session) UpdateProgress(p models.Progress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}
	s.progress = p
	close(s.progressChanged)
	s.progressChanged = make(chan struct{})
}

func (s *Session) Progress() models.Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress
}

// WatchProgress returns the current snapshot and a channel that is closed
// on the next update.
func (s *Session) WatchProgress() (models.Progress, <-chan struct{}) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress, s.progressChanged
}

// Orchestrator returns the session's downloader, creating its work
// directory on first use.
func (s *Session) Orchestrator() (*downloader.Orchestrator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.orchestrator != nil {
		return s.orchestrator, nil
	}
	o, err := s.newOrchestrator()
	if err != nil {
		return nil, err
	}
	s.orchestrator = o
	return o, nil
}

// View returns the current settings for display.
func (s *Session) View() models.SessionView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view := models.SessionView{
		SessionID:        s.ID,
		URL:              s.url,
		Quality:          s.quality,
		IncludeSubtitles: s.includeSubtitles,
		HasInfo:          s.summary != nil,
		Video:            s.summary,
	}
	if s.lastFile != nil {
		view.LastFile = s.lastFile.FileName
	}
	return view
}

func (s *Session) LastActivity() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActivity
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// close removes the work directory, if one was created.
func (s *Session) close() error {
	s.mu.Lock()
	o := s.orchestrator
	s.orchestrator = nil
	s.mu.Unlock()

	if o == nil {
		return nil
	}
	return o.Close()
}
