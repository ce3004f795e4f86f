package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"playlist-insights/internal/models"
)

// ReportTracker remembers which playlist contents were already emailed so
// watch mode can skip playlists that have not changed.
type ReportTracker struct {
	filePath string
	reports  map[string]TrackedReport
	mu       sync.RWMutex
	maxAge   time.Duration
	now      func() time.Time
}

// TrackedReport is the last report sent for one playlist.
type TrackedReport struct {
	PlaylistID  string    `json:"playlist_id"`
	Fingerprint string    `json:"fingerprint"`
	ReportedAt  time.Time `json:"reported_at"`
}

// NewReportTracker loads dataDir/reported_playlists.json. Entries older than
// maxAge are dropped; a zero maxAge keeps them forever.
func NewReportTracker(dataDir string, maxAge time.Duration) (*ReportTracker, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	tracker := &ReportTracker{
		filePath: filepath.Join(dataDir, "reported_playlists.json"),
		reports:  make(map[string]TrackedReport),
		maxAge:   maxAge,
		now:      time.Now,
	}

	if err := tracker.load(); err != nil {
		return nil, fmt.Errorf("failed to load report tracker data: %w", err)
	}

	tracker.cleanup()

	return tracker, nil
}

// Fingerprint identifies a playlist's content: its video ids in order and
// their durations. View and like counts are left out since they change on
// every run.
func Fingerprint(result *models.AnalysisResult) string {
	var b strings.Builder
	b.WriteString(result.PlaylistID)
	for _, v := range result.Videos {
		fmt.Fprintf(&b, "|%s:%d", v.ID, v.DurationSeconds)
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(b.String())).String()
}

// IsUnchanged reports whether the playlist was already reported with the
// same content within maxAge.
func (rt *ReportTracker) IsUnchanged(result *models.AnalysisResult) bool {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	tracked, exists := rt.reports[result.PlaylistID]
	if !exists || tracked.Fingerprint != Fingerprint(result) {
		return false
	}
	return rt.maxAge == 0 || rt.now().Sub(tracked.ReportedAt) < rt.maxAge
}

// MarkReported records that result was emailed.
func (rt *ReportTracker) MarkReported(result *models.AnalysisResult) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rt.reports[result.PlaylistID] = TrackedReport{
		PlaylistID:  result.PlaylistID,
		Fingerprint: Fingerprint(result),
		ReportedAt:  rt.now(),
	}
	return rt.save()
}

func (rt *ReportTracker) Count() int {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return len(rt.reports)
}

func (rt *ReportTracker) cleanup() {
	if rt.maxAge == 0 {
		return
	}
	cutoff := rt.now().Add(-rt.maxAge)

	for id, tracked := range rt.reports {
		if tracked.ReportedAt.Before(cutoff) {
			delete(rt.reports, id)
		}
	}
}

func (rt *ReportTracker) load() error {
	file, err := os.Open(rt.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open tracker file: %w", err)
	}
	defer file.Close()

	var tracked []TrackedReport
	if err := json.NewDecoder(file).Decode(&tracked); err != nil {
		return fmt.Errorf("failed to decode tracker data: %w", err)
	}

	for _, t := range tracked {
		rt.reports[t.PlaylistID] = t
	}

	return nil
}

// save writes the whole set, sorted by playlist id so the file diffs cleanly.
func (rt *ReportTracker) save() error {
	tracked := make([]TrackedReport, 0, len(rt.reports))
	for _, t := range rt.reports {
		tracked = append(tracked, t)
	}
	sort.Slice(tracked, func(i, j int) bool { return tracked[i].PlaylistID < tracked[j].PlaylistID })

	file, err := os.Create(rt.filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tracked)
}
