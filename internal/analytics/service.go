// Package analytics tracks walk events across composers and aggregates them
// into a dashboard view.
package analytics

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/gcbaptista/go-composer-engine/model"
	"github.com/gcbaptista/go-composer-engine/services"
)

const (
	analyticsFileName = "analytics.json"
	maxEventsToKeep   = 10000 // Keep last 10k events for performance
)

// Service implements analytics tracking and reporting
type Service struct {
	mutex         sync.RWMutex
	events        []model.ComposeEvent
	engineManager services.EngineManager
	dataFilePath  string
	startedAt     time.Time
}

// NewService creates a new analytics service persisting under dataDir.
func NewService(engineManager services.EngineManager, dataDir string) *Service {
	service := &Service{
		events:        make([]model.ComposeEvent, 0),
		engineManager: engineManager,
		dataFilePath:  filepath.Join(dataDir, analyticsFileName),
		startedAt:     time.Now(),
	}

	// Load existing analytics data
	if err := service.loadData(); err != nil {
		log.Printf("Warning: Failed to load analytics data: %v", err)
	}

	return service
}

// TrackComposeEvent records a new walk event
func (s *Service) TrackComposeEvent(event model.ComposeEvent) {
	s.mutex.Lock()

	event.Timestamp = time.Now()
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
	s.mutex.Unlock()

	// Persist data asynchronously
	go func() {
		if err := s.saveData(); err != nil {
			log.Printf("Warning: Failed to save analytics data: %v", err)
		}
	}()
}

// GetDashboardData returns complete analytics dashboard data
func (s *Service) GetDashboardData() model.AnalyticsDashboard {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	now := time.Now()
	last24hEvents := s.filterEventsByTime(s.events, now.Add(-24*time.Hour))

	totalEntries := 0
	dictionaries := s.engineManager.ListDictionaries()
	for _, stats := range dictionaries {
		totalEntries += stats.UnigramCount
	}

	return model.AnalyticsDashboard{
		TotalWalks24h:            len(last24hEvents),
		AvgResponseTime:          s.calculateAvgResponseTime(last24hEvents),
		ActiveComposers:          len(s.engineManager.ListComposers()),
		ActiveDictionaries:       len(dictionaries),
		TotalDictionaryEntries:   totalEntries,
		ComposerUsage:            s.getComposerUsage(last24hEvents),
		Lattice:                  s.getLatticeStats(last24hEvents),
		ResponseTimeDistribution: s.getResponseTimeDistribution(last24hEvents),
		SystemHealth:             s.getSystemHealth(),
		GeneratedAt:              now,
	}
}

// filterEventsByTime returns events after the given time
func (s *Service) filterEventsByTime(events []model.ComposeEvent, after time.Time) []model.ComposeEvent {
	var filtered []model.ComposeEvent
	for _, event := range events {
		if event.Timestamp.After(after) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// calculateAvgResponseTime calculates average walk time in microseconds
func (s *Service) calculateAvgResponseTime(events []model.ComposeEvent) int64 {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	return (total / time.Duration(len(events))).Microseconds()
}

// getComposerUsage aggregates walk counts per composer, busiest first
func (s *Service) getComposerUsage(events []model.ComposeEvent) []model.ComposerUsage {
	counts := make(map[string]int)
	for _, event := range events {
		counts[event.ComposerName]++
	}

	usage := make([]model.ComposerUsage, 0, len(counts))
	for name, count := range counts {
		usage = append(usage, model.ComposerUsage{ComposerName: name, WalkCount: count})
	}
	sort.Slice(usage, func(i, j int) bool {
		if usage[i].WalkCount != usage[j].WalkCount {
			return usage[i].WalkCount > usage[j].WalkCount
		}
		return usage[i].ComposerName < usage[j].ComposerName
	})
	return usage
}

// getLatticeStats aggregates lattice shapes across events
func (s *Service) getLatticeStats(events []model.ComposeEvent) model.LatticeStats {
	if len(events) == 0 {
		return model.LatticeStats{}
	}

	var readings, vertices, edges, maxEdges int
	for _, event := range events {
		readings += event.ReadingCount
		vertices += event.Vertices
		edges += event.Edges
		if event.Edges > maxEdges {
			maxEdges = event.Edges
		}
	}
	count := float64(len(events))
	return model.LatticeStats{
		AvgReadings: float64(readings) / count,
		AvgVertices: float64(vertices) / count,
		AvgEdges:    float64(edges) / count,
		MaxEdges:    maxEdges,
	}
}

// getResponseTimeDistribution buckets walk times
func (s *Service) getResponseTimeDistribution(events []model.ComposeEvent) model.ResponseTimeDistribution {
	var dist model.ResponseTimeDistribution
	for _, event := range events {
		us := event.ResponseTime.Microseconds()
		switch {
		case us < 100:
			dist.Bucket0To100us++
		case us < 500:
			dist.Bucket100To500us++
		case us < 1000:
			dist.Bucket500To1000us++
		default:
			dist.Bucket1msPlus++
		}
	}

	total := len(events)
	if total > 0 {
		dist.Percentage0To100 = float64(dist.Bucket0To100us) / float64(total) * 100
		dist.Percentage100To500 = float64(dist.Bucket100To500us) / float64(total) * 100
		dist.Percentage500To1000 = float64(dist.Bucket500To1000us) / float64(total) * 100
		dist.Percentage1msPlus = float64(dist.Bucket1msPlus) / float64(total) * 100
	}
	return dist
}

// getSystemHealth returns current system health metrics
func (s *Service) getSystemHealth() model.SystemHealth {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	memoryUsage := 0.0
	if memStats.Sys > 0 {
		memoryUsage = float64(memStats.Alloc) / float64(memStats.Sys) * 100
	}

	return model.SystemHealth{
		MemoryUsage:    memoryUsage,
		GoroutineCount: runtime.NumGoroutine(),
		Uptime:         time.Since(s.startedAt).Round(time.Second).String(),
	}
}

// loadData reads persisted events from disk
func (s *Service) loadData() error {
	data, err := os.ReadFile(s.dataFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Fresh start
		}
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	return json.Unmarshal(data, &s.events)
}

// saveData persists events to disk
func (s *Service) saveData() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.events)
	s.mutex.RUnlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.dataFilePath), 0750); err != nil {
		return err
	}
	return os.WriteFile(s.dataFilePath, data, 0600)
}
