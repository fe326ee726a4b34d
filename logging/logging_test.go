package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCleanURL(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"https://Example.com/", "https://example.com"},
		{"https://example.com/blog/post/?utm=1#top", "https://example.com/blog/post"},
		{"http://localhost:8082/", ""},
		{"http://127.0.0.1/page", ""},
		{"https://example.com/api/score", ""},
		{"not a url", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := cleanURL(tt.in); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestStatistics(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStatistics(dir)
	if err != nil {
		t.Fatalf("Failed to create statistics: %v", err)
	}

	s.TrackVisitor("10.0.0.1")
	s.TrackVisitor("10.0.0.2")
	s.TrackVisitor("10.0.0.1")
	s.TrackAnalysis("https://example.com", 100, false)
	s.TrackAnalysis("https://example.com/", 300, true)
	s.TrackAnalysis("https://other.org/page", 200, false)

	t.Run("Summary", func(t *testing.T) {
		summary := s.GetStatistics(false)
		if summary["uniqueVisitors24h"] != 2 {
			t.Errorf("Expected 2 visitors, got %v", summary["uniqueVisitors24h"])
		}
		if summary["totalRequests"] != 3 {
			t.Errorf("Expected 3 requests, got %v", summary["totalRequests"])
		}
		if summary["averageLoadTime"] != 200.0 {
			t.Errorf("Expected 200ms average, got %v", summary["averageLoadTime"])
		}
		if _, ok := summary["popularUrls"]; ok {
			t.Error("Popular URLs must only be exposed in dev mode")
		}
	})

	t.Run("DevMode", func(t *testing.T) {
		popular, ok := s.GetStatistics(true)["popularUrls"].([]URLCount)
		if !ok || len(popular) != 2 {
			t.Fatalf("Expected 2 popular URLs, got %v", popular)
		}
		if popular[0].URL != "https://example.com" || popular[0].Count != 2 {
			t.Errorf("Unexpected top URL %+v", popular[0])
		}
	})

	t.Run("ErrorRate", func(t *testing.T) {
		rate := s.GetErrorRate()
		if rate < 33.3 || rate > 33.4 {
			t.Errorf("Expected ~33.3%% error rate, got %v", rate)
		}
	})

	t.Run("Persistence", func(t *testing.T) {
		if err := s.Save(); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, StatisticsFile)); err != nil {
			t.Fatalf("Statistics file missing: %v", err)
		}

		reloaded, err := NewStatistics(dir)
		if err != nil {
			t.Fatalf("Failed to reload statistics: %v", err)
		}
		if reloaded.Requests() != 3 || reloaded.GetUniqueVisitorsCount() != 2 {
			t.Errorf("Expected reloaded counts, got %d requests %d visitors",
				reloaded.Requests(), reloaded.GetUniqueVisitorsCount())
		}
		reloaded.TrackAnalysis("https://third.net", 600, false)
		if reloaded.AverageLoadTime != 300 {
			t.Errorf("Average should continue from saved totals, got %v", reloaded.AverageLoadTime)
		}
	})

	t.Run("InMemory", func(t *testing.T) {
		mem, err := NewStatistics("")
		if err != nil {
			t.Fatalf("Failed to create statistics: %v", err)
		}
		if err := mem.Save(); err != nil {
			t.Errorf("Save without data dir should be a no-op, got %v", err)
		}
	})
}

func TestInitLogger(t *testing.T) {
	saved := Log
	defer func() { Log = saved }()

	path := filepath.Join(t.TempDir(), "logs", "inspector.log")
	if err := InitLogger("debug", path); err != nil {
		t.Fatalf("InitLogger failed: %v", err)
	}
	if Log.GetLevel().String() != "debug" {
		t.Errorf("Expected debug level, got %s", Log.GetLevel())
	}

	Log.Info("file sink works")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "file sink works") {
		t.Errorf("Expected message in log file, got %q", data)
	}

	if err := InitLogger("bogus", ""); err != nil {
		t.Fatalf("InitLogger failed: %v", err)
	}
	if Log.GetLevel().String() != "info" {
		t.Errorf("Unknown level should fall back to info, got %s", Log.GetLevel())
	}
}
