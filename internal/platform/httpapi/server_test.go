package httpapi

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"

	"github.com/vovakirdan/hexfit/internal/core"
	"github.com/vovakirdan/hexfit/internal/registry"
	"github.com/vovakirdan/hexfit/internal/storage"
)

type stubGame struct{}

func (stubGame) ID() string                           { return "stub" }
func (stubGame) Title() string                        { return "Stub" }
func (stubGame) Reset(core.RuntimeConfig)             {}
func (stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (stubGame) Render(*core.Screen)                  {}
func (stubGame) State() core.GameState                { return core.GameState{} }

func init() {
	registry.Register("stub", func() registry.Game { return stubGame{} })
}

func newTestServer(t *testing.T) (*Server, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return New(store, nil), store
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	if rec.Body.String() != `{"ok":true}` {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestGames(t *testing.T) {
	s, _ := newTestServer(t)
	var games []registry.GameInfo
	if err := sonic.Unmarshal(get(t, s, "/games").Body.Bytes(), &games); err != nil {
		t.Fatal(err)
	}
	if len(games) != 1 || games[0].ID != "stub" {
		t.Errorf("games = %+v", games)
	}
}

func TestScores(t *testing.T) {
	s, store := newTestServer(t)
	for _, score := range []int{50, 300, 120} {
		if _, err := store.SaveRun(storage.Run{GameID: "stub", Score: score, Lines: score / 100}); err != nil {
			t.Fatal(err)
		}
	}

	rec := get(t, s, "/scores/stub?limit=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got gameScores
	if err := sonic.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Scores) != 2 || got.Scores[0].Score != 300 || got.Scores[1].Score != 120 {
		t.Errorf("scores = %+v", got.Scores)
	}
	if got.Scores[0].Lines != 3 {
		t.Errorf("lines = %d, want 3", got.Scores[0].Lines)
	}
}

func TestScoresEmpty(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/scores/stub")
	if rec.Body.String() != `{"game":"stub","scores":[]}` {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestErrors(t *testing.T) {
	s, _ := newTestServer(t)
	tests := []struct {
		path   string
		status int
	}{
		{"/scores/nope", http.StatusNotFound},
		{"/stats/nope", http.StatusNotFound},
		{"/scores/stub?limit=0", http.StatusBadRequest},
		{"/scores/stub?limit=abc", http.StatusBadRequest},
		{"/missing", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if rec := get(t, s, tt.path); rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestNoStorage(t *testing.T) {
	s := New(nil, nil)
	if rec := get(t, s, "/scores/stub"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("scores status = %d", rec.Code)
	}
	if rec := get(t, s, "/stats"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("stats status = %d", rec.Code)
	}
}

func TestStats(t *testing.T) {
	s, store := newTestServer(t)
	store.SaveRun(storage.Run{GameID: "stub", Score: 100, Lines: 2, MaxCombo: 3})
	store.SaveRun(storage.Run{GameID: "stub", Score: 300, Lines: 4, MaxCombo: 1})

	var stats storage.GameStats
	if err := sonic.Unmarshal(get(t, s, "/stats/stub").Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalLines != 6 || stats.BestCombo != 3 {
		t.Errorf("stats = %+v", stats)
	}

	var all map[string]storage.GameStats
	if err := sonic.Unmarshal(get(t, s, "/stats").Body.Bytes(), &all); err != nil {
		t.Fatal(err)
	}
	if all["stub"].GamesCount != 2 {
		t.Errorf("all stats = %+v", all)
	}
}
