package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/CrazyForks/wukong-survivors/internal/sim"
)

const (
	highscoreVersion    = 1
	maxHighscoreEntries = 20
)

type HighscoreEntry struct {
	At           time.Time `json:"at"`
	LevelID      string    `json:"level_id"`
	Victory      bool      `json:"victory"`
	Kills        int       `json:"kills"`
	EliteKills   int       `json:"elite_kills"`
	PlayerLevel  int       `json:"player_level"`
	TimeSurvived float64   `json:"time_survived"`
	Currency     float64   `json:"currency"`
	Score        int       `json:"score"`
}

type HighscoreFile struct {
	Version int              `json:"version"`
	Entries []HighscoreEntry `json:"entries"`
}

func NewHighscoreEntry(levelID string, end sim.EndPayload) HighscoreEntry {
	return HighscoreEntry{
		At:           time.Now(),
		LevelID:      levelID,
		Victory:      end.Victory,
		Kills:        end.Stats.EnemiesKilled,
		EliteKills:   end.Stats.EliteKills,
		PlayerLevel:  end.Stats.PlayerLevel,
		TimeSurvived: end.Stats.TimeSurvived,
		Currency:     end.Stats.Currency,
		Score:        calcScore(end),
	}
}

// AppendHighscore merges the entry into the file at path, keeping the
// table sorted and trimmed. A missing file starts an empty table.
func AppendHighscore(path string, entry HighscoreEntry) error {
	hs, err := loadHighscores(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	hs.Entries = append(hs.Entries, entry)
	sortHighscores(hs.Entries)
	if len(hs.Entries) > maxHighscoreEntries {
		hs.Entries = hs.Entries[:maxHighscoreEntries]
	}
	return saveHighscores(path, hs)
}

func loadHighscores(path string) (HighscoreFile, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return HighscoreFile{}, err
	}
	var hs HighscoreFile
	if err := json.Unmarshal(blob, &hs); err != nil {
		return HighscoreFile{}, err
	}
	if hs.Version == 0 {
		hs.Version = highscoreVersion
	}
	return hs, nil
}

func saveHighscores(path string, hs HighscoreFile) error {
	hs.Version = highscoreVersion
	return saveJSONAtomic(path, hs)
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func saveJSONAtomic(path string, v any) error {
	if path == "" {
		return fmt.Errorf("path is empty")
	}
	if err := ensureParentDir(path); err != nil {
		return fmt.Errorf("ensure parent dir: %w", err)
	}
	blob, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func calcScore(end sim.EndPayload) int {
	score := end.Stats.EnemiesKilled*100 +
		end.Stats.EliteKills*250 +
		end.Stats.PlayerLevel*50 +
		int(end.Stats.TimeSurvived*10)
	if end.Victory {
		score += 1000
	}
	return score
}

func sortHighscores(entries []HighscoreEntry) {
	slices.SortFunc(entries, func(a, b HighscoreEntry) int {
		if a.Score != b.Score {
			if a.Score > b.Score {
				return -1
			}
			return 1
		}
		if a.Kills != b.Kills {
			if a.Kills > b.Kills {
				return -1
			}
			return 1
		}
		if a.TimeSurvived > b.TimeSurvived {
			return -1
		}
		if a.TimeSurvived < b.TimeSurvived {
			return 1
		}
		return 0
	})
}
