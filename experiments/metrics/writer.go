package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AgentConfig describes one competitor of an experiment
type AgentConfig struct {
	ID          int
	Strategy    string
	Duration    time.Duration // MCTS budget
	Episodes    int           // MCTS episode cap
	Samples     int           // Expectimax playouts per action
	Exploration float64
	SeatRewards bool
}

type GameRecord struct {
	ID      int
	MatchUp string
	Agents  []int // AgentConfig.ID per seat
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	RunID   uuid.UUID
	baseDir string
}

// NewWriter creates root/experiments/<name>/<timestamp> for the files of one run.
func NewWriter(root, name string, now time.Time) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := now.UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, "experiments", name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		RunID:   uuid.New(),
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"run_id", "id", "strategy", "duration", "episodes", "samples", "exploration", "seat_rewards"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			w.RunID.String(),
			strconv.Itoa(config.ID),
			config.Strategy,
			config.Duration.String(),
			strconv.Itoa(config.Episodes),
			strconv.Itoa(config.Samples),
			strconv.FormatFloat(config.Exploration, 'f', -1, 64),
			strconv.FormatBool(config.SeatRewards),
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"run_id", "id", "match_up", "agents", "seats", "rounds", "winner", "scores", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			w.RunID.String(),
			strconv.Itoa(record.ID),
			record.MatchUp,
			joinInts(record.Agents),
			strconv.Itoa(record.Seats),
			strconv.Itoa(record.Rounds),
			strconv.Itoa(record.Winner),
			joinInts(record.Scores),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"run_id", "game", "step", "round", "seat", "action", "strategy", "duration", "episodes", "full_playouts", "nodes"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			w.RunID.String(),
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Round),
			strconv.Itoa(record.Seat),
			record.Action,
			record.Strategy,
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.FullPlayouts),
			strconv.Itoa(record.Nodes),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	// Create a file
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	// Write header
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}

	// Write each row
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
