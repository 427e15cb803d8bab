package savers

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
	"github.com/samuelfneumann/qmaze/agent"
)

// HistorySchema names the layout of the rows in a history file
const HistorySchema = "qmaze_history_v1"

// Row is the training history of a single episode.
//
// WinRate is the win rate of the most recent convergence check at or
// before the episode, and Checked reports whether a check ran at the
// end of the episode.
type Row struct {
	Episode          int32   `parquet:"episode"`
	CumulativeReward float64 `parquet:"cumulative_reward"`
	WinRate          float64 `parquet:"win_rate"`
	Checked          bool    `parquet:"checked"`
}

// History tracks the training history of an agent and saves it as a
// zstd compressed parquet file
type History struct {
	rows     []Row
	filename string
	metadata map[string]string
}

// NewHistory returns a new History saver which will save its data at
// the specified location filename
func NewHistory(filename string) *History {
	return &History{
		filename: filename,
		metadata: make(map[string]string),
	}
}

// SetMetadata adds a key value pair to the metadata of the saved file
func (h *History) SetMetadata(key, value string) {
	h.metadata[key] = value
}

// Track caches the per-episode rows of a training history, replacing
// any previously tracked history
func (h *History) Track(r *agent.Result) {
	h.rows = Rows(r)
}

// Rows converts a training history to one Row per episode
func Rows(r *agent.Result) []Row {
	rows := make([]Row, len(r.CumulativeRewards))

	check := 0
	rate := 0.0
	for i, reward := range r.CumulativeRewards {
		episode := i + 1
		rows[i] = Row{Episode: int32(episode), CumulativeReward: reward}

		for check < len(r.WinHistory) && r.WinHistory[check].Episode <= episode {
			rows[i].Checked = r.WinHistory[check].Episode == episode
			rate = r.WinHistory[check].Rate
			check++
		}
		rows[i].WinRate = rate
	}
	return rows
}

// Save writes the tracked rows to disk. The file is written to a
// temporary file first and renamed into place.
func (h *History) Save() error {
	if err := os.MkdirAll(filepath.Dir(h.filename), 0o755); err != nil {
		return fmt.Errorf("save: could not create output dir: %v", err)
	}

	tmpPath := h.filename + ".tmp"
	_ = os.Remove(tmpPath)

	options := []parquet.WriterOption{
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", HistorySchema),
	}
	keys := make([]string, 0, len(h.metadata))
	for key := range h.metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		options = append(options, parquet.KeyValueMetadata(key,
			h.metadata[key]))
	}

	if err := parquet.WriteFile(tmpPath, h.rows, options...); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("save: could not write parquet: %v", err)
	}

	if err := os.Rename(tmpPath, h.filename); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("save: could not rename parquet: %v", err)
	}
	return nil
}

// LoadHistory loads the rows and metadata saved by a History saver
func LoadHistory(filename string) ([]Row, map[string]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("loadHistory: could not open file: %v",
			err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("loadHistory: %v", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, nil, fmt.Errorf("loadHistory: could not open parquet: %v",
			err)
	}

	if schema, ok := pf.Lookup("schema"); !ok || schema != HistorySchema {
		return nil, nil, fmt.Errorf("loadHistory: unexpected schema %q",
			schema)
	}

	metadata := make(map[string]string)
	for _, kv := range pf.Metadata().KeyValueMetadata {
		metadata[kv.Key] = kv.Value
	}

	reader := parquet.NewGenericReader[Row](pf)
	defer reader.Close()

	rows := make([]Row, 0, reader.NumRows())
	buf := make([]Row, 256)
	for {
		n, err := reader.Read(buf)
		rows = append(rows, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("loadHistory: could not read rows: "+
				"%v", err)
		}
	}

	return rows, metadata, nil
}
