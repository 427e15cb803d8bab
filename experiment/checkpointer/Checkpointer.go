// Package checkpointer implements saving snapshots of the action
// values of an agent while it trains
package checkpointer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
	"github.com/samuelfneumann/qmaze/agent"
	"github.com/samuelfneumann/qmaze/environment"
)

// Schema names the layout of the rows in a checkpoint file
const Schema = "qmaze_action_values_v1"

// Checkpointer checkpoints/saves the action values of an agent based
// on finished training episodes
type Checkpointer interface {
	Checkpoint(agent.Episode) error
}

// row is a single action value as stored on disk
type row struct {
	State  string  `parquet:"state"`
	Action int32   `parquet:"action"`
	Value  float64 `parquet:"value"`
}

// Save saves action values to filename. The file is written to a
// temporary file first and renamed into place.
func Save(filename string, values []agent.ActionValue) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("save: could not create output dir: %v", err)
	}

	rows := make([]row, len(values))
	for i, v := range values {
		rows[i] = row{
			State:  string(v.State),
			Action: int32(v.Action),
			Value:  v.Value,
		}
	}

	tmpPath := filename + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", Schema),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("save: could not write parquet: %v", err)
	}

	if err := os.Rename(tmpPath, filename); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("save: could not rename parquet: %v", err)
	}
	return nil
}

// Load loads the action values saved to filename
func Load(filename string) ([]agent.ActionValue, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("load: could not open file: %v", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("load: %v", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("load: could not open parquet: %v", err)
	}
	if schema, ok := pf.Lookup("schema"); !ok || schema != Schema {
		return nil, fmt.Errorf("load: unexpected schema %q", schema)
	}

	reader := parquet.NewGenericReader[row](pf)
	defer reader.Close()

	values := make([]agent.ActionValue, 0, reader.NumRows())
	buf := make([]row, 256)
	for {
		n, err := reader.Read(buf)
		for _, r := range buf[:n] {
			values = append(values, agent.ActionValue{
				State:  environment.State(r.State),
				Action: environment.Action(r.Action),
				Value:  r.Value,
			})
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("load: could not read rows: %v", err)
		}
	}
	return values, nil
}
