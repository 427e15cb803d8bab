package checkpointer

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/samuelfneumann/qmaze/agent"
)

type snapshots struct {
	calls  int
	values []agent.ActionValue
}

func (s *snapshots) Snapshot() []agent.ActionValue {
	s.calls++
	return s.values
}

func values() []agent.ActionValue {
	return []agent.ActionValue{
		{State: "0,2,1", Action: 0, Value: -0.25},
		{State: "0,2,1", Action: 1, Value: 1.5},
		{State: "2,0,1", Action: 0, Value: 0},
		{State: "2,0,1", Action: 1, Value: 9.75},
	}
}

func TestFilenameEnumerator(t *testing.T) {
	next := FilenameEnumerator(0, "out/q", ".parquet")

	for _, want := range []string{"out/q-0001.parquet", "out/q-0002.parquet"} {
		if have := next(); have != want {
			t.Errorf("filename = %v, want %v", have, want)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "nested", "q.parquet")
	if err := Save(filename, values()); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(filename)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(loaded, values()) {
		t.Errorf("loaded %v, want %v", loaded, values())
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing")); err == nil {
		t.Errorf("expected error for missing file")
	}

	other := filepath.Join(dir, "other.parquet")
	err := parquet.WriteFile(other, []row{{State: "s"}},
		parquet.KeyValueMetadata("schema", "other_v1"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Load(other); err == nil {
		t.Errorf("expected error for unexpected schema")
	}
}

func TestNEpisode(t *testing.T) {
	dir := t.TempDir()
	object := &snapshots{values: values()}
	c := NewNEpisode(2, object, FilenameEnumerator(0,
		filepath.Join(dir, "q"), ".parquet"))

	for i := 1; i <= 5; i++ {
		if err := c.Checkpoint(agent.Episode{Number: i}); err != nil {
			t.Fatal(err)
		}
	}

	if object.calls != 2 {
		t.Errorf("snapshots taken = %d, want 2", object.calls)
	}
	for _, name := range []string{"q-0001.parquet", "q-0002.parquet"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("checkpoint %v: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "q-0003.parquet")); !os.IsNotExist(err) {
		t.Errorf("unexpected third checkpoint: %v", err)
	}
}

func TestNEpisodeClampsInterval(t *testing.T) {
	object := &snapshots{}
	c := NewNEpisode(0, object, FilenameEnumerator(0,
		filepath.Join(t.TempDir(), "q"), ".parquet"))

	for i := 1; i <= 3; i++ {
		if err := c.Checkpoint(agent.Episode{Number: i}); err != nil {
			t.Fatal(err)
		}
	}
	if object.calls != 3 {
		t.Errorf("snapshots taken = %d, want 3", object.calls)
	}
}
