package checkpointer

import "github.com/samuelfneumann/qmaze/agent"

// nEpisode implements checkpointing every N episodes
type nEpisode struct {
	interval int
	object   agent.Snapshotter // Object to save

	// filename returns the string filename of the file to save the object
	// in.
	//
	// If each snapshot should be saved in a separate file with each
	// file having an incremented number as a suffix (e.g.
	// file1.parquet, file2.parquet, ..., fileK.parquet), then simply use
	// the static function FilenameEnumerator, which will return a
	// function that will enumerate filenames.
	filename func() string
}

// NewNEpisode returns a checkpointer that checkpoints every n episodes
func NewNEpisode(n int, object agent.Snapshotter,
	filename func() string) Checkpointer {
	if n < 1 {
		n = 1
	}
	return &nEpisode{
		interval: n,
		object:   object,
		filename: filename,
	}
}

// Checkpoint saves a snapshot of the tracked object's action values if
// the episode is a multiple of the checkpoint interval
func (n *nEpisode) Checkpoint(e agent.Episode) error {
	if e.Number%n.interval == 0 {
		return Save(n.filename(), n.object.Snapshot())
	}
	return nil
}
