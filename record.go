package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// RecordFormatVersion is the version of the byte representation of the
// MazeRecord structure. If serializing a MazeRecord produces a different array
// of bytes, RecordFormatVersion must change as well.
const RecordFormatVersion = 1

// RecordExtension is appended to the id of a record when it is written to
// disk by the archive.
const RecordExtension = ".labyrinth"

// MazeRecord holds everything needed to generate a maze again: the seed and
// the dimensions. GeneratorVersion and RegressionId make it possible to tell
// whether the current generator still produces the same maze.
type MazeRecord struct {
	FormatVersion    int64
	GeneratorVersion int64
	Id               uuid.UUID
	Seed             uint64
	Width            int64
	Height           int64
	RegressionId     string
}

func NewMazeRecord(seed uint64, m *Maze) MazeRecord {
	return MazeRecord{
		FormatVersion:    RecordFormatVersion,
		GeneratorVersion: GeneratorVersion,
		Id:               uuid.New(),
		Seed:             seed,
		Width:            int64(m.Width),
		Height:           int64(m.Height),
		RegressionId:     RegressionId(m),
	}
}

func (r *MazeRecord) Serialize() []byte {
	buf := new(bytes.Buffer)
	Serialize(buf, r.FormatVersion)
	Serialize(buf, r.GeneratorVersion)
	Serialize(buf, r.Id)
	Serialize(buf, r.Seed)
	Serialize(buf, r.Width)
	Serialize(buf, r.Height)
	SerializeString(buf, r.RegressionId)
	return Zip(buf.Bytes())
}

// DeserializeMazeRecord is the inverse of MazeRecord.Serialize. Malformed
// data is reported as ErrEncoding.
func DeserializeMazeRecord(data []byte) (r MazeRecord, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: malformed maze record: %v", ErrEncoding, p)
		}
	}()

	buf := bytes.NewBuffer(Unzip(data))
	Deserialize(buf, &r.FormatVersion)
	if r.FormatVersion != RecordFormatVersion {
		return r, fmt.Errorf("%w: can't deserialize this record - we are at "+
			"format version %d and the record was written with format "+
			"version %d", ErrEncoding, RecordFormatVersion, r.FormatVersion)
	}
	Deserialize(buf, &r.GeneratorVersion)
	Deserialize(buf, &r.Id)
	Deserialize(buf, &r.Seed)
	Deserialize(buf, &r.Width)
	Deserialize(buf, &r.Height)
	DeserializeString(buf, &r.RegressionId)
	return r, nil
}

func LoadMazeRecord(path string) (MazeRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MazeRecord{}, fmt.Errorf("%w: failed to read %s: %w", ErrIO, path, err)
	}
	return DeserializeMazeRecord(data)
}

func (r *MazeRecord) SaveToFile(path string) error {
	if err := os.WriteFile(path, r.Serialize(), 0644); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", ErrIO, path, err)
	}
	return nil
}

// Regenerate carves the maze described by the record with the current
// generator.
func (r *MazeRecord) Regenerate() (*Maze, error) {
	return GenerateMaze(int(r.Width), int(r.Height), r.Seed)
}

// Verify regenerates the maze and checks that it is the same maze that was
// recorded. The regenerated maze is returned even when the check fails.
func (r *MazeRecord) Verify() (*Maze, error) {
	m, err := r.Regenerate()
	if err != nil {
		return nil, err
	}
	if r.GeneratorVersion != GeneratorVersion {
		return m, fmt.Errorf("%w: record %s was generated with generator "+
			"version %d, we are at version %d", ErrRegression, r.Id,
			r.GeneratorVersion, GeneratorVersion)
	}
	if id := RegressionId(m); id != r.RegressionId {
		return m, fmt.Errorf("%w: record %s has regression id %s, the "+
			"regenerated maze has %s", ErrRegression, r.Id, r.RegressionId, id)
	}
	return m, nil
}
