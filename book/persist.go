package book

import (
	"bufio"
	"cmp"
	"encoding/binary"
	"encoding/gob"
	"io"
	"os"

	"github.com/OneOfOne/xxhash"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"isolation/game"
)

const formatVersion = 1

var ErrChecksum = errors.New("opening book checksum mismatch")

type record struct {
	Board  [2]uint64
	Locs   [2]int16
	Ply    int16
	Action int16
}

type snapshot struct {
	Version  int
	Depth    int
	Records  []record
	Checksum uint64
}

func checksum(depth int, records []record) uint64 {
	h := xxhash.New64()
	_ = binary.Write(h, binary.LittleEndian, int64(depth))
	for _, r := range records {
		_ = binary.Write(h, binary.LittleEndian, r)
	}
	return h.Sum64()
}

func (b *Book) records() []record {
	records := make([]record, 0, len(b.moves))
	for state, action := range b.moves {
		locs := state.Locs()
		records = append(records, record{
			Board:  state.Board(),
			Locs:   [2]int16{int16(locs[0]), int16(locs[1])},
			Ply:    int16(state.PlyCount()),
			Action: int16(action),
		})
	}
	slices.SortFunc(records, func(a, b record) int {
		if c := cmp.Compare(a.Ply, b.Ply); c != 0 {
			return c
		}
		for i := range a.Board {
			if c := cmp.Compare(a.Board[i], b.Board[i]); c != 0 {
				return c
			}
		}
		for i := range a.Locs {
			if c := cmp.Compare(a.Locs[i], b.Locs[i]); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.Action, b.Action)
	})
	return records
}

// Save writes the book as a versioned, checksummed gob stream. Output is
// identical for equal books.
func (b *Book) Save(w io.Writer) error {
	records := b.records()
	snap := snapshot{
		Version:  formatVersion,
		Depth:    b.Depth,
		Records:  records,
		Checksum: checksum(b.Depth, records),
	}
	if err := gob.NewEncoder(w).Encode(snap); err != nil {
		return errors.Wrap(err, "failed to encode opening book")
	}
	return nil
}

func Load(r io.Reader) (*Book, error) {
	var snap snapshot
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return nil, errors.Wrap(err, "failed to decode opening book")
	}
	if snap.Version != formatVersion {
		return nil, errors.Errorf("unsupported opening book version %d", snap.Version)
	}
	if checksum(snap.Depth, snap.Records) != snap.Checksum {
		return nil, ErrChecksum
	}

	moves := make(map[game.Isolation]game.Action, len(snap.Records))
	for i, rec := range snap.Records {
		state, err := game.FromParts(
			game.Bitboard(rec.Board),
			[2]game.Position{game.Position(rec.Locs[0]), game.Position(rec.Locs[1])},
			int(rec.Ply),
		)
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
		if rec.Action < 0 {
			return nil, errors.Errorf("record %d has invalid action %d", i, rec.Action)
		}
		moves[state] = game.Action(rec.Action)
	}
	return New(moves, snap.Depth), nil
}

func (b *Book) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	w := bufio.NewWriter(f)
	if err := b.Save(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return errors.Wrapf(f.Close(), "failed to close %s", path)
}

func LoadFile(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()
	book, err := Load(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", path)
	}
	return book, nil
}
