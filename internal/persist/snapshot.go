package persist

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/l1jgo/delve/internal/core/ecs"
	"github.com/l1jgo/delve/internal/sim"
	"github.com/l1jgo/delve/internal/world"
)

const snapshotVersion = 2

// ErrNoSave is returned by Store.Load when the slot is empty.
var ErrNoSave = errors.New("no saved game")

// ErrCorrupt marks a payload that cannot be a snapshot at all.
var ErrCorrupt = errors.New("corrupt snapshot")

// TableBlob is one component table encoded on its own.
type TableBlob struct {
	Name string `cbor:"name"`
	Data []byte `cbor:"data"`
}

// Snapshot is everything needed to resume a run. Tile content is never
// stored; it is rebuilt by the first indexing pass after restore.
type Snapshot struct {
	Version  int          `cbor:"version"`
	Depth    int          `cbor:"depth"`
	Width    int          `cbor:"width"`
	Height   int          `cbor:"height"`
	Tiles    []byte       `cbor:"tiles"`
	Revealed []bool       `cbor:"revealed"`
	Stains   []int        `cbor:"stains"`
	Rooms    []world.Rect `cbor:"rooms"`
	Entities []uint64     `cbor:"entities"`
	Slots    []uint32     `cbor:"slots"`
	RNG      []byte       `cbor:"rng"`
	Log      []string     `cbor:"log"`
	Tables   []TableBlob  `cbor:"tables"`
	Checksum []byte       `cbor:"checksum"`
}

var encMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// Capture snapshots the run held by ctx.
func Capture(ctx *sim.Context) (*Snapshot, error) {
	m := ctx.Map
	s := &Snapshot{
		Version:  snapshotVersion,
		Depth:    m.Depth,
		Width:    m.Width,
		Height:   m.Height,
		Tiles:    make([]byte, len(m.Tiles)),
		Revealed: append([]bool(nil), m.Revealed...),
		Stains:   m.Stains(),
		Rooms:    append([]world.Rect(nil), m.Rooms...),
		Log:      append([]string(nil), ctx.Log.Entries...),
	}
	for i, t := range m.Tiles {
		s.Tiles[i] = byte(t)
	}
	for _, id := range ctx.World.Entities() {
		s.Entities = append(s.Entities, uint64(id))
	}
	s.Slots = ctx.World.Generations()

	state, err := ctx.RNG.State()
	if err != nil {
		return nil, fmt.Errorf("rng state: %w", err)
	}
	s.RNG = state

	for _, t := range ctx.C.Tables() {
		data, err := encMode.Marshal(t.Dump())
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", t.Name, err)
		}
		s.Tables = append(s.Tables, TableBlob{Name: t.Name, Data: data})
	}

	sum, err := s.digest()
	if err != nil {
		return nil, err
	}
	s.Checksum = sum
	return s, nil
}

// Restore replaces the run held by ctx with s. Entity ids and free-slot
// generations come back exactly as saved. A snapshot that fails its checksum or whose tables do not
// decode panics: there is no sane state to fall back to.
func Restore(ctx *sim.Context, s *Snapshot) {
	sum, err := s.digest()
	if err != nil {
		panic(fmt.Sprintf("persist: digest snapshot: %v", err))
	}
	if !bytes.Equal(sum, s.Checksum) {
		panic("persist: snapshot checksum mismatch")
	}
	if s.Version != snapshotVersion {
		panic(fmt.Sprintf("persist: snapshot version %d, want %d", s.Version, snapshotVersion))
	}
	if len(s.Tiles) != s.Width*s.Height || len(s.Revealed) != len(s.Tiles) {
		panic(fmt.Sprintf("persist: snapshot grid %dx%d holds %d tiles", s.Width, s.Height, len(s.Tiles)))
	}

	if n := ctx.World.Registry().Len(); len(s.Tables) != n {
		panic(fmt.Sprintf("persist: snapshot has %d tables, world registers %d", len(s.Tables), n))
	}

	ids := make([]ecs.EntityID, len(s.Entities))
	for i, raw := range s.Entities {
		ids[i] = ecs.EntityID(raw)
	}
	ctx.World.Restore(ids, s.Slots)

	blobs := make(map[string][]byte, len(s.Tables))
	for _, b := range s.Tables {
		blobs[b.Name] = b.Data
	}
	for _, t := range ctx.C.Tables() {
		data, ok := blobs[t.Name]
		if !ok {
			panic(fmt.Sprintf("persist: snapshot has no %s table", t.Name))
		}
		if err := t.Restore(func(dst any) error { return cbor.Unmarshal(data, dst) }); err != nil {
			panic(fmt.Sprintf("persist: %v", err))
		}
	}

	m := world.NewMap(s.Width, s.Height, s.Depth)
	for i, t := range s.Tiles {
		m.Tiles[i] = world.TileType(t)
	}
	copy(m.Revealed, s.Revealed)
	m.Rooms = append(m.Rooms[:0], s.Rooms...)
	for _, idx := range s.Stains {
		m.Stain(idx)
	}
	m.PopulateBlocked()
	ctx.Map = m

	if err := ctx.RNG.SetState(s.RNG); err != nil {
		panic(fmt.Sprintf("persist: rng state: %v", err))
	}
	ctx.Log.Reset(s.Log...)
	ctx.Requests = sim.Requests{}
	ctx.Bus.Discard()

	if !ctx.SyncPlayer() {
		panic("persist: snapshot has no player")
	}
	if vs, ok := ctx.C.Viewshed.Get(ctx.Player); ok {
		vs.Dirty = true
	}
}

// Encode serializes s for a store.
func Encode(s *Snapshot) ([]byte, error) {
	return encMode.Marshal(s)
}

// Decode parses a stored payload. It does not verify the checksum; Restore
// does.
func Decode(b []byte) (*Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &s, nil
}

// digest is blake2b-256 over the encoding of s with the checksum blanked.
func (s *Snapshot) digest() ([]byte, error) {
	cp := *s
	cp.Checksum = nil
	b, err := encMode.Marshal(&cp)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	sum := blake2b.Sum256(b)
	return sum[:], nil
}
