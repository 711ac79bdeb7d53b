package librev

import (
	"bufio"
	"encoding/binary"
	"io"
	"sync"
	"time"

	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"

	"github.com/2x3systems/gorev/rev"
)

// OpRecord is one applied operation: both slot graphs, the op, and the result.
type OpRecord struct {
	Op     rev.Op
	Slot1  *rev.Graph
	Slot2  *rev.Graph
	Result *rev.Graph
	Time   time.Time
}

// History is an append-only, optionally bounded log of applied operations, oldest first.
type History struct {
	mu      sync.Mutex
	records []OpRecord
	limit   int
}

// NewHistory returns a History retaining at most limit records (0 means unbounded).
func NewHistory(limit int) *History {
	return &History{
		limit: limit,
	}
}

// Record appends a snapshot of the given operation; the graphs are cloned.
func (h *History) Record(X1, X2 *rev.Graph, op rev.Op, Xout *rev.Graph) {
	rec := OpRecord{
		Op:     op,
		Slot1:  X1.Clone(),
		Slot2:  X2.Clone(),
		Result: Xout.Clone(),
		Time:   time.Now(),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, rec)
	if h.limit > 0 && len(h.records) > h.limit {
		h.records = append(h.records[:0], h.records[len(h.records)-h.limit:]...)
	}
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

// Records returns a copy of the log, oldest first.
func (h *History) Records() []OpRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]OpRecord(nil), h.records...)
}

func (h *History) Clear() {
	h.mu.Lock()
	h.records = nil
	h.mu.Unlock()
}

// Export writes every record as a length-prefixed OpRecordDef.
func (h *History) Export(w io.Writer) error {
	var buf []byte
	for _, rec := range h.Records() {
		def := &rev.OpRecordDef{
			Op:        string(rec.Op),
			UnixNanos: rec.Time.UnixNano(),
			Slot1:     rec.Slot1.ExportDef(),
			Slot2:     rec.Slot2.ExportDef(),
			Result:    rec.Result.ExportDef(),
		}
		msg, err := proto.Marshal(def)
		if err != nil {
			return err
		}
		buf = binary.AppendUvarint(buf[:0], uint64(len(msg)))
		buf = append(buf, msg...)
		if _, err = w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// ReadHistory reads records written by History.Export until EOF.
func ReadHistory(r io.Reader) ([]OpRecord, error) {
	br := bufio.NewReader(r)

	var records []OpRecord
	for {
		N, err := binary.ReadUvarint(br)
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, errors.Wrap(rev.ErrBadGraphDef, err.Error())
		}
		msg := make([]byte, N)
		if _, err = io.ReadFull(br, msg); err != nil {
			return records, errors.Wrap(rev.ErrBadGraphDef, err.Error())
		}

		var def rev.OpRecordDef
		if err = proto.Unmarshal(msg, &def); err != nil {
			return records, errors.Wrap(rev.ErrBadGraphDef, err.Error())
		}
		rec := OpRecord{
			Op:   rev.Op(def.Op),
			Time: time.Unix(0, def.UnixNanos),
		}
		if rec.Slot1, err = def.Slot1.Import(); err != nil {
			return records, err
		}
		if rec.Slot2, err = def.Slot2.Import(); err != nil {
			return records, err
		}
		if rec.Result, err = def.Result.Import(); err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}
