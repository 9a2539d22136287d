package lineage

import (
	"encoding/json"
	"fmt"
	"io"
)

// DecodeRecords reads a JSON array of lineage records from r.
//
// The data source is loosely typed: ids and parent ids may arrive as JSON
// strings or numbers, and unknown fields are ignored. Elements that cannot
// be decoded at all are skipped and counted in malformed rather than
// failing the whole snapshot - partial corruption must never cost the
// caller the valid remainder.
//
// DecodeRecords returns an error only when the outer value is not a JSON
// array.
func DecodeRecords(r io.Reader) (records []Record, malformed int, err error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, 0, fmt.Errorf("decode records: %w", err)
	}

	records = make([]Record, 0, len(raw))
	for _, msg := range raw {
		var rr rawRecord
		if err := json.Unmarshal(msg, &rr); err != nil {
			malformed++
			continue
		}
		records = append(records, rr.record())
	}
	return records, malformed, nil
}

// rawRecord mirrors Record with tolerant id decoding.
type rawRecord struct {
	ID         flexID   `json:"id"`
	ParentIDs  []flexID `json:"parentIds"`
	Algorithm  string   `json:"algorithmLabel"`
	Color      string   `json:"color"`
	BirthOrder float64  `json:"birthOrder"`
}

func (rr rawRecord) record() Record {
	rec := Record{
		ID:         string(rr.ID),
		Algorithm:  rr.Algorithm,
		Color:      rr.Color,
		BirthOrder: rr.BirthOrder,
	}
	if len(rr.ParentIDs) > 0 {
		rec.ParentIDs = make([]string, len(rr.ParentIDs))
		for i, p := range rr.ParentIDs {
			rec.ParentIDs[i] = string(p)
		}
	}
	return rec
}

// flexID decodes a JSON string or number into its canonical string form.
// Numbers keep their literal representation, so the id 3 and the id "3"
// resolve to the same agent. A JSON null decodes to the empty string and is
// later dropped by normalization as "no usable id".
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}
