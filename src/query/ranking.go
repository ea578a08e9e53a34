package query

import (
	"bytes"
	"encoding/json"
	"slices"
	"strconv"

	"github.com/contre95/songstats/src/music"
)

// Count is a key with its number of occurrences.
type Count struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// Ranking is an ordered list of counts. It serialises as a JSON object that
// keeps its order, e.g. {"Pop":2,"Rock":1}.
type Ranking []Count

// CountBy counts tracks per key in first-seen order.
func CountBy(ds *music.Dataset, key func(t *music.Track) string) Ranking {
	if ds.Empty() {
		return Ranking{}
	}
	index := make(map[string]int)
	r := Ranking{}
	for i := range ds.Tracks {
		k := key(&ds.Tracks[i])
		if pos, ok := index[k]; ok {
			r[pos].Value++
			continue
		}
		index[k] = len(r)
		r = append(r, Count{Key: k, Value: 1})
	}
	return r
}

// Sorted returns a copy ordered by count descending. Ties keep their current
// relative order, so a first-seen ranking breaks ties by first encounter.
func (r Ranking) Sorted() Ranking {
	out := slices.Clone(r)
	slices.SortStableFunc(out, func(a, b Count) int {
		return b.Value - a.Value
	})
	return out
}

// Top returns the k highest counts, ties broken by current order.
func (r Ranking) Top(k int) Ranking {
	out := r.Sorted()
	if k >= 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

// Total sums every count.
func (r Ranking) Total() int {
	total := 0
	for _, c := range r {
		total += c.Value
	}
	return total
}

// Keys returns the keys in order.
func (r Ranking) Keys() []string {
	keys := make([]string, len(r))
	for i, c := range r {
		keys[i] = c.Key
	}
	return keys
}

// Get returns the count for key, or 0.
func (r Ranking) Get(key string) int {
	for _, c := range r {
		if c.Key == key {
			return c.Value
		}
	}
	return 0
}

// MarshalJSON writes the ranking as an ordered JSON object.
func (r Ranking) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(c.Value))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an ordered JSON object back into a ranking.
func (r *Ranking) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}
	out := Ranking{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var v int
		if err := dec.Decode(&v); err != nil {
			return err
		}
		out = append(out, Count{Key: key, Value: v})
	}
	*r = out
	return nil
}
