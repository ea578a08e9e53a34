package query

import "github.com/contre95/songstats/src/music"

// Head returns the first n tracks in storage order.
func Head(ds *music.Dataset, n int) []music.Track {
	if ds.Empty() || n <= 0 {
		return []music.Track{}
	}
	n = min(n, ds.Len())
	out := make([]music.Track, n)
	copy(out, ds.Tracks[:n])
	return out
}

// Filter returns up to limit tracks, in storage order, that match every
// predicate in c. A limit <= 0 returns all matches.
func Filter(ds *music.Dataset, c Criteria, limit int) []music.Track {
	return Where(ds, limit, c.Predicates()...)
}

// Where is the single-pass scan behind Filter.
func Where(ds *music.Dataset, limit int, preds ...Predicate) []music.Track {
	out := []music.Track{}
	if ds.Empty() {
		return out
	}
	match := All(preds...)
	for i := range ds.Tracks {
		if !match(&ds.Tracks[i]) {
			continue
		}
		out = append(out, ds.Tracks[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
