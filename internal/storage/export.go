package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/paramsynth/internal/decomp"
	"github.com/san-kum/paramsynth/internal/params/interval"
)

// Span is one open interval of parameter values.
type Span [2]float64

// ResultFile is the JSON form of a decomposition result.
type ResultFile struct {
	Iterations int               `json:"iterations"`
	Levels     []LevelRecord     `json:"levels"`
	Components []ComponentRecord `json:"components"`
}

// LevelRecord holds the colors with exactly Attractors attractors and the
// attractor states for those colors.
type LevelRecord struct {
	Attractors int            `json:"attractors"`
	Colors     []Span         `json:"colors"`
	Volume     float64        `json:"volume"`
	States     map[int][]Span `json:"states"`
}

type ComponentRecord struct {
	States map[int][]Span `json:"states"`
	Tag    []Span         `json:"tag"`
	Volume float64        `json:"volume"`
}

func NewResultFile(sv *interval.Solver, res *decomp.Result[int, interval.Set]) *ResultFile {
	rf := &ResultFile{
		Iterations: res.Iterations,
		Levels:     make([]LevelRecord, len(res.Counts)),
		Components: make([]ComponentRecord, len(res.Components)),
	}
	for i, colors := range res.Counts {
		level := LevelRecord{
			Attractors: i + 1,
			Colors:     toSpans(colors),
			Volume:     sv.Volume(colors),
			States:     map[int][]Span{},
		}
		if i < len(res.Levels) {
			for s, v := range res.Levels[i] {
				level.States[s] = toSpans(v)
			}
		}
		rf.Levels[i] = level
	}
	for i, c := range res.Components {
		rec := ComponentRecord{
			States: make(map[int][]Span, len(c.States)),
			Tag:    toSpans(c.Tag),
			Volume: sv.Volume(c.Tag),
		}
		for s, v := range c.States {
			rec.States[s] = toSpans(v)
		}
		rf.Components[i] = rec
	}
	return rf
}

// Counts returns the colors of every level, indexed like decomp.Result.Counts.
func (rf *ResultFile) Counts() []interval.Set {
	counts := make([]interval.Set, len(rf.Levels))
	for i, level := range rf.Levels {
		counts[i] = fromSpans(level.Colors)
	}
	return counts
}

func ExportJSON(path string, rf *ResultFile) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer closeFile(file, &err)
	return EncodeJSON(file, rf)
}

// EncodeJSON writes rf as indented JSON, e.g. to stdout.
func EncodeJSON(w io.Writer, rf *ResultFile) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rf)
}

func toSpans(x interval.Set) []Span {
	spans := make([]Span, 0, x.Len())
	for i := 0; i < x.Len(); i++ {
		low, high := x.Bounds(i)
		spans = append(spans, Span{low, high})
	}
	return spans
}

func fromSpans(spans []Span) interval.Set {
	x := make(interval.Set, 0, 2*len(spans))
	for _, s := range spans {
		x = append(x, s[0], s[1])
	}
	return x
}
