package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/wolfca/internal/automaton"
)

type ExportData struct {
	Rule        string             `json:"rule"`
	States      int                `json:"states"`
	Neighbors   int                `json:"neighbors"`
	Width       int                `json:"width"`
	Generations int                `json:"generations"`
	Seed        int64              `json:"seed"`
	History     []string           `json:"history"`
	Metrics     map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run as JSON; each history row is a string of state
// digits when states fit in one digit, otherwise space-separated values.
func ExportJSON(w io.Writer, meta *RunMetadata, history []automaton.Generation) error {
	data := ExportData{
		Rule:        meta.Rule,
		States:      meta.States,
		Neighbors:   meta.Neighbors,
		Width:       meta.Width,
		Generations: len(history),
		Seed:        meta.Seed,
		History:     make([]string, len(history)),
		Metrics:     meta.Metrics,
	}

	for i, g := range history {
		if meta.States <= 10 {
			data.History[i] = g.String()
			continue
		}
		row := make([]byte, 0, len(g)*4)
		for j, s := range g {
			if j > 0 {
				row = append(row, ' ')
			}
			row = strconv.AppendUint(row, uint64(s), 10)
		}
		data.History[i] = string(row)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteCSV writes one row per generation: the generation index followed by
// one column per cell.
func WriteCSV(w io.Writer, history []automaton.Generation) error {
	cw := csv.NewWriter(w)

	if len(history) > 0 {
		header := []string{"generation"}
		for i := range history[0] {
			header = append(header, fmt.Sprintf("c%d", i))
		}
		if err := cw.Write(header); err != nil {
			return err
		}
	}

	for i, g := range history {
		row := make([]string, 0, len(g)+1)
		row = append(row, strconv.Itoa(i))
		for _, s := range g {
			row = append(row, strconv.Itoa(int(s)))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
