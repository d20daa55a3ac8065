package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// AnalyzeLogFile rebuilds the report of an evaluation from its CSV match
// log.
func AnalyzeLogFile(filepath string) (*Report, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	r := csv.NewReader(file)

	// Record looks like:
	// matchID,seed,policy0First,value,hands,p0_score,p1_score
	t := newTally()
	var names [2]string
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if record[0] == "matchID" {
			names[0] = strings.TrimSuffix(record[5], "_score")
			names[1] = strings.TrimSuffix(record[6], "_score")
			continue
		}
		rec, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		t.add(rec)
	}
	return t.report(names), nil
}

func parseRecord(record []string) (MatchRecord, error) {
	var rec MatchRecord
	if len(record) != 7 {
		return rec, fmt.Errorf("expected 7 fields, got %d", len(record))
	}
	ints := make([]int, 0, 5)
	for _, i := range []int{0, 3, 4, 5, 6} {
		v, err := strconv.Atoi(record[i])
		if err != nil {
			return rec, err
		}
		ints = append(ints, v)
	}
	seed, err := ParseSeed(record[1])
	if err != nil {
		return rec, err
	}
	first, err := strconv.ParseBool(record[2])
	if err != nil {
		return rec, err
	}
	rec = MatchRecord{
		ID:           ints[0],
		Seed:         seed,
		Policy0First: first,
		Value:        ints[1],
		Hands:        ints[2],
		Scores:       [2]int{ints[3], ints[4]},
	}
	return rec, nil
}
