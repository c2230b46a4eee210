package records

import (
	"iter"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-cli/internal/mines"
)

const blockSep = "\n\n"

func byPiece(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

// blocks yields the non-blank blank-line-separated blocks of a document, each
// split into lines.
func blocks(doc string) iter.Seq[[]string] {
	doc = strings.ReplaceAll(doc, "\r\n", "\n")
	return func(yield func([]string) bool) {
		for _, block := range byPiece(doc, blockSep) {
			block = strings.Trim(block, "\n")
			if strings.TrimSpace(block) == "" {
				continue
			}
			if !yield(strings.Split(block, "\n")) {
				return
			}
		}
	}
}

// ParseRecords splits a records document into raw records. Missing or empty
// fields read as "0"; validation is left to [mines.Reconstruct].
func ParseRecords(doc string) []mines.Record {
	var records []mines.Record
	for lines := range blocks(doc) {
		for len(lines) < 4 {
			lines = append(lines, "0")
		}
		for i := range lines {
			if strings.TrimSpace(lines[i]) == "" {
				lines[i] = "0"
			}
		}
		records = append(records, mines.Record{
			Size:      lines[0],
			MineCount: lines[1],
			Meta:      lines[2],
			State:     lines[3],
		})
	}
	return records
}

func FormatRecords(records []mines.Record) string {
	var b strings.Builder
	for _, r := range records {
		b.WriteString(r.Size + "\n")
		b.WriteString(r.MineCount + "\n")
		b.WriteString(r.Meta + "\n")
		b.WriteString(r.State + "\n\n")
	}
	return b.String()
}

// ParseScores reads a leaderboard document. Blocks without a numeric score are
// skipped and counted in dropped.
func ParseScores(doc string) (scores []Score, dropped int) {
	for lines := range blocks(doc) {
		if len(lines) < 2 {
			dropped++
			continue
		}
		score, err := strconv.Atoi(strings.TrimSpace(lines[1]))
		if err != nil {
			dropped++
			continue
		}
		scores = append(scores, Score{Name: lines[0], Score: score})
	}
	return scores, dropped
}

func FormatScores(scores []Score) string {
	var b strings.Builder
	for _, s := range scores {
		b.WriteString(s.Name + "\n")
		b.WriteString(strconv.Itoa(s.Score) + "\n\n")
	}
	return b.String()
}
