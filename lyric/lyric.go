// Package lyric parses timestamped LRC text into a queryable timeline.
package lyric

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yhkl-dev/EaseCLI/domain"
)

// NoLyric is returned by At when the index is empty
const NoLyric = "no lyric"

// rowPattern matches [MM:SS.FFF]CONTENT. The sub-second group is parsed but
// not used, so timestamps have second precision.
var rowPattern = regexp.MustCompile(`\[(\d{2}):(\d{2})\.(\d+)\](.*)`)

// Index is an ordered lyric timeline
type Index []domain.LyricLine

// Parse converts a lyric blob into an Index. Lines that do not match the
// timestamp pattern are skipped. Input order is preserved.
func Parse(text string) Index {
	var rows Index
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if row, ok := parseRow(scanner.Text()); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

func parseRow(line string) (domain.LyricLine, bool) {
	match := rowPattern.FindStringSubmatch(line)
	if match == nil {
		return domain.LyricLine{}, false
	}
	minutes, err := strconv.Atoi(match[1])
	if err != nil {
		return domain.LyricLine{}, false
	}
	seconds, err := strconv.Atoi(match[2])
	if err != nil {
		return domain.LyricLine{}, false
	}
	return domain.LyricLine{
		StartMS: (minutes*60 + seconds) * 1000,
		Content: match[4],
	}, true
}

// At returns the content of the latest entry starting at or before tMS.
// If every entry lies in the future the first entry is returned.
func (idx Index) At(tMS int) string {
	if len(idx) == 0 {
		return NoLyric
	}
	if i := idx.Position(tMS); i >= 0 {
		return idx[i].Content
	}
	return idx[0].Content
}

// Position returns the index of the latest entry starting at or before tMS,
// or -1 when there is none.
func (idx Index) Position(tMS int) int {
	for i := len(idx) - 1; i >= 0; i-- {
		if idx[i].StartMS <= tMS {
			return i
		}
	}
	return -1
}

// Format serialises the index back to [MM:SS.000]content lines
func Format(idx Index) string {
	var b strings.Builder
	for _, row := range idx {
		secs := row.StartMS / 1000
		fmt.Fprintf(&b, "[%02d:%02d.000]%s\n", secs/60, secs%60, row.Content)
	}
	return b.String()
}
