package gradle

import (
	"bufio"
	"io"
	"strings"
)

// maxLineSize bounds a single report line. Gradle wraps nothing, so very
// deep trees can produce long lines.
const maxLineSize = 1 << 20

// treeStart is the first character of the first dependency line of a block.
// lastStart additionally opens a block in lenient mode, where a configuration
// with a single dependency begins with a last-child connector.
const (
	treeStart = "+"
	lastStart = `\---`
)

// Block is the slice of a report that belongs to one configuration.
type Block struct {
	Label string   // The line right before the first dependency line
	Lines []string // Raw dependency lines, in report order
	Start int      // 1-based line number of Label, 0 when the label is the sentinel
}

// LineOf returns the 1-based report line number of Lines[i].
func (b Block) LineOf(i int) int { return b.Start + 1 + i }

// ExtractBlocks groups report lines into configuration blocks.
//
// A block starts at the first line beginning with "+" while outside a block;
// its label is the line before it. A whitespace-only line ends the block.
// Everything outside blocks is discarded. If the very first line starts a
// block, the label is the empty string.
func ExtractBlocks(lines []string) []Block {
	return extractBlocks(lines, false)
}

// ExtractBlocksLenient is [ExtractBlocks] that also opens a block on a line
// beginning with a last-child connector, which is how Gradle prints a
// configuration holding exactly one dependency.
func ExtractBlocksLenient(lines []string) []Block {
	return extractBlocks(lines, true)
}

func startsBlock(line string, lenient bool) bool {
	if strings.HasPrefix(line, treeStart) {
		return true
	}
	return lenient && strings.HasPrefix(line, lastStart)
}

func extractBlocks(lines []string, lenient bool) []Block {
	var (
		blocks   []Block
		inside   bool
		previous string
		prevNum  int
	)
	for i, line := range lines {
		num := i + 1
		if !inside {
			if startsBlock(line, lenient) {
				blocks = append(blocks, Block{
					Label: previous,
					Lines: []string{line},
					Start: prevNum,
				})
				inside = true
			} else {
				previous, prevNum = line, num
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			inside = false
			continue
		}
		cur := &blocks[len(blocks)-1]
		cur.Lines = append(cur.Lines, line)
	}
	return blocks
}

// ReadLines reads r to the end and returns its lines without terminators.
// Carriage returns left by CRLF output are dropped.
func ReadLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// ReadBlocks reads a whole report and returns its configuration blocks.
func ReadBlocks(r io.Reader) ([]Block, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}
	return ExtractBlocks(lines), nil
}
