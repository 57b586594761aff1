// Copyright © 2020 The Rhyme Authors under an MIT-style license.

// Package loc has routines for tracking file locations.
package loc

import "fmt"

// A Range is a start and end byte offset.
type Range [2]int

// GetRange returns itself.
// This is useful so than Range can be embedded in a struct
// and that struct can implement interface{GetRange() Range}.
func (r Range) GetRange() Range { return r }

// Len returns the number of bytes covered by the range.
func (r Range) Len() int { return r[1] - r[0] }

// A Loc describes a file location.
type Loc struct {
	Path string
	// Line and Col are the 1-based line and column of the start.
	Line int
	Col  int
	// Offs is the byte offset of the start within the file.
	Offs int
	// Len is the length of the located text in bytes.
	Len int
}

func (l Loc) String() string {
	if l.Path == "" {
		return fmt.Sprintf("%d.%d", l.Line, l.Col)
	}
	return fmt.Sprintf("%s:%d.%d", l.Path, l.Line, l.Col)
}

// Files tracks locations within a set of files.
type Files []File

// A File is a single file in a Files.
type File struct {
	Path  string
	Offs  int
	Len   int
	Lines []int
}

// Len returns the total length of all files.
func (fs Files) Len() int {
	if len(fs) == 0 {
		return 0
	}
	last := fs[len(fs)-1]
	return last.Offs + last.Len
}

// Add adds a new file to the set given its path and text.
// Offsets of the new file start after the end of the last file.
func (fs *Files) Add(path, text string) {
	var lines []int
	offs := fs.Len()
	for i, r := range text {
		if r == '\n' {
			lines = append(lines, offs+i)
		}
	}
	*fs = append(*fs, File{
		Path:  path,
		Offs:  offs,
		Len:   len(text),
		Lines: lines,
	})
}

// Loc returns the Loc of a range.
// The Loc is nil if the range is not within the files.
func (fs Files) Loc(r Range) *Loc {
	if len(fs) == 0 || r[0] < 0 || r[1] > fs.Len() || r[0] > r[1] {
		return nil
	}
	file := fs[0]
	for _, f := range fs {
		if f.Offs > r[0] {
			break
		}
		file = f
	}
	line, col1 := 1, file.Offs-1
	for _, nl := range file.Lines {
		if nl >= r[0] {
			break
		}
		col1 = nl
		line++
	}
	return &Loc{
		Path: file.Path,
		Line: line,
		Col:  r[0] - col1,
		Offs: r[0] - file.Offs,
		Len:  r.Len(),
	}
}
