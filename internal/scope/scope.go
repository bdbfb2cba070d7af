// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package scope provides nested declaration writers.
//
// A scope buffers its lines and, on Finish, writes its delimiters and the
// buffered lines (indented one level) into its parent. The outermost scope is
// a File, which writes every line straight to the underlying output. Scopes
// are single use: after Finish they ignore further lines.
//
// Finishing a scope first finishes every child scope opened on it that is
// still open, in the order the children were opened, so closing a File
// flushes the whole tree.
package scope

import (
	"bufio"
	"io"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// Tab is one indentation level.
const Tab = "    "

// Writer is implemented by every scope.
type Writer interface {
	// Line appends one line of text to the scope.
	Line(text string)

	// Finish emits the scope into its parent. It is a no-op on a finished scope.
	Finish() error

	// Size is the number of characters (not bytes) written to the scope so
	// far, indentation included.
	Size() int

	// Lineno is the number of lines written to the scope so far.
	Lineno() int
}

// parent is implemented by scopes that track their children.
type parent interface {
	adopt(child Writer)
}

func attach(p Writer, child Writer) {
	if t, ok := p.(parent); ok {
		t.adopt(child)
	}
}

// Comment writes a line comment into w.
func Comment(w Writer, text string) {
	w.Line("// " + text)
}

// block is the buffered state shared by all indented scopes.
type block struct {
	parent   Writer
	lines    []string
	size     int
	children []Writer
	done     bool
}

func (b *block) Line(text string) {
	if b.done {
		return
	}
	b.lines = append(b.lines, text)
	b.size += len(Tab) + utf8.RuneCountInString(text)
}

func (b *block) Size() int   { return b.size }
func (b *block) Lineno() int { return len(b.lines) }

func (b *block) adopt(child Writer) {
	b.children = append(b.children, child)
}

// finishChildren finishes open children in creation order.
func (b *block) finishChildren() error {
	var first error
	for _, c := range b.children {
		if err := c.Finish(); err != nil && first == nil {
			first = err
		}
	}
	b.children = nil
	return first
}

// emit writes head, the indented body and the closing brace to the parent.
// With skipEmpty set, an empty body produces no output at all.
func (b *block) emit(head string, skipEmpty bool) error {
	if b.done {
		return nil
	}
	err := b.finishChildren()
	b.done = true
	if skipEmpty && len(b.lines) == 0 {
		return err
	}
	b.parent.Line(head + " {")
	for _, line := range b.lines {
		b.parent.Line(Tab + line)
	}
	b.parent.Line("}")
	b.lines = nil
	return err
}

// File is the top-level scope over a physical output.
type File struct {
	w        *bufio.Writer
	size     int
	lineno   int
	children []Writer
	err      error
	done     bool
}

// NewFile returns a File writing to w.
func NewFile(w io.Writer) *File {
	return &File{w: bufio.NewWriter(w)}
}

// Line writes text and a newline immediately. The first write error is kept
// and reported by Finish.
func (f *File) Line(text string) {
	if f.done || f.err != nil {
		return
	}
	if _, err := f.w.WriteString(text); err != nil {
		f.err = errors.Wrap(err, "write line")
		return
	}
	if err := f.w.WriteByte('\n'); err != nil {
		f.err = errors.Wrap(err, "write line")
		return
	}
	f.size += utf8.RuneCountInString(text)
	f.lineno++
}

func (f *File) Size() int   { return f.size }
func (f *File) Lineno() int { return f.lineno }

// Err returns the first write error, if any.
func (f *File) Err() error { return f.err }

func (f *File) adopt(child Writer) {
	f.children = append(f.children, child)
}

// Flush writes buffered output without finishing child scopes.
func (f *File) Flush() error {
	if f.err != nil {
		return f.err
	}
	if err := f.w.Flush(); err != nil {
		f.err = errors.Wrap(err, "flush output")
	}
	return f.err
}

// Finish finishes open child scopes and flushes the output.
func (f *File) Finish() error {
	if f.done {
		return f.err
	}
	for _, c := range f.children {
		if err := c.Finish(); err != nil && f.err == nil {
			f.err = err
		}
	}
	f.children = nil
	if err := f.w.Flush(); err != nil && f.err == nil {
		f.err = errors.Wrap(err, "flush output")
	}
	f.done = true
	return f.err
}
