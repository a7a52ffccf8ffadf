package printer

import "io"

// counterWriter wraps an io.Writer and tracks both how many bytes have been
// written since the last ResetCount (one file's worth of output) and the
// running total across every file, so the search-separator logic can tell
// "first write to this file" from "first write ever".
type counterWriter struct {
	w          io.Writer
	count      uint64
	totalCount uint64
}

func newCounterWriter(w io.Writer) *counterWriter {
	return &counterWriter{w: w}
}

func (c *counterWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.count += uint64(n)
	c.totalCount += uint64(n)
	return n, err
}

func (c *counterWriter) Count() uint64      { return c.count }
func (c *counterWriter) TotalCount() uint64 { return c.totalCount }
func (c *counterWriter) ResetCount()        { c.count = 0 }
