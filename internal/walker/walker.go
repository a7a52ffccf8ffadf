// Package walker discovers files under a set of root paths honoring
// .gitignore/.ignore rules, resolves each file's candidate languages, and
// fans the resulting (path, languages) work out across a worker pool that
// searches and prints each file, aggregating stats and the run's overall
// exit disposition.
package walker

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/karrick/godirwalk"

	"github.com/tsgrep/tree-sitter-grep/internal/diagnostics"
	"github.com/tsgrep/tree-sitter-grep/internal/lang"
	"github.com/tsgrep/tree-sitter-grep/internal/printer"
	"github.com/tsgrep/tree-sitter-grep/internal/query"
	"github.com/tsgrep/tree-sitter-grep/internal/search"
	"github.com/tsgrep/tree-sitter-grep/internal/sink"
)

// Exit codes mirror grep's convention: 0 for at least one match, 1 for no
// matches, 2 for a fatal error. Non-fatal per-file errors do not change the
// 0/1 disposition.
const (
	ExitMatch    = 0
	ExitNoMatch  = 1
	ExitError    = 2
)

// Options configures one walker run. Searcher, NewContext, NewSink, and Out
// are required; everything else has a usable zero value.
type Options struct {
	Roots []string

	// Language, if non-nil, forces every file to that language instead of
	// resolving candidates from the extension table.
	Language *lang.Tag

	// FileTypes merges extra glob patterns into the extension table, keyed
	// by a tag's ignore-style name (config.Config.FileTypes).
	FileTypes map[string][]string

	// SkipHidden skips dotfiles and dotdirectories, matching the
	// ignore-crate walker's default.
	SkipHidden bool

	Workers   int
	HeapLimit int64

	Searcher   *search.Searcher
	NewContext func(lang.Tag) (*query.Context, error)
	NewSink    func(w io.Writer, path string) sink.Sink

	Out           io.Writer
	SeparatorPath []byte

	Stats       *printer.Stats
	Diagnostics *diagnostics.Accumulator
}

// Result summarizes one completed run.
type Result struct {
	Matched  bool
	ExitCode int
}

type workItem struct {
	path  string
	langs []lang.Tag
}

type rendered struct {
	buf     *bytes.Buffer
	matched bool
}

// Run walks opts.Roots, searches every matching file, and writes rendered
// output to opts.Out in arrival order.
func Run(opts Options) (Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	items := make(chan workItem, workers*4)
	out := make(chan rendered, workers*4)

	var walkErr error
	var walkWG sync.WaitGroup
	walkWG.Add(1)
	go func() {
		defer walkWG.Done()
		defer close(items)
		walkErr = walkRoots(opts, items)
	}()

	var matchedAny atomicBool
	var fatal atomicError

	var workersWG sync.WaitGroup
	for i := 0; i < workers; i++ {
		workersWG.Add(1)
		go func() {
			defer workersWG.Done()
			contexts := make(map[lang.Tag]*query.Context)
			for item := range items {
				buf, matched, err := processFile(opts, item, contexts)
				if err != nil {
					fatal.setIfEmpty(err)
					if opts.Diagnostics != nil {
						opts.Diagnostics.SetFatal(err)
					}
					continue
				}
				if buf == nil {
					continue
				}
				if matched {
					matchedAny.set()
				}
				out <- rendered{buf: buf, matched: matched}
			}
		}()
	}

	var writerWG sync.WaitGroup
	writerWG.Add(1)
	go func() {
		defer writerWG.Done()
		first := true
		for r := range out {
			if r.buf.Len() == 0 {
				continue
			}
			if !first && opts.SeparatorPath != nil {
				_, _ = opts.Out.Write(opts.SeparatorPath)
				if !bytes.HasSuffix(opts.SeparatorPath, []byte("\n")) {
					_, _ = opts.Out.Write([]byte("\n"))
				}
			}
			first = false
			n, _ := opts.Out.Write(r.buf.Bytes())
			if opts.Stats != nil {
				opts.Stats.AddBytesPrinted(uint64(n))
			}
		}
	}()

	workersWG.Wait()
	close(out)
	writerWG.Wait()
	walkWG.Wait()

	if walkErr != nil {
		fatal.setIfEmpty(walkErr)
	}

	if err := fatal.get(); err != nil {
		return Result{ExitCode: ExitError}, err
	}
	if matchedAny.get() {
		return Result{Matched: true, ExitCode: ExitMatch}, nil
	}
	return Result{ExitCode: ExitNoMatch}, nil
}

func walkRoots(opts Options, items chan<- workItem) error {
	for _, root := range opts.Roots {
		info, err := os.Stat(root)
		if err != nil {
			return fmt.Errorf("walker: %w", err)
		}
		if !info.IsDir() {
			items <- workItem{path: root, langs: resolveLanguages(opts, root)}
			continue
		}
		if err := walkDir(opts, root, items); err != nil {
			return err
		}
	}
	return nil
}

func walkDir(opts Options, root string, items chan<- workItem) error {
	m := newMatcher(root, opts.SkipHidden)
	return godirwalk.Walk(root, &godirwalk.Options{
		Unsorted: true,
		Callback: func(path string, de *godirwalk.Dirent) error {
			if path == root {
				return nil
			}
			name := de.Name()
			if de.IsDir() {
				if m.SkipDir(path, name) {
					return godirwalk.SkipThis
				}
				return nil
			}
			if !de.IsRegular() && !de.IsSymlink() {
				return nil
			}
			if m.SkipFile(path, name) {
				return nil
			}
			items <- workItem{path: path, langs: resolveLanguages(opts, path)}
			return nil
		},
		ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
			diagnostics.Event("walker:dir", "skip").Path(path).Log(err)
			return godirwalk.SkipNode
		},
	})
}

func resolveLanguages(opts Options, path string) []lang.Tag {
	if opts.Language != nil {
		return []lang.Tag{*opts.Language}
	}
	return Candidates(path, opts.FileTypes)
}

func processFile(opts Options, item workItem, contexts map[lang.Tag]*query.Context) (*bytes.Buffer, bool, error) {
	if len(item.langs) == 0 {
		return nil, false, nil
	}
	if len(item.langs) > 1 {
		err := &lang.AmbiguityError{Path: item.path, Candidates: item.langs}
		diagnostics.Event("walker:file", "skip").Path(item.path).Log(err)
		if opts.Diagnostics != nil {
			opts.Diagnostics.Add(item.path, err)
		}
		return nil, false, nil
	}
	l := item.langs[0]

	qc, ok := contexts[l]
	if !ok {
		var err error
		qc, err = opts.NewContext(l)
		if err != nil {
			diagnostics.Event("walker:query", "skip").Path(item.path).Log(err)
			if opts.Diagnostics != nil {
				opts.Diagnostics.Add(item.path, err)
			}
			return nil, false, nil
		}
		contexts[l] = qc
	}

	data, err := readFile(item.path, opts.HeapLimit)
	if err != nil {
		diagnostics.Event("walker:file", "skip").Path(item.path).Log(err)
		if opts.Diagnostics != nil {
			opts.Diagnostics.Add(item.path, err)
		}
		return nil, false, nil
	}

	var buf bytes.Buffer
	s := opts.NewSink(&buf, item.path)
	if err := opts.Searcher.Search(qc, data, s); err != nil {
		diagnostics.Event("walker:search", "skip").Path(item.path).Log(err)
		if opts.Diagnostics != nil {
			opts.Diagnostics.Add(item.path, err)
		}
		return nil, false, nil
	}

	if opts.Stats != nil {
		opts.Stats.AddSearches(1)
		opts.Stats.AddBytesSearched(uint64(len(data)))
	}
	return &buf, buf.Len() > 0, nil
}

func readFile(path string, heapLimit int64) ([]byte, error) {
	if heapLimit > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.Size() > heapLimit {
			return nil, fmt.Errorf("file %q exceeds heap_limit (%d > %d bytes)", path, info.Size(), heapLimit)
		}
	}
	return os.ReadFile(path)
}
