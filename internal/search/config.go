package search

// Config holds the knobs that control how a Searcher merges matched AST
// nodes into reported line spans and surrounds them with context.
type Config struct {
	LineTerm      byte
	InvertMatch   bool
	AfterContext  int
	BeforeContext int
	Passthru      bool
	LineNumber    bool
	HeapLimit     int64 // 0 means unlimited
}

// DefaultConfig mirrors the defaults a bare invocation of the command line
// would produce: newline-terminated lines, line numbers on, no context.
func DefaultConfig() Config {
	return Config{
		LineTerm:   '\n',
		LineNumber: true,
	}
}

func (c *Config) maxContext() int {
	if c.BeforeContext > c.AfterContext {
		return c.BeforeContext
	}
	return c.AfterContext
}

// Builder assembles a Config fluently, preferring chained option setters
// over a struct literal with many fields.
type Builder struct {
	config Config
}

func NewBuilder() *Builder {
	return &Builder{config: DefaultConfig()}
}

func (b *Builder) LineTerminator(term byte) *Builder { b.config.LineTerm = term; return b }
func (b *Builder) InvertMatch(yes bool) *Builder     { b.config.InvertMatch = yes; return b }
func (b *Builder) LineNumber(yes bool) *Builder      { b.config.LineNumber = yes; return b }
func (b *Builder) AfterContext(n int) *Builder       { b.config.AfterContext = n; return b }
func (b *Builder) BeforeContext(n int) *Builder      { b.config.BeforeContext = n; return b }
func (b *Builder) Passthru(yes bool) *Builder        { b.config.Passthru = yes; return b }
func (b *Builder) HeapLimit(bytes int64) *Builder    { b.config.HeapLimit = bytes; return b }

// Build finalizes the Searcher. Passthru mode ignores any explicit context
// counts, matching grep -A/-B/--passthru precedence.
func (b *Builder) Build() *Searcher {
	cfg := b.config
	if cfg.Passthru {
		cfg.BeforeContext = 0
		cfg.AfterContext = 0
	}
	return &Searcher{config: cfg}
}
