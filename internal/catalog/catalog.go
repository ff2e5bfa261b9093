// Package catalog loads the item definitions a level can spawn from, and the
// level layouts that place them.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/arena/internal/core/observability/log"
	"github.com/zeusync/arena/internal/items"
)

type options struct {
	strict        bool
	skipMalformed bool
	logger        log.Log
	parallelism   int
}

type Option func(*options)

// WithStrict decodes records in strict mode, rejecting unknown keys.
func WithStrict() Option {
	return func(o *options) { o.strict = true }
}

// WithSkipMalformed rejects malformed definitions and keeps loading the
// others. Rejections are logged and reported by Catalog.Rejected.
func WithSkipMalformed(logger log.Log) Option {
	return func(o *options) {
		o.skipMalformed = true
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithParallelism bounds how many files LoadDir reads at once.
func WithParallelism(n int) Option {
	return func(o *options) { o.parallelism = n }
}

func buildOptions(opts []Option) options {
	o := options{logger: log.NewNop(), parallelism: 4}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) decodeOptions() []items.DecodeOption {
	if o.strict {
		return []items.DecodeOption{items.Strict()}
	}
	return nil
}

// Catalog is a set of item definitions keyed by id.
type Catalog struct {
	defs     map[string]items.ItemParams
	sources  map[string]string
	rejected []error
}

func New() *Catalog {
	return &Catalog{defs: make(map[string]items.ItemParams), sources: make(map[string]string)}
}

// Add inserts p. Ids are unique within a catalog.
func (c *Catalog) Add(p items.ItemParams) error {
	return c.add(p, "")
}

func (c *Catalog) add(p items.ItemParams, source string) error {
	if prev, ok := c.defs[p.ID]; ok {
		return fmt.Errorf("%w: %q defined in %s and %s", ErrDuplicateID, prev.ID, describeSource(c.sources[p.ID]), describeSource(source))
	}
	c.defs[p.ID] = p.Clone()
	c.sources[p.ID] = source
	return nil
}

func describeSource(s string) string {
	if s == "" {
		return "<memory>"
	}
	return s
}

// Get returns a copy of the definition with the given id.
func (c *Catalog) Get(id string) (items.ItemParams, bool) {
	p, ok := c.defs[id]
	if !ok {
		return items.ItemParams{}, false
	}
	return p.Clone(), true
}

func (c *Catalog) Len() int { return len(c.defs) }

// IDs returns the definition ids in sorted order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.defs))
	for id := range c.defs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Rejected joins the errors of definitions skipped while loading, nil if none.
func (c *Catalog) Rejected() error { return errors.Join(c.rejected...) }

// Fingerprint hashes the canonical encoding of every definition. It does not
// depend on the order definitions were loaded in.
func (c *Catalog) Fingerprint() (uint64, error) {
	h := xxhash.New()
	for _, id := range c.IDs() {
		data, err := json.Marshal(c.defs[id])
		if err != nil {
			return 0, fmt.Errorf("encode %q: %w", id, err)
		}
		_, _ = h.WriteString(strconv.Itoa(len(data)))
		_, _ = h.Write(data)
	}
	return h.Sum64(), nil
}

// Load reads a catalog file: a list of item records in JSON or YAML, optionally
// zstd compressed.
func Load(path string, opts ...Option) (*Catalog, error) {
	o := buildOptions(opts)
	c := New()
	if err := c.loadFile(path, o); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) loadFile(path string, o options) error {
	records, err := readRecords(path)
	if err != nil {
		return err
	}
	for i, raw := range records {
		p, err := items.ParseParams(raw, o.decodeOptions()...)
		if err == nil {
			err = c.add(p, path)
		}
		if err == nil {
			continue
		}
		err = fmt.Errorf("%s: record %d: %w", path, i, err)
		if !o.skipMalformed || !errors.Is(err, items.ErrMalformedDefinition) {
			return err
		}
		o.logger.Warn("skipping malformed item definition", log.String("file", path), log.Int("record", i), log.Error(err))
		c.rejected = append(c.rejected, err)
	}
	return nil
}

func readRecords(path string) ([]json.RawMessage, error) {
	ff, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if ff.Format == FormatJSON {
		var records []json.RawMessage
		if _, err := readFile(path, &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var docs []yaml.Node
	if _, err := readFile(path, &docs); err != nil {
		return nil, err
	}
	records := make([]json.RawMessage, len(docs))
	for i := range docs {
		raw, err := items.YAMLToJSON(&docs[i])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: record %d: %w", ErrMalformedFile, path, i, err)
		}
		records[i] = raw
	}
	return records, nil
}

// LoadDir loads every catalog file directly inside dir concurrently and merges
// them. Files with other extensions are ignored.
func LoadDir(ctx context.Context, dir string, opts ...Option) (*Catalog, error) {
	o := buildOptions(opts)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := DetectFormat(e.Name()); err == nil {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(paths)

	parts := make([]*Catalog, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if o.parallelism > 0 {
		g.SetLimit(o.parallelism)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			part := New()
			if err := part.loadFile(path, o); err != nil {
				return err
			}
			parts[i] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := New()
	for _, part := range parts {
		for _, id := range part.IDs() {
			if err := merged.add(part.defs[id], part.sources[id]); err != nil {
				return nil, err
			}
		}
		merged.rejected = append(merged.rejected, part.rejected...)
	}
	o.logger.Debug("catalog directory loaded", log.String("dir", dir), log.Int("files", len(paths)), log.Int("items", merged.Len()))
	return merged, nil
}

// Save writes the catalog to path in the format its extension selects, records
// sorted by id.
func (c *Catalog) Save(path string) error {
	records := make([]items.ItemParams, 0, len(c.defs))
	for _, id := range c.IDs() {
		records = append(records, c.defs[id])
	}
	return writeFile(path, records)
}
