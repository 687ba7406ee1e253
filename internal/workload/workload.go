// Package workload runs scripted sequences of table operations described
// in YAML, the way the original hash table playground exercised the table.
package workload

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/homier/lptable"
	"github.com/phuslu/log"
	"gopkg.in/yaml.v3"
)

const (
	OpPut     = "put"
	OpGet     = "get"
	OpDelete  = "delete"
	OpReset   = "reset"
	OpCompact = "compact"
	OpGrow    = "grow"
)

const (
	HashDefault  = "default"
	HashIdentity = "identity"
	HashXXH3     = "xxh3"
)

var ErrInvalidScript = errors.New("invalid script")

type Op struct {
	Op       string `yaml:"op"`
	Key      string `yaml:"key,omitempty"`
	Value    string `yaml:"value,omitempty"`
	Capacity int    `yaml:"capacity,omitempty"`
}

type Script struct {
	Capacity int    `yaml:"capacity"`
	Hash     string `yaml:"hash,omitempty"`
	Seed     uint64 `yaml:"seed,omitempty"`
	Ops      []Op   `yaml:"ops"`
}

// Decode reads and validates a script.
func Decode(r io.Reader) (Script, error) {
	d := yaml.NewDecoder(r)
	d.KnownFields(true)

	var s Script
	if err := d.Decode(&s); err != nil {
		return Script{}, fmt.Errorf("decoding script: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Script{}, err
	}

	return s, nil
}

func (s Script) Validate() error {
	if s.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidScript, s.Capacity)
	}

	switch s.Hash {
	case "", HashDefault, HashIdentity, HashXXH3:
	default:
		return fmt.Errorf("%w: unknown hash %q", ErrInvalidScript, s.Hash)
	}

	for i, op := range s.Ops {
		switch op.Op {
		case OpPut, OpGet, OpDelete, OpReset, OpCompact:
			if op.Capacity != 0 {
				return fmt.Errorf("%w: op %d (%s): capacity only applies to grow", ErrInvalidScript, i, op.Op)
			}
		}

		switch op.Op {
		case OpPut, OpGet, OpDelete:
			if op.Key == "" {
				return fmt.Errorf("%w: op %d (%s): missing key", ErrInvalidScript, i, op.Op)
			}

			if s.Hash == HashIdentity {
				if _, err := strconv.ParseInt(op.Key, 10, 64); err != nil {
					return fmt.Errorf("%w: op %d (%s): identity hash needs integer keys: %v", ErrInvalidScript, i, op.Op, err)
				}
			}
		case OpReset, OpCompact:
		case OpGrow:
			if op.Capacity <= 0 {
				return fmt.Errorf("%w: op %d (grow): capacity must be positive, got %d", ErrInvalidScript, i, op.Capacity)
			}
		default:
			return fmt.Errorf("%w: op %d: unknown op %q", ErrInvalidScript, i, op.Op)
		}
	}

	return nil
}

func (s Script) hashFunc() lptable.HashFunc[string] {
	switch s.Hash {
	case HashIdentity:
		id := lptable.IdentityHashFunc[int64]()
		return func(k string) uint64 {
			// Keys were checked by Validate.
			n, _ := strconv.ParseInt(k, 10, 64)
			return id(n)
		}
	case HashXXH3:
		return lptable.XXH3HashFunc[string](s.Seed)
	}

	// Nil lets the table pick its default.
	return nil
}

// Result is the outcome of one op. Value holds the value found, replaced or
// removed; Found tells whether there was one.
type Result struct {
	Index int
	Op    string
	Key   string
	Value string
	Found bool
	Err   error
}

func (r Result) String() string {
	switch {
	case r.Err != nil:
		return fmt.Sprintf("#%d %s %s: %v", r.Index, r.Op, r.Key, r.Err)
	case r.Key == "":
		return fmt.Sprintf("#%d %s", r.Index, r.Op)
	case r.Found:
		return fmt.Sprintf("#%d %s %s: %s", r.Index, r.Op, r.Key, r.Value)
	}

	return fmt.Sprintf("#%d %s %s: <absent>", r.Index, r.Op, r.Key)
}

type Report struct {
	Results []Result
	Stats   lptable.Stats
	Dump    string
}

// Run executes the script against a fresh table. Table errors such as
// lptable.ErrTableFull are recorded per op and don't stop the run.
// A nil logger keeps both the runner and the table silent.
func Run(s Script, logger *log.Logger) (Report, error) {
	if err := s.Validate(); err != nil {
		return Report{}, err
	}

	var opts []lptable.Option[string, string]
	if logger != nil {
		opts = append(opts, lptable.WithLogger[string, string](logger))
	}

	if h := s.hashFunc(); h != nil {
		opts = append(opts, lptable.WithHashFunc[string, string](h))
	}

	m, err := lptable.New(s.Capacity, opts...)
	if err != nil {
		return Report{}, err
	}

	results := make([]Result, 0, len(s.Ops))
	for i, op := range s.Ops {
		r := Result{Index: i, Op: op.Op, Key: op.Key}

		switch op.Op {
		case OpPut:
			r.Value, r.Found, r.Err = m.Put(op.Key, op.Value)
		case OpGet:
			r.Value, r.Found = m.Get(op.Key)
		case OpDelete:
			r.Value, r.Found = m.Delete(op.Key)
		case OpReset:
			m.Reset()
		case OpCompact:
			m.Compact()
		case OpGrow:
			g, err := lptable.Grow(m, op.Capacity)
			if err != nil {
				r.Err = err
				break
			}

			m = g
		}

		if logger != nil {
			logger.Debug().
				Int("index", i).
				Str("op", op.Op).
				Str("key", op.Key).
				Bool("found", r.Found).
				Int("size", m.Len()).
				Msg("workload: op done")
		}

		results = append(results, r)
	}

	return Report{
		Results: results,
		Stats:   m.Stats(),
		Dump:    m.String(),
	}, nil
}
