// Package batch validates many documents concurrently and aggregates the
// errors they have in common.
package batch

import (
	"context"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/usestring/safeparse-mcp/pkg/safeparse"
	"github.com/usestring/safeparse-mcp/pkg/types"
)

// Options configures a Runner.
type Options struct {
	// Workers bounds the number of documents validated at once.
	Workers int
	// CommonErrorsLimit bounds the number of common errors reported.
	CommonErrorsLimit int
	// Prepare, when set, maps each document to the value that is validated.
	// A Prepare error is reported on the document instead of an outcome.
	Prepare func(doc any) (any, error)
}

// Runner validates batches of documents.
type Runner struct {
	opts Options
}

// NewRunner creates a Runner. Non-positive limits fall back to defaults.
func NewRunner(opts Options) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = 8
	}
	if opts.CommonErrorsLimit <= 0 {
		opts.CommonErrorsLimit = 10
	}
	return &Runner{opts: opts}
}

// Result is the outcome of one document.
type Result struct {
	Index   int                    `json:"index"`
	Outcome safeparse.Outcome[any] `json:"outcome,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// Summary counts outcomes.
type Summary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// CommonError is a formatted error shared by several documents.
type CommonError struct {
	Path      string   `json:"path"`
	Message   string   `json:"message"`
	Count     int      `json:"count"`
	Documents []uint32 `json:"documents"`
}

// Report is the result of a batch run.
type Report struct {
	Results      []Result      `json:"results"`
	Summary      Summary       `json:"summary"`
	CommonErrors []CommonError `json:"common_errors"`
}

// Run validates every document against schema. Results keep document order.
// Run stops early and returns the context error when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, docs []any, schema safeparse.Schema[any], policy types.FormattingPolicy) (*Report, error) {
	results := make([]Result, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	for i, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i].Index = i
			if r.opts.Prepare != nil {
				prepared, err := r.opts.Prepare(doc)
				if err != nil {
					results[i].Error = err.Error()
					return nil
				}
				doc = prepared
			}
			results[i].Outcome = safeparse.SafeParse(doc, schema, policy)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Report{
		Results:      results,
		Summary:      summarize(results),
		CommonErrors: r.commonErrors(results),
	}, nil
}

func summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, res := range results {
		switch {
		case res.Outcome == nil:
			s.Skipped++
		case res.Outcome.Status() == safeparse.StatusSuccess:
			s.Succeeded++
		default:
			s.Failed++
		}
	}
	return s
}

type errorKey struct {
	path    string
	message string
}

// commonErrors builds one posting list of document indices per distinct
// formatted error, then keeps those shared by at least two documents.
func (r *Runner) commonErrors(results []Result) []CommonError {
	postings := make(map[errorKey]*roaring.Bitmap)
	for _, res := range results {
		failure, ok := res.Outcome.(safeparse.Failure[any])
		if !ok {
			continue
		}
		for _, fe := range failure.Errors {
			key := errorKey{path: fe.Path, message: fe.Message}
			bm, ok := postings[key]
			if !ok {
				bm = roaring.New()
				postings[key] = bm
			}
			bm.Add(uint32(res.Index))
		}
	}

	common := make([]CommonError, 0)
	for key, bm := range postings {
		card := bm.GetCardinality()
		if card < 2 {
			continue
		}
		common = append(common, CommonError{
			Path:      key.path,
			Message:   key.message,
			Count:     int(card),
			Documents: bm.ToArray(),
		})
	}

	sort.Slice(common, func(i, j int) bool {
		if common[i].Count != common[j].Count {
			return common[i].Count > common[j].Count
		}
		if common[i].Path != common[j].Path {
			return common[i].Path < common[j].Path
		}
		return common[i].Message < common[j].Message
	})

	if len(common) > r.opts.CommonErrorsLimit {
		common = common[:r.opts.CommonErrorsLimit]
	}
	return common
}

// FailingDocuments returns the indices of documents that failed with any of
// the given common errors.
func FailingDocuments(errs []CommonError) []uint32 {
	union := roaring.New()
	for _, ce := range errs {
		union.Or(roaring.BitmapOf(ce.Documents...))
	}
	return union.ToArray()
}
