package tools

import (
	"context"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/safeparse-mcp/internal/batch"
	"github.com/usestring/safeparse-mcp/internal/metrics"
	"github.com/usestring/safeparse-mcp/internal/preview"
	"github.com/usestring/safeparse-mcp/internal/query"
	"github.com/usestring/safeparse-mcp/pkg/safeparse"
	"github.com/usestring/safeparse-mcp/pkg/types"
)

// ValidateBatchInput is the input for safeparse_validate_batch.
type ValidateBatchInput struct {
	Schema       string `json:"schema,omitempty" jsonschema:"Inline schema source (Zod, JSON Schema, YAML or Go struct)"`
	SchemaName   string `json:"schema_name,omitempty" jsonschema:"Name of a schema from the schema directory (instead of schema)"`
	SchemaFormat string `json:"schema_format,omitempty" jsonschema:"Format of the inline schema: zod, json_schema, yaml or go_struct"`
	Documents    []any  `json:"documents" jsonschema:"The JSON values to validate"`
	Select       string `json:"select,omitempty" jsonschema:"JQ expression applied to each document before validation"`
	Formatting   string `json:"formatting,omitempty" jsonschema:"Formatting policy: diagnostic or privacy-preserving (default: server setting)"`
	OnlyFailures bool   `json:"only_failures,omitempty" jsonschema:"Omit successful documents from results"`
	FullValues   bool   `json:"full_values,omitempty" jsonschema:"Return validated values in full instead of a shortened preview"`
}

// ValidateBatchOutput is the output for safeparse_validate_batch.
type ValidateBatchOutput struct {
	Summary      batch.Summary       `json:"summary"`
	Results      []DocumentResult    `json:"results,omitzero"`
	CommonErrors []batch.CommonError `json:"common_errors,omitzero"`
	// CommonlyFailing lists the documents hit by at least one common error.
	CommonlyFailing []uint32 `json:"commonly_failing,omitzero"`
	SchemaName      string   `json:"schema_name,omitempty"`
	Formatting      string   `json:"formatting"`
}

// DocumentResult is the outcome of one document in a batch.
type DocumentResult struct {
	Index      int                    `json:"index"`
	Status     string                 `json:"status"`
	Value      any                    `json:"value,omitempty"`
	Errors     []types.FormattedError `json:"errors,omitzero"`
	SkipReason string                 `json:"skip_reason,omitempty"`
}

// ToolValidateBatch validates many documents against one schema.
func ToolValidateBatch(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateBatchInput) (*sdkmcp.CallToolResult, ValidateBatchOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateBatchInput) (*sdkmcp.CallToolResult, ValidateBatchOutput, error) {
		if len(input.Documents) == 0 {
			return nil, ValidateBatchOutput{}, ErrInvalidInput("documents must not be empty")
		}
		if limit := d.Config.MaxBatchDocuments; limit > 0 && len(input.Documents) > limit {
			return nil, ValidateBatchOutput{}, ErrInvalidInput(fmt.Sprintf("too many documents: %d given, limit is %d", len(input.Documents), limit))
		}

		rs, err := d.ResolveSchema(input.SchemaName, input.Schema, input.SchemaFormat)
		if err != nil {
			return nil, ValidateBatchOutput{}, err
		}

		sel, err := compileSelect(input.Select)
		if err != nil {
			return nil, ValidateBatchOutput{}, err
		}

		var prepare func(any) (any, error)
		if sel != nil {
			prepare = func(doc any) (any, error) { return sel.Select(doc) }
		}

		policy := d.Policy(input.Formatting)
		start := time.Now()
		report, err := d.Runner(prepare).Run(ctx, input.Documents, metrics.Observe[any](d.Metrics, rs.Validator), policy)
		if err != nil {
			return nil, ValidateBatchOutput{}, WrapRunError(err)
		}

		d.Metrics.ObserveDuration(rs.Format, time.Since(start))

		results := make([]DocumentResult, 0, len(report.Results))
		for _, res := range report.Results {
			dr := toDocumentResult(res)
			if dr.Value != nil && !input.FullValues {
				dr.Value = preview.Value(dr.Value, preview.DefaultOptions())
			}
			if res.Outcome != nil {
				d.Metrics.RecordOutcome(policy, dr.Status)
			}
			if input.OnlyFailures && dr.Status == safeparse.StatusSuccess {
				continue
			}
			results = append(results, dr)
		}

		return nil, ValidateBatchOutput{
			Summary:         report.Summary,
			Results:         results,
			CommonErrors:    report.CommonErrors,
			CommonlyFailing: batch.FailingDocuments(report.CommonErrors),
			SchemaName:      rs.Name,
			Formatting:      string(policy),
		}, nil
	}
}

func toDocumentResult(res batch.Result) DocumentResult {
	if res.Outcome == nil {
		reason := res.Error
		if reason == query.ErrNoValue.Error() {
			reason = "select: " + reason
		}
		return DocumentResult{Index: res.Index, Status: "skipped", SkipReason: reason}
	}

	dr := DocumentResult{Index: res.Index, Status: res.Outcome.Status()}
	if s, ok := res.Outcome.AsSuccess(); ok {
		dr.Value = s.Value
	} else {
		dr.Errors = errorsOf(res.Outcome)
	}
	return dr
}
