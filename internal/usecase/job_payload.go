package usecase

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"jobradar/internal/domain/job"

	"github.com/xeipuuv/gojsonschema"
)

const maxIngestBatch = 500

const jobPayloadSchema = `{
	"type": "object",
	"required": ["jobs"],
	"properties": {
		"jobs": {
			"type": "array",
			"minItems": 1,
			"maxItems": 500,
			"items": {
				"type": "object",
				"required": ["title", "company"],
				"properties": {
					"external_id": {"type": "string"},
					"title": {"type": "string", "minLength": 1},
					"company": {"type": "string"},
					"location": {"type": "string"},
					"job_url": {"type": "string"},
					"description": {"type": "string"},
					"salary_min": {"type": ["number", "null"], "minimum": 0},
					"salary_max": {"type": ["number", "null"], "minimum": 0},
					"salary_currency": {"type": "string", "maxLength": 3},
					"job_type": {"type": "string"},
					"experience_level": {"type": "string"},
					"remote_type": {"type": "string"},
					"company_type": {"type": "string"},
					"skills_required": {"type": "array", "items": {"type": "string", "pattern": "^[^,]*$"}},
					"source": {"type": "string"},
					"posted_date": {"type": ["string", "null"], "format": "date-time"}
				}
			}
		}
	}
}`

var (
	payloadSchemaOnce sync.Once
	payloadSchema     *gojsonschema.Schema
	payloadSchemaErr  error
)

func jobSchema() (*gojsonschema.Schema, error) {
	payloadSchemaOnce.Do(func() {
		payloadSchema, payloadSchemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(jobPayloadSchema))
	})
	return payloadSchema, payloadSchemaErr
}

type jobPayload struct {
	Jobs []job.RawJob `json:"jobs"`
}

// DecodeJobPayload validates body against the ingestion schema and decodes
// it. Listings without a source are attributed to "admin".
func DecodeJobPayload(body []byte) ([]job.RawJob, error) {
	schema, err := jobSchema()
	if err != nil {
		return nil, fmt.Errorf("load job schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"body": "must be valid JSON"}}
	}
	if !result.Valid() {
		fields := make(map[string]string, len(result.Errors()))
		for _, e := range result.Errors() {
			fields[errorField(e)] = e.Description()
		}
		return nil, &ValidationError{Fields: fields}
	}

	var p jobPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, &ValidationError{Fields: map[string]string{"body": err.Error()}}
	}
	if len(p.Jobs) > maxIngestBatch {
		return nil, &ValidationError{Fields: map[string]string{"jobs": "too many items"}}
	}
	for i := range p.Jobs {
		if p.Jobs[i].Source == "" {
			p.Jobs[i].Source = "admin"
		}
	}
	return p.Jobs, nil
}

// errorField renders the failing location as a dotted path such as
// "jobs.0.title", including the missing property for required errors.
func errorField(e gojsonschema.ResultError) string {
	path := strings.TrimPrefix(e.Context().String(), "(root)")
	path = strings.TrimPrefix(path, ".")
	if prop, ok := e.Details()["property"].(string); ok && prop != "" {
		if path == "" {
			return prop
		}
		return path + "." + prop
	}
	if path == "" {
		return "body"
	}
	return path
}
