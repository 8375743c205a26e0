package httpapi

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"horse.fit/gist/internal/fault"
)

//go:embed translate_request.schema.json
var translateRequestSchemaJSON string

// translateRequest is the decoded /translate body. SourceLang and
// TargetLang are pointers so an absent field (which gets a default) can
// be told apart from an explicitly empty one (which is rejected).
type translateRequest struct {
	Text         string  `json:"text"`
	SourceLang   *string `json:"source_lang,omitempty"`
	TargetLang   *string `json:"target_lang,omitempty"`
	Summarize    bool    `json:"summarize,omitempty"`
	SummaryStyle string  `json:"summary_style,omitempty"`
	Provider     string  `json:"provider,omitempty"`
}

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
)

func loadTranslateSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		if err := compiler.AddResource("translate_request.schema.json", strings.NewReader(translateRequestSchemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schema, err := compiler.Compile("translate_request.schema.json")
		if err != nil {
			compiledSchemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}
		compiledSchema = schema
	})

	if compiledSchemaErr != nil {
		return nil, compiledSchemaErr
	}
	if compiledSchema == nil {
		return nil, fmt.Errorf("schema not initialized")
	}
	return compiledSchema, nil
}

// decodeTranslateRequest reads and validates one /translate body. The
// decode is strict: trailing content after the JSON value is rejected.
func decodeTranslateRequest(r io.Reader) (*translateRequest, error) {
	raw, err := io.ReadAll(io.LimitReader(r, 1<<20))
	if err != nil {
		return nil, fault.Wrap(fault.Validation, err, "read request body")
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fault.New(fault.Validation, "No JSON data provided")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, fault.Wrap(fault.Validation, err, "decode request JSON")
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fault.New(fault.Validation, "request body contains trailing content")
	}

	schema, err := loadTranslateSchema()
	if err != nil {
		return nil, fault.Wrap(fault.Configuration, err, "load request schema")
	}
	if err := schema.Validate(value); err != nil {
		return nil, fault.Wrap(fault.Validation, err, "invalid request")
	}

	var req translateRequest
	if err := json.Unmarshal(trimmed, &req); err != nil {
		return nil, fault.Wrap(fault.Validation, err, "unmarshal request")
	}
	return &req, nil
}
