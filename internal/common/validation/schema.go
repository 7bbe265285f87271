// Package validation checks job variables and worker outputs against the
// JSON schemas declared in the task registry.
package validation

import (
	"fmt"
	"strings"

	apperrors "sake-reco/internal/common/errors"
	"sake-reco/pkg/registry"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Details joins the errors into one line.
func (r *ValidationResult) Details() string {
	parts := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		parts[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return strings.Join(parts, "; ")
}

// Validator holds compiled input and output schemas per task type.
type Validator struct {
	inputs  map[string]*gojsonschema.Schema
	outputs map[string]*gojsonschema.Schema
}

// NewValidator compiles every schema in reg.
func NewValidator(reg *registry.ActivityRegistry) (*Validator, error) {
	v := &Validator{
		inputs:  make(map[string]*gojsonschema.Schema),
		outputs: make(map[string]*gojsonschema.Schema),
	}
	for _, a := range reg.Activities {
		if len(a.InputSchema) > 0 {
			s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(a.InputSchema))
			if err != nil {
				return nil, fmt.Errorf("compile input schema for %s: %w", a.TaskType, err)
			}
			v.inputs[a.TaskType] = s
		}
		if len(a.OutputSchema) > 0 {
			s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(a.OutputSchema))
			if err != nil {
				return nil, fmt.Errorf("compile output schema for %s: %w", a.TaskType, err)
			}
			v.outputs[a.TaskType] = s
		}
	}
	return v, nil
}

// NewDefaultValidator compiles the embedded registry.
func NewDefaultValidator() (*Validator, error) {
	reg, err := registry.Default()
	if err != nil {
		return nil, err
	}
	return NewValidator(reg)
}

// ValidateVariables checks raw job variables (a JSON document) against the
// task's input schema. Task types without a schema always pass.
func (v *Validator) ValidateVariables(taskType, variables string) error {
	if strings.TrimSpace(variables) == "" {
		variables = "{}"
	}
	res, err := validate(v.inputs[taskType], gojsonschema.NewStringLoader(variables))
	if err != nil {
		return apperrors.NewInvalidInputError(err.Error())
	}
	if !res.Valid {
		return apperrors.NewInvalidInputError(res.Details())
	}
	return nil
}

// ValidateInput checks a decoded input value.
func (v *Validator) ValidateInput(taskType string, input interface{}) error {
	res, err := validate(v.inputs[taskType], gojsonschema.NewGoLoader(input))
	if err != nil {
		return apperrors.NewInvalidInputError(err.Error())
	}
	if !res.Valid {
		return apperrors.NewInvalidInputError(res.Details())
	}
	return nil
}

// ValidateOutput checks a worker's output before the job is completed.
func (v *Validator) ValidateOutput(taskType string, output interface{}) error {
	res, err := validate(v.outputs[taskType], gojsonschema.NewGoLoader(output))
	if err != nil {
		return apperrors.NewResponseValidationFailedError(err.Error())
	}
	if !res.Valid {
		return apperrors.NewResponseValidationFailedError(res.Details())
	}
	return nil
}

func validate(schema *gojsonschema.Schema, doc gojsonschema.JSONLoader) (*ValidationResult, error) {
	if schema == nil {
		return &ValidationResult{Valid: true}, nil
	}
	result, err := schema.Validate(doc)
	if err != nil {
		return nil, err
	}
	out := &ValidationResult{Valid: result.Valid()}
	for _, e := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   e.Field(),
			Message: e.Description(),
			Code:    e.Type(),
		})
	}
	return out, nil
}
