// Package validation validates inbound request payloads against JSON
// schemas before they reach the domain services.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "insurance-api/internal/common/errors"
)

// QuoteRequestSchema describes the shape of a quote submission. Form-level
// invariants (age bounds, supported sums insured, enums) live here so a
// violation never reaches the pricing engine.
var QuoteRequestSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"applicant", "plan", "sumInsured"},
	"properties": map[string]interface{}{
		"applicant": map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"name", "age"},
			"properties": map[string]interface{}{
				"name":             map[string]interface{}{"type": "string", "minLength": 1},
				"age":              map[string]interface{}{"type": "integer", "minimum": 18, "maximum": 100},
				"gender":           map[string]interface{}{"type": "string", "enum": []interface{}{"female", "male", "other"}},
				"smoker":           map[string]interface{}{"type": "boolean"},
				"preExistingYears": map[string]interface{}{"type": "integer", "minimum": 0},
			},
		},
		"plan": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{"silver", "gold", "platinum"},
		},
		"sumInsured": map[string]interface{}{
			"type": "integer",
			"enum": []interface{}{500000, 1000000, 2000000, 5000000},
		},
		"deductible": map[string]interface{}{"type": "integer", "minimum": 0},
		"addons": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"maternity":       map[string]interface{}{"type": "boolean"},
				"criticalIllness": map[string]interface{}{"type": "boolean"},
				"opd":             map[string]interface{}{"type": "boolean"},
			},
		},
		"startDate": map[string]interface{}{"type": "string"},
	},
}

// CheckoutRequestSchema describes the shape of a checkout submission.
var CheckoutRequestSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"cardNumber", "holder"},
	"properties": map[string]interface{}{
		"cardNumber": map[string]interface{}{"type": "string", "minLength": 12, "maxLength": 19},
		"holder":     map[string]interface{}{"type": "string", "minLength": 1},
		"expiry":     map[string]interface{}{"type": "string"},
		"cvv":        map[string]interface{}{"type": "string"},
		"financing": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"months": map[string]interface{}{"type": "integer", "minimum": 1},
			},
		},
	},
}

// LeadSchema describes a public lead capture payload.
var LeadSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"name", "email"},
	"properties": map[string]interface{}{
		"name":    map[string]interface{}{"type": "string", "minLength": 1},
		"email":   map[string]interface{}{"type": "string", "format": "email"},
		"phone":   map[string]interface{}{"type": "string"},
		"message": map[string]interface{}{"type": "string"},
	},
}

// Validate checks data against schema and returns a VALIDATION_FAILED
// StandardError listing every violation.
func Validate(data interface{}, schema map[string]interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return apperrors.NewValidationFailedError(fmt.Sprintf("schema validation error: %v", err))
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return apperrors.NewValidationFailedError(strings.Join(msgs, "; "))
	}

	return nil
}
