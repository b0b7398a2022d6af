package api

import (
	"encoding/json"
	"fmt"

	apperrors "medisearch/internal/common/errors"

	"github.com/xeipuuv/gojsonschema"
)

// orderPayloadSchema describes the shape of an order request before it is
// decoded into typed structs. Field-level rules (delivery address coupling,
// enum membership) are handled by ozzo after decoding.
var orderPayloadSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"store", "deliveryType", "paymentMethod"},
	"properties": map[string]interface{}{
		"store": map[string]interface{}{
			"type": "object",
		},
		"quantities": map[string]interface{}{
			"type": "object",
			"additionalProperties": map[string]interface{}{
				"type": "integer",
			},
		},
		"deliveryType": map[string]interface{}{
			"type": "string",
		},
		"deliveryAddress": map[string]interface{}{
			"type": "string",
		},
		"paymentMethod": map[string]interface{}{
			"type": "string",
		},
		"prescription": map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"fileName", "mimeType", "sizeBytes"},
			"properties": map[string]interface{}{
				"fileName":  map[string]interface{}{"type": "string"},
				"mimeType":  map[string]interface{}{"type": "string"},
				"sizeBytes": map[string]interface{}{"type": "integer"},
			},
		},
		"contactEmail": map[string]interface{}{
			"type": "string",
		},
		"contactPhone": map[string]interface{}{
			"type": "string",
		},
	},
}

func validateOrderPayload(body []byte) error {
	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return apperrors.NewInvalidOrderRequestError("malformed JSON body")
	}

	schemaLoader := gojsonschema.NewGoLoader(orderPayloadSchema)
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return apperrors.NewInvalidOrderRequestError(fmt.Sprintf("schema validation error: %v", err))
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return apperrors.NewInvalidOrderRequestError(fmt.Sprintf("payload validation failed: %v", errs))
	}

	return nil
}
