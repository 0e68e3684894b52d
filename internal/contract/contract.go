// Package contract validates response payloads against the booking service's
// shape contract: field presence and primitive types, reused across specs
// instead of per-test field assertions.
package contract

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.json
var openapiJSON []byte

var (
	loadOnce sync.Once
	document *openapi3.T
	loadErr  error
)

func load() (*openapi3.T, error) {
	loadOnce.Do(func() {
		loader := openapi3.NewLoader()

		document, loadErr = loader.LoadFromData(openapiJSON)
		if loadErr != nil {
			return
		}

		loadErr = document.Validate(loader.Context)
	})

	return document, loadErr
}

// ValidateBooking checks a booking-shaped JSON payload for field presence and
// primitive types.
func ValidateBooking(data []byte) error {
	return validate("Booking", data)
}

// ValidateMessage checks a contact-message payload as echoed by the remote.
func ValidateMessage(data []byte) error {
	return validate("Message", data)
}

func validate(schemaName string, data []byte) error {
	doc, err := load()
	if err != nil {
		return fmt.Errorf("load contract document: %w", err)
	}

	ref, ok := doc.Components.Schemas[schemaName]
	if !ok {
		return fmt.Errorf("contract document has no schema %q", schemaName)
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("payload is not valid JSON: %w", err)
	}

	if err := ref.Value.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("payload violates %s contract: %w", schemaName, err)
	}

	return nil
}
