package items

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/zeusync/arena/internal/items/schema"
)

var (
	itemSchemaOnce sync.Once
	itemSchema     *jsonschema.Schema
	itemSchemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	itemSchemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(schema.ItemURL, bytes.NewReader(schema.Item)); err != nil {
			itemSchemaErr = fmt.Errorf("add item schema: %w", err)
			return
		}
		itemSchema, itemSchemaErr = c.Compile(schema.ItemURL)
	})
	return itemSchema, itemSchemaErr
}

func validateStrict(data []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return malformed("record is not valid JSON: %v", err)
	}
	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedDefinition, err)
	}
	return nil
}
