package interchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// recordSchema describes the record format for strict imports: either a
// bare task array, or a document carrying one under "tasks" or "task_list".
// It checks shape only; field repair stays with Validate.
const recordSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "oneOf": [
    {"$ref": "#/$defs/taskArray"},
    {
      "type": "object",
      "properties": {
        "tasks": {"$ref": "#/$defs/taskArray"},
        "task_list": {"$ref": "#/$defs/taskArray"}
      },
      "anyOf": [
        {"required": ["tasks"]},
        {"required": ["task_list"]}
      ]
    }
  ],
  "$defs": {
    "taskArray": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["task"],
        "properties": {
          "id": {"type": "integer"},
          "task": {"type": "string", "minLength": 1},
          "priority": {"enum": ["low", "medium", "high"]},
          "completed": {"type": "boolean"},
          "created_at": {"type": "string"}
        }
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("taskdeck://record.schema.json", strings.NewReader(recordSchema)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = compiler.Compile("taskdeck://record.schema.json")
	})
	return schema, schemaErr
}

// CheckSchema validates raw record-format input against the embedded JSON
// Schema and returns one message per violation. It is the strict-import
// gate: an empty result means the document is well shaped.
func CheckSchema(data []byte) ([]string, error) {
	s, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile record schema: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse record document: %w", err)
	}

	err = s.Validate(doc)
	if err == nil {
		return nil, nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}, nil
	}

	var violations []string
	collectViolations(&violations, ve)
	return violations, nil
}

func collectViolations(out *[]string, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		loc := jsonPointerToPath(err.InstanceLocation)
		if loc == "" {
			*out = append(*out, err.Message)
		} else {
			*out = append(*out, fmt.Sprintf("%s: %s", loc, err.Message))
		}
		return
	}
	for _, cause := range err.Causes {
		collectViolations(out, cause)
	}
}

// jsonPointerToPath converts a JSON Pointer like "/tasks/0/priority" to the
// friendlier "tasks[0].priority".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var path string
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if _, err := strconv.Atoi(part); err == nil {
			path += "[" + part + "]"
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
