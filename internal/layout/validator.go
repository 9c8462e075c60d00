package layout

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/layout.schema.json
var schemaBytes []byte

var printer = message.NewPrinter(language.English)

// getSchema compiles the embedded layout schema on first use.
var getSchema = sync.OnceValues(compileSchema)

func compileSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema JSON: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("layout.schema.json", doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	s, err := c.Compile("layout.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return s, nil
}

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single validation error from the schema.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/tree/0/dir")
	Message string // Human-readable error message
	Keyword string // Schema keyword location that failed
}

// ValidateBytes validates raw YAML bytes against the layout JSON schema.
// The error return is for I/O or schema compilation failures.
// Validation issues are returned in the ValidationResult.
func ValidateBytes(data []byte) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	// The validator expects json.Number-style values, so round-trip the
	// decoded YAML through a JSON encoding.
	jsonData, err := json.Marshal(toJSONValue(raw))
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}
	return &ValidationResult{Valid: false, Issues: issuesFrom(ve)}, nil
}

// ValidateFile reads a file and validates it against the layout schema.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ValidateBytes(data)
}

// issuesFrom flattens the validation error tree into distinct leaf issues.
// The node oneOf (dir vs file variants) makes every branch report, so the
// same property failure shows up several times; a seen set collapses them.
func issuesFrom(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	seen := make(map[string]bool)

	queue := []*jsonschema.ValidationError{ve}
	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		if len(cur.Causes) > 0 {
			queue = append(queue, cur.Causes...)
			continue
		}
		issue, ok := leafIssue(cur)
		if !ok {
			continue
		}
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if seen[key] {
			continue
		}
		seen[key] = true
		issues = append(issues, issue)
	}

	if len(issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	return issues
}

// leafIssue converts one leaf error into an issue. Composite keywords are
// dropped: their branch causes carry the property-level detail.
func leafIssue(ve *jsonschema.ValidationError) (ValidationIssue, bool) {
	if ve.ErrorKind == nil {
		return ValidationIssue{}, false
	}

	keyword := ""
	if kp := ve.ErrorKind.KeywordPath(); len(kp) > 0 {
		keyword = kp[len(kp)-1]
	}
	switch keyword {
	case "", "oneOf", "allOf", "anyOf", "$ref":
		return ValidationIssue{}, false
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}

	return ValidationIssue{
		Path:    path,
		Message: ve.ErrorKind.LocalizedString(printer),
		Keyword: keyword,
	}, true
}

// toJSONValue rebuilds maps and slices so json.Marshal accepts any shape the
// YAML decoder produced. Scalars pass through unchanged.
func toJSONValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, child := range val {
			m[k] = toJSONValue(child)
		}
		return m
	case []interface{}:
		a := make([]interface{}, len(val))
		for i, child := range val {
			a[i] = toJSONValue(child)
		}
		return a
	default:
		return v
	}
}
