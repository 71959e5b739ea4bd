package runner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/titanous/json5"

	errs "igposts/pkg/errors"
)

// DefaultUsernames seed a missing input file
var DefaultUsernames = []string{"zuck", "instagram"}

// LoadUsernames reads a JSON array of usernames from path. Comments and
// trailing commas are tolerated. A missing file is created with
// DefaultUsernames. Anything other than an array of strings is an input error.
func (r *Runner) LoadUsernames(path string) ([]string, error) {
	resolved := r.store.Resolve(path)

	data, err := os.ReadFile(resolved)
	if os.IsNotExist(err) {
		r.logger.WarnWithFields("input file not found, creating a default one", map[string]interface{}{
			"path":      resolved,
			"usernames": strings.Join(DefaultUsernames, ","),
		})
		if _, werr := r.store.WriteFile(path, func(w io.Writer) error {
			_, err := io.WriteString(w, "[\""+strings.Join(DefaultUsernames, "\", \"")+"\"]\n")
			return err
		}); werr != nil {
			return nil, errs.Wrap(errs.ErrorTypeInput, werr, "create default input file")
		}
		return append([]string(nil), DefaultUsernames...), nil
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrorTypeInput, err, "read input file %s", resolved)
	}

	return ParseUsernames(data)
}

// ParseUsernames decodes a JSON5 array of strings
func ParseUsernames(data []byte) ([]string, error) {
	var raw interface{}
	if err := json5.Unmarshal(data, &raw); err != nil {
		return nil, errs.Wrap(errs.ErrorTypeInput, err, "input is not valid JSON")
	}

	items, ok := raw.([]interface{})
	if !ok {
		return nil, errs.New(errs.ErrorTypeInput, 0, "input must be a JSON array of usernames, got %s", describe(raw))
	}

	usernames := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, errs.New(errs.ErrorTypeInput, 0, "input element %d must be a string, got %s", i, describe(item))
		}
		usernames = append(usernames, s)
	}
	return usernames, nil
}

func describe(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]interface{}:
		return "an object"
	case []interface{}:
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	}
	return fmt.Sprintf("%T", v)
}
