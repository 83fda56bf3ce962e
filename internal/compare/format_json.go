package compare

import (
	"encoding/json"
	"fmt"
	"strings"
)

// JSONFormatter renders a comparison set as JSON.
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for a comparison set.
func (jf *JSONFormatter) Format(set *ComparisonSet) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(set, "", "  ")
	} else {
		data, err = json.Marshal(set)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Render formats a comparison set as "table" (default), "csv", or
// "json".
func Render(set *ComparisonSet, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "table":
		return (&TableFormatter{}).Format(set), nil
	case "csv":
		return (&CSVFormatter{}).Format(set)
	case "json":
		return (&JSONFormatter{Pretty: true}).Format(set)
	default:
		return "", fmt.Errorf("unknown format %q (want table, csv, or json)", format)
	}
}
