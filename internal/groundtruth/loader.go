// Package groundtruth loads SROIE reference records: one JSON object
// per document with company, total and date keys. The dataset ships
// them as .txt files, occasionally with a UTF-8 byte-order marker.
package groundtruth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/receipts-evaluator/constants"
	"github.com/joseph-ayodele/receipts-evaluator/internal/common"
)

// Record is the ground truth for one receipt. Total is kept as its
// string form; the dataset mixes numeric and string encodings and the
// evaluation normalizes either way.
type Record struct {
	Company string `json:"company"`
	Date    string `json:"date"`
	Total   string `json:"total"`
}

// UnmarshalJSON accepts total as a JSON number or string.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Company string          `json:"company"`
		Date    string          `json:"date"`
		Total   json.RawMessage `json:"total"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Company = raw.Company
	r.Date = raw.Date

	if len(raw.Total) == 0 {
		return nil
	}
	var asString string
	if err := json.Unmarshal(raw.Total, &asString); err == nil {
		r.Total = asString
		return nil
	}
	var asNumber float64
	if err := json.Unmarshal(raw.Total, &asNumber); err == nil {
		r.Total = fmt.Sprintf("%.2f", asNumber)
		return nil
	}
	return fmt.Errorf("total: unsupported JSON type: %s", raw.Total)
}

// recordSchema mirrors the dataset contract: company, total and date
// must be present; total may be numeric or a numeric string.
const recordSchema = `{
	"type": "object",
	"properties": {
		"company": {"type": "string", "minLength": 1},
		"date": {"type": "string", "minLength": 1},
		"total": {"type": ["string", "number"]},
		"address": {"type": "string"}
	},
	"required": ["company", "total", "date"]
}`

var compiledSchema = jsonschema.MustCompileString("groundtruth.json", recordSchema)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads, validates and decodes one ground-truth file.
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, common.WrapError(err, "read ground truth")
	}
	return Parse(data)
}

// Parse validates and decodes one ground-truth document, tolerating a
// leading byte-order marker.
func Parse(data []byte) (Record, error) {
	data = bytes.TrimPrefix(bytes.TrimSpace(data), utf8BOM)
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Record{}, common.NewAppError("GT_EMPTY", "ground truth document is empty", common.ErrInvalidInput)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Record{}, common.WrapError(err, "decode ground truth")
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return Record{}, common.NewAppError("GT_SCHEMA", "ground truth failed validation", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, common.WrapError(err, "decode ground truth")
	}
	return rec, nil
}

// ListDir returns the base names (without extension) of every
// ground-truth file in dir, sorted for a deterministic batch order.
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, common.WrapError(err, "list ground truth dir")
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := constants.NormalizeExt(filepath.Ext(e.Name()))
		if ext != constants.GroundTruthExt {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	sort.Strings(names)
	return names, nil
}
