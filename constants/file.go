package constants

import "strings"

// TranscriptExt is the extension of OCR transcript files consumed by the
// batch runner. Ground-truth records share the same base filename.
const TranscriptExt = "txt"

// GroundTruthExt is the extension of SROIE ground-truth JSON files
// (the dataset ships them as .txt containing a JSON object).
const GroundTruthExt = "txt"

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
