// Package interchange converts task lists to and from external textual
// formats, validates foreign records, and merges them into an existing
// list. It holds no process-wide state and never decides file paths on its
// own; callers hand it bytes (or writers) and take the results away.
package interchange

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies one of the interchange formats.
type Format string

const (
	// FormatRecord is the structured JSON document format. It is the only
	// format that round-trips through both encode and decode losslessly
	// enough for backups.
	FormatRecord Format = "record"
	// FormatTable is the CSV format with the fixed five-column header.
	FormatTable Format = "table"
	// FormatChecklist is the heading-grouped markdown checkbox format.
	FormatChecklist Format = "checklist"
	// FormatDocument is the styled self-contained HTML export. Encode only.
	FormatDocument Format = "document"
	// FormatText is the line-oriented plain text format.
	FormatText Format = "text"
)

// formatAliases maps explicit format tags (lower-cased) to canonical formats.
var formatAliases = map[string]Format{
	"record":    FormatRecord,
	"json":      FormatRecord,
	"table":     FormatTable,
	"csv":       FormatTable,
	"checklist": FormatChecklist,
	"md":        FormatChecklist,
	"markdown":  FormatChecklist,
	"document":  FormatDocument,
	"html":      FormatDocument,
	"htm":       FormatDocument,
	"text":      FormatText,
	"txt":       FormatText,
}

// extFormats maps file extensions to formats when no explicit tag is given.
var extFormats = map[string]Format{
	".json":     FormatRecord,
	".csv":      FormatTable,
	".md":       FormatChecklist,
	".markdown": FormatChecklist,
	".html":     FormatDocument,
	".htm":      FormatDocument,
	".txt":      FormatText,
	".text":     FormatText,
}

// ResolveFormat picks the format for a file. An explicit tag wins,
// case-insensitively, and accepts aliases ("md", "html", "txt", ...).
// Without one the file extension decides; unknown or missing extensions
// default to the record format.
func ResolveFormat(path, explicit string) (Format, error) {
	if explicit != "" {
		f, ok := formatAliases[strings.ToLower(explicit)]
		if !ok {
			return "", fmt.Errorf("unknown format %q", explicit)
		}
		return f, nil
	}
	if f, ok := extFormats[strings.ToLower(filepath.Ext(path))]; ok {
		return f, nil
	}
	return FormatRecord, nil
}
