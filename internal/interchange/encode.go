package interchange

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/avikram/taskdeck/internal/task"
)

// Encoders write a task list to w. They assume the list is already valid
// (encoding runs the mirror path without validation) and fail only on the
// write itself, with one exception: the table encoder refuses an empty list.

// Encode dispatches the list to the encoder for the given format. The
// record format is written multi-line; use EncodeRecord directly for
// compact output.
func Encode(w io.Writer, l task.List, f Format) error {
	switch f {
	case FormatRecord:
		return EncodeRecord(w, l, true)
	case FormatTable:
		return EncodeTable(w, l)
	case FormatChecklist:
		return EncodeChecklist(w, l)
	case FormatDocument:
		return EncodeDocument(w, l)
	case FormatText:
		return EncodeText(w, l)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

// recordDocument is the top-level shape of the record format.
type recordDocument struct {
	ExportDate string    `json:"export_date"`
	TotalTasks int       `json:"total_tasks"`
	Tasks      task.List `json:"tasks"`
}

// EncodeRecord writes the structured JSON document. Pretty selects
// multi-line output; it has no semantic effect.
func EncodeRecord(w io.Writer, l task.List, pretty bool) error {
	doc := recordDocument{
		ExportDate: task.Now(),
		TotalTasks: len(l),
		Tasks:      l,
	}
	if doc.Tasks == nil {
		doc.Tasks = task.List{}
	}

	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("marshal record document: %w", err)
	}
	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write record document: %w", err)
	}
	return nil
}

// tableHeader is the fixed column set of the table format.
var tableHeader = []string{"id", "task", "priority", "completed", "created_at"}

// EncodeTable writes the CSV format: the fixed header, then one row per
// task in list order with the raw stored field values. An empty list is a
// failure, mirroring the table decoder.
func EncodeTable(w io.Writer, l task.List) error {
	if len(l) == 0 {
		return fmt.Errorf("refusing to encode empty task list as table")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(tableHeader); err != nil {
		return fmt.Errorf("write table header: %w", err)
	}
	for _, t := range l {
		row := []string{
			strconv.Itoa(t.ID),
			t.Text,
			string(t.Priority),
			strconv.FormatBool(t.Completed),
			t.CreatedAt,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write table row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}
	return nil
}

// priorityBuckets is the section order of the checklist format.
var priorityBuckets = []task.Priority{task.PriorityHigh, task.PriorityMedium, task.PriorityLow}

func bucketTitle(p task.Priority) string {
	s := string(p)
	return strings.ToUpper(s[:1]) + s[1:]
}

// EncodeChecklist writes the markdown checkbox format: a title, the export
// timestamp, then one section per non-empty priority bucket (high, medium,
// low) with the tasks of that bucket in list order.
func EncodeChecklist(w io.Writer, l task.List) error {
	var b strings.Builder
	b.WriteString("# Todo List\n\n")
	fmt.Fprintf(&b, "*Exported: %s*\n\n", exportStamp())

	for _, p := range priorityBuckets {
		bucket := l.ByPriority(p)
		if len(bucket) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s Priority\n\n", bucketTitle(p))
		for _, t := range bucket {
			box := "[ ]"
			if t.Completed {
				box = "[x]"
			}
			fmt.Fprintf(&b, "- %s **%s** _%s_\n", box, t.Text, formatCreated(t.CreatedAt, "2006-01-02"))
		}
		b.WriteString("\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write checklist: %w", err)
	}
	return nil
}

// EncodeText writes the plain text format: a banner, the export timestamp
// and count, then one glyph/priority/description block per task separated
// by rule lines.
func EncodeText(w io.Writer, l task.List) error {
	rule := strings.Repeat("=", 60)
	sep := strings.Repeat("-", 60)

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("TODO LIST EXPORT\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Exported: %s\n", exportStamp())
	fmt.Fprintf(&b, "Total Tasks: %d\n", len(l))
	b.WriteString(rule + "\n\n")

	for _, t := range l {
		glyph := "○"
		if t.Completed {
			glyph = "✓"
		}
		fmt.Fprintf(&b, "[%s] [%s] %s\n", glyph, strings.ToUpper(string(t.Priority)), t.Text)
		fmt.Fprintf(&b, "    Created: %s\n", formatCreated(t.CreatedAt, "2006-01-02"))
		b.WriteString(sep + "\n\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write text export: %w", err)
	}
	return nil
}

// EncodeDocument writes a single self-contained HTML page: a header with
// the export timestamp and total count, then one block per task in list
// order with a priority-colored accent and a completed-state modifier.
func EncodeDocument(w io.Writer, l task.List) error {
	var b strings.Builder
	b.WriteString(documentHead)
	fmt.Fprintf(&b, "    <h1>📝 Todo List</h1>\n")
	fmt.Fprintf(&b, "    <p><em>Exported: %s</em></p>\n", exportStamp())
	fmt.Fprintf(&b, "    <p><strong>Total Tasks:</strong> %d</p>\n", len(l))

	for _, t := range l {
		priority := string(t.Priority)
		completedClass := ""
		completedBadge := ""
		if t.Completed {
			completedClass = " completed"
			completedBadge = ` <span class="badge badge-completed">COMPLETED</span>`
		}
		fmt.Fprintf(&b, `
    <div class="task priority-%s%s">
        <div>
            <span class="badge badge-%s">%s</span>%s
        </div>
        <h3>%s</h3>
        <p class="date">Created: %s</p>
    </div>
`,
			priority, completedClass,
			priority, strings.ToUpper(priority), completedBadge,
			html.EscapeString(t.Text),
			formatCreated(t.CreatedAt, "2006-01-02 15:04"))
	}

	b.WriteString("\n</body>\n</html>\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// exportStamp is the human-readable timestamp used in export headers.
func exportStamp() string {
	return time.Now().Format("2006-01-02 15:04")
}

// formatCreated renders a stored created_at value with the given layout,
// or "N/A" when it does not parse.
func formatCreated(created, layout string) string {
	t, err := task.ParseTimestamp(created)
	if err != nil {
		return "N/A"
	}
	return t.Format(layout)
}

const documentHead = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Todo List Export</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            max-width: 900px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f5f5f5;
        }
        h1 {
            color: #333;
            border-bottom: 3px solid #4CAF50;
            padding-bottom: 10px;
        }
        .task {
            background: white;
            padding: 15px;
            margin: 10px 0;
            border-radius: 5px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        .task.completed {
            opacity: 0.6;
            text-decoration: line-through;
        }
        .priority-high { border-left: 5px solid #f44336; }
        .priority-medium { border-left: 5px solid #ff9800; }
        .priority-low { border-left: 5px solid #4CAF50; }
        .badge {
            display: inline-block;
            padding: 3px 8px;
            border-radius: 3px;
            font-size: 12px;
            font-weight: bold;
        }
        .badge-high { background-color: #f44336; color: white; }
        .badge-medium { background-color: #ff9800; color: white; }
        .badge-low { background-color: #4CAF50; color: white; }
        .badge-completed { background-color: #2196F3; color: white; }
        .date {
            color: #666;
            font-size: 14px;
        }
    </style>
</head>
<body>
`
