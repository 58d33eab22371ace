package batch

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/candex/candex/internal/extract"
)

// Document is one uploaded PDF: its file name and raw bytes.
type Document struct {
	Name string
	Data []byte
}

// TextExtractor converts raw PDF bytes into plain text.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// Result is the outcome of one batch run: one record per input document,
// in input order.
type Result struct {
	RunID   string
	Records []extract.Record
	// Failed counts documents whose text extraction failed and were
	// degraded to an all-empty record.
	Failed int
}

// Empty reports whether the batch had no documents to process.
func (r *Result) Empty() bool {
	return len(r.Records) == 0
}

// Summary returns a one-line human-readable outcome.
func (r *Result) Summary() string {
	if r.Empty() {
		return "no PDF documents to process"
	}
	s := fmt.Sprintf("extracted %d record(s)", len(r.Records))
	if r.Failed > 0 {
		s += fmt.Sprintf(" (%d document(s) yielded no text)", r.Failed)
	}
	return s
}

// Processor runs field extraction over batches of PDF documents,
// sequentially and in input order. A failure on one document never stops
// the rest of the batch.
type Processor struct {
	extractor TextExtractor
	debug     bool
}

// NewProcessor creates a batch processor on top of the given text
// extractor.
func NewProcessor(extractor TextExtractor, debug bool) *Processor {
	return &Processor{extractor: extractor, debug: debug}
}

// Process extracts fields from every document in order. Each document
// yields exactly one record; documents whose text cannot be read produce
// a record with only the source file name populated.
func (p *Processor) Process(docs []Document) Result {
	result := Result{
		RunID:   uuid.NewString(),
		Records: make([]extract.Record, 0, len(docs)),
	}

	for _, doc := range docs {
		text, err := p.extractor.ExtractText(doc.Data)
		if err != nil {
			// Degrade to empty text; extraction still produces a record.
			text = ""
			result.Failed++
			if p.debug {
				log.Printf("text extraction failed for %s: %v", doc.Name, err)
			}
		}
		result.Records = append(result.Records, extract.ExtractFields(text, doc.Name))
	}

	return result
}

// ProcessFiles reads each path and processes the batch. An unreadable
// file degrades to an empty document so the run still yields one record
// per path.
func (p *Processor) ProcessFiles(paths []string) Result {
	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if p.debug {
				log.Printf("cannot read %s: %v", path, err)
			}
			data = nil
		}
		docs = append(docs, Document{Name: filepath.Base(path), Data: data})
	}
	return p.Process(docs)
}

// ProcessDirectory processes every PDF file in dir, sorted by name for a
// deterministic record order. A missing or unreadable directory is an
// error; an empty directory is a valid nothing-to-do run.
func (p *Processor) ProcessDirectory(dir string) (Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Result{}, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	return p.ProcessFiles(paths), nil
}
