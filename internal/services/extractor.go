package services

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

type ExtractionStatus int

const (
	ExtractionOK ExtractionStatus = iota
	ExtractionUnsupported
	ExtractionFailed
)

func (s ExtractionStatus) String() string {
	switch s {
	case ExtractionOK:
		return "ok"
	case ExtractionUnsupported:
		return "unsupported"
	case ExtractionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ExtractionResult is the outcome of reading a resume file. Text is only
// meaningful when Status is ExtractionOK; Err only when it is ExtractionFailed.
type ExtractionResult struct {
	Status ExtractionStatus
	Format string
	Text   string
	Err    error
}

// ResumeText renders the result as the text handed to the evaluator. A failed
// extraction becomes an inline "[Error reading FORMAT: cause]" marker so that
// a bad file never blocks a submission.
func (r ExtractionResult) ResumeText() string {
	switch r.Status {
	case ExtractionOK:
		return r.Text
	case ExtractionFailed:
		return strings.TrimSpace(fmt.Sprintf("[Error reading %s: %v]", r.Format, r.Err))
	default:
		return ""
	}
}

// DocumentReader decodes one file format into plain text.
type DocumentReader interface {
	Format() string
	Read(filePath string) (string, error)
}

type DocumentExtractor interface {
	Extract(filePath string) ExtractionResult
}

type documentExtractor struct {
	readers map[string]DocumentReader
}

func NewDocumentExtractor() DocumentExtractor {
	return NewDocumentExtractorWithReaders(map[string]DocumentReader{
		".pdf":  NewPDFReader(),
		".docx": NewDOCXReader(),
	})
}

// NewDocumentExtractorWithReaders dispatches on the given lowercase file
// extensions (including the leading dot).
func NewDocumentExtractorWithReaders(readers map[string]DocumentReader) DocumentExtractor {
	table := make(map[string]DocumentReader, len(readers))
	for ext, r := range readers {
		table[strings.ToLower(ext)] = r
	}
	return &documentExtractor{readers: table}
}

// Extract implements DocumentExtractor. It never panics: decoder failures,
// including panics inside third-party parsers, come back as ExtractionFailed.
func (e *documentExtractor) Extract(filePath string) (result ExtractionResult) {
	reader, ok := e.readers[strings.ToLower(filepath.Ext(filePath))]
	if !ok {
		return ExtractionResult{Status: ExtractionUnsupported}
	}

	format := reader.Format()
	defer func() {
		if r := recover(); r != nil {
			result = ExtractionResult{
				Status: ExtractionFailed,
				Format: format,
				Err:    fmt.Errorf("malformed document: %v", r),
			}
		}
	}()

	text, err := reader.Read(filePath)
	if err != nil {
		return ExtractionResult{Status: ExtractionFailed, Format: format, Err: err}
	}

	return ExtractionResult{
		Status: ExtractionOK,
		Format: format,
		Text:   strings.TrimSpace(text),
	}
}

type pdfReader struct{}

func NewPDFReader() DocumentReader {
	return &pdfReader{}
}

func (p *pdfReader) Format() string {
	return "PDF"
}

// Read concatenates the plain text of every page in order. Null pages and
// pages whose text cannot be decoded contribute nothing. The decoder starts
// every text object on a new line, so pages need no separator of their own.
func (p *pdfReader) Read(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil || text == "" {
			continue
		}

		textBuilder.WriteString(text)
	}

	return textBuilder.String(), nil
}

type docxReader struct{}

func NewDOCXReader() DocumentReader {
	return &docxReader{}
}

func (d *docxReader) Format() string {
	return "DOCX"
}

// Read returns each body paragraph followed by a newline, in document order.
func (d *docxReader) Read(filePath string) (string, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer r.Close()

	return paragraphsFromDocumentXML(r.Editable().GetContent())
}

// paragraphsFromDocumentXML walks word/document.xml and collects the text
// runs of every w:p element, table cells and text boxes included. A paragraph
// nested in another one (a text box anchored in a run) is put on its own line
// inside the outer paragraph. mc:Fallback content repeats mc:Choice and is
// skipped.
func paragraphsFromDocumentXML(documentXML string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(documentXML))

	var (
		out           strings.Builder
		paragraph     strings.Builder
		pDepth        int
		rDepth        int
		fallbackDepth int
		inText        bool
		// set when a nested paragraph closed; the outer one resumes on a new line
		pendingBreak  bool
	)

	newLine := func() {
		pendingBreak = false
		if paragraph.Len() > 0 && !strings.HasSuffix(paragraph.String(), "\n") {
			paragraph.WriteString("\n")
		}
	}
	write := func(s string) {
		if pendingBreak {
			newLine()
		}
		paragraph.WriteString(s)
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document.xml: %w", err)
		}

		if fallbackDepth > 0 {
			switch t := tok.(type) {
			case xml.StartElement:
				if t.Name.Local == "Fallback" {
					fallbackDepth++
				}
			case xml.EndElement:
				if t.Name.Local == "Fallback" {
					fallbackDepth--
				}
			}
			continue
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "Fallback":
				fallbackDepth++
			case "p":
				if pDepth == 0 {
					paragraph.Reset()
					pendingBreak = false
				} else {
					newLine()
				}
				pDepth++
			case "r":
				rDepth++
			case "t":
				inText = true
			case "tab":
				if pDepth > 0 && rDepth > 0 {
					write("\t")
				}
			case "br", "cr":
				if pDepth > 0 && rDepth > 0 {
					write("\n")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				pDepth--
				if pDepth > 0 {
					pendingBreak = true
					continue
				}
				out.WriteString(paragraph.String())
				out.WriteString("\n")
			case "r":
				rDepth--
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText && pDepth > 0 {
				write(string(t))
			}
		}
	}

	return out.String(), nil
}
