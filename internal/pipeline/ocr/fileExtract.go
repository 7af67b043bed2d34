package ocr

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"

	"github.com/nvasani/inspectapi/pkg/logx"
)

type DocType string

const (
	TypePDF  DocType = "PDF"
	TypeDoc  DocType = "DOC"
	TypeErr  DocType = "ERROR"
)

var logger = logx.NewLogger("ocr_file_extract")

const pageExtractTimeout = 10 * time.Second

func DetectDocType(path string) DocType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return TypePDF
	case ".docx", ".txt", ".rtf", ".odt":
		return TypeDoc
	default:
		return TypeErr
	}
}

// ExtractFile pulls plain text out of an uploaded document so the OCR
// stage can run on it. PDFs are read page by page; office/plain formats
// are read in one pass.
func ExtractFile(path string) (string, error) {
	switch DetectDocType(path) {
	case TypePDF:
		return extractPDF(path)
	case TypeDoc:
		return cat.File(path)
	default:
		return "", fmt.Errorf("unsupported document type: %s", filepath.Ext(path))
	}
}

func extractPDF(path string) (string, error) {
	f, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var sb strings.Builder
	numPages := f.NumPage()
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := guardedPageText(page)
		if err != nil {
			logger.Error("Error parsing page content", "page", i, "error", err)
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(content)
	}
	return sb.String(), nil
}

// guardedPageText bounds GetPlainText, which can hang on damaged pages.
func guardedPageText(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(pageExtractTimeout):
		return "", errors.New("page extraction timeout")
	}
}
