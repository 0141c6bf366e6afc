package document

import (
	"bytes"
	"fmt"
	"log"

	"github.com/linkhive/media-pipeline-go/internal/port"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PDFOptimiser implements the document operations of the pipeline: page
// counting on raw bytes and lossless rewriting through pdfcpu.
type PDFOptimiser struct{}

// compile-time check: *PDFOptimiser must satisfy port.DocumentOptimiser
var _ port.DocumentOptimiser = (*PDFOptimiser)(nil)

func NewPDFOptimiser() *PDFOptimiser {
	log.Println("initialising pdf optimiser...")
	return &PDFOptimiser{}
}

// PageCount doubles as decode validation: a byte stream the reader cannot
// open is not a PDF the pipeline accepts.
func (o *PDFOptimiser) PageCount(data []byte) (int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("document: error opening pdf reader: %w", err)
	}
	return reader.NumPage(), nil
}

func (o *PDFOptimiser) OptimiseFile(inPath, outPath string) error {
	if err := api.OptimizeFile(inPath, outPath, nil); err != nil {
		return fmt.Errorf("document: pdfcpu optimisation failed: %w", err)
	}
	return nil
}
