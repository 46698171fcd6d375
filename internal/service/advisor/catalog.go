package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/mamadbah2/screenstock/internal/domain/models"
)

// MaxPDFBytes is the inline-payload limit for direct document analysis.
const MaxPDFBytes = 20 * 1024 * 1024

// PDFMimeType is the only accepted document type.
const PDFMimeType = "application/pdf"

var (
	// ErrNotPDF rejects uploads that are not PDF documents.
	ErrNotPDF = errors.New("not a pdf document")

	// ErrPDFTooLarge rejects documents above the inline payload limit.
	ErrPDFTooLarge = errors.New("document exceeds the inline analysis limit")
)

// User-facing rejection phrases, kept verbatim from the product.
const (
	msgNotPDF      = "Invalid file type. Please upload a PDF document."
	msgPDFTooLarge = "File is too large. Maximum 20MB for direct analysis."
)

// rejectError renders a display phrase while staying classifiable with
// errors.Is against the wrapped sentinel.
type rejectError struct {
	sentinel error
	msg      string
}

func (e rejectError) Error() string { return e.msg }
func (e rejectError) Unwrap() error { return e.sentinel }

const catalogPrompt = `Analiza este catálogo de pantallas de móviles en formato PDF. Extrae la información de cada producto listado.
Para cada producto, intenta identificar y extraer los siguientes campos, si están presentes en el catálogo:
- "Producto" (descripción general del ítem): clave "productDescription".
- "Marca": clave "brand".
- "Modelo": clave "model".
- "Calidad" (ej. Original, OEM, AAA+, Incell, Otro): clave "quality".
- "Color": clave "color".
- "Precio" (precio de compra para el técnico): clave "purchasePrice". Debe ser numérico.
- "Cantidad" (stock disponible según el catálogo): clave "quantity". Debe ser numérico.
- Cualquier otra información relevante debe ir en la clave "notes".

Devuelve los resultados como un array JSON de objetos. Cada objeto debe representar un producto.
Si un campo no se encuentra para un producto, omite la clave o usa null.
Es crucial que el resultado sea un JSON válido que contenga únicamente el array de objetos. No incluyas ningún texto explicativo antes o después del array JSON.

Si el documento no parece ser un catálogo de productos, devuelve un array JSON vacío [].`

// AnalyzeCatalogPDF ships the document bytes to the AI and parses the reply
// into untrusted catalog records. Size and type are checked before any
// network call. Parse failures come back as errors whose message embeds the
// start of the raw reply, never as a silent empty result.
func (s *Service) AnalyzeCatalogPDF(ctx context.Context, mimeType string, data []byte) ([]models.PdfExtractedRecord, error) {
	if mimeType != PDFMimeType {
		return nil, rejectError{ErrNotPDF, msgNotPDF}
	}
	if len(data) > MaxPDFBytes {
		return nil, rejectError{ErrPDFTooLarge, msgPDFTooLarge}
	}

	reply, err := s.client.GenerateFromDocument(ctx, catalogPrompt, mimeType, data)
	if err != nil {
		s.logger.Warn("gemini catalog analysis failed", zap.Error(err))
		return nil, fmt.Errorf("Error de Gemini (PDF): %v", err)
	}

	records, err := parseCatalogReply(reply)
	if err != nil {
		s.logger.Warn("unparseable catalog reply", zap.Error(err))
		return nil, err
	}
	return records, nil
}

// parseCatalogReply strips Markdown code fences and structurally validates
// the AI reply: it must be a JSON array of objects with numeric price and
// quantity fields where present.
func parseCatalogReply(raw string) ([]models.PdfExtractedRecord, error) {
	jsonStr := stripCodeFences(raw)

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(jsonStr), &elements); err != nil {
		return nil, fmt.Errorf("Error al procesar la respuesta de la IA para el PDF. Contenido recibido: %s", truncate(raw, 200))
	}

	records := make([]models.PdfExtractedRecord, 0, len(elements))
	for _, element := range elements {
		var rec models.PdfExtractedRecord
		if err := json.Unmarshal(element, &rec); err != nil {
			return nil, fmt.Errorf("Error al procesar la respuesta de la IA para el PDF. Contenido recibido: %s", truncate(raw, 200))
		}
		records = append(records, rec)
	}
	return records, nil
}

func stripCodeFences(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}

// truncate cuts s to at most n bytes without splitting a multibyte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
