package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"gstbill/internal/domain"
	"gstbill/internal/gst"
	"gstbill/internal/parser"
	"gstbill/internal/port"
)

// allowedContentTypes lists the upload types the parser providers accept.
var allowedContentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// ExtractService turns an uploaded purchase order or invoice into a
// structured form-prefill payload.
type ExtractService interface {
	Extract(ctx context.Context, fileBytes []byte, contentType string) (*domain.Extraction, error)
}

type extractService struct {
	parser      port.DocumentParser
	company     *domain.CompanyInfo
	states      *gst.StateMap
	maxFileSize int64
}

// NewExtractService creates a new ExtractService implementation. The parser
// may be nil when no provider is configured.
func NewExtractService(
	docParser port.DocumentParser,
	company *domain.CompanyInfo,
	states *gst.StateMap,
	maxFileSizeMB int64,
) ExtractService {
	return &extractService{
		parser:      docParser,
		company:     company,
		states:      states,
		maxFileSize: maxFileSizeMB * 1024 * 1024,
	}
}

func (s *extractService) Extract(ctx context.Context, fileBytes []byte, contentType string) (*domain.Extraction, error) {
	if s.parser == nil {
		return nil, domain.ErrParserNotConfigured
	}
	if !allowedContentTypes[contentType] {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, contentType)
	}
	if len(fileBytes) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrInvalidArgument)
	}
	if int64(len(fileBytes)) > s.maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", domain.ErrFileTooLarge, len(fileBytes), s.maxFileSize)
	}

	out, err := s.parser.Parse(ctx, port.ParseInput{
		FileBytes:   fileBytes,
		ContentType: contentType,
		Prompt:      parser.BuildExtractionPrompt(s.company),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	var extraction domain.Extraction
	if err := json.Unmarshal(out.RawJSON, &extraction); err != nil {
		return nil, fmt.Errorf("%w: unmarshaling model output: %v", domain.ErrExtractionFailed, err)
	}

	s.normalizeParty(&extraction.Billing)
	s.normalizeParty(&extraction.Shipping)

	log.Info().
		Str("model", out.ModelUsed).
		Str("document_type", extraction.DocumentType).
		Str("confidence", extraction.Confidence).
		Int("products", len(extraction.Products)).
		Msg("document extracted")

	return &extraction, nil
}

// normalizeParty resolves the extracted state against the reference map so
// the form prefill carries a canonical name and code. The model may return
// either field alone, so whichever identifier is present is resolved.
func (s *extractService) normalizeParty(p *domain.Party) {
	input := p.State
	if input == "" {
		input = p.StateCode
	}
	res := gst.Normalize(input, s.states)
	if res.Name != "" {
		p.State = res.Name
	}
	if res.Code != "" {
		p.StateCode = res.Code
	} else if p.State != "" && p.StateCode == "" {
		p.StateCode = s.states.CodeFor(p.State)
	}
}
