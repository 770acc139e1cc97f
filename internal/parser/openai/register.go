package openai

import (
	"gstbill/internal/config"
	"gstbill/internal/parser"
	"gstbill/internal/port"
)

func init() {
	parser.RegisterProvider("openai", func(cfg *config.ParserProviderConfig) (port.DocumentParser, error) {
		return NewParser(cfg), nil
	})
}
