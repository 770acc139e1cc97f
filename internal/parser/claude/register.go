package claude

import (
	"gstbill/internal/config"
	"gstbill/internal/parser"
	"gstbill/internal/port"
)

func init() {
	parser.RegisterProvider("claude", func(cfg *config.ParserProviderConfig) (port.DocumentParser, error) {
		return NewParser(cfg), nil
	})
}
