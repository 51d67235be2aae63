package pdf

import (
	"context"

	"github.com/smallbiznis/portal/internal/invoice/render"
	"go.uber.org/fx"
)

// Provider turns a resolved invoice document into an exportable artifact.
type Provider interface {
	GenerateInvoice(ctx context.Context, doc render.Document) ([]byte, error)
}

// ContentType is the media type of generated artifacts.
const ContentType = "application/pdf"

// Filename derives the deterministic download name for an invoice, so
// repeated downloads of the same invoice are identically named.
func Filename(invoiceNumber string) string {
	return "invoice-" + invoiceNumber + ".pdf"
}

// Module provides the maroto-backed PDF provider.
var Module = fx.Module("providers.pdf", fx.Provide(New))
