package renderer

import (
	"fmt"
	"strings"

	"github.com/shunichi-ikebuchi/sppd/pkg/models"
)

// Source is the read side of the repository needed to assemble documents.
type Source interface {
	GetSPPDByID(id string) *models.TravelOrder
	GetLumpsumByID(id string) *models.LumpsumEntry
	GetKuitansiByID(id string) *models.Receipt
	GetSettings() models.Settings
}

// ParseKind accepts a document kind by its stored name or its English alias.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "sppd", "order":
		return KindOrder, nil
	case "lumpsum":
		return KindLumpsum, nil
	case "kuitansi", "receipt":
		return KindReceipt, nil
	}
	return "", fmt.Errorf("unknown document kind %q", s)
}

// Preview assembles the document of the given kind for the record with id.
// It returns nil when the record does not exist. A related travel order that
// no longer exists is printed as placeholders.
func Preview(src Source, kind Kind, id string) (*Document, error) {
	settings := src.GetSettings()

	switch kind {
	case KindOrder:
		order := src.GetSPPDByID(id)
		if order == nil {
			return nil, nil
		}
		return OrderDocument(*order, settings), nil

	case KindLumpsum:
		entry := src.GetLumpsumByID(id)
		if entry == nil {
			return nil, nil
		}
		return LumpsumDocument(*entry, src.GetSPPDByID(entry.SPPDID), settings), nil

	case KindReceipt:
		receipt := src.GetKuitansiByID(id)
		if receipt == nil {
			return nil, nil
		}
		var order *models.TravelOrder
		if ref := receipt.OrderID(); ref != "" {
			order = src.GetSPPDByID(ref)
		}
		return ReceiptDocument(*receipt, order, settings), nil
	}
	return nil, fmt.Errorf("unknown document kind %q", kind)
}
