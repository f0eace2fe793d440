package sequence

import (
	"fmt"

	"github.com/orbis-erp/orbis-api/internal/domain/entity"
	"github.com/orbis-erp/orbis-api/internal/domain/repository"
)

// Prefijos de numeración por tipo de documento.
var prefixes = map[string]string{
	entity.DocTypePurchaseOrder:   "PO",
	entity.DocTypeGoodsReceipt:    "GRN",
	entity.DocTypeSalesInvoice:    "INV",
	entity.DocTypeDelivery:        "DLV",
	entity.DocTypeStockTransfer:   "TRF",
	entity.DocTypeProductionOrder: "PRD",
	entity.DocTypePOSSale:         "POS",
	entity.DocTypeCreditNote:      "NC",
	entity.DocTypeDebitNote:       "ND",
}

// Format arma el número visible de documento a partir del consecutivo.
func Format(docType string, n int64) string {
	prefix, ok := prefixes[docType]
	if !ok {
		prefix = "DOC"
	}
	return fmt.Sprintf("%s-%06d", prefix, n)
}

// NextNumber toma el siguiente consecutivo de (empresa, tipo) y lo formatea.
// Debe llamarse con el SequenceRepository atado a la misma transacción que
// persiste el documento: así el número es único y estrictamente creciente
// incluso bajo creación concurrente.
func NextNumber(seqs repository.SequenceRepository, companyID, docType string) (string, error) {
	n, err := seqs.Next(companyID, docType)
	if err != nil {
		return "", fmt.Errorf("consecutivo %s: %w", docType, err)
	}
	return Format(docType, n), nil
}
