package sequence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbis-erp/orbis-api/internal/application/sequence"
	"github.com/orbis-erp/orbis-api/internal/domain/entity"
)

func TestFormat_PrefijosPorTipoDeDocumento(t *testing.T) {
	cases := map[string]string{
		entity.DocTypePurchaseOrder:   "PO-000001",
		entity.DocTypeGoodsReceipt:    "GRN-000001",
		entity.DocTypeSalesInvoice:    "INV-000001",
		entity.DocTypeDelivery:        "DLV-000001",
		entity.DocTypeStockTransfer:   "TRF-000001",
		entity.DocTypeProductionOrder: "PRD-000001",
		entity.DocTypePOSSale:         "POS-000001",
		entity.DocTypeCreditNote:      "NC-000001",
		entity.DocTypeDebitNote:       "ND-000001",
	}
	for docType, want := range cases {
		assert.Equal(t, want, sequence.Format(docType, 1))
	}
}

func TestFormat_RellenoYPrefijoDesconocido(t *testing.T) {
	assert.Equal(t, "INV-001234", sequence.Format(entity.DocTypeSalesInvoice, 1234))
	assert.Equal(t, "DOC-000007", sequence.Format("ALGO_RARO", 7),
		"tipo desconocido usa el prefijo genérico")
}

// fakeSeqs incrementa por (empresa, tipo) en memoria.
type fakeSeqs struct {
	counters map[string]int64
}

func (f *fakeSeqs) Next(companyID, docType string) (int64, error) {
	if f.counters == nil {
		f.counters = map[string]int64{}
	}
	f.counters[companyID+"|"+docType]++
	return f.counters[companyID+"|"+docType], nil
}

// El consecutivo es independiente por empresa y por tipo de documento.
func TestNextNumber_ConsecutivoPorEmpresaYTipo(t *testing.T) {
	seqs := &fakeSeqs{}

	n1, err := sequence.NextNumber(seqs, "co-1", entity.DocTypeSalesInvoice)
	require.NoError(t, err)
	n2, err := sequence.NextNumber(seqs, "co-1", entity.DocTypeSalesInvoice)
	require.NoError(t, err)
	otroTipo, err := sequence.NextNumber(seqs, "co-1", entity.DocTypeDelivery)
	require.NoError(t, err)
	otraEmpresa, err := sequence.NextNumber(seqs, "co-2", entity.DocTypeSalesInvoice)
	require.NoError(t, err)

	assert.Equal(t, "INV-000001", n1)
	assert.Equal(t, "INV-000002", n2)
	assert.Equal(t, "DLV-000001", otroTipo, "cada tipo lleva su propio consecutivo")
	assert.Equal(t, "INV-000001", otraEmpresa, "cada empresa lleva su propio consecutivo")
}
