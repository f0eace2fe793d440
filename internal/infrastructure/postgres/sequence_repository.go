package postgres

import (
	"context"
	"fmt"

	"github.com/orbis-erp/orbis-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo consecutivos de numeración por (empresa, tipo de documento).
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa y devuelve el consecutivo en una sola sentencia atómica.
// Dos transacciones concurrentes serializan sobre la fila: no hay números
// repetidos ni saltos por lecturas sucias.
func (r *SequenceRepo) Next(companyID, docType string) (int64, error) {
	query := `
		INSERT INTO document_sequences (company_id, doc_type, last_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, doc_type)
		DO UPDATE SET last_number = document_sequences.last_number + 1
		RETURNING last_number`
	var n int64
	if err := r.q.QueryRow(context.Background(), query, companyID, docType).Scan(&n); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return n, nil
}
