package repository

// SequenceRepository define el puerto para consecutivos de numeración de
// documentos. Next incrementa y devuelve el consecutivo de (empresa, tipo de
// documento) de forma atómica; llamado dentro de la misma transacción que
// persiste el documento, el número resultante es único y estrictamente
// creciente incluso bajo creación concurrente.
type SequenceRepository interface {
	Next(companyID, docType string) (int64, error)
}
