package dto

// CursorPageRequest paginación por cursor para listados del ledger. Cursor es
// el ID de la última entrada de la página anterior (vacío = primera página).
type CursorPageRequest struct {
	Cursor string `query:"cursor"`
	Limit  int    `query:"limit" validate:"min=1,max=100"`
}

// DefaultPage aplica el límite por defecto si Limit es cero.
func (p *CursorPageRequest) DefaultPage() {
	if p.Limit == 0 {
		p.Limit = 20
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Available/Requested solo se llenan en rechazos por stock insuficiente.
	Available *int `json:"available,omitempty"`
	Requested *int `json:"requested,omitempty"`
}
