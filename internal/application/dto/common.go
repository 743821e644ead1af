package dto

// PageResponse ventana devuelta en los listados paginados.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// PageWindow acota limit a [1, maxLimit] (defLimit si no es positivo) y offset a >= 0.
func PageWindow(limit, offset, defLimit, maxLimit int) PageResponse {
	if limit <= 0 {
		limit = defLimit
	}
	return PageResponse{Limit: min(limit, maxLimit), Offset: max(offset, 0)}
}

// ErrorResponse cuerpo de error HTTP: Code es estable, Message es para humanos.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
