package dto

// ResolveContextRequest carries the path the client is about to render.
// It arrives as a query parameter on GET /api/context/v1/resolve.
type ResolveContextRequest struct {
	Path string `query:"path" validate:"required"`
}

// ResolveContextResponse is the guard's verdict. Kind "allow" means render
// the requested path; "redirect" means navigate to Path first.
type ResolveContextResponse struct {
	Kind       string `json:"kind"`
	Path       string `json:"path,omitempty"`
	PropertyId string `json:"property_id,omitempty"`
	ReturnTo   string `json:"return_to,omitempty"`
}

type SwitchPropertyRequest struct {
	PropertyId string `json:"property_id" validate:"required,uuid"`
}

type SwitchPropertyResponse struct {
	PropertyId string `json:"property_id"`
	Path       string `json:"path"`
}
