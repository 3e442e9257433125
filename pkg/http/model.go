package http

// ErrorBody is the JSON shape of every error the relay writes.
type ErrorBody struct {
	Error   string            `json:"error" example:"Failed to get prediction"`
	Details []ValidationError `json:"details,omitempty"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_PROFILE_RANGE"`
	Field   string                 `json:"field,omitempty" example:"age"`
	Message string                 `json:"message,omitempty" example:"age must be between 18 and 90"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

// StatusBody is returned by health checks.
type StatusBody struct {
	Status string `json:"status" example:"ok"`
}
