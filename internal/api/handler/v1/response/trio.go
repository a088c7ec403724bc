package response

type ValidateTrioResponse struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}

type AutoProvisionResponse struct {
	Created int `json:"created"`
}
