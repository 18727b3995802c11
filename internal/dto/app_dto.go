package dto

type CreateAppRequest struct {
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	IconURL     string   `json:"icon_url"`
	Description string   `json:"description"`
	IsPublic    *bool    `json:"is_public"`
	Tags        []string `json:"tags"`
}

// UpdateAppRequest is a partial update: nil fields are left untouched and
// a non-nil Tags replaces the whole tag set.
type UpdateAppRequest struct {
	Name        *string   `json:"name"`
	URL         *string   `json:"url"`
	IconURL     *string   `json:"icon_url"`
	Description *string   `json:"description"`
	IsPublic    *bool     `json:"is_public"`
	Tags        *[]string `json:"tags"`
}
