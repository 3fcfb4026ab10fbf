package users

import "mime/multipart"

// UpdateProfilePayload represents the request body for updating a profile.
type UpdateProfilePayload struct {
	DisplayName *string `json:"display_name" mod:"trim" validate:"omitempty,min=1,max=50"`
}

// UploadAvatarPayload represents the multipart form for uploading an avatar.
type UploadAvatarPayload struct {
	FormFiles map[string]*multipart.FileHeader `json:"-"`
}

// SearchUsersQuery represents the query parameters for searching users.
type SearchUsersQuery struct {
	Query  string `query:"q" mod:"trim" validate:"omitempty,max=100"`
	Limit  int    `query:"limit" default:"50" validate:"omitempty,min=1,max=100"`
	Offset int    `query:"offset" default:"0" validate:"omitempty,min=0"`
}
