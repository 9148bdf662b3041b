// AngelaMos | 2026
// dto.go

package banner

type UpdateBannerRequest struct {
	Image    *string `json:"image"    validate:"omitempty,url"`
	IsActive *bool   `json:"isActive"`
}

type BatchDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}
