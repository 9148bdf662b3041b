// AngelaMos | 2026
// dto.go

package category

type CreateCategoryRequest struct {
	Title string `json:"title" validate:"required,min=3,max=50"`
}

type UpdateCategoryRequest struct {
	Title string `json:"title" validate:"omitempty,min=3,max=50"`
}

type BatchDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}
