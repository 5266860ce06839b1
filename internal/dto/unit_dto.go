package dto

type CreateUnitRequest struct {
	Name string `json:"name" validate:"required,min=1,max=20"`
}

type UnitResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
