package transport

// CreatePointRequest is the body of POST /points. Field names match the
// payload the registration page sends.
type CreatePointRequest struct {
	Name      string  `json:"name" validate:"required,max=200"`
	Email     string  `json:"email" validate:"required,email,max=254"`
	Whatsapp  string  `json:"whatsapp" validate:"required,max=32"`
	UF        string  `json:"uf" validate:"required,selected,uf"`
	City      string  `json:"city" validate:"required,selected,max=120"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Items     []int64 `json:"items" validate:"required,min=1,max=50,unique,dive,gt=0"`
}

// ListPointsRequest filters GET /points. Items is a comma-separated id list.
type ListPointsRequest struct {
	UF    string `form:"uf" validate:"omitempty,uf"`
	City  string `form:"city" validate:"max=120"`
	Items string `form:"items" validate:"max=500"`
}

type PointItemResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type PointResponse struct {
	ID        int64               `json:"id"`
	Name      string              `json:"name"`
	Email     string              `json:"email"`
	Whatsapp  string              `json:"whatsapp"`
	Latitude  float64             `json:"latitude"`
	Longitude float64             `json:"longitude"`
	City      string              `json:"city"`
	UF        string              `json:"uf"`
	Items     []PointItemResponse `json:"items"`
	CreatedAt string              `json:"createdAt"`
}

type PointListResponse struct {
	Points []PointResponse `json:"points"`
	Total  int             `json:"total"`
}
