package studio

type Location struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	TZ      string `json:"tz"`
}

// LinkButton is one entry of the public bio-link page, ordered by Position.
type LinkButton struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	URL      string `json:"url"`
	Kind     string `json:"kind"`
	Position int    `json:"position"`
	IsActive bool   `json:"is_active"`
}

type LocationForm struct {
	Name    string `form:"name" binding:"required"`
	Address string `form:"address"`
	TZ      string `form:"tz"`
}

type LinkButtonForm struct {
	Label    string `form:"label" binding:"required"`
	URL      string `form:"url" binding:"required,url"`
	Kind     string `form:"kind"`
	Position int    `form:"position"`
	IsActive bool   `form:"is_active"`
}
