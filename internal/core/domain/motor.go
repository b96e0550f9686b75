package domain

type Motor struct {
	MotorID     int     `json:"motor_id"`
	MotorSlug   string  `json:"motor_slug" validate:"required"`
	MotorName   string  `json:"motor_name" validate:"required"`
	MotorType   string  `json:"motor_type" validate:"required"`
	PricePerDay int     `json:"price_per_day" validate:"min=0"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Available   *bool   `json:"available,omitempty"`
	Branch      *string `json:"branch,omitempty"`
}

// MotorQuery carries pagination and filter parameters for a listing.
// Page and Limit are already normalized by the service.
type MotorQuery struct {
	Page          int
	Limit         int
	MotorType     string
	AvailableOnly bool
}

// MotorUpdate is the set of field-update intents for a partial update.
// A nil field means "leave untouched".
type MotorUpdate struct {
	MotorSlug   *string
	MotorName   *string
	MotorType   *string
	PricePerDay *int
	Description *string
	ImageURL    *string
	Available   *bool
	Branch      *string
}

func (u *MotorUpdate) Empty() bool {
	return u.MotorSlug == nil && u.MotorName == nil && u.MotorType == nil &&
		u.PricePerDay == nil && u.Description == nil && u.ImageURL == nil &&
		u.Available == nil && u.Branch == nil
}
