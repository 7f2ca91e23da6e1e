package transfer

import (
	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/maheshrc27/contentflow/internal/models"
)

type ProfileRequest struct {
	BrandGuidelines   models.BrandGuidelines   `json:"brand_guidelines"`
	PostingGuidelines models.PostingGuidelines `json:"posting_guidelines"`
	SelectedPlatforms []models.Platform        `json:"selected_platforms"`
	WebhookURL        string                   `json:"webhook_url"`
}

func (r ProfileRequest) Validate() error {
	return v.ValidateStruct(&r,
		v.Field(&r.WebhookURL, is.URL),
		v.Field(&r.SelectedPlatforms, v.Each(v.By(validPlatform))),
		v.Field(&r.BrandGuidelines, v.By(func(value interface{}) error {
			bg := value.(models.BrandGuidelines)
			return v.Validate(bg.Colors, v.Each(is.HexColor))
		})),
	)
}

func validPlatform(value interface{}) error {
	p, _ := value.(models.Platform)
	if !p.Valid() {
		return v.NewError("validation_invalid_platform", "must be a known platform")
	}
	return nil
}
