// Package validation provides input validation for listing queries and
// configuration.
//
// Struct tags (go-playground/validator):
//
//	type GalleryConfig struct {
//	    PageSize int `validate:"min=1,max=100"`
//	}
//	err := validation.Validate(cfg)
//
// Request parameters go through a Checker, which reports every bad field
// in one VALIDATION_ERROR:
//
//	c := validation.New()
//	page := c.Int("page", raw, 1, 1)
//	c.OneOf("sortDirection", dir, "asc", "desc")
//	if err := c.Err(); err != nil { ... }
package validation
