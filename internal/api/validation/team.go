package validation

// TeamRequest mirrors the fields needed for create/update team validation.
type TeamRequest struct {
	Name        string
	Description string
}

// ValidateTeamRequest validates the fields of a create or update team request.
func ValidateTeamRequest(req TeamRequest) []FieldError {
	var errs []FieldError

	errs = requireName("name", req.Name, errs)

	if len(req.Description) > 1024 {
		errs = append(errs, FieldError{Field: "description", Message: "description must be at most 1024 characters"})
	}

	return errs
}
