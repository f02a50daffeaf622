package model

// Identity is the canonical name of a person after normalization
type Identity struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name,omitempty"`
	Alias     string `json:"alias,omitempty"`
	Slug      string `json:"slug,omitempty"`
}

// Name returns the best available display name
func (i Identity) Name() string {
	switch {
	case i.FullName != "":
		return i.FullName
	case i.FirstName != "":
		return i.FirstName
	default:
		return i.LastName
	}
}

// IsEmpty reports whether neither first nor last name is set
func (i Identity) IsEmpty() bool {
	return i.FirstName == "" && i.LastName == ""
}
