package model

// Commissioner is an authenticated price submitter.
type Commissioner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	ID    int    `json:"id"`
}
