package dto

type GetPosterRequest struct {
	ID       string `validate:"required,uuid4"`
	Enhanced bool
}

type StatusRequest struct {
	ID string `validate:"required,uuid4"`
}

type DeleteRequest struct {
	ID string `validate:"required,uuid4"`
}
