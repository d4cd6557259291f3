package dto

type CreateReaderRequestBody struct {
	Name string `json:"name"`
}

type UpdateReaderRequestBody struct {
	Name *string `json:"name"`
}
