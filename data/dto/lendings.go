package dto

type CreateLendingRequestBody struct {
	BookISBN string `json:"bookISBN"`
	ReaderID int64  `json:"readerId"`
}
