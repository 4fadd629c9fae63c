package shared

// UploadFile là file multipart đã đọc hết vào memory ở tầng handler.
// Service và storage không đụng tới *multipart.FileHeader.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}
