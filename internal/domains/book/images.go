package book

// ApplyImageReplacements ghép hai list độc lập theo vị trí:
// file mới thứ i thay ảnh tại replaceIndexes[i], chỉ khi i nằm trong
// cả hai list và index không vượt quá mảng ảnh hiện tại (index lệch
// ngoài bounds bị bỏ qua, không lỗi). File mới dư ra sau khi ghép
// (n > k) được append vào cuối. Đây KHÔNG phải set-replace.
//
// Input không bị mutate; luôn trả về slice mới.
func ApplyImageReplacements(current []string, replaceIndexes []int, newURLs []string) []string {
	result := make([]string, len(current))
	copy(result, current)

	for i, index := range replaceIndexes {
		if index >= 0 && index < len(result) && i < len(newURLs) {
			result[index] = newURLs[i]
		}
	}

	if len(newURLs) > len(replaceIndexes) {
		result = append(result, newURLs[len(replaceIndexes):]...)
	}

	return result
}
