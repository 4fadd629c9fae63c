package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	multiHyphen  = regexp.MustCompile(`-+`)
)

// GenerateSlug sinh URL-safe identifier từ display name.
// "Tâm Lí" → "tam-li", "Nguyễn Nhật Ánh" → "nguyen-nhat-anh"
func GenerateSlug(input string) string {
	// Step 1: Strip diacritics
	ascii := RemoveDiacritics(input)

	// Step 2: Lowercase
	lower := strings.ToLower(ascii)

	// Step 3: Spaces → hyphens
	hyphenated := strings.ReplaceAll(lower, " ", "-")

	// Step 4: Drop mọi ký tự ngoài a-z, 0-9, hyphen
	cleaned := nonSlugChars.ReplaceAllString(hyphenated, "")

	// Step 5: Collapse hyphen runs, trim hai đầu
	normalized := multiHyphen.ReplaceAllString(cleaned, "-")

	return strings.Trim(normalized, "-")
}

// RemoveDiacritics đưa ký tự có dấu về base character.
// NFD decomposition tách combining marks rồi drop chúng; riêng đ/Đ
// không phải combining form nên phải map tay.
func RemoveDiacritics(input string) string {
	input = strings.ReplaceAll(input, "đ", "d")
	input = strings.ReplaceAll(input, "Đ", "D")

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, input)
	if err != nil {
		// Transform chỉ fail trên input không phải UTF-8; giữ nguyên
		return input
	}
	return result
}
