package utils

import "fmt"

// ResolveSlugCollision chọn slug còn trống: trả về base nếu chưa ai
// dùng, ngược lại thử base-2, base-3, ... đến counter đầu tiên trống.
// taken là danh sách slug hiện có khớp base hoặc prefix base-.
func ResolveSlugCollision(base string, taken []string) string {
	used := make(map[string]struct{}, len(taken))
	for _, s := range taken {
		used[s] = struct{}{}
	}

	if _, ok := used[base]; !ok {
		return base
	}

	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if _, ok := used[candidate]; !ok {
			return candidate
		}
	}
}
