// Package listhelper holds aggregate helpers over lists of blogs.
package listhelper

// Likeable is anything that carries a like count.
type Likeable interface {
	LikeCount() int
}

// Dummy returns one more than the length of the list.
func Dummy[T any](items []T) int {
	return 1 + len(items)
}

// TotalLikes sums the likes of every item. It is zero for an empty list.
func TotalLikes[T Likeable](items []T) int {
	total := 0
	for _, item := range items {
		total += item.LikeCount()
	}
	return total
}

// FavoriteBlog returns the item with the most likes. On a tie the earliest
// item wins. ok is false for an empty list.
func FavoriteBlog[T Likeable](items []T) (favorite T, ok bool) {
	for i, item := range items {
		if i == 0 || item.LikeCount() > favorite.LikeCount() {
			favorite = item
			ok = true
		}
	}
	return favorite, ok
}
