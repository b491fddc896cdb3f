package util

func Back[T any](data []T) T {
	l := len(data)
	if l == 0 {
		panic("empty slice")
	} else if l == 1 {
		return data[0]
	}
	return data[l-1]
}

// RemoveAt removes the i-th element and keeps the order of the rest.
func RemoveAt[T any](a []T, i int) []T {
	if i < 0 || i >= len(a) {
		return a
	}
	copy(a[i:], a[i+1:])
	var zero T
	a[len(a)-1] = zero
	return a[:len(a)-1]
}
