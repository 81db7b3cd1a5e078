package ptr

// Ptr возвращает указатель на значение
func Ptr[T any](v T) *T {
	return &v
}

// Value разыменовывает указатель, возвращая нулевое значение для nil
func Value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
