package roast

import "math/rand/v2"

// IntnFunc возвращает число в [0, n). Подменяется в тестах.
type IntnFunc func(n int) int

func defaultIntn(n int) int {
	return rand.IntN(n)
}

// ChooseUniform выбирает элемент с равной вероятностью. items не должен быть пустым.
func ChooseUniform[T any](items []T, intn IntnFunc) T {
	if intn == nil {
		intn = defaultIntn
	}
	return items[intn(len(items))]
}
