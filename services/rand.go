package services

import "math/rand"

// Rand — источник случайности для симуляции живой статистики (минуты
// событий, удары, владение). Выделен в интерфейс, чтобы поведение было
// детерминированным в тестах.
type Rand interface {
	// Intn возвращает число в [0, n).
	Intn(n int) int
}

type mathRand struct{}

func (mathRand) Intn(n int) int { return rand.Intn(n) }

// NewRand возвращает источник на базе math/rand.
func NewRand() Rand { return mathRand{} }

// randBetween возвращает число в [min, max] включительно.
func randBetween(r Rand, min, max int) int {
	return min + r.Intn(max-min+1)
}
