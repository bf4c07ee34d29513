package entity

// SessionPhase — фаза жизненного цикла сессии распространения.
type SessionPhase string

const (
	PhaseIdle       SessionPhase = "idle"       // создана, опорный кадр не задан
	PhaseReferenced SessionPhase = "referenced" // опорный кадр задан, можно шагать
	PhaseReleased   SessionPhase = "released"   // ресурсы освобождены
)
